package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/ripple/migrations"
)

const (
	kvTable    = `CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`
	kvStamp    = `ALTER TABLE kv ADD COLUMN updated_at TEXT;`
	kvArchive  = `CREATE TABLE kv_archive (key TEXT, value TEXT, archived_at TEXT);`
	badKVTable = `CREATE TABLE kv (key TEXT PRIMARY KEY); NOT VALID SQL;`
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "ripple.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n); err != nil {
		t.Fatalf("sqlite_master query: %v", err)
	}
	return n == 1
}

func TestVersionRoundTrip(t *testing.T) {
	runner := NewRunner(openDB(t), migrationFS(map[string]string{"001_kv.sql": kvTable}))

	if v, err := runner.GetCurrentVersion(); err != nil || v != 0 {
		t.Fatalf("fresh database version = %d, %v; want 0", v, err)
	}
	if err := runner.SetVersion(4); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}
	if v, _ := runner.GetCurrentVersion(); v != 4 {
		t.Errorf("version = %d, want 4", v)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(openDB(t), migrationFS(map[string]string{
		"003_archive.sql": kvArchive,
		"001_kv.sql":      kvTable,
		"002_stamp.sql":   kvStamp,
		"README.md":       "ignored",
	}))

	got, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles: %v", err)
	}
	want := []struct {
		version int
		name    string
	}{{1, "kv"}, {2, "stamp"}, {3, "archive"}}
	if len(got) != len(want) {
		t.Fatalf("read %d migrations, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Version != w.version || got[i].Name != w.name {
			t.Errorf("migration %d = %d/%s, want %d/%s", i, got[i].Version, got[i].Name, w.version, w.name)
		}
	}

	if latest, _ := runner.GetLatestVersion(); latest != 3 {
		t.Errorf("latest version = %d, want 3", latest)
	}
}

func TestReadMigrationFilesRejects(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001kv.sql": kvTable}, "invalid migration filename"},
		{"non-numeric version", map[string]string{"abc_kv.sql": kvTable}, "invalid version number"},
		{"zero version", map[string]string{"000_kv.sql": kvTable}, "version must be at least 1"},
		{"duplicate version", map[string]string{"001_kv.sql": kvTable, "001_archive.sql": kvArchive}, "duplicate migration version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(openDB(t), migrationFS(tt.files)).ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openDB(t)
	files := migrationFS(map[string]string{"001_kv.sql": kvTable})
	runner := NewRunner(db, files)

	var logged []string
	n, err := runner.ApplyMigrations(func(msg string) { logged = append(logged, msg) })
	if err != nil || n != 1 {
		t.Fatalf("first apply = %d, %v; want 1", n, err)
	}
	if len(logged) == 0 {
		t.Error("log callback was never called")
	}
	if !tableExists(t, db, "kv") {
		t.Fatal("kv table missing")
	}

	if n, err = runner.ApplyMigrations(nil); err != nil || n != 0 {
		t.Errorf("repeat apply = %d, %v; want 0", n, err)
	}

	// A later release ships two more files
	files["002_stamp.sql"] = &fstest.MapFile{Data: []byte(kvStamp)}
	files["003_archive.sql"] = &fstest.MapFile{Data: []byte(kvArchive)}
	if n, err = runner.ApplyMigrations(nil); err != nil || n != 2 {
		t.Fatalf("incremental apply = %d, %v; want 2", n, err)
	}
	if v, _ := runner.GetCurrentVersion(); v != 3 {
		t.Errorf("version = %d, want 3", v)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('ripple_habits', '{}', 'now')`); err != nil {
		t.Errorf("migrated kv table rejects a stamped row: %v", err)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := openDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{"001_kv.sql": badKVTable}))

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("broken migration applied without error")
	}
	if v, _ := runner.GetCurrentVersion(); v != 0 {
		t.Errorf("version = %d after failed migration, want 0", v)
	}
	if tableExists(t, db, "kv") {
		t.Error("kv table survived a rolled back migration")
	}
}

func TestNewerDatabaseIsRejected(t *testing.T) {
	runner := NewRunner(openDB(t), migrationFS(map[string]string{"001_kv.sql": kvTable}))
	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatalf("EnsureSchemaVersionTable: %v", err)
	}
	if err := runner.SetVersion(7); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion accepted a database newer than the binary")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations ran against a newer database")
	}
}

func TestEmbeddedSQLiteSchema(t *testing.T) {
	db := openDB(t)
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}

	runner := NewRunner(db, sub)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	if !tableExists(t, db, "kv") {
		t.Error("embedded schema did not create the kv table")
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion: %v", err)
	}
}
