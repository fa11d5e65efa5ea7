package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/migration"
)

var errNoSchema = errors.New("the current backend has no SQL schema")

// migratable is implemented by the SQL providers.
type migratable interface {
	MigrationRunner() (*migration.Runner, error)
}

func migrationRunner(ctx *cli.Context) (*migration.Runner, error) {
	m, ok := ctx.Provider.(migratable)
	if !ok {
		return nil, errNoSchema
	}
	return m.MigrationRunner()
}

type MigrateCmd struct{}

// Run applies pending migrations. Open already migrates on load; this
// reports what was applied and the resulting version.
func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if errors.Is(err, errNoSchema) {
		fmt.Printf("Nothing to migrate: %s storage has no schema.\n", ctx.Config.Storage.Backend)
		return nil
	}
	if err != nil {
		return err
	}

	applied, err := runner.ApplyMigrations(func(msg string) { fmt.Println(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	version, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	if applied == 0 {
		fmt.Printf("Schema is up to date (version %d).\n", version)
		return nil
	}
	fmt.Printf("✓ Applied %d migration(s); schema is now at version %d.\n", applied, version)
	return nil
}
