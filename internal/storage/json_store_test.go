package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Name  string    `json:"name"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "ripple.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return store
}

func TestJSONStoreLoadBeforeInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want %v", err, ErrNotInitialized)
	}
	if _, err := store.Get("k", &sample{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotLoaded)
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	store := setupTestJSONStore(t)
	if err := store.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init() error = %v, want %v", err, ErrAlreadyInitialized)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store := setupTestJSONStore(t)

	at := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)
	if err := store.Put("ripple_habits", sample{Name: "water", Count: 3, At: at}); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	// A second handle sees the write-through state
	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	var got sample
	found, err := reopened.Get("ripple_habits", &got)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v", found, err)
	}
	if got.Name != "water" || got.Count != 3 || !got.At.Equal(at) {
		t.Errorf("Get() = %+v", got)
	}

	found, err = reopened.Get("ripple_mood_entries", &got)
	if err != nil || found {
		t.Errorf("Get(missing) = %v, %v; want false, nil", found, err)
	}
}

func TestJSONStoreDeleteAndClear(t *testing.T) {
	store := setupTestJSONStore(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := store.Put(k, sample{Name: k}); err != nil {
			t.Fatalf("Put(%s) failed: %v", k, err)
		}
	}

	keys, _ := store.Keys()
	if len(keys) != 3 || keys[0] != "a" {
		t.Errorf("Keys() = %v, want sorted a,b,c", keys)
	}

	if err := store.Delete("b"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	keys, _ = store.Keys()
	if len(keys) != 2 {
		t.Errorf("Keys() after delete = %v", keys)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	keys, _ = store.Keys()
	if len(keys) != 0 {
		t.Errorf("Keys() after clear = %v", keys)
	}
}

func TestOpenInitializesMissingStorage(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "ripple.json"))
	if err := Open(store); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Put("k", 1); err != nil {
		t.Fatalf("Put() after Open failed: %v", err)
	}

	again := NewJSONStore(store.GetConfigPath())
	if err := Open(again); err != nil {
		t.Fatalf("Open() on existing storage failed: %v", err)
	}
	var n int
	if found, _ := again.Get("k", &n); !found || n != 1 {
		t.Errorf("Get() = %v, %d", found, n)
	}
}
