package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetCoachAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetCoachAPIKey("sk-test"); err != nil {
		t.Fatalf("SetCoachAPIKey() failed: %v", err)
	}

	got, err := GetCoachAPIKey()
	if err != nil {
		t.Fatalf("GetCoachAPIKey() failed: %v", err)
	}
	if got != "sk-test" {
		t.Errorf("GetCoachAPIKey() = %q, want %q", got, "sk-test")
	}
}

func TestSetEmptySecret(t *testing.T) {
	gokeyring.MockInit()

	if err := SetCoachAPIKey(""); err == nil {
		t.Error("SetCoachAPIKey(\"\") should return an error")
	}
	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestAccountsAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://ripple@localhost:5432/ripple?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	if _, err := GetCoachAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCoachAPIKey() error = %v, want %v", err, ErrNotFound)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := SetCoachAPIKey("sk-test"); err != nil {
		t.Fatalf("SetCoachAPIKey() failed: %v", err)
	}
	if err := DeleteCoachAPIKey(); err != nil {
		t.Fatalf("DeleteCoachAPIKey() failed: %v", err)
	}
	if _, err := GetCoachAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, GetCoachAPIKey() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteCoachAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCoachAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}
