package storage

import "errors"

var (
	// ErrNotInitialized is returned by Load when no storage exists yet
	ErrNotInitialized = errors.New("storage not initialized, run 'ripple init' first")
	// ErrAlreadyInitialized is returned by Init when storage already exists
	ErrAlreadyInitialized = errors.New("storage already initialized")
	// ErrNotLoaded is returned by reads and writes before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is the durable key-value boundary. Each domain store owns one key
// and writes its whole state under it as a JSON document after every mutation.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get decodes the document stored under key into dst. It reports false
	// with a nil error when nothing is stored.
	Get(key string, dst any) (bool, error)
	Put(key string, value any) error
	Delete(key string) error
	Clear() error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Open loads existing storage, initializing it first when none exists.
func Open(p Provider) error {
	err := p.Load()
	if errors.Is(err, ErrNotInitialized) {
		return p.Init()
	}
	return err
}
