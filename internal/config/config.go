package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/keyring"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/storage/postgres"
	"github.com/julianstephens/ripple/internal/utils"
)

// Environment overrides
const (
	EnvStorageBackend = "RIPPLE_STORAGE_BACKEND"
	EnvStoragePath    = "RIPPLE_STORAGE_PATH"
	EnvDBConnection   = "RIPPLE_DB_CONNECTION"
	EnvCoachEndpoint  = "RIPPLE_COACH_ENDPOINT"
	EnvCoachModel     = "RIPPLE_COACH_MODEL"
	EnvDebug          = "RIPPLE_DEBUG"
	EnvOpenAIKey      = "OPENAI_API_KEY"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
	DSN     string `yaml:"dsn,omitempty"`
}

type CoachConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type Config struct {
	Storage          StorageConfig `yaml:"storage"`
	Coach            CoachConfig   `yaml:"coach"`
	TargetSleepHours float64       `yaml:"target_sleep_hours"`
	WeeksAhead       int           `yaml:"weeks_ahead"`
	RolloverAt       string        `yaml:"rollover_at"`
	Debug            bool          `yaml:"debug"`

	// Dir is the directory holding the config file, logs and the default database
	Dir string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: constants.BackendSQLite,
			Path:    filepath.Join(dir, constants.DefaultDBFile),
		},
		Coach: CoachConfig{
			Endpoint:    constants.DefaultCoachEndpoint,
			Model:       constants.DefaultCoachModel,
			Temperature: constants.DefaultCoachTemperature,
			Timeout:     constants.DefaultCoachTimeout,
		},
		TargetSleepHours: constants.DefaultTargetSleepHours,
		WeeksAhead:       constants.DefaultWeeksAhead,
		RolloverAt:       constants.DefaultRolloverAt,
		Dir:              dir,
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads .env files next to the config and in the working directory,
// then the YAML file at path (a missing file means defaults), then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	loadDotEnv(filepath.Join(dir, ".env"), ".env")

	cfg := Default(dir)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no config file, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.Storage.Path, err = ExpandPath(cfg.Storage.Path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads each file that exists. Variables already set win.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warn("failed to load env file", "path", f, "error", err)
		}
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStorageBackend); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvDBConnection); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(EnvCoachEndpoint); v != "" {
		c.Coach.Endpoint = v
	}
	if v := os.Getenv(EnvCoachModel); v != "" {
		c.Coach.Model = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidConfig, EnvDebug, err)
		}
		c.Debug = debug
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendJSON:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for the %s backend", ErrInvalidConfig, c.Storage.Backend)
		}
	case constants.BackendPostgres:
		// An empty DSN is resolved from the keyring later
		if c.Storage.DSN != "" {
			if _, err := postgres.ValidateConnString(c.Storage.DSN); err != nil {
				return fmt.Errorf("%w: storage.dsn: %w", ErrInvalidConfig, err)
			}
		}
	case constants.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	if c.TargetSleepHours <= 0 || c.TargetSleepHours > 24 {
		return fmt.Errorf("%w: target_sleep_hours must be between 0 and 24", ErrInvalidConfig)
	}
	if c.WeeksAhead <= 0 {
		return fmt.Errorf("%w: weeks_ahead must be positive", ErrInvalidConfig)
	}
	if !utils.ValidateTimeFormat(c.RolloverAt) {
		return fmt.Errorf("%w: rollover_at must be HH:MM, got %q", ErrInvalidConfig, c.RolloverAt)
	}
	if c.Coach.Temperature < 0 || c.Coach.Temperature > 2 {
		return fmt.Errorf("%w: coach.temperature must be between 0 and 2", ErrInvalidConfig)
	}
	return nil
}

// Save writes the config as YAML, creating the directory when needed.
func (c *Config) Save(path string) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CoachAPIKey looks in OPENAI_API_KEY first, then the OS keyring. An empty
// key with a nil error means none is configured.
func (c *Config) CoachAPIKey() (string, error) {
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		return v, nil
	}
	key, err := keyring.GetCoachAPIKey()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return key, err
}

// ConnectionString returns the PostgreSQL DSN from config or environment,
// falling back to the keyring.
func (c *Config) ConnectionString() (string, error) {
	if c.Storage.DSN != "" {
		return c.Storage.DSN, nil
	}
	dsn, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: no PostgreSQL connection string; set %s or store one with `ripple keyring set-dsn`", ErrInvalidConfig, EnvDBConnection)
		}
		return "", err
	}
	return dsn, nil
}
