package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/app"
	"github.com/julianstephens/ripple/internal/backup"
	"github.com/julianstephens/ripple/internal/coach"
	"github.com/julianstephens/ripple/internal/config"
	"github.com/julianstephens/ripple/internal/constants"
	rerrors "github.com/julianstephens/ripple/internal/errors"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/storage/postgres"
	"github.com/julianstephens/ripple/internal/storage/sqlite"
	"github.com/julianstephens/ripple/internal/utils"
)

// ErrNoLocalFile is returned for backup operations on a backend without a data file.
var ErrNoLocalFile = errors.New("backups need a file-backed storage backend (sqlite or json)")

type Context struct {
	Config     *config.Config
	ConfigPath string
	Provider   storage.Provider
	App        *app.App
	Clock      clockwork.Clock
}

// NewProvider builds the storage provider named by the config. PostgreSQL
// DSNs come from config, environment or keyring and may not embed a password.
func NewProvider(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Storage.Backend {
	case constants.BackendSQLite:
		return sqlite.NewStore(cfg.Storage.Path), nil
	case constants.BackendJSON:
		return storage.NewJSONStore(cfg.Storage.Path), nil
	case constants.BackendMemory:
		return storage.NewMemoryStore(), nil
	case constants.BackendPostgres:
		dsn, err := cfg.ConnectionString()
		if err != nil {
			return nil, err
		}
		if _, err := postgres.ValidateConnString(dsn); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded passwords are not allowed; use .pgpass or PGPASSWORD: %w", err)
			}
			return nil, err
		}
		return postgres.New(dsn), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Storage.Backend)
	}
}

// NewCoach returns a client when an API key is configured, nil otherwise.
func NewCoach(cfg *config.Config) coach.Completer {
	key, err := cfg.CoachAPIKey()
	if err != nil {
		logger.Warn("failed to read coach API key", "error", err)
		return nil
	}
	if key == "" {
		return nil
	}
	return coach.NewClient(coach.Config{
		Endpoint:    cfg.Coach.Endpoint,
		Model:       cfg.Coach.Model,
		APIKey:      key,
		Temperature: cfg.Coach.Temperature,
		Timeout:     cfg.Coach.Timeout,
	})
}

// NewContext wires provider and coordinator. Nothing is read from storage
// until Open.
func NewContext(cfg *config.Config, configPath string, clock clockwork.Clock, completer coach.Completer) (*Context, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	c := &Context{Config: cfg, ConfigPath: configPath, Provider: provider, Clock: clock}
	opts := app.Options{WeeksAhead: cfg.WeeksAhead, Coach: completer}
	if c.hasLocalFile() {
		opts.Backup = func() (string, error) { return c.BackupManager().CreateBackup() }
	}
	c.App = app.New(provider, clock, opts)
	return c, nil
}

// Open loads (or creates) storage and every store, then catches up the
// daily rollover.
func (c *Context) Open() error {
	if err := storage.Open(c.Provider); err != nil {
		return err
	}
	if err := c.App.Load(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if err := c.App.Rollover(); err != nil {
		logger.Warn("rollover failed", "error", err)
	}
	return nil
}

func (c *Context) hasLocalFile() bool {
	b := c.Config.Storage.Backend
	return b == constants.BackendSQLite || b == constants.BackendJSON
}

// BackupManager is only meaningful for file-backed storage; see RequireBackups.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Provider.GetConfigPath(), c.Clock)
}

// RequireBackups returns the backup manager or ErrNoLocalFile.
func (c *Context) RequireBackups() (*backup.Manager, error) {
	if !c.hasLocalFile() {
		return nil, ErrNoLocalFile
	}
	return c.BackupManager(), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.RequireBackups()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate accepts YYYY-MM-DD, "today", "yesterday" or empty (today).
func ResolveDate(s string, clock clockwork.Clock) (string, error) {
	today := utils.Today(clock)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return utils.AddDays(today, -1)
	}
	if !utils.ValidateDateFormat(s) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD, 'today' or 'yesterday')", s)
	}
	return s, nil
}

// Confirm prints prompt and reads a yes/no answer; anything but y/yes is no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		wd, err := utils.ParseWeekday(part)
		if err != nil {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, convErr := strconv.Atoi(part)
			if convErr != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			wd = time.Weekday(num)
		}
		if !seen[wd] {
			seen[wd] = true
			weekdays = append(weekdays, wd)
		}
	}
	if len(weekdays) == 0 {
		return nil, errors.New("at least one weekday is required")
	}
	return weekdays, nil
}

// FormatWeekdays renders days as a compact Mon,Wed,Fri list.
func FormatWeekdays(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

// Clip shortens s to n runes for table output.
func Clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// ShortID is the prefix shown in listings; commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// MatchID returns the single id among ids that starts with prefix.
func MatchID(prefix string, ids []string) (string, error) {
	var found []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: no item with id %q", rerrors.ErrNotFound, prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d items", prefix, len(found))
	}
}

// DescribeOutcome summarizes points and unlocks from a logged action, or "".
func DescribeOutcome(out app.Outcome) string {
	var parts []string
	if out.Points > 0 {
		parts = append(parts, fmt.Sprintf("+%d points", out.Points))
	}
	if out.ChallengeReward > 0 {
		parts = append(parts, fmt.Sprintf("weekly challenge complete (+%d)", out.ChallengeReward))
	}
	for _, a := range out.Unlocked {
		parts = append(parts, fmt.Sprintf("🏆 %s unlocked (+%d)", a.Title, a.Points))
	}
	return strings.Join(parts, ", ")
}
