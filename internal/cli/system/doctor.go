package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/keyring"
	"github.com/julianstephens/ripple/internal/utils"
	"github.com/julianstephens/ripple/internal/validation"
)

// errSkipped marks a check that does not apply to the current setup.
var errSkipped = errors.New("skipped")

type check struct {
	name    string
	warning bool // failures are reported but do not fail the run
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
	{name: "Data validation", run: checkValidation},
	{name: "Log dates", run: checkLogDates},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	{name: "Coach API key", warning: true, run: checkCoachKey},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if !reachable && c.name != "Clock/timezone" && c.name != "Coach API key" {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Provider.Keys(); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if err := ctx.App.Load(); err != nil {
		return fmt.Errorf("failed to decode stored data: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if errors.Is(err, errNoSchema) {
		return fmt.Errorf("%w: %s storage has no schema", errSkipped, ctx.Config.Storage.Backend)
	}
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema at version %d, latest is %d; run 'ripple migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.RequireBackups()
	if err != nil {
		return fmt.Errorf("%w: %v", errSkipped, err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s; run 'ripple backup create'", mgr.GetBackupDir())
	}
	if age := ctx.Clock.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	a := ctx.App
	result := validation.New().ValidateAll(a.Habits.Habits(), a.Profile.Classes(), a.Events.Events())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found; run 'ripple validate' for details", len(result.Conflicts))
	}
	return nil
}

// checkLogDates looks for day-keyed records whose date is malformed or in the future.
func checkLogDates(ctx *cli.Context) error {
	today := ctx.App.Today()
	var bad []string
	flag := func(kind, date string) {
		if !utils.ValidateDateFormat(date) || date > today {
			bad = append(bad, fmt.Sprintf("%s %q", kind, date))
		}
	}
	for _, l := range ctx.App.Habits.Logs() {
		flag("habit log", l.Date)
	}
	for _, e := range ctx.App.Mood.Entries() {
		flag("mood entry", e.Date)
	}
	for _, e := range ctx.App.Sleep.Entries() {
		flag("sleep entry", e.Date)
	}
	for _, m := range ctx.App.Nutrition.Meals() {
		flag("meal", m.Date)
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d record(s) with bad dates, first: %s", len(bad), bad[0])
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return fmt.Errorf("no local timezone configured")
	}
	return nil
}

func checkCoachKey(ctx *cli.Context) error {
	key, err := ctx.Config.CoachAPIKey()
	if err != nil && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		return err
	}
	if key == "" {
		return fmt.Errorf("no coach API key; the coach will answer with its fallback message. Set OPENAI_API_KEY or run 'ripple keyring set-coach-key'")
	}
	return nil
}
