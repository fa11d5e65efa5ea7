package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/cli/backups"
	"github.com/julianstephens/ripple/internal/cli/coach"
	"github.com/julianstephens/ripple/internal/cli/habits"
	"github.com/julianstephens/ripple/internal/cli/profile"
	"github.com/julianstephens/ripple/internal/cli/schedule"
	"github.com/julianstephens/ripple/internal/cli/stats"
	"github.com/julianstephens/ripple/internal/cli/system"
	"github.com/julianstephens/ripple/internal/cli/wellness"
	"github.com/julianstephens/ripple/internal/config"
	"github.com/julianstephens/ripple/internal/constants"
	rerrors "github.com/julianstephens/ripple/internal/errors"
	"github.com/julianstephens/ripple/internal/logger"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path. Storage, coach and rollover settings live there; RIPPLE_* environment variables override it." type:"string" default:"~/.config/ripple/config.yaml"`
	Verbose bool   `short:"v" help:"Mirror debug logs to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize ripple storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Onboard  system.OnboardCmd  `cmd:"" help:"Set up your profile and starter habits."`
	Daemon   system.DaemonCmd   `cmd:"" help:"Run the daily rollover on a schedule."`
	Rollover system.RolloverCmd `cmd:"" help:"Close out any days that have ended."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Export   system.ExportCmd   `cmd:"" help:"Export all data as JSON."`
	Reset    system.ResetCmd    `cmd:"" help:"Delete all data."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage credentials in the OS keyring."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`

	Habit   habits.HabitCmd     `cmd:"" help:"Manage habits and daily check-ins."`
	Mood    wellness.MoodCmd    `cmd:"" help:"Log and review mood."`
	Sleep   wellness.SleepCmd   `cmd:"" help:"Log and review sleep."`
	Meal    wellness.MealCmd    `cmd:"" help:"Log meals and nutrition goals."`
	Event   schedule.EventCmd   `cmd:"" help:"Manage calendar events."`
	Class   schedule.ClassCmd   `cmd:"" help:"Manage your class schedule."`
	Profile profile.ProfileCmd  `cmd:"" help:"View or edit your profile."`
	Goal    profile.GoalCmd     `cmd:"" help:"Manage personal goals."`
	Stats   stats.StatsCmd      `cmd:"" help:"Points, levels, streaks and achievements."`
	Coach   coach.CoachCmd      `cmd:"" help:"Chat with the wellness coach."`
}

// Commands that manage storage or credentials themselves and must not
// trigger a load first.
var skipOpen = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	if err := run(os.Args[1:], clockwork.NewRealClock()); err != nil {
		rerrors.Fatal(err)
	}
}

func newParser(c *CLI) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name(constants.AppName),
		kong.Description("Student wellness companion: habits, mood, sleep, meals and schedule"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
}

func run(args []string, clock clockwork.Clock) error {
	var c CLI
	parser, err := newParser(&c)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	top := topCommand(kctx)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Debug:     c.Verbose || cfg.Debug,
		ConfigDir: cfg.Dir,
		Quiet:     top == "tui",
	}); err != nil {
		return err
	}

	configPath, err := config.ExpandPath(c.Config)
	if err != nil {
		return err
	}
	appCtx, err := cli.NewContext(cfg, configPath, clock, cli.NewCoach(cfg))
	if err != nil {
		return err
	}
	defer appCtx.Provider.Close()

	if !skipOpen[top] {
		if err := appCtx.Open(); err != nil {
			return err
		}
	}
	logger.Debug("running command", "command", kctx.Command())
	return kctx.Run(appCtx)
}

// topCommand is the first word of the selected command path.
func topCommand(ctx *kong.Context) string {
	sel := ctx.Selected()
	if sel == nil {
		return ""
	}
	for sel.Parent != nil && sel.Parent.Type != kong.ApplicationNode {
		sel = sel.Parent
	}
	return sel.Name
}
