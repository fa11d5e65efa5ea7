package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/scheduler"
)

// DaemonCmd keeps the daily rollover running until interrupted.
type DaemonCmd struct {
	At string `help:"Rollover time (HH:MM); defaults to rollover_at from the config."`
}

func (c *DaemonCmd) Run(ctx *cli.Context) error {
	at := c.At
	if at == "" {
		at = ctx.Config.RolloverAt
	}
	s, err := scheduler.New(ctx.App, at, ctx.Clock)
	if err != nil {
		return err
	}
	s.Start()
	if next, err := s.NextRun(); err == nil {
		fmt.Printf("Rollover scheduled daily at %s (next: %s). Press Ctrl+C to stop.\n", at, next.Format("2006-01-02 15:04"))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	got := <-sig
	logger.Info("daemon stopping", "signal", got.String(), "runs", s.Runs())
	return s.Shutdown()
}

type RolloverCmd struct{}

func (c *RolloverCmd) Run(ctx *cli.Context) error {
	if err := ctx.App.Rollover(); err != nil {
		return err
	}
	state := ctx.App.Gamification.State()
	fmt.Printf("✓ Rolled over through %s (overall streak: %d days)\n", state.LastStreakCheck, state.CurrentOverallStreak)
	return nil
}
