package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local data file before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	err := ctx.Provider.Init()
	switch {
	case errors.Is(err, storage.ErrAlreadyInitialized):
		fmt.Printf("Storage already initialized at: %s\n", ctx.Provider.GetConfigPath())
		if err := ctx.Provider.Load(); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		fmt.Printf("Initialized ripple storage at: %s\n", ctx.Provider.GetConfigPath())
	}

	if err := ctx.App.Load(); err != nil {
		return err
	}
	if err := ctx.App.Sleep.SetTargetSleepHours(ctx.Config.TargetSleepHours); err != nil {
		return err
	}

	if ctx.ConfigPath != "" {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
			if err := ctx.Config.Save(ctx.ConfigPath); err != nil {
				return err
			}
			fmt.Printf("Wrote default config to: %s\n", ctx.ConfigPath)
		}
	}

	if !ctx.App.Profile.Onboarded() {
		fmt.Println("Next: run 'ripple onboard' to set up your profile.")
	}
	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	if _, err := ctx.RequireBackups(); err != nil {
		return fmt.Errorf("--force only applies to file-backed storage: %w", err)
	}
	path := ctx.Provider.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		// Close first to release the file lock
		if err := ctx.Provider.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
