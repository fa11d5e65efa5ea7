package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/ripple/internal/cli"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	fmt.Println("⚠️  WARNING: This deletes every habit, log, entry, event, point and chat message.")
	if _, err := ctx.RequireBackups(); err == nil {
		fmt.Println("A backup of your current data will be created first.")
	}
	if !c.Yes && !cli.Confirm(os.Stdin, os.Stdout, "Continue?") {
		fmt.Println("Reset cancelled.")
		return nil
	}
	if err := ctx.App.Reset(); err != nil {
		return err
	}
	fmt.Println("✓ All data reset. Run 'ripple onboard' to start again.")
	return nil
}

type ExportCmd struct {
	Dir    string `help:"Directory to write the export into." default:"." type:"path"`
	Stdout bool   `help:"Print the export instead of writing a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if c.Stdout {
		return printJSON(ctx.App.Export())
	}
	path, err := ctx.App.WriteExport(c.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Exported to %s\n", filepath.Clean(path))
	return nil
}
