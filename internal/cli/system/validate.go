package system

import (
	"fmt"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Deactivate duplicate habits and skip overlapping events that are not classes."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	a := ctx.App
	result := validation.New().ValidateAll(a.Habits.Habits(), a.Profile.Classes(), a.Events.Events())
	fmt.Println(result.FormatReport())
	if !result.HasConflicts() {
		return nil
	}
	if !c.Fix {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}

	fixed := 0
	for _, conflict := range result.Conflicts {
		switch conflict.Type {
		case validation.ConflictDuplicateHabitName:
			// Keep the first habit, deactivate the rest
			for _, id := range conflict.IDs[1:] {
				if h, ok := a.Habits.Habit(id); ok && h.Active {
					if err := a.Habits.ToggleHabitActive(id); err != nil {
						return err
					}
					fixed++
				}
			}
		case validation.ConflictOverlappingEvents:
			for _, id := range conflict.IDs[1:] {
				if e, ok := a.Events.Event(id); ok && e.ClassID == "" && !e.Skipped {
					if err := a.Events.SkipEvent(id); err != nil {
						return err
					}
					fixed++
				}
			}
		}
	}
	fmt.Printf("✓ Fixed %d item(s). Overlapping classes must be edited by hand.\n", fixed)
	return nil
}
