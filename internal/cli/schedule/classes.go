package schedule

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/events"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/validation"
)

type ClassCmd struct {
	Add    ClassAddCmd    `cmd:"" help:"Add a weekly class and regenerate class events."`
	List   ClassListCmd   `cmd:"" help:"List classes."`
	Edit   ClassEditCmd   `cmd:"" help:"Change a class and regenerate class events."`
	Remove ClassRemoveCmd `cmd:"" help:"Remove a class and its events."`
	Sync   ClassSyncCmd   `cmd:"" help:"Regenerate class events from the schedule."`
}

func findClass(ctx *cli.Context, ref string) (models.ClassSchedule, error) {
	classes := ctx.App.Profile.Classes()
	for _, c := range classes {
		if strings.EqualFold(c.Code, ref) || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	ids := make([]string, len(classes))
	for i, c := range classes {
		ids[i] = c.ID
	}
	id, err := cli.MatchID(ref, ids)
	if err != nil {
		return models.ClassSchedule{}, fmt.Errorf("class %q not found", ref)
	}
	for _, c := range classes {
		if c.ID == id {
			return c, nil
		}
	}
	return models.ClassSchedule{}, fmt.Errorf("class %q not found", ref)
}

// checkOverlap rejects a schedule whose classes overlap.
func checkOverlap(classes []models.ClassSchedule) error {
	result := validation.New().ValidateClasses(classes)
	if result.HasConflicts() {
		return fmt.Errorf("%s", strings.TrimSpace(result.FormatReport()))
	}
	return nil
}

func syncClasses(ctx *cli.Context) error {
	n, err := ctx.App.SyncClasses()
	if err != nil {
		return err
	}
	fmt.Printf("  %d class event(s) scheduled for the next %d week(s)\n", n, ctx.Config.WeeksAhead)
	return nil
}

type ClassAddCmd struct {
	Name       string `arg:"" help:"Class name."`
	Days       string `arg:"" help:"Comma-separated weekdays (e.g. mon,wed,fri)."`
	Start      string `arg:"" help:"Start time (HH:MM)."`
	End        string `arg:"" help:"End time (HH:MM)."`
	Code       string `help:"Course code."`
	Location   string `help:"Room or building."`
	Instructor string `help:"Instructor."`
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.App.RequireOnboarded(); err != nil {
		return err
	}
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	cls := models.ClassSchedule{
		Name:       strings.TrimSpace(c.Name),
		Code:       strings.TrimSpace(c.Code),
		Location:   c.Location,
		Instructor: c.Instructor,
		Days:       days,
		StartTime:  c.Start,
		EndTime:    c.End,
	}
	if err := validation.Class(cls); err != nil {
		return err
	}
	if err := checkOverlap(append(ctx.App.Profile.Classes(), cls)); err != nil {
		return err
	}

	saved, err := ctx.App.Profile.AddClass(cls)
	if err != nil {
		return err
	}
	fmt.Printf("Added class %s (%s %s-%s)\n", events.ClassTitle(saved), cli.FormatWeekdays(saved.Days), saved.StartTime, saved.EndTime)
	return syncClasses(ctx)
}

type ClassListCmd struct{}

func (c *ClassListCmd) Run(ctx *cli.Context) error {
	classes := ctx.App.Profile.Classes()
	if len(classes) == 0 {
		fmt.Println("No classes. Add one with 'ripple class add'.")
		return nil
	}
	for _, cls := range classes {
		line := fmt.Sprintf("  %s  %-28s %-12s %s-%s", cli.ShortID(cls.ID), cli.Clip(events.ClassTitle(cls), 28),
			cli.FormatWeekdays(cls.Days), cls.StartTime, cls.EndTime)
		if cls.Location != "" {
			line += "  @ " + cls.Location
		}
		fmt.Println(line)
	}
	return nil
}

type ClassEditCmd struct {
	Class      string  `arg:"" help:"Class code, name or id."`
	Name       *string `help:"New name."`
	Days       *string `help:"New weekdays."`
	Start      *string `help:"New start time (HH:MM)."`
	End        *string `help:"New end time (HH:MM)."`
	Location   *string `help:"New location."`
	Instructor *string `help:"New instructor."`
}

func (c *ClassEditCmd) Run(ctx *cli.Context) error {
	cls, err := findClass(ctx, c.Class)
	if err != nil {
		return err
	}
	updated := cls
	if c.Name != nil {
		updated.Name = strings.TrimSpace(*c.Name)
	}
	if c.Days != nil {
		if updated.Days, err = cli.ParseWeekdays(*c.Days); err != nil {
			return err
		}
	}
	if c.Start != nil {
		updated.StartTime = *c.Start
	}
	if c.End != nil {
		updated.EndTime = *c.End
	}
	if c.Location != nil {
		updated.Location = *c.Location
	}
	if c.Instructor != nil {
		updated.Instructor = *c.Instructor
	}
	if err := validation.Class(updated); err != nil {
		return err
	}
	var others []models.ClassSchedule
	for _, o := range ctx.App.Profile.Classes() {
		if o.ID != cls.ID {
			others = append(others, o)
		}
	}
	if err := checkOverlap(append(others, updated)); err != nil {
		return err
	}

	if err := ctx.App.Profile.UpdateClass(cls.ID, func(dst *models.ClassSchedule) { *dst = updated }); err != nil {
		return err
	}
	fmt.Printf("Updated class %s\n", events.ClassTitle(updated))
	return syncClasses(ctx)
}

type ClassRemoveCmd struct {
	Class string `arg:"" help:"Class code, name or id."`
}

func (c *ClassRemoveCmd) Run(ctx *cli.Context) error {
	cls, err := findClass(ctx, c.Class)
	if err != nil {
		return err
	}
	if err := ctx.App.Profile.RemoveClass(cls.ID); err != nil {
		return err
	}
	fmt.Printf("Removed class %s\n", events.ClassTitle(cls))
	return syncClasses(ctx)
}

type ClassSyncCmd struct{}

func (c *ClassSyncCmd) Run(ctx *cli.Context) error {
	fmt.Println("Regenerating class events...")
	return syncClasses(ctx)
}
