package habits

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/ripple/internal/app"
	"github.com/julianstephens/ripple/internal/cli"
	habitstore "github.com/julianstephens/ripple/internal/habits"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/validation"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a custom habit."`
	Adopt    HabitAdoptCmd    `cmd:"" help:"Add (or reactivate) a prebuilt habit."`
	Prebuilt HabitPrebuiltCmd `cmd:"" help:"List prebuilt habits not yet active."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Today    HabitTodayCmd    `cmd:"" help:"Show today's habit status."`
	Toggle   HabitToggleCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	Inc      HabitIncCmd      `cmd:"" help:"Add one step to a multi-step habit."`
	Dec      HabitDecCmd      `cmd:"" help:"Remove one step from a multi-step habit."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit a habit."`
	Archive  HabitArchiveCmd  `cmd:"" help:"Toggle a habit between active and inactive."`
	Move     HabitMoveCmd     `cmd:"" help:"Move a habit to a new position."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its history."`
}

// findHabit resolves a habit by id or case-insensitive name.
func findHabit(a *app.App, ref string) (models.Habit, error) {
	if h, ok := a.Habits.Habit(ref); ok {
		return h, nil
	}
	for _, h := range a.Habits.Habits() {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

type HabitAddCmd struct {
	Name        string   `arg:"" help:"Habit name."`
	Description string   `help:"Short description."`
	Points      int      `help:"Points per completion." default:"10"`
	Target      int      `help:"Steps per day; above 1 makes it multi-step."`
	Category    string   `help:"Category." enum:"wellness,productivity,social,health,custom" default:"custom"`
	Frequency   string   `help:"How often." enum:"daily,weekly,specific-days" default:"daily"`
	Days        string   `help:"Comma-separated weekdays for specific-days habits."`
	Icon        string   `help:"Icon name." default:"Star"`
	Color       string   `help:"Display color." default:"#8B5CF6"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if _, err := findHabit(ctx.App, c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	h := models.Habit{
		Name:                strings.TrimSpace(c.Name),
		Description:         c.Description,
		Icon:                c.Icon,
		Color:               c.Color,
		Frequency:           models.HabitFrequency(c.Frequency),
		TargetCount:         c.Target,
		Category:            models.HabitCategory(c.Category),
		PointsPerCompletion: c.Points,
		Active:              true,
	}
	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		h.TargetDays = days
	}
	if err := validation.Habit(h); err != nil {
		return err
	}

	h, err := ctx.App.Habits.AddHabit(h)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s\n", h.Name)
	return nil
}

type HabitAdoptCmd struct {
	Name string `arg:"" help:"Prebuilt habit name (see 'ripple habit prebuilt')."`
}

func (c *HabitAdoptCmd) Run(ctx *cli.Context) error {
	name := c.Name
	for _, h := range habitstore.Prebuilt {
		if strings.EqualFold(h.Name, name) {
			name = h.Name
		}
	}
	h, changed, err := ctx.App.Habits.AddPrebuilt(name)
	if err != nil {
		return err
	}
	if h.ID == "" {
		return fmt.Errorf("no prebuilt habit named %q", c.Name)
	}
	if !changed {
		fmt.Printf("%s is already active\n", h.Name)
		return nil
	}
	fmt.Printf("Added habit: %s\n", h.Name)
	return nil
}

type HabitPrebuiltCmd struct{}

func (c *HabitPrebuiltCmd) Run(ctx *cli.Context) error {
	available := ctx.App.Habits.AvailablePrebuilt()
	if len(available) == 0 {
		fmt.Println("Every prebuilt habit is already active.")
		return nil
	}
	for _, h := range available {
		fmt.Printf("  %-22s %-13s %3d pts  %s\n", h.Name, h.Category, h.PointsPerCompletion, h.Description)
	}
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	list := ctx.App.Habits.ActiveHabits()
	if c.All {
		list = ctx.App.Habits.Habits()
	}
	if len(list) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	for i, h := range list {
		status := ""
		if !h.Active {
			status = " [INACTIVE]"
		}
		target := ""
		if h.IsMultiStep() {
			target = fmt.Sprintf(" ×%d", h.TargetCount)
		}
		streak := ctx.App.Habits.HabitStreak(h.ID)
		fmt.Printf("%2d. %s%s%s  (%d pts, streak %d, best %d)\n", i+1, h.Name, target, status,
			h.PointsPerCompletion, streak.CurrentStreak, streak.LongestStreak)
	}
	return nil
}

type HabitTodayCmd struct {
	Date string `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	active := ctx.App.Habits.ActiveHabits()
	if len(active) == 0 {
		fmt.Println("No active habits. Add one with 'ripple habit add' or 'ripple habit adopt'.")
		return nil
	}
	done := 0
	fmt.Printf("Habits for %s:\n", date)
	for _, h := range active {
		log, _ := ctx.App.Habits.LogFor(h.ID, date)
		mark := "[ ]"
		if log.Completed {
			mark = "[✓]"
			done++
		}
		progress := ""
		if h.IsMultiStep() {
			progress = fmt.Sprintf(" %d/%d", log.Count, h.TargetCount)
		}
		fmt.Printf("  %s %s%s\n", mark, h.Name, progress)
	}
	fmt.Printf("\n%d/%d complete\n", done, len(active))
	return nil
}

// LogArgs are shared by the commands that log a habit for a day.
type LogArgs struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (f LogArgs) apply(ctx *cli.Context, op func(string, string) (models.HabitLog, app.Outcome, error)) error {
	h, err := findHabit(ctx.App, f.Name)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(f.Date, ctx.Clock)
	if err != nil {
		return err
	}
	log, out, err := op(h.ID, date)
	if err != nil {
		return err
	}

	state := "not done"
	if log.Completed {
		state = "done"
	}
	if h.IsMultiStep() {
		state = fmt.Sprintf("%d/%d", log.Count, h.TargetCount)
	}
	fmt.Printf("%s on %s: %s\n", h.Name, date, state)
	if s := cli.DescribeOutcome(out); s != "" {
		fmt.Printf("  %s\n", s)
	}
	return nil
}

type HabitToggleCmd struct {
	LogArgs `embed:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	return c.apply(ctx, ctx.App.ToggleHabit)
}

type HabitIncCmd struct {
	LogArgs `embed:""`
}

func (c *HabitIncCmd) Run(ctx *cli.Context) error {
	return c.apply(ctx, ctx.App.IncrementHabit)
}

type HabitDecCmd struct {
	LogArgs `embed:""`
}

func (c *HabitDecCmd) Run(ctx *cli.Context) error {
	return c.apply(ctx, ctx.App.DecrementHabit)
}

type HabitEditCmd struct {
	Name        string  `arg:"" help:"Habit name or id."`
	Rename      *string `help:"New name."`
	Description *string `help:"New description."`
	Points      *int    `help:"Points per completion."`
	Target      *int    `help:"Steps per day."`
	Days        *string `help:"Comma-separated weekdays (sets frequency to specific-days)."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx.App, c.Name)
	if err != nil {
		return err
	}
	updated := h
	if c.Rename != nil {
		updated.Name = strings.TrimSpace(*c.Rename)
	}
	if c.Description != nil {
		updated.Description = *c.Description
	}
	if c.Points != nil {
		updated.PointsPerCompletion = *c.Points
	}
	if c.Target != nil {
		updated.TargetCount = *c.Target
	}
	if c.Days != nil {
		days, err := cli.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		updated.TargetDays = days
		updated.Frequency = models.FrequencySpecificDays
	}
	if err := validation.Habit(updated); err != nil {
		return err
	}
	if err := ctx.App.Habits.UpdateHabit(h.ID, func(dst *models.Habit) { *dst = updated }); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx.App, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.App.Habits.ToggleHabitActive(h.ID); err != nil {
		return err
	}
	if h.Active {
		fmt.Printf("Archived habit: %s\n", h.Name)
	} else {
		fmt.Printf("Reactivated habit: %s\n", h.Name)
	}
	return nil
}

type HabitMoveCmd struct {
	Name     string `arg:"" help:"Habit name or id."`
	Position int    `arg:"" help:"New 1-based position."`
}

func (c *HabitMoveCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx.App, c.Name)
	if err != nil {
		return err
	}
	from := -1
	for i, x := range ctx.App.Habits.Habits() {
		if x.ID == h.ID {
			from = i
		}
	}
	n := len(ctx.App.Habits.Habits())
	if c.Position < 1 || c.Position > n {
		return fmt.Errorf("position must be between 1 and %d", n)
	}
	if err := ctx.App.Habits.ReorderHabits(from, c.Position-1); err != nil {
		return err
	}
	fmt.Printf("Moved %s to position %d\n", h.Name, c.Position)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx.App, c.Name)
	if err != nil {
		return err
	}
	if !c.Yes && !cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete %q and all of its history?", h.Name)) {
		fmt.Println("Delete cancelled.")
		return nil
	}
	if err := ctx.App.Habits.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
