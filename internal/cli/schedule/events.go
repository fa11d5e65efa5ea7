package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
	"github.com/julianstephens/ripple/internal/validation"
)

type EventCmd struct {
	Add      EventAddCmd      `cmd:"" help:"Add a calendar event."`
	List     EventListCmd     `cmd:"" help:"List a day's (or week's) events."`
	Upcoming EventUpcomingCmd `cmd:"" help:"List the next events that have not started."`
	Done     EventDoneCmd     `cmd:"" help:"Toggle an event's completion."`
	Skip     EventSkipCmd     `cmd:"" help:"Mark an event skipped."`
	Move     EventMoveCmd     `cmd:"" help:"Reschedule an event, keeping the original as skipped."`
	Delete   EventDeleteCmd   `cmd:"" help:"Delete an event."`
}

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Start       string `arg:"" help:"Start time (HH:MM)."`
	End         string `arg:"" optional:"" help:"End time (HH:MM); defaults to one hour after start."`
	Date        string `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
	Type        string `help:"Event type." enum:"class,study,habit,personal,social,work" default:"personal"`
	Energy      string `help:"Energy the event needs (low, medium, high)."`
	Description string `help:"Description."`
	AllDay      bool   `help:"All-day event; start and end times are ignored."`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	switch models.EnergyRequirement(c.Energy) {
	case "", models.EnergyLow, models.EnergyMedium, models.EnergyHigh:
	default:
		return fmt.Errorf("energy must be low, medium or high, got %q", c.Energy)
	}
	loc := ctx.Clock.Now().Location()

	e := models.CalendarEvent{
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Type:        models.EventType(c.Type),
		EnergyLevel: models.EnergyRequirement(c.Energy),
		AllDay:      c.AllDay,
	}
	if c.AllDay {
		day, err := utils.ParseDateInLocation(date, loc)
		if err != nil {
			return err
		}
		e.Start, e.End = day, day.AddDate(0, 0, 1).Add(-time.Minute)
	} else {
		if e.Start, err = utils.CombineDateAndTime(date, c.Start, loc); err != nil {
			return err
		}
		e.End = e.Start.Add(time.Hour)
		if c.End != "" {
			if e.End, err = utils.CombineDateAndTime(date, c.End, loc); err != nil {
				return err
			}
		}
	}
	if err := validation.Event(e); err != nil {
		return err
	}

	saved, err := ctx.App.Events.AddEvent(e)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s: %s\n", cli.ShortID(saved.ID), FormatEvent(saved))
	return nil
}

// FormatEvent renders one listing line.
func FormatEvent(e models.CalendarEvent) string {
	when := "all day"
	if !e.AllDay {
		when = e.Start.Format(constants.DisplayTimeFormat) + " - " + e.End.Format(constants.DisplayTimeFormat)
	}
	status := ""
	switch {
	case e.Completed:
		status = " ✓"
	case e.Skipped:
		status = " (skipped)"
	}
	return fmt.Sprintf("%s  %s  [%s]%s", when, e.Title, e.Type, status)
}

func printEvents(list []models.CalendarEvent, withDate bool) {
	for _, e := range list {
		prefix := ""
		if withDate {
			prefix = e.Start.Format("Mon 01/02") + "  "
		}
		fmt.Printf("  %s  %s%s\n", cli.ShortID(e.ID), prefix, FormatEvent(e))
	}
}

type EventListCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
	Week bool   `short:"w" help:"Show the whole Sunday-to-Saturday week."`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	day, err := utils.ParseDateInLocation(date, ctx.Clock.Now().Location())
	if err != nil {
		return err
	}
	list := ctx.App.Events.EventsForDate(day)
	if c.Week {
		list = ctx.App.Events.EventsForWeek(day)
	}
	if len(list) == 0 {
		fmt.Println("No events.")
		return nil
	}
	printEvents(list, c.Week)
	return nil
}

type EventUpcomingCmd struct {
	Limit int `short:"n" help:"How many events to show." default:"5"`
}

func (c *EventUpcomingCmd) Run(ctx *cli.Context) error {
	list := ctx.App.Events.UpcomingEvents(c.Limit)
	if len(list) == 0 {
		fmt.Println("Nothing coming up.")
		return nil
	}
	printEvents(list, true)
	return nil
}

func findEvent(ctx *cli.Context, ref string) (models.CalendarEvent, error) {
	all := ctx.App.Events.Events()
	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.ID
	}
	id, err := cli.MatchID(ref, ids)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	e, _ := ctx.App.Events.Event(id)
	return e, nil
}

type EventDoneCmd struct {
	ID string `arg:"" help:"Event id or unique prefix."`
}

func (c *EventDoneCmd) Run(ctx *cli.Context) error {
	e, err := findEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.Events.ToggleEventComplete(e.ID); err != nil {
		return err
	}
	if e.Completed {
		fmt.Printf("Marked %q not done\n", e.Title)
	} else {
		fmt.Printf("Marked %q done\n", e.Title)
	}
	return nil
}

type EventSkipCmd struct {
	ID string `arg:"" help:"Event id or unique prefix."`
}

func (c *EventSkipCmd) Run(ctx *cli.Context) error {
	e, err := findEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.Events.SkipEvent(e.ID); err != nil {
		return err
	}
	fmt.Printf("Skipped %q\n", e.Title)
	return nil
}

type EventMoveCmd struct {
	ID    string `arg:"" help:"Event id or unique prefix."`
	Start string `arg:"" help:"New start time (HH:MM)."`
	Date  string `help:"New date (YYYY-MM-DD, today, yesterday); defaults to the event's date."`
}

func (c *EventMoveCmd) Run(ctx *cli.Context) error {
	e, err := findEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	date := utils.FormatDate(e.Start)
	if c.Date != "" {
		if date, err = cli.ResolveDate(c.Date, ctx.Clock); err != nil {
			return err
		}
	}
	start, err := utils.CombineDateAndTime(date, c.Start, e.Start.Location())
	if err != nil {
		return err
	}
	end := start.Add(e.End.Sub(e.Start))

	moved, err := ctx.App.Events.RescheduleEvent(e.ID, start, end)
	if err != nil {
		return err
	}
	fmt.Printf("Moved %q to %s (new id %s)\n", e.Title, moved.Start.Format("Mon 01/02 "+constants.DisplayTimeFormat), cli.ShortID(moved.ID))
	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event id or unique prefix."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	e, err := findEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	if e.ClassID != "" {
		fmt.Println("Note: class events come back on the next class sync; remove the class instead to drop them for good.")
	}
	if err := ctx.App.Events.DeleteEvent(e.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", e.Title)
	return nil
}
