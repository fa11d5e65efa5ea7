package wellness

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
	"github.com/julianstephens/ripple/internal/validation"
)

type MoodCmd struct {
	Log    MoodLogCmd    `cmd:"" help:"Log (or replace) a day's mood."`
	List   MoodListCmd   `cmd:"" help:"Show recent mood entries."`
	Stats  MoodStatsCmd  `cmd:"" help:"Show mood averages and streak."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a day's mood entry."`
}

type MoodLogCmd struct {
	Score   int      `arg:"" help:"Mood from 1 (awful) to 10 (great)."`
	Stress  int      `help:"Stress from 1 to 10." default:"5"`
	Energy  int      `help:"Energy from 1 to 10."`
	Anxiety int      `help:"Anxiety from 1 to 10."`
	Factors []string `help:"What influenced your mood (comma-separated)."`
	Journal string   `short:"j" help:"Journal entry."`
	Date    string   `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *MoodLogCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	factors := make([]string, 0, len(c.Factors))
	for _, f := range c.Factors {
		factors = append(factors, strings.ToLower(strings.TrimSpace(f)))
	}
	e := models.MoodEntry{
		Date:         date,
		MoodScore:    c.Score,
		StressLevel:  c.Stress,
		EnergyLevel:  c.Energy,
		AnxietyLevel: c.Anxiety,
		Factors:      factors,
		JournalEntry: c.Journal,
	}
	if err := validation.MoodEntry(e); err != nil {
		return err
	}

	saved, out, err := ctx.App.LogMood(e)
	if err != nil {
		return err
	}
	fmt.Printf("%s Mood %d/10, stress %d/10 logged for %s\n", saved.MoodEmoji, saved.MoodScore, saved.StressLevel, saved.Date)
	if s := cli.DescribeOutcome(out); s != "" {
		fmt.Printf("  %s\n", s)
	}
	return nil
}

type MoodListCmd struct {
	Days int `help:"How many days back to show." default:"7"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be positive")
	}
	today := ctx.App.Today()
	start, err := utils.AddDays(today, -(c.Days - 1))
	if err != nil {
		return err
	}
	entries := ctx.App.Mood.EntriesForDateRange(start, today)
	if len(entries) == 0 {
		fmt.Printf("No mood entries since %s.\n", start)
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s %2d/10  stress %2d/10", e.Date, e.MoodEmoji, e.MoodScore, e.StressLevel)
		if len(e.Factors) > 0 {
			line += "  [" + strings.Join(e.Factors, ", ") + "]"
		}
		if e.JournalEntry != "" {
			line += "  " + cli.Clip(e.JournalEntry, 40)
		}
		fmt.Println(line)
	}
	return nil
}

type MoodStatsCmd struct {
	Days int `help:"Averaging window in days." default:"7"`
}

func (c *MoodStatsCmd) Run(ctx *cli.Context) error {
	m := ctx.App.Mood
	fmt.Printf("Average mood (%dd):   %.1f\n", c.Days, m.AverageMood(c.Days))
	fmt.Printf("Average stress (%dd): %.1f\n", c.Days, m.AverageStress(c.Days))
	fmt.Printf("Logging streak:       %d day(s)\n", m.MoodStreak())
	return nil
}

type MoodDeleteCmd struct {
	Date string `arg:"" help:"Date of the entry (YYYY-MM-DD, today, yesterday)."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	e, ok := ctx.App.Mood.EntryForDate(date)
	if !ok {
		return fmt.Errorf("no mood entry for %s", date)
	}
	if err := ctx.App.Mood.DeleteEntry(e.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted mood entry for %s\n", date)
	return nil
}
