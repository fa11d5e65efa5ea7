package wellness

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/sleep"
	"github.com/julianstephens/ripple/internal/utils"
	"github.com/julianstephens/ripple/internal/validation"
)

type SleepCmd struct {
	Log    SleepLogCmd    `cmd:"" help:"Log (or replace) a night's sleep."`
	List   SleepListCmd   `cmd:"" help:"Show this week's sleep."`
	Stats  SleepStatsCmd  `cmd:"" help:"Show sleep averages, debt and trend."`
	Target SleepTargetCmd `cmd:"" help:"Set the nightly sleep target in hours."`
	Delete SleepDeleteCmd `cmd:"" help:"Delete a night's entry."`
}

type SleepLogCmd struct {
	Bed     string   `arg:"" help:"Bed time (HH:MM)."`
	Wake    string   `arg:"" help:"Wake time (HH:MM); times at or before bed time fall on the next day."`
	Quality int      `short:"q" help:"Quality from 1 (very poor) to 5 (excellent)." default:"3"`
	Factors []string `help:"Factors: caffeine, exercise, screens, stress, alcohol."`
	Notes   string   `help:"Notes."`
	Date    string   `help:"Night the entry is recorded under (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func parseSleepFactors(names []string) (*models.SleepFactors, error) {
	if len(names) == 0 {
		return nil, nil
	}
	f := &models.SleepFactors{}
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "caffeine":
			f.Caffeine = true
		case "exercise":
			f.Exercise = true
		case "screens":
			f.Screens = true
		case "stress":
			f.Stress = true
		case "alcohol":
			f.Alcohol = true
		default:
			return nil, fmt.Errorf("unknown sleep factor %q", n)
		}
	}
	return f, nil
}

func (c *SleepLogCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	bed, wake, err := sleep.ResolveSleepTimes(date, c.Bed, c.Wake, ctx.Clock.Now().Location())
	if err != nil {
		return err
	}
	factors, err := parseSleepFactors(c.Factors)
	if err != nil {
		return err
	}
	e := models.SleepEntry{
		Date:          date,
		BedTime:       bed,
		WakeTime:      wake,
		QualityRating: c.Quality,
		Factors:       factors,
		Notes:         c.Notes,
	}
	if err := validation.SleepEntry(e); err != nil {
		return err
	}

	saved, out, err := ctx.App.LogSleep(e)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s of %s sleep for %s\n", formatMinutes(saved.TotalSleepMinutes),
		strings.ToLower(models.SleepQualityLabels[saved.QualityRating]), saved.Date)
	if s := cli.DescribeOutcome(out); s != "" {
		fmt.Printf("  %s\n", s)
	}
	return nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

type SleepListCmd struct{}

func (c *SleepListCmd) Run(ctx *cli.Context) error {
	entries := ctx.App.Sleep.WeekEntries()
	if len(entries) == 0 {
		fmt.Println("No sleep logged in the last week.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s → %s  %s  %s\n", e.Date, e.BedTime.Format("15:04"), e.WakeTime.Format("15:04"),
			formatMinutes(e.TotalSleepMinutes), models.SleepQualityLabels[e.QualityRating])
	}
	return nil
}

type SleepStatsCmd struct{}

func (c *SleepStatsCmd) Run(ctx *cli.Context) error {
	st := ctx.App.Sleep.SleepStats()
	fmt.Printf("Average sleep:   %s (target %s)\n", formatMinutes(st.AverageSleepDuration), formatMinutes(st.TargetSleepMinutes))
	fmt.Printf("Average quality: %.1f/5\n", st.AverageQuality)
	fmt.Printf("Sleep debt:      %s\n", formatMinutes(st.SleepDebt))
	fmt.Printf("Weekly trend:    %s\n", st.WeeklyTrend)
	fmt.Printf("Logging streak:  %d night(s)\n", ctx.App.Sleep.SleepStreak())
	return nil
}

type SleepTargetCmd struct {
	Hours float64 `arg:"" help:"Target hours per night."`
}

func (c *SleepTargetCmd) Run(ctx *cli.Context) error {
	if c.Hours <= 0 || c.Hours > 24 {
		return fmt.Errorf("target must be between 0 and 24 hours")
	}
	if err := ctx.App.Sleep.SetTargetSleepHours(utils.Round1(c.Hours)); err != nil {
		return err
	}
	fmt.Printf("Sleep target set to %.1f hours\n", utils.Round1(c.Hours))
	return nil
}

type SleepDeleteCmd struct {
	Date string `arg:"" help:"Night of the entry (YYYY-MM-DD, today, yesterday)."`
}

func (c *SleepDeleteCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	e, ok := ctx.App.Sleep.EntryForDate(date)
	if !ok {
		return fmt.Errorf("no sleep entry for %s", date)
	}
	if err := ctx.App.Sleep.DeleteEntry(e.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted sleep entry for %s\n", date)
	return nil
}
