package stats

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/gamification"
	"github.com/julianstephens/ripple/internal/models"
)

type StatsCmd struct {
	Overview     StatsOverviewCmd     `cmd:"" default:"1" help:"Level, streaks and this week at a glance."`
	Achievements StatsAchievementsCmd `cmd:"" help:"Unlocked and locked achievements."`
	History      StatsHistoryCmd      `cmd:"" help:"Recent point awards."`
}

type StatsOverviewCmd struct{}

func (c *StatsOverviewCmd) Run(ctx *cli.Context) error {
	a := ctx.App
	st := a.Gamification.State()
	p := a.Gamification.Progress()

	fmt.Printf("Level %d  %s %d/%d XP\n", p.Level, progressBar(p.PercentComplete, 20), p.CurrentXP, p.CurrentXP+p.XPToNext)
	fmt.Printf("Points: %d total, %d this week\n", st.TotalPoints, st.WeeklyPoints)
	fmt.Printf("Streak: %d days (best %d)\n", st.CurrentOverallStreak, st.LongestOverallStreak)

	if ch := st.WeeklyChallenge; ch != nil {
		status := fmt.Sprintf("%d/%d", min(ch.CurrentValue, ch.TargetValue), ch.TargetValue)
		if ch.IsComplete() {
			status += " ✓"
		}
		fmt.Printf("\nWeekly challenge: %s (%s, +%d)\n  %s\n", ch.Title, status, ch.Reward, ch.Description)
		fmt.Printf("  ends %s\n", ch.ExpiresAt.In(ctx.Clock.Now().Location()).Format("Mon Jan 2"))
	}

	active := a.Habits.ActiveHabits()
	done := 0
	for _, h := range active {
		if a.Habits.IsHabitCompletedToday(h.ID) {
			done++
		}
	}
	fmt.Printf("\nHabits today: %d/%d", done, len(active))
	if best := a.Habits.BestCurrentStreak(); best > 0 {
		fmt.Printf("  (best habit streak %d)", best)
	}
	fmt.Println()

	if avg := a.Mood.AverageMood(7); avg > 0 {
		fmt.Printf("Mood (7d):    %.1f/10, stress %.1f, %d-day logging streak\n", avg, a.Mood.AverageStress(7), a.Mood.MoodStreak())
	}
	if s := a.Sleep.SleepStats(); s.AverageSleepDuration > 0 {
		fmt.Printf("Sleep (7d):   %dh%02dm avg, quality %.1f, debt %dm, %s\n",
			s.AverageSleepDuration/60, s.AverageSleepDuration%60, s.AverageQuality, s.SleepDebt, s.WeeklyTrend)
	}
	if n := a.Nutrition.WeeklyStats(); n.AvgMealsPerDay > 0 {
		fmt.Printf("Meals (7d):   %.1f/day, quality %.1f, %d%% consistent\n", n.AvgMealsPerDay, n.AvgQuality, n.Consistency)
	}
	fmt.Printf("Achievements: %d/%d\n", len(st.UnlockedAchievements), len(gamification.Achievements))
	return nil
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

type StatsAchievementsCmd struct {
	Locked bool `help:"Include achievements not yet unlocked."`
}

func (c *StatsAchievementsCmd) Run(ctx *cli.Context) error {
	st := ctx.App.Gamification.State()
	unlocked := make(map[string]bool, len(st.UnlockedAchievements))
	for _, id := range st.UnlockedAchievements {
		unlocked[id] = true
	}
	if len(unlocked) == 0 && !c.Locked {
		fmt.Println("No achievements yet. Use --locked to see what's available.")
		return nil
	}
	// Unlock order first, then the rest of the catalog
	for _, id := range st.UnlockedAchievements {
		if a, ok := gamification.AchievementByID(id); ok {
			printAchievement(a, true)
		}
	}
	if c.Locked {
		for _, a := range gamification.Achievements {
			if !unlocked[a.ID] {
				printAchievement(a, false)
			}
		}
	}
	return nil
}

func printAchievement(a models.Achievement, unlocked bool) {
	icon := a.Icon
	if !unlocked {
		icon = "🔒"
	}
	fmt.Printf("  %s %-20s %-9s +%-4d %s\n", icon, a.Title, a.Rarity, a.Points, a.Description)
}

type StatsHistoryCmd struct {
	Limit int `help:"Number of awards to show." default:"15"`
}

func (c *StatsHistoryCmd) Run(ctx *cli.Context) error {
	history := ctx.App.Gamification.State().History
	if len(history) == 0 {
		fmt.Println("No points earned yet.")
		return nil
	}
	start := 0
	if c.Limit > 0 && len(history) > c.Limit {
		start = len(history) - c.Limit
	}
	loc := ctx.Clock.Now().Location()
	for i := len(history) - 1; i >= start; i-- {
		h := history[i]
		fmt.Printf("  %s  +%-4d %s\n", h.AwardedAt.In(loc).Format("2006-01-02 15:04"), h.Amount, h.Reason)
	}
	return nil
}
