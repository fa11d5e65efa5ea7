package app

import (
	"github.com/julianstephens/ripple/internal/gamification"
	"github.com/julianstephens/ripple/internal/models"
)

type achievementRule struct {
	id   string
	cond func(a *App, challengeDone bool) bool
}

var achievementRules = []achievementRule{
	{gamification.AchievementFirstHabit, func(a *App, _ bool) bool { return a.Habits.CompletedCount() > 0 }},
	{gamification.AchievementHabitStreak7, func(a *App, _ bool) bool { return a.Habits.BestCurrentStreak() >= 7 }},
	{gamification.AchievementHabitStreak30, func(a *App, _ bool) bool { return a.Habits.BestCurrentStreak() >= 30 }},
	{gamification.AchievementMoodStreak7, func(a *App, _ bool) bool { return a.Mood.MoodStreak() >= 7 }},
	{gamification.AchievementSleepStreak7, func(a *App, _ bool) bool { return a.Sleep.SleepStreak() >= 7 }},
	{gamification.AchievementLevel5, func(a *App, _ bool) bool { return a.Gamification.State().Level >= 5 }},
	{gamification.AchievementLevel10, func(a *App, _ bool) bool { return a.Gamification.State().Level >= 10 }},
	{gamification.AchievementChallengeComplete, func(_ *App, done bool) bool { return done }},
}

// evaluateAchievements unlocks every rule that now holds and pays the
// achievement's points. Paying can raise the level, so it repeats until a
// pass unlocks nothing.
func (a *App) evaluateAchievements(challengeDone bool) ([]models.Achievement, error) {
	var unlocked []models.Achievement
	var errs []error
	for {
		progressed := false
		for _, r := range achievementRules {
			if a.Gamification.HasAchievement(r.id) || !r.cond(a, challengeDone) {
				continue
			}
			first, err := a.Gamification.UnlockAchievement(r.id)
			errs = append(errs, err)
			if !first {
				continue
			}
			progressed = true
			ach, _ := gamification.AchievementByID(r.id)
			unlocked = append(unlocked, ach)
			if ach.Points > 0 {
				errs = append(errs, a.Gamification.AddPoints(ach.Points, "achievement: "+ach.Title))
			}
		}
		if !progressed {
			return unlocked, joinErrs(errs...)
		}
	}
}
