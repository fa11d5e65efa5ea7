package gamification

import "github.com/julianstephens/ripple/internal/models"

// ChallengeTemplate is a catalog entry drawn when a new week starts.
type ChallengeTemplate struct {
	ID          string
	Title       string
	Description string
	TargetValue int
	Reward      int
}

var WeeklyChallenges = []ChallengeTemplate{
	{ID: "habit-marathon", Title: "Habit Marathon", Description: "Complete 20 habits this week", TargetValue: 20, Reward: 100},
	{ID: "consistency-king", Title: "Consistency Counts", Description: "Complete 10 habits this week", TargetValue: 10, Reward: 50},
	{ID: "perfect-week", Title: "Perfect Week", Description: "Complete 35 habits this week", TargetValue: 35, Reward: 200},
	{ID: "steady-steps", Title: "Steady Steps", Description: "Complete 15 habits this week", TargetValue: 15, Reward: 75},
	{ID: "warm-up", Title: "Warm Up", Description: "Complete 5 habits this week", TargetValue: 5, Reward: 25},
}

// Achievement ids unlocked by the app.
const (
	AchievementFirstHabit        = "first-habit"
	AchievementHabitStreak7      = "habit-streak-7"
	AchievementHabitStreak30     = "habit-streak-30"
	AchievementMoodStreak7       = "mood-streak-7"
	AchievementSleepStreak7      = "sleep-streak-7"
	AchievementLevel5            = "level-5"
	AchievementLevel10           = "level-10"
	AchievementChallengeComplete = "challenge-complete"
)

var Achievements = []models.Achievement{
	{
		ID:          AchievementFirstHabit,
		Title:       "First Ripple",
		Description: "Complete your first habit",
		Icon:        "🌱",
		Category:    models.AchievementHabits,
		Points:      10,
		Rarity:      models.RarityCommon,
	},
	{
		ID:          AchievementHabitStreak7,
		Title:       "Week Warrior",
		Description: "Keep a habit going for 7 days",
		Icon:        "🔥",
		Category:    models.AchievementStreak,
		Points:      50,
		Rarity:      models.RarityRare,
	},
	{
		ID:          AchievementHabitStreak30,
		Title:       "Unstoppable",
		Description: "Keep a habit going for 30 days",
		Icon:        "⚡",
		Category:    models.AchievementStreak,
		Points:      200,
		Rarity:      models.RarityLegendary,
	},
	{
		ID:          AchievementMoodStreak7,
		Title:       "In Touch",
		Description: "Log your mood 7 days in a row",
		Icon:        "💭",
		Category:    models.AchievementMood,
		Points:      50,
		Rarity:      models.RarityRare,
	},
	{
		ID:          AchievementSleepStreak7,
		Title:       "Well Rested",
		Description: "Log your sleep 7 nights in a row",
		Icon:        "🌙",
		Category:    models.AchievementSleep,
		Points:      50,
		Rarity:      models.RarityRare,
	},
	{
		ID:          AchievementLevel5,
		Title:       "Rising Wave",
		Description: "Reach level 5",
		Icon:        "🌊",
		Category:    models.AchievementSpecial,
		Points:      0,
		Rarity:      models.RarityEpic,
	},
	{
		ID:          AchievementLevel10,
		Title:       "Tidal Force",
		Description: "Reach level 10",
		Icon:        "🏆",
		Category:    models.AchievementSpecial,
		Points:      0,
		Rarity:      models.RarityLegendary,
	},
	{
		ID:          AchievementChallengeComplete,
		Title:       "Challenger",
		Description: "Finish a weekly challenge",
		Icon:        "🎯",
		Category:    models.AchievementSpecial,
		Points:      25,
		Rarity:      models.RarityCommon,
	},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (models.Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}
