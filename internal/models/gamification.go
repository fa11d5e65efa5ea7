package models

import "time"

type WeeklyChallenge struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetValue  int       `json:"target_value"`
	CurrentValue int       `json:"current_value"`
	Reward       int       `json:"reward"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsComplete reports whether the challenge has reached its target.
func (c WeeklyChallenge) IsComplete() bool {
	return c.CurrentValue >= c.TargetValue
}

type PointAward struct {
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason,omitempty"`
	AwardedAt time.Time `json:"awarded_at"`
}

type GamificationState struct {
	TotalPoints           int              `json:"total_points"`
	Level                 int              `json:"level"`
	ExperienceToNextLevel int              `json:"experience_to_next_level"`
	WeeklyPoints          int              `json:"weekly_points"`
	UnlockedAchievements  []string         `json:"unlocked_achievements"`
	WeeklyChallenge       *WeeklyChallenge `json:"weekly_challenge,omitempty"`
	LongestOverallStreak  int              `json:"longest_overall_streak"`
	CurrentOverallStreak  int              `json:"current_overall_streak"`
	LastStreakCheck       string           `json:"last_streak_check,omitempty"` // YYYY-MM-DD of the last evaluated day
	History               []PointAward     `json:"history,omitempty"`
}

type LevelProgress struct {
	Level           int     `json:"level"`
	CurrentXP       int     `json:"current_xp"`
	XPToNext        int     `json:"xp_to_next"`
	PercentComplete float64 `json:"percent_complete"`
}

type AchievementCategory string

const (
	AchievementHabits  AchievementCategory = "habits"
	AchievementSleep   AchievementCategory = "sleep"
	AchievementMood    AchievementCategory = "mood"
	AchievementStreak  AchievementCategory = "streak"
	AchievementSocial  AchievementCategory = "social"
	AchievementSpecial AchievementCategory = "special"
)

type AchievementRarity string

const (
	RarityCommon    AchievementRarity = "common"
	RarityRare      AchievementRarity = "rare"
	RarityEpic      AchievementRarity = "epic"
	RarityLegendary AchievementRarity = "legendary"
)

type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Points      int                 `json:"points"`
	Rarity      AchievementRarity   `json:"rarity"`
}
