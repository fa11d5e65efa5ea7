package models

import "time"

type HabitFrequency string

const (
	FrequencyDaily        HabitFrequency = "daily"
	FrequencyWeekly       HabitFrequency = "weekly"
	FrequencySpecificDays HabitFrequency = "specific-days"
)

type HabitCategory string

const (
	CategoryWellness     HabitCategory = "wellness"
	CategoryProductivity HabitCategory = "productivity"
	CategorySocial       HabitCategory = "social"
	CategoryHealth       HabitCategory = "health"
	CategoryCustom       HabitCategory = "custom"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description,omitempty"`
	Icon                string         `json:"icon"`
	Color               string         `json:"color"`
	Frequency           HabitFrequency `json:"frequency"`
	TargetDays          []time.Weekday `json:"target_days,omitempty"`
	TargetCount         int            `json:"target_count,omitempty"` // >1 means multi-step completion
	Category            HabitCategory  `json:"category"`
	IsPrebuilt          bool           `json:"is_prebuilt"`
	PointsPerCompletion int            `json:"points_per_completion"`
	Active              bool           `json:"active"`
	CreatedAt           time.Time      `json:"created_at"`
	Order               int            `json:"order"`
}

// IsMultiStep reports whether completion is reached by counting up to a target
// rather than a single checkbox.
func (h Habit) IsMultiStep() bool {
	return h.TargetCount > 1
}

// HabitLog represents a single day's record of a habit
type HabitLog struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habit_id"`
	Date        string     `json:"date"` // YYYY-MM-DD format
	Completed   bool       `json:"completed"`
	Count       int        `json:"count,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HabitStreak is derived from the log history and never persisted
type HabitStreak struct {
	HabitID           string `json:"habit_id"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
}
