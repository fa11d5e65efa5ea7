package constants

import "time"

const (
	AppName           = "ripple"
	DefaultConfigDir  = "~/.config/ripple"
	DefaultConfigFile = "config.yaml"
	DefaultDBFile     = "ripple.db"
	Version           = "v0.3.0"

	// DateFormat is the calendar-day format used for every day-keyed record (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the time-of-day format used for schedules and preferences (HH:MM)
	TimeFormat = "15:04"

	// DisplayTimeFormat is how event start times are rendered for people and the coach
	DisplayTimeFormat = "3:04 PM"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ripple-"

	// Keyring accounts
	KeyringCoachUser    = "coach-api-key"
	KeyringDatabaseUser = "database-connection"

	// Coach defaults
	DefaultCoachEndpoint    = "https://api.openai.com/v1"
	DefaultCoachModel       = "gpt-4o-mini"
	DefaultCoachTemperature = 0.7
	DefaultCoachTimeout     = 30 * time.Second
	CoachFallbackMessage    = "Sorry, I'm having trouble connecting right now. Please try again."

	// Store defaults
	DefaultTargetSleepHours = 8.0
	DefaultWeeksAhead       = 4
	DefaultUpcomingLimit    = 5
	DefaultRecentMessages   = 10
	DefaultRolloverAt       = "00:05"
	CoachContextEventLimit  = 5

	// Points awarded by the coordinator for logging actions
	MoodLogPoints  = 15
	SleepLogPoints = 10
)

// Storage keys, one logical namespace per store.
const (
	KeyUserProfile  = "ripple_user_profile"
	KeyHabits       = "ripple_habits"
	KeyEvents       = "ripple_events"
	KeyMoodEntries  = "ripple_mood_entries"
	KeySleepEntries = "ripple_sleep_entries"
	KeyNutrition    = "ripple_nutrition"
	KeyGamification = "ripple_gamification"
	KeyChatHistory  = "ripple_chat_history"
)

// AllStorageKeys lists every namespace owned by a store.
var AllStorageKeys = []string{
	KeyUserProfile,
	KeyHabits,
	KeyEvents,
	KeyMoodEntries,
	KeySleepEntries,
	KeyNutrition,
	KeyGamification,
	KeyChatHistory,
}

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)
