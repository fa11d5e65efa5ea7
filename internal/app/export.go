package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

type GamificationSummary struct {
	TotalPoints  int      `json:"total_points"`
	Level        int      `json:"level"`
	Achievements []string `json:"achievements"`
}

// Export is a one-shot read-only snapshot of the user's data.
type Export struct {
	User         *models.UserProfile    `json:"user"`
	Habits       []models.Habit         `json:"habits"`
	HabitLogs    []models.HabitLog      `json:"habit_logs"`
	MoodEntries  []models.MoodEntry     `json:"mood_entries"`
	SleepEntries []models.SleepEntry    `json:"sleep_entries"`
	Events       []models.CalendarEvent `json:"events"`
	Gamification GamificationSummary    `json:"gamification"`
	ExportedAt   time.Time              `json:"exported_at"`
}

func (a *App) Export() Export {
	g := a.Gamification.State()
	out := Export{
		Habits:       nonNil(a.Habits.Habits()),
		HabitLogs:    nonNil(a.Habits.Logs()),
		MoodEntries:  nonNil(a.Mood.Entries()),
		SleepEntries: nonNil(a.Sleep.Entries()),
		Events:       nonNil(a.Events.Events()),
		Gamification: GamificationSummary{
			TotalPoints:  g.TotalPoints,
			Level:        g.Level,
			Achievements: nonNil(g.UnlockedAchievements),
		},
		ExportedAt: a.clock.Now(),
	}
	if u, ok := a.Profile.User(); ok {
		out.User = &u
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ExportFileName is ripple-export-YYYY-MM-DD.json for the current day.
func (a *App) ExportFileName() string {
	return fmt.Sprintf("ripple-export-%s.json", utils.Today(a.clock))
}

// WriteExport writes the export into dir and returns the file path.
func (a *App) WriteExport(dir string) (string, error) {
	data, err := json.MarshalIndent(a.Export(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, a.ExportFileName())
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("export written", "path", path)
	return path, nil
}
