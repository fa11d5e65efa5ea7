package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

// Error is a single rejected field.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every rejected field of one value.
type Errors []Error

func (es Errors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type checker struct {
	errs Errors
}

func (c *checker) check(ok bool, field, format string, args ...any) {
	if !ok {
		c.errs = append(c.errs, Error{Field: field, Message: fmt.Sprintf(format, args...)})
	}
}

func (c *checker) between(v, lo, hi int, field string) {
	c.check(v >= lo && v <= hi, field, "must be between %d and %d, got %d", lo, hi, v)
}

func (c *checker) optionalBetween(v, lo, hi int, field string) {
	if v != 0 {
		c.between(v, lo, hi, field)
	}
}

func (c *checker) date(v, field string) {
	c.check(v == "" || utils.ValidateDateFormat(v), field, "must be YYYY-MM-DD, got %q", v)
}

func (c *checker) timeOfDay(v, field string, required bool) {
	if v == "" {
		c.check(!required, field, "is required")
		return
	}
	c.check(utils.ValidateTimeFormat(v), field, "must be HH:MM, got %q", v)
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

func Habit(h models.Habit) error {
	var c checker
	c.check(strings.TrimSpace(h.Name) != "", "name", "is required")
	c.check(slices.Contains([]models.HabitFrequency{models.FrequencyDaily, models.FrequencyWeekly, models.FrequencySpecificDays}, h.Frequency),
		"frequency", "must be daily, weekly or specific-days, got %q", h.Frequency)
	if h.Frequency == models.FrequencySpecificDays {
		c.check(len(h.TargetDays) > 0, "target_days", "at least one day is required for specific-days habits")
	}
	c.check(h.TargetCount >= 0, "target_count", "cannot be negative")
	c.check(h.PointsPerCompletion >= 0, "points_per_completion", "cannot be negative")
	return c.err()
}

func MoodEntry(e models.MoodEntry) error {
	var c checker
	c.date(e.Date, "date")
	c.between(e.MoodScore, 1, 10, "mood_score")
	c.optionalBetween(e.StressLevel, 1, 10, "stress_level")
	c.optionalBetween(e.EnergyLevel, 1, 10, "energy_level")
	c.optionalBetween(e.AnxietyLevel, 1, 10, "anxiety_level")
	for _, f := range e.Factors {
		c.check(slices.Contains(models.MoodFactors, f), "factors", "unknown factor %q", f)
	}
	return c.err()
}

func SleepEntry(e models.SleepEntry) error {
	var c checker
	c.date(e.Date, "date")
	c.check(!e.BedTime.IsZero(), "bed_time", "is required")
	c.check(!e.WakeTime.IsZero(), "wake_time", "is required")
	if !e.BedTime.IsZero() && !e.WakeTime.IsZero() {
		c.check(e.WakeTime.After(e.BedTime), "wake_time", "must be after bed_time")
	}
	c.between(e.QualityRating, 1, 5, "quality_rating")
	return c.err()
}

func Meal(m models.MealEntry) error {
	var c checker
	c.date(m.Date, "date")
	c.check(slices.Contains([]models.MealType{models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack}, m.MealType),
		"meal_type", "must be breakfast, lunch, dinner or snack, got %q", m.MealType)
	c.timeOfDay(m.Time, "time", false)
	c.between(m.Quality, 1, 5, "quality")
	c.check(m.Calories >= 0, "calories", "cannot be negative")
	c.check(m.Hydration >= 0, "hydration", "cannot be negative")
	return c.err()
}

func Event(e models.CalendarEvent) error {
	var c checker
	c.check(strings.TrimSpace(e.Title) != "", "title", "is required")
	c.check(!e.Start.IsZero(), "start", "is required")
	c.check(!e.End.Before(e.Start), "end", "must not be before start")
	if e.Type != "" {
		_, known := models.EventColors[e.Type]
		c.check(known, "type", "unknown event type %q", e.Type)
	}
	return c.err()
}

func Class(cs models.ClassSchedule) error {
	var c checker
	c.check(strings.TrimSpace(cs.Name) != "", "name", "is required")
	c.check(len(cs.Days) > 0, "days", "at least one day is required")
	c.timeOfDay(cs.StartTime, "start_time", true)
	c.timeOfDay(cs.EndTime, "end_time", true)
	if utils.ValidateTimeFormat(cs.StartTime) && utils.ValidateTimeFormat(cs.EndTime) {
		start, _ := utils.ParseTimeToMinutes(cs.StartTime)
		end, _ := utils.ParseTimeToMinutes(cs.EndTime)
		c.check(end > start, "end_time", "must be after start_time")
	}
	return c.err()
}

func Profile(p models.UserProfile) error {
	var c checker
	c.check(strings.TrimSpace(p.Name) != "", "name", "is required")
	c.timeOfDay(p.PreferredBedtime, "preferred_bedtime", false)
	c.timeOfDay(p.PreferredWakeTime, "preferred_wake_time", false)
	c.optionalBetween(p.EnergyPattern.MorningEnergy, 1, 5, "energy_pattern.morning_energy")
	c.optionalBetween(p.EnergyPattern.AfternoonEnergy, 1, 5, "energy_pattern.afternoon_energy")
	c.optionalBetween(p.EnergyPattern.EveningEnergy, 1, 5, "energy_pattern.evening_energy")
	for i, cls := range p.Classes {
		if err := Class(cls); err != nil {
			for _, e := range err.(Errors) {
				c.errs = append(c.errs, Error{Field: fmt.Sprintf("classes[%d].%s", i, e.Field), Message: e.Message})
			}
		}
	}
	return c.err()
}
