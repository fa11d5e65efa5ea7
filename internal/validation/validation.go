package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictOverlappingClasses ConflictType = "overlapping_classes"
	ConflictOverlappingEvents  ConflictType = "overlapping_events"
	ConflictInvalidTime        ConflictType = "invalid_time"
)

// Conflict represents a problem spanning more than one record
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Names involved
	TimeRange   string   // Human-readable time range (if applicable)
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks collections of records for conflicts between them
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateHabits reports active habits sharing a name, case-insensitively.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byName := make(map[string][]models.Habit)
	var order []string
	for _, h := range habits {
		if !h.Active || h.Name == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(h.Name))
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], h)
	}
	for _, key := range order {
		group := byName[key]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		for i, h := range group {
			ids[i] = h.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitName,
			Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", group[0].Name, ids),
			Items:       []string{group[0].Name},
			IDs:         ids,
		})
	}
	return result
}

type classSlot struct {
	class      models.ClassSchedule
	start, end int
}

// ValidateClasses reports classes with unparseable times and classes that
// meet at overlapping times on a shared weekday.
func (v *Validator) ValidateClasses(classes []models.ClassSchedule) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDay := make(map[time.Weekday][]classSlot)
	for _, c := range classes {
		start, errStart := utils.ParseTimeToMinutes(c.StartTime)
		end, errEnd := utils.ParseTimeToMinutes(c.EndTime)
		if errStart != nil || errEnd != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Class %q has an invalid time range: %s-%s", c.Name, c.StartTime, c.EndTime),
				Items:       []string{c.Name},
				IDs:         []string{c.ID},
			})
			continue
		}
		for _, d := range c.Days {
			byDay[d] = append(byDay[d], classSlot{class: c, start: start, end: end})
		}
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		slots := byDay[day]
		sort.Slice(slots, func(i, j int) bool { return slots[i].start < slots[j].start })
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots) && slots[j].start < slots[i].end; j++ {
				a, b := slots[i].class, slots[j].class
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingClasses,
					Description: fmt.Sprintf("Classes %q and %q overlap on %s (%s-%s vs %s-%s)",
						a.Name, b.Name, day, a.StartTime, a.EndTime, b.StartTime, b.EndTime),
					Items:     []string{a.Name, b.Name},
					TimeRange: fmt.Sprintf("%s-%s", b.StartTime, a.EndTime),
					IDs:       []string{a.ID, b.ID},
				})
			}
		}
	}
	return result
}

// ValidateEvents reports pairs of timed, unskipped events that overlap.
// All-day events never conflict.
func (v *Validator) ValidateEvents(events []models.CalendarEvent) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var timed []models.CalendarEvent
	for _, e := range events {
		if e.AllDay || e.Skipped {
			continue
		}
		timed = append(timed, e)
	}
	sort.Slice(timed, func(i, j int) bool { return timed[i].Start.Before(timed[j].Start) })

	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed) && timed[j].Start.Before(timed[i].End); j++ {
			a, b := timed[i], timed[j]
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingEvents,
				Description: fmt.Sprintf("Events %q and %q overlap on %s at %s",
					a.Title, b.Title, utils.FormatDate(b.Start), b.Start.Format(constants.DisplayTimeFormat)),
				Date:      utils.FormatDate(b.Start),
				Items:     []string{a.Title, b.Title},
				TimeRange: fmt.Sprintf("%s-%s", b.Start.Format(constants.TimeFormat), minTime(a.End, b.End).Format(constants.TimeFormat)),
				IDs:       []string{a.ID, b.ID},
			})
		}
	}
	return result
}

// ValidateAll runs every collection check.
func (v *Validator) ValidateAll(habits []models.Habit, classes []models.ClassSchedule, events []models.CalendarEvent) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.merge(v.ValidateHabits(habits))
	result.merge(v.ValidateClasses(classes))
	result.merge(v.ValidateEvents(events))
	return result
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
