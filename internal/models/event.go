package models

import "time"

type EventType string

const (
	EventClass    EventType = "class"
	EventStudy    EventType = "study"
	EventHabit    EventType = "habit"
	EventPersonal EventType = "personal"
	EventSocial   EventType = "social"
	EventWork     EventType = "work"
)

// EventColors is the display color of each event type.
var EventColors = map[EventType]string{
	EventClass:    "#3b82f6",
	EventStudy:    "#22c55e",
	EventHabit:    "#a855f7",
	EventPersonal: "#f59e0b",
	EventSocial:   "#ec4899",
	EventWork:     "#6366f1",
}

type RecurrenceFrequency string

const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
)

type RecurrencePattern struct {
	Frequency  RecurrenceFrequency `json:"frequency"`
	DaysOfWeek []time.Weekday      `json:"days_of_week,omitempty"`
	EndDate    string              `json:"end_date,omitempty"`
}

type EnergyRequirement string

const (
	EnergyLow    EnergyRequirement = "low"
	EnergyMedium EnergyRequirement = "medium"
	EnergyHigh   EnergyRequirement = "high"
)

type CalendarEvent struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description,omitempty"`
	Start             time.Time          `json:"start"`
	End               time.Time          `json:"end"`
	AllDay            bool               `json:"all_day"`
	Type              EventType          `json:"type"`
	Color             string             `json:"color"`
	Recurring         bool               `json:"recurring"`
	RecurrencePattern *RecurrencePattern `json:"recurrence_pattern,omitempty"`
	SuggestedByAI     bool               `json:"suggested_by_ai"`
	EnergyLevel       EnergyRequirement  `json:"energy_level,omitempty"`
	Completed         bool               `json:"completed"`
	Skipped           bool               `json:"skipped"`
	RescheduledFrom   string             `json:"rescheduled_from,omitempty"`
	ClassID           string             `json:"class_id,omitempty"`
	HabitID           string             `json:"habit_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
