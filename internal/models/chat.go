package models

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

type EnergyState string

const (
	EnergyTired     EnergyState = "tired"
	EnergyNormal    EnergyState = "normal"
	EnergyEnergized EnergyState = "energized"
)

type SuggestionType string

const (
	SuggestReschedule SuggestionType = "reschedule"
	SuggestAdd        SuggestionType = "add"
	SuggestRemove     SuggestionType = "remove"
	SuggestOptimize   SuggestionType = "optimize"
)

type ScheduleSuggestion struct {
	Type      SuggestionType  `json:"type"`
	Events    []CalendarEvent `json:"events"`
	Reasoning string          `json:"reasoning"`
	Accepted  *bool           `json:"accepted,omitempty"`
}

type ChatMessage struct {
	ID         string              `json:"id"`
	Role       MessageRole         `json:"role"`
	Content    string              `json:"content"`
	Suggestion *ScheduleSuggestion `json:"suggestion,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type ChatContext struct {
	CurrentEnergyLevel EnergyState `json:"current_energy_level,omitempty"`
	CurrentMood        int         `json:"current_mood,omitempty"`
	TodayDate          string      `json:"today_date"`
}

type ChatSession struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	Context   ChatContext   `json:"context"`
	CreatedAt time.Time     `json:"created_at"`
}
