package models

import "time"

type YearInSchool string

const (
	YearFreshman  YearInSchool = "freshman"
	YearSophomore YearInSchool = "sophomore"
	YearJunior    YearInSchool = "junior"
	YearSenior    YearInSchool = "senior"
	YearGraduate  YearInSchool = "graduate"
)

type PeakTime string

const (
	PeakEarlyMorning PeakTime = "early-morning"
	PeakMorning      PeakTime = "morning"
	PeakAfternoon    PeakTime = "afternoon"
	PeakEvening      PeakTime = "evening"
	PeakNight        PeakTime = "night"
)

type GoalCategory string

const (
	GoalAcademic GoalCategory = "academic"
	GoalHealth   GoalCategory = "health"
	GoalSocial   GoalCategory = "social"
	GoalCareer   GoalCategory = "career"
	GoalPersonal GoalCategory = "personal"
)

type ClassSchedule struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Code       string         `json:"code,omitempty"`
	Location   string         `json:"location,omitempty"`
	Instructor string         `json:"instructor,omitempty"`
	Days       []time.Weekday `json:"days"`
	StartTime  string         `json:"start_time"` // HH:MM format
	EndTime    string         `json:"end_time"`   // HH:MM format
	Color      string         `json:"color"`
}

type UserGoal struct {
	ID        string       `json:"id"`
	Category  GoalCategory `json:"category"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
}

type EnergyPattern struct {
	MorningEnergy        int      `json:"morning_energy"`   // 1-5
	AfternoonEnergy      int      `json:"afternoon_energy"` // 1-5
	EveningEnergy        int      `json:"evening_energy"`   // 1-5
	PeakProductivityTime PeakTime `json:"peak_productivity_time"`
}

type UserProfile struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Major               string          `json:"major"`
	YearInSchool        YearInSchool    `json:"year_in_school"`
	PreferredBedtime    string          `json:"preferred_bedtime"`   // HH:MM format
	PreferredWakeTime   string          `json:"preferred_wake_time"` // HH:MM format
	Classes             []ClassSchedule `json:"classes"`
	Goals               []UserGoal      `json:"goals"`
	EnergyPattern       EnergyPattern   `json:"energy_pattern"`
	CurrentChallenges   []string        `json:"current_challenges"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ChallengeOptions is the vocabulary of current-challenge tags offered during onboarding.
var ChallengeOptions = []string{
	"procrastination",
	"sleep",
	"stress",
	"focus",
	"motivation",
	"time-management",
	"anxiety",
	"exercise",
	"eating",
	"social",
	"work-life",
	"screen-time",
}
