package models

import "time"

type SleepFactors struct {
	Caffeine bool `json:"caffeine,omitempty"`
	Exercise bool `json:"exercise,omitempty"`
	Screens  bool `json:"screens,omitempty"`
	Stress   bool `json:"stress,omitempty"`
	Alcohol  bool `json:"alcohol,omitempty"`
}

type SleepEntry struct {
	ID                string        `json:"id"`
	Date              string        `json:"date"` // YYYY-MM-DD format, unique
	BedTime           time.Time     `json:"bed_time"`
	WakeTime          time.Time     `json:"wake_time"`
	TotalSleepMinutes int           `json:"total_sleep_minutes"`
	QualityRating     int           `json:"quality_rating"` // 1-5
	Factors           *SleepFactors `json:"factors,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

type SleepTrend string

const (
	TrendImproving SleepTrend = "improving"
	TrendDeclining SleepTrend = "declining"
	TrendStable    SleepTrend = "stable"
)

type SleepStats struct {
	AverageSleepDuration int        `json:"average_sleep_duration"` // minutes
	AverageQuality       float64    `json:"average_quality"`
	SleepDebt            int        `json:"sleep_debt"` // minutes
	TargetSleepMinutes   int        `json:"target_sleep_minutes"`
	WeeklyTrend          SleepTrend `json:"weekly_trend"`
}

// SleepQualityLabels names each quality rating.
var SleepQualityLabels = map[int]string{
	1: "Very Poor",
	2: "Poor",
	3: "Fair",
	4: "Good",
	5: "Excellent",
}
