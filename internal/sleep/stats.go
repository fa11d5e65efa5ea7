package sleep

import (
	"math"

	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

// trendThreshold is the swing in average minutes between the two halves of
// the week needed to call a trend.
const trendThreshold = 15.0

// SleepStats summarizes the trailing week. Debt only accumulates shortfall;
// nights above target never pay it back.
func (s *Store) SleepStats() models.SleepStats {
	entries := s.WeekEntries()
	target := int(math.Round(s.state.TargetSleepHours * 60))
	stats := models.SleepStats{
		TargetSleepMinutes: target,
		WeeklyTrend:        models.TrendStable,
	}
	if len(entries) == 0 {
		return stats
	}

	totalMinutes, totalQuality, debt := 0, 0, 0
	for _, e := range entries {
		totalMinutes += e.TotalSleepMinutes
		totalQuality += e.QualityRating
		if short := target - e.TotalSleepMinutes; short > 0 {
			debt += short
		}
	}
	n := float64(len(entries))
	stats.AverageSleepDuration = int(math.Round(float64(totalMinutes) / n))
	stats.AverageQuality = utils.Round1(float64(totalQuality) / n)
	stats.SleepDebt = debt
	stats.WeeklyTrend = trend(entries)
	return stats
}

// SleepDebt is the shortfall component of SleepStats.
func (s *Store) SleepDebt() int {
	return s.SleepStats().SleepDebt
}

// trend compares the mean duration of the first half of the date-ordered
// entries with the second half. Fewer than four entries is always stable.
func trend(entries []models.SleepEntry) models.SleepTrend {
	if len(entries) < 4 {
		return models.TrendStable
	}
	mid := len(entries) / 2
	first, second := meanMinutes(entries[:mid]), meanMinutes(entries[mid:])
	switch {
	case second > first+trendThreshold:
		return models.TrendImproving
	case second < first-trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func meanMinutes(entries []models.SleepEntry) float64 {
	sum := 0
	for _, e := range entries {
		sum += e.TotalSleepMinutes
	}
	return float64(sum) / float64(len(entries))
}
