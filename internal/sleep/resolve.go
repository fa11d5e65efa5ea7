package sleep

import (
	"time"

	"github.com/julianstephens/ripple/internal/utils"
)

// ResolveSleepTimes turns a night's date and two HH:MM times into instants.
// Bed time falls on date; a wake time at or before bed time is moved to the
// next calendar day so the duration is always positive.
func ResolveSleepTimes(date, bedTime, wakeTime string, loc *time.Location) (time.Time, time.Time, error) {
	bed, err := utils.CombineDateAndTime(date, bedTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	wake, err := utils.CombineDateAndTime(date, wakeTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !wake.After(bed) {
		wake = wake.AddDate(0, 0, 1)
	}
	return bed, wake, nil
}
