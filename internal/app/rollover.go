package app

import (
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/utils"
)

// CloseDay feeds "were all active habits completed on date" into the
// overall streak. A day is only counted once; later calls return false.
func (a *App) CloseDay(date string) (bool, error) {
	done := a.Habits.AllActiveCompleted(date)
	applied, err := a.Gamification.RecordDay(date, done)
	if applied {
		logger.Info("day closed", "date", date, "all_habits_completed", done)
	}
	return applied, err
}

// Rollover runs the once-a-day bookkeeping: close yesterday and, once the
// weekly challenge has expired, reset weekly points, draw a new challenge
// and roll the class event window forward.
func (a *App) Rollover() error {
	yesterday := utils.FormatDate(a.clock.Now().AddDate(0, 0, -1))
	if _, err := a.CloseDay(yesterday); err != nil {
		return err
	}

	if !a.Gamification.ChallengeExpired() {
		return nil
	}
	if err := a.Gamification.ResetWeeklyPoints(); err != nil {
		return err
	}
	c, err := a.Gamification.GenerateWeeklyChallenge()
	if err != nil {
		return err
	}
	logger.Info("new weekly challenge", "id", c.ID, "expires", c.ExpiresAt)

	if len(a.Profile.Classes()) > 0 {
		if _, err := a.SyncClasses(); err != nil {
			return err
		}
	}
	return nil
}
