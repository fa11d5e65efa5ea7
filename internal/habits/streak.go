package habits

import (
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

// HabitStreak derives the streak record from the full log history. Nothing
// is cached, so every mutation path sees the same answer.
func (s *Store) HabitStreak(habitID string) models.HabitStreak {
	dates := s.completedDates(habitID)
	streak := models.HabitStreak{
		HabitID:       habitID,
		CurrentStreak: utils.ConsecutiveDayStreak(dates, utils.Today(s.clock)),
		LongestStreak: utils.LongestRun(dates),
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	for _, d := range dates {
		if d > streak.LastCompletedDate {
			streak.LastCompletedDate = d
		}
	}
	return streak
}

// CurrentStreak is the run of completed days ending today or yesterday.
func (s *Store) CurrentStreak(habitID string) int {
	return utils.ConsecutiveDayStreak(s.completedDates(habitID), utils.Today(s.clock))
}

// BestCurrentStreak is the largest current streak across active habits.
func (s *Store) BestCurrentStreak() int {
	best := 0
	for _, h := range s.ActiveHabits() {
		if n := s.CurrentStreak(h.ID); n > best {
			best = n
		}
	}
	return best
}

func (s *Store) completedDates(habitID string) []string {
	var dates []string
	for _, l := range s.state.Logs {
		if l.HabitID == habitID && l.Completed {
			dates = append(dates, l.Date)
		}
	}
	return dates
}
