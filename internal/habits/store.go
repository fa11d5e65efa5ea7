package habits

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/utils"
)

type state struct {
	Habits []models.Habit    `json:"habits"`
	Logs   []models.HabitLog `json:"logs"`
}

// Store owns habits and their per-day logs. Every mutation rewrites the whole
// state under constants.KeyHabits. Unknown ids are ignored.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	state    state
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{provider: provider, clock: clock}
}

// Load replaces the in-memory state with what the provider holds.
func (s *Store) Load() error {
	s.state = state{}
	if _, err := s.provider.Get(constants.KeyHabits, &s.state); err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("habit store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeyHabits, s.state); err != nil {
		logger.Warn("failed to persist habits", "op", op, "error", err)
		return fmt.Errorf("failed to save habits: %w", err)
	}
	return nil
}

func (s *Store) habitIndex(id string) int {
	for i := range s.state.Habits {
		if s.state.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) logIndex(habitID, date string) int {
	for i := range s.state.Logs {
		if s.state.Logs[i].HabitID == habitID && s.state.Logs[i].Date == date {
			return i
		}
	}
	return -1
}

// AddHabit assigns the id, creation time and trailing order, then stores the habit.
func (s *Store) AddHabit(h models.Habit) (models.Habit, error) {
	h.ID = uuid.NewString()
	h.CreatedAt = s.clock.Now()
	h.Order = 0
	for _, existing := range s.state.Habits {
		h.Order = max(h.Order, existing.Order+1)
	}
	s.state.Habits = append(s.state.Habits, h)
	return h, s.persist("add", h.ID)
}

// UpdateHabit applies fn to the habit. The id, creation time and order are preserved.
func (s *Store) UpdateHabit(id string, fn func(*models.Habit)) error {
	i := s.habitIndex(id)
	if i < 0 {
		return nil
	}
	h := s.state.Habits[i]
	fn(&h)
	h.ID, h.CreatedAt, h.Order = s.state.Habits[i].ID, s.state.Habits[i].CreatedAt, s.state.Habits[i].Order
	s.state.Habits[i] = h
	return s.persist("update", id)
}

// DeleteHabit removes the habit and every log that references it.
func (s *Store) DeleteHabit(id string) error {
	i := s.habitIndex(id)
	if i < 0 {
		return nil
	}
	s.state.Habits = append(s.state.Habits[:i], s.state.Habits[i+1:]...)

	logs := s.state.Logs[:0]
	for _, l := range s.state.Logs {
		if l.HabitID != id {
			logs = append(logs, l)
		}
	}
	s.state.Logs = logs
	return s.persist("delete", id)
}

func (s *Store) ToggleHabitActive(id string) error {
	i := s.habitIndex(id)
	if i < 0 {
		return nil
	}
	s.state.Habits[i].Active = !s.state.Habits[i].Active
	return s.persist("toggle-active", id)
}

// ReorderHabits moves the habit at position from to position to and renumbers
// every habit's order to match its new position.
func (s *Store) ReorderHabits(from, to int) error {
	n := len(s.state.Habits)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return nil
	}
	sort.SliceStable(s.state.Habits, func(i, j int) bool {
		return s.state.Habits[i].Order < s.state.Habits[j].Order
	})
	moved := s.state.Habits[from]
	rest := append(append([]models.Habit{}, s.state.Habits[:from]...), s.state.Habits[from+1:]...)
	reordered := make([]models.Habit, 0, n)
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)
	for i := range reordered {
		reordered[i].Order = i
	}
	s.state.Habits = reordered
	return s.persist("reorder", moved.ID)
}

// ToggleHabitCompletion flips the day's completion, creating a completed log
// when none exists yet. A habit with a target is filled to it or emptied so
// the log's count always agrees with its completion.
func (s *Store) ToggleHabitCompletion(habitID, date string) (models.HabitLog, error) {
	hi := s.habitIndex(habitID)
	if hi < 0 {
		return models.HabitLog{}, nil
	}
	target := s.state.Habits[hi].TargetCount

	i := s.logIndex(habitID, date)
	if i < 0 {
		s.state.Logs = append(s.state.Logs, models.HabitLog{
			ID:      uuid.NewString(),
			HabitID: habitID,
			Date:    date,
		})
		i = len(s.state.Logs) - 1
	}

	log := &s.state.Logs[i]
	log.Completed = !log.Completed
	if target > 0 {
		if log.Completed {
			log.Count = max(log.Count, target)
		} else {
			log.Count = 0
		}
	}
	s.stampCompletion(log)
	return *log, s.persist("toggle", habitID)
}

// IncrementHabitCount adds one step toward the habit's target.
func (s *Store) IncrementHabitCount(habitID, date string) (models.HabitLog, error) {
	hi := s.habitIndex(habitID)
	if hi < 0 {
		return models.HabitLog{}, nil
	}
	target := s.state.Habits[hi].TargetCount

	i := s.logIndex(habitID, date)
	if i < 0 {
		log := models.HabitLog{
			ID:        uuid.NewString(),
			HabitID:   habitID,
			Date:      date,
			Count:     1,
			Completed: target <= 0 || 1 >= target,
		}
		s.stampCompletion(&log)
		s.state.Logs = append(s.state.Logs, log)
		return log, s.persist("increment", habitID)
	}

	log := &s.state.Logs[i]
	log.Count++
	log.Completed = target <= 0 || log.Count >= target
	s.stampCompletion(log)
	return *log, s.persist("increment", habitID)
}

// DecrementHabitCount removes one step; a zero count is left alone.
func (s *Store) DecrementHabitCount(habitID, date string) (models.HabitLog, error) {
	hi := s.habitIndex(habitID)
	if hi < 0 {
		return models.HabitLog{}, nil
	}
	i := s.logIndex(habitID, date)
	if i < 0 {
		return models.HabitLog{}, nil
	}

	log := &s.state.Logs[i]
	if log.Count <= 0 {
		return *log, nil
	}
	target := s.state.Habits[hi].TargetCount
	log.Count--
	if target > 0 {
		log.Completed = log.Count >= target
	} else {
		log.Completed = log.Count > 0
	}
	s.stampCompletion(log)
	return *log, s.persist("decrement", habitID)
}

// stampCompletion keeps CompletedAt in step with Completed.
func (s *Store) stampCompletion(log *models.HabitLog) {
	switch {
	case log.Completed && log.CompletedAt == nil:
		now := s.clock.Now()
		log.CompletedAt = &now
	case !log.Completed:
		log.CompletedAt = nil
	}
}

func (s *Store) Habits() []models.Habit {
	return append([]models.Habit(nil), s.state.Habits...)
}

func (s *Store) Habit(id string) (models.Habit, bool) {
	if i := s.habitIndex(id); i >= 0 {
		return s.state.Habits[i], true
	}
	return models.Habit{}, false
}

// HabitByName matches names exactly, as the prebuilt catalog does.
func (s *Store) HabitByName(name string) (models.Habit, bool) {
	for _, h := range s.state.Habits {
		if h.Name == name {
			return h, true
		}
	}
	return models.Habit{}, false
}

// ActiveHabits returns active habits sorted by their order.
func (s *Store) ActiveHabits() []models.Habit {
	var active []models.Habit
	for _, h := range s.state.Habits {
		if h.Active {
			active = append(active, h)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Order < active[j].Order })
	return active
}

func (s *Store) InactiveHabits() []models.Habit {
	var inactive []models.Habit
	for _, h := range s.state.Habits {
		if !h.Active {
			inactive = append(inactive, h)
		}
	}
	return inactive
}

func (s *Store) Logs() []models.HabitLog {
	return append([]models.HabitLog(nil), s.state.Logs...)
}

func (s *Store) LogsForDate(date string) []models.HabitLog {
	var out []models.HabitLog
	for _, l := range s.state.Logs {
		if l.Date == date {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) TodayLogs() []models.HabitLog {
	return s.LogsForDate(utils.Today(s.clock))
}

// LogFor returns the single log for (habitID, date) if one exists.
func (s *Store) LogFor(habitID, date string) (models.HabitLog, bool) {
	if i := s.logIndex(habitID, date); i >= 0 {
		return s.state.Logs[i], true
	}
	return models.HabitLog{}, false
}

func (s *Store) IsCompletedOn(habitID, date string) bool {
	l, ok := s.LogFor(habitID, date)
	return ok && l.Completed
}

func (s *Store) IsHabitCompletedToday(habitID string) bool {
	return s.IsCompletedOn(habitID, utils.Today(s.clock))
}

// CompletedCount counts completed logs across all habits.
func (s *Store) CompletedCount() int {
	n := 0
	for _, l := range s.state.Logs {
		if l.Completed {
			n++
		}
	}
	return n
}

// AllActiveCompleted reports whether every active habit that is due on date
// has been satisfied. Weekly habits are satisfied by any completion from the
// start of that week through date. It is false when nothing is due.
func (s *Store) AllActiveCompleted(date string) bool {
	day, err := utils.ParseDate(date)
	if err != nil {
		return false
	}

	due := 0
	for _, h := range s.ActiveHabits() {
		switch h.Frequency {
		case models.FrequencySpecificDays:
			if len(h.TargetDays) > 0 && !containsWeekday(h.TargetDays, day.Weekday()) {
				continue
			}
			due++
			if !s.IsCompletedOn(h.ID, date) {
				return false
			}
		case models.FrequencyWeekly:
			due++
			if !s.completedInWeekThrough(h.ID, day) {
				return false
			}
		default:
			due++
			if !s.IsCompletedOn(h.ID, date) {
				return false
			}
		}
	}
	return due > 0
}

func (s *Store) completedInWeekThrough(habitID string, day time.Time) bool {
	for d := utils.StartOfWeek(day); !d.After(day); d = d.AddDate(0, 0, 1) {
		if s.IsCompletedOn(habitID, utils.FormatDate(d)) {
			return true
		}
	}
	return false
}

func containsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
