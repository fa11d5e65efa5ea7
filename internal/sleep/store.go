package sleep

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/utils"
)

type state struct {
	Entries          []models.SleepEntry `json:"entries"`
	TargetSleepHours float64             `json:"target_sleep_hours"`
}

// Store keeps at most one sleep entry per date plus the nightly target.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	state    state
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{
		provider: provider,
		clock:    clock,
		state:    state{TargetSleepHours: constants.DefaultTargetSleepHours},
	}
}

func (s *Store) Load() error {
	s.state = state{TargetSleepHours: constants.DefaultTargetSleepHours}
	if _, err := s.provider.Get(constants.KeySleepEntries, &s.state); err != nil {
		return fmt.Errorf("failed to load sleep entries: %w", err)
	}
	if s.state.TargetSleepHours <= 0 {
		s.state.TargetSleepHours = constants.DefaultTargetSleepHours
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("sleep store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeySleepEntries, s.state); err != nil {
		logger.Warn("failed to persist sleep entries", "op", op, "error", err)
		return fmt.Errorf("failed to save sleep entries: %w", err)
	}
	return nil
}

// sleepMinutes is a straight difference; callers roll the wake time past
// midnight before handing it over (see ResolveSleepTimes).
func sleepMinutes(e models.SleepEntry) int {
	return int(e.WakeTime.Sub(e.BedTime).Minutes())
}

// AddEntry derives the duration and replaces any entry already on e.Date.
// The bool reports whether the date had no entry before.
func (s *Store) AddEntry(e models.SleepEntry) (models.SleepEntry, bool, error) {
	if e.Date == "" {
		e.Date = utils.Today(s.clock)
	}
	e.ID = uuid.NewString()
	e.TotalSleepMinutes = sleepMinutes(e)
	e.CreatedAt = s.clock.Now()

	before := len(s.state.Entries)
	s.removeDate(e.Date, "")
	isNew := len(s.state.Entries) == before

	s.state.Entries = append(s.state.Entries, e)
	return e, isNew, s.persist("add", e.ID)
}

// UpdateEntry applies fn and recomputes the duration.
func (s *Store) UpdateEntry(id string, fn func(*models.SleepEntry)) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	e := s.state.Entries[i]
	fn(&e)
	e.ID, e.CreatedAt = s.state.Entries[i].ID, s.state.Entries[i].CreatedAt
	e.TotalSleepMinutes = sleepMinutes(e)
	s.state.Entries[i] = e
	s.removeDate(e.Date, e.ID)
	return s.persist("update", id)
}

func (s *Store) DeleteEntry(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.state.Entries = append(s.state.Entries[:i], s.state.Entries[i+1:]...)
	return s.persist("delete", id)
}

func (s *Store) SetTargetSleepHours(hours float64) error {
	s.state.TargetSleepHours = hours
	return s.persist("set-target", "")
}

func (s *Store) TargetSleepHours() float64 {
	return s.state.TargetSleepHours
}

func (s *Store) index(id string) int {
	for i := range s.state.Entries {
		if s.state.Entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeDate(date, keep string) {
	out := s.state.Entries[:0]
	for _, e := range s.state.Entries {
		if e.Date != date || e.ID == keep {
			out = append(out, e)
		}
	}
	s.state.Entries = out
}

func (s *Store) Entries() []models.SleepEntry {
	return append([]models.SleepEntry(nil), s.state.Entries...)
}

// LastEntry returns the entry with the latest date.
func (s *Store) LastEntry() (models.SleepEntry, bool) {
	var last models.SleepEntry
	found := false
	for _, e := range s.state.Entries {
		if !found || e.Date > last.Date {
			last, found = e, true
		}
	}
	return last, found
}

func (s *Store) EntryForDate(date string) (models.SleepEntry, bool) {
	for _, e := range s.state.Entries {
		if e.Date == date {
			return e, true
		}
	}
	return models.SleepEntry{}, false
}

// EntriesForDateRange returns entries with start <= date <= end, oldest first.
func (s *Store) EntriesForDateRange(start, end string) []models.SleepEntry {
	var out []models.SleepEntry
	for _, e := range s.state.Entries {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// WeekEntries covers today and the seven days before it.
func (s *Store) WeekEntries() []models.SleepEntry {
	now := s.clock.Now()
	return s.EntriesForDateRange(utils.FormatDate(now.AddDate(0, 0, -7)), utils.FormatDate(now))
}

// SleepStreak counts consecutive logged nights ending today or yesterday.
func (s *Store) SleepStreak() int {
	dates := make([]string, 0, len(s.state.Entries))
	for _, e := range s.state.Entries {
		dates = append(dates, e.Date)
	}
	return utils.ConsecutiveDayStreak(dates, utils.Today(s.clock))
}
