package mood

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

// Store keeps at most one mood entry per calendar day.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	entries  []models.MoodEntry
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{provider: provider, clock: clock}
}

func (s *Store) Load() error {
	s.entries = nil
	if _, err := s.provider.Get(constants.KeyMoodEntries, &s.entries); err != nil {
		return fmt.Errorf("failed to load mood entries: %w", err)
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("mood store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeyMoodEntries, s.entries); err != nil {
		logger.Warn("failed to persist mood entries", "op", op, "error", err)
		return fmt.Errorf("failed to save mood entries: %w", err)
	}
	return nil
}

// AddEntry upserts by date: any entry already recorded for e.Date is
// replaced. An empty date means today. The bool reports whether the day had
// no entry before.
func (s *Store) AddEntry(e models.MoodEntry) (models.MoodEntry, bool, error) {
	now := s.clock.Now()
	if e.Date == "" {
		e.Date = utils.FormatDate(now)
	}
	e.ID = uuid.NewString()
	e.MoodEmoji = models.EmojiForScore(e.MoodScore)
	e.CreatedAt = now
	e.UpdatedAt = now

	before := len(s.entries)
	s.removeDate(e.Date, "")
	isNew := len(s.entries) == before

	s.entries = append(s.entries, e)
	return e, isNew, s.persist("add", e.ID)
}

// UpdateEntry applies fn and recomputes the emoji from the resulting score.
func (s *Store) UpdateEntry(id string, fn func(*models.MoodEntry)) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	e := s.entries[i]
	fn(&e)
	e.ID, e.CreatedAt = s.entries[i].ID, s.entries[i].CreatedAt
	e.MoodEmoji = models.EmojiForScore(e.MoodScore)
	e.UpdatedAt = s.clock.Now()
	s.entries[i] = e

	// Moving an entry onto another day displaces that day's entry
	s.removeDate(e.Date, e.ID)
	return s.persist("update", id)
}

func (s *Store) DeleteEntry(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return s.persist("delete", id)
}

func (s *Store) index(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// removeDate drops entries on date, except the one with id keep.
func (s *Store) removeDate(date, keep string) {
	out := s.entries[:0]
	for _, e := range s.entries {
		if e.Date != date || e.ID == keep {
			out = append(out, e)
		}
	}
	s.entries = out
}

func (s *Store) Entries() []models.MoodEntry {
	return append([]models.MoodEntry(nil), s.entries...)
}

func (s *Store) EntryForDate(date string) (models.MoodEntry, bool) {
	for _, e := range s.entries {
		if e.Date == date {
			return e, true
		}
	}
	return models.MoodEntry{}, false
}

func (s *Store) TodayEntry() (models.MoodEntry, bool) {
	return s.EntryForDate(utils.Today(s.clock))
}

// EntriesForDateRange returns entries with start <= date <= end, oldest first.
func (s *Store) EntriesForDateRange(start, end string) []models.MoodEntry {
	var out []models.MoodEntry
	for _, e := range s.entries {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// WeekEntries covers today and the seven days before it.
func (s *Store) WeekEntries() []models.MoodEntry {
	return s.lastDays(7)
}

func (s *Store) lastDays(days int) []models.MoodEntry {
	now := s.clock.Now()
	return s.EntriesForDateRange(utils.FormatDate(now.AddDate(0, 0, -days)), utils.FormatDate(now))
}

// AverageMood averages the scores present in the last `days` days, rounded
// to one decimal. Missing days are skipped, not counted as zero.
func (s *Store) AverageMood(days int) float64 {
	entries := s.lastDays(days)
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.MoodScore
	}
	return utils.Round1(float64(sum) / float64(len(entries)))
}

func (s *Store) AverageStress(days int) float64 {
	entries := s.lastDays(days)
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.StressLevel
	}
	return utils.Round1(float64(sum) / float64(len(entries)))
}

// MoodStreak counts consecutive logged days ending today or yesterday.
func (s *Store) MoodStreak() int {
	dates := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		dates = append(dates, e.Date)
	}
	return utils.ConsecutiveDayStreak(dates, utils.Today(s.clock))
}
