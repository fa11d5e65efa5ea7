package events

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
	Events               []models.CalendarEvent `json:"events"`
	ClassEventsGenerated bool                   `json:"class_events_generated"`
}

// Store holds calendar events. Skipped events stay in the collection for
// history but are left out of the today and upcoming views.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	state    state
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{provider: provider, clock: clock}
}

// Load decodes the stored events. Start and end are RFC 3339 instants and
// come back as time.Time without any extra pass.
func (s *Store) Load() error {
	s.state = state{}
	if _, err := s.provider.Get(constants.KeyEvents, &s.state); err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("event store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeyEvents, s.state); err != nil {
		logger.Warn("failed to persist events", "op", op, "error", err)
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

// AddEvent assigns an id and timestamps and clears the completed and
// skipped flags. An empty color falls back to the type's color.
func (s *Store) AddEvent(e models.CalendarEvent) (models.CalendarEvent, error) {
	now := s.clock.Now()
	e.ID = uuid.NewString()
	e.Completed = false
	e.Skipped = false
	if e.Color == "" {
		e.Color = models.EventColors[e.Type]
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	s.state.Events = append(s.state.Events, e)
	return e, s.persist("add", e.ID)
}

func (s *Store) UpdateEvent(id string, fn func(*models.CalendarEvent)) error {
	return s.mutate("update", id, func(e *models.CalendarEvent) {
		orig := *e
		fn(e)
		e.ID, e.CreatedAt = orig.ID, orig.CreatedAt
	})
}

func (s *Store) DeleteEvent(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.state.Events = append(s.state.Events[:i], s.state.Events[i+1:]...)
	return s.persist("delete", id)
}

func (s *Store) ToggleEventComplete(id string) error {
	return s.mutate("toggle-complete", id, func(e *models.CalendarEvent) {
		e.Completed = !e.Completed
	})
}

func (s *Store) SkipEvent(id string) error {
	return s.mutate("skip", id, func(e *models.CalendarEvent) {
		e.Skipped = true
	})
}

// RescheduleEvent leaves the original's times alone: it marks the original
// skipped and appends a copy at the new times pointing back to it.
func (s *Store) RescheduleEvent(id string, start, end time.Time) (models.CalendarEvent, error) {
	i := s.index(id)
	if i < 0 {
		return models.CalendarEvent{}, nil
	}
	now := s.clock.Now()
	clone := s.state.Events[i]
	clone.ID = uuid.NewString()
	clone.Start = start
	clone.End = end
	clone.Skipped = false
	clone.RescheduledFrom = id
	clone.CreatedAt = now
	clone.UpdatedAt = now

	s.state.Events[i].Skipped = true
	s.state.Events[i].UpdatedAt = now
	s.state.Events = append(s.state.Events, clone)
	return clone, s.persist("reschedule", id)
}

func (s *Store) mutate(op, id string, fn func(*models.CalendarEvent)) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	fn(&s.state.Events[i])
	s.state.Events[i].UpdatedAt = s.clock.Now()
	return s.persist(op, id)
}

func (s *Store) index(id string) int {
	for i := range s.state.Events {
		if s.state.Events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Events() []models.CalendarEvent {
	return append([]models.CalendarEvent(nil), s.state.Events...)
}

func (s *Store) Event(id string) (models.CalendarEvent, bool) {
	if i := s.index(id); i >= 0 {
		return s.state.Events[i], true
	}
	return models.CalendarEvent{}, false
}

func (s *Store) ClassEventsGenerated() bool {
	return s.state.ClassEventsGenerated
}

// overlaps reports whether e starts in, ends in, or spans [from, to].
func overlaps(e models.CalendarEvent, from, to time.Time) bool {
	within := func(t time.Time) bool { return !t.Before(from) && !t.After(to) }
	return within(e.Start) || within(e.End) || (!e.Start.After(from) && !e.End.Before(to))
}

func (s *Store) between(from, to time.Time) []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, e := range s.state.Events {
		if overlaps(e, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// EventsForDate returns every event touching day's calendar day, skipped ones included.
func (s *Store) EventsForDate(day time.Time) []models.CalendarEvent {
	start := utils.StartOfDay(day)
	return s.between(start, start.AddDate(0, 0, 1).Add(-time.Nanosecond))
}

// EventsForWeek returns every event touching the Sunday-to-Saturday week of day.
func (s *Store) EventsForWeek(day time.Time) []models.CalendarEvent {
	start := utils.StartOfWeek(day)
	return s.between(start, start.AddDate(0, 0, 7).Add(-time.Nanosecond))
}

func (s *Store) TodayEvents() []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, e := range s.EventsForDate(s.clock.Now()) {
		if !e.Skipped {
			out = append(out, e)
		}
	}
	sortByStart(out)
	return out
}

// UpcomingEvents returns the soonest events starting now or later that are
// neither skipped nor completed. A limit <= 0 uses the default of five.
func (s *Store) UpcomingEvents(limit int) []models.CalendarEvent {
	if limit <= 0 {
		limit = constants.DefaultUpcomingLimit
	}
	now := s.clock.Now()
	var out []models.CalendarEvent
	for _, e := range s.state.Events {
		if !e.Start.Before(now) && !e.Skipped && !e.Completed {
			out = append(out, e)
		}
	}
	sortByStart(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortByStart(events []models.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
}
