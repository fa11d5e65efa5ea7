package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

// ClassTitle is "CODE: Name", or just the name when there is no code.
func ClassTitle(c models.ClassSchedule) string {
	if c.Code == "" {
		return c.Name
	}
	return c.Code + ": " + c.Name
}

// SyncClassesFromSchedule drops every class-backed event and regenerates
// instances for weeksAhead weeks starting with the current Sunday. Instances
// already in the past are not created. weeksAhead <= 0 uses the default.
func (s *Store) SyncClassesFromSchedule(classes []models.ClassSchedule, weeksAhead int) (int, error) {
	if weeksAhead <= 0 {
		weeksAhead = constants.DefaultWeeksAhead
	}
	s.removeClassEvents()

	now := s.clock.Now()
	weekStart := utils.StartOfWeek(now)
	created := 0
	for week := 0; week < weeksAhead; week++ {
		for _, c := range classes {
			for _, day := range c.Days {
				date := weekStart.AddDate(0, 0, week*7+int(day))
				start, err := utils.AtTimeOfDay(date, c.StartTime)
				if err != nil {
					logger.Warn("skipping class with bad start time", "class", c.ID, "error", err)
					continue
				}
				end, err := utils.AtTimeOfDay(date, c.EndTime)
				if err != nil {
					logger.Warn("skipping class with bad end time", "class", c.ID, "error", err)
					continue
				}
				if start.Before(now) {
					continue
				}
				s.state.Events = append(s.state.Events, classEvent(c, start, end, now))
				created++
			}
		}
	}
	s.state.ClassEventsGenerated = true
	return created, s.persist("sync-classes", "")
}

// ClearClassEvents removes every event generated from a class.
func (s *Store) ClearClassEvents() error {
	s.removeClassEvents()
	s.state.ClassEventsGenerated = false
	return s.persist("clear-classes", "")
}

func (s *Store) removeClassEvents() {
	out := s.state.Events[:0]
	for _, e := range s.state.Events {
		if e.ClassID == "" {
			out = append(out, e)
		}
	}
	s.state.Events = out
}

func classEvent(c models.ClassSchedule, start, end, now time.Time) models.CalendarEvent {
	e := models.CalendarEvent{
		ID:        uuid.NewString(),
		Title:     ClassTitle(c),
		Start:     start,
		End:       end,
		Type:      models.EventClass,
		Color:     c.Color,
		Recurring: true,
		ClassID:   c.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Location != "" {
		e.Description = "Location: " + c.Location
	}
	if e.Color == "" {
		e.Color = models.EventColors[models.EventClass]
	}
	return e
}
