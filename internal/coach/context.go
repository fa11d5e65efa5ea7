package coach

import (
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
)

type ProfileReader interface {
	User() (models.UserProfile, bool)
}

type MoodReader interface {
	TodayEntry() (models.MoodEntry, bool)
}

type SleepReader interface {
	LastEntry() (models.SleepEntry, bool)
}

type EventReader interface {
	TodayEvents() []models.CalendarEvent
}

type MealReader interface {
	TodayMeals() []models.MealEntry
}

type EnergyReader interface {
	EnergyLevel() models.EnergyState
}

// Sources are the stores the context is read from. Nil readers contribute nothing.
type Sources struct {
	Profile ProfileReader
	Mood    MoodReader
	Sleep   SleepReader
	Events  EventReader
	Meals   MealReader
	Energy  EnergyReader
}

type EventSummary struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

// Context is the flat snapshot handed to the completion service with the transcript.
type Context struct {
	Name                 string              `json:"name,omitempty"`
	Major                string              `json:"major,omitempty"`
	YearInSchool         models.YearInSchool `json:"year_in_school,omitempty"`
	PeakProductivityTime models.PeakTime     `json:"peak_productivity_time,omitempty"`
	CurrentChallenges    []string            `json:"current_challenges,omitempty"`
	TodayMood            int                 `json:"today_mood,omitempty"`
	LastSleepHours       float64             `json:"last_sleep_hours,omitempty"`
	CurrentEnergy        models.EnergyState  `json:"current_energy"`
	TodayEvents          []EventSummary      `json:"today_events"`
	MealsLoggedToday     int                 `json:"meals_logged_today"`
	TodayDate            string              `json:"today_date"`
}

// BuildContext snapshots today's values across the stores. It only reads.
func BuildContext(src Sources, clock clockwork.Clock) Context {
	c := Context{
		CurrentEnergy: models.EnergyNormal,
		TodayEvents:   []EventSummary{},
		TodayDate:     utils.Today(clock),
	}

	if src.Profile != nil {
		if u, ok := src.Profile.User(); ok {
			c.Name = u.Name
			c.Major = u.Major
			c.YearInSchool = u.YearInSchool
			c.PeakProductivityTime = u.EnergyPattern.PeakProductivityTime
			c.CurrentChallenges = u.CurrentChallenges
		}
	}
	if src.Mood != nil {
		if e, ok := src.Mood.TodayEntry(); ok {
			c.TodayMood = e.MoodScore
		}
	}
	if src.Sleep != nil {
		if e, ok := src.Sleep.LastEntry(); ok {
			c.LastSleepHours = utils.Round1(float64(e.TotalSleepMinutes) / 60)
		}
	}
	if src.Energy != nil {
		if level := src.Energy.EnergyLevel(); level != "" {
			c.CurrentEnergy = level
		}
	}
	if src.Events != nil {
		for i, e := range src.Events.TodayEvents() {
			if i == constants.CoachContextEventLimit {
				break
			}
			c.TodayEvents = append(c.TodayEvents, EventSummary{
				Title: e.Title,
				Time:  e.Start.Format(constants.DisplayTimeFormat),
			})
		}
	}
	if src.Meals != nil {
		c.MealsLoggedToday = len(src.Meals.TodayMeals())
	}
	return c
}
