package nutrition

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/utils"
)

// weekDays is the fixed width of the stats window; averages divide by it
// whether or not every day has data.
const weekDays = 7

type state struct {
	Entries []models.MealEntry    `json:"entries"`
	Goals   models.NutritionGoals `json:"goals"`
}

// DefaultGoals are used until the user sets their own.
func DefaultGoals() models.NutritionGoals {
	return models.NutritionGoals{
		DailyWaterGlasses: 8,
		MealsPerDay:       3,
		PreferredMealTimes: models.PreferredMealTimes{
			Breakfast: "08:00",
			Lunch:     "12:30",
			Dinner:    "18:30",
		},
	}
}

// Store holds meal entries. Several meals of the same type may share a date.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	state    state
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{
		provider: provider,
		clock:    clock,
		state:    state{Goals: DefaultGoals()},
	}
}

func (s *Store) Load() error {
	s.state = state{Goals: DefaultGoals()}
	if _, err := s.provider.Get(constants.KeyNutrition, &s.state); err != nil {
		return fmt.Errorf("failed to load nutrition data: %w", err)
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("nutrition store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeyNutrition, s.state); err != nil {
		logger.Warn("failed to persist nutrition data", "op", op, "error", err)
		return fmt.Errorf("failed to save nutrition data: %w", err)
	}
	return nil
}

func (s *Store) AddMeal(m models.MealEntry) (models.MealEntry, error) {
	if m.Date == "" {
		m.Date = utils.Today(s.clock)
	}
	m.ID = uuid.NewString()
	s.state.Entries = append(s.state.Entries, m)
	return m, s.persist("add", m.ID)
}

func (s *Store) UpdateMeal(id string, fn func(*models.MealEntry)) error {
	for i := range s.state.Entries {
		if s.state.Entries[i].ID == id {
			fn(&s.state.Entries[i])
			s.state.Entries[i].ID = id
			return s.persist("update", id)
		}
	}
	return nil
}

func (s *Store) DeleteMeal(id string) error {
	for i := range s.state.Entries {
		if s.state.Entries[i].ID == id {
			s.state.Entries = append(s.state.Entries[:i], s.state.Entries[i+1:]...)
			return s.persist("delete", id)
		}
	}
	return nil
}

// SetGoals merges fn's changes into the current goals.
func (s *Store) SetGoals(fn func(*models.NutritionGoals)) error {
	fn(&s.state.Goals)
	return s.persist("set-goals", "")
}

func (s *Store) Goals() models.NutritionGoals {
	return s.state.Goals
}

func (s *Store) Meals() []models.MealEntry {
	return append([]models.MealEntry(nil), s.state.Entries...)
}

func (s *Store) MealsByDate(date string) []models.MealEntry {
	var out []models.MealEntry
	for _, m := range s.state.Entries {
		if m.Date == date {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) TodayMeals() []models.MealEntry {
	return s.MealsByDate(utils.Today(s.clock))
}

// WeeklyStats covers today and the six days before it.
func (s *Store) WeeklyStats() models.NutritionWeeklyStats {
	window := make(map[string]bool, weekDays)
	now := s.clock.Now()
	for i := 0; i < weekDays; i++ {
		window[utils.FormatDate(now.AddDate(0, 0, -i))] = true
	}

	meals, quality, water := 0, 0, 0
	days := make(map[string]bool)
	for _, m := range s.state.Entries {
		if !window[m.Date] {
			continue
		}
		meals++
		quality += m.Quality
		water += m.Hydration
		days[m.Date] = true
	}

	stats := models.NutritionWeeklyStats{
		AvgMealsPerDay: utils.Round1(float64(meals) / weekDays),
		AvgWater:       utils.Round1(float64(water) / weekDays),
		Consistency:    int(math.Round(float64(len(days)) / weekDays * 100)),
	}
	if meals > 0 {
		stats.AvgQuality = utils.Round1(float64(quality) / float64(meals))
	}
	return stats
}

// MissingMeals lists the required meals with no entry on date, in meal order.
func (s *Store) MissingMeals(date string) []models.MealType {
	logged := make(map[models.MealType]bool)
	for _, m := range s.MealsByDate(date) {
		logged[m.MealType] = true
	}
	var missing []models.MealType
	for _, t := range models.RequiredMeals {
		if !logged[t] {
			missing = append(missing, t)
		}
	}
	return missing
}
