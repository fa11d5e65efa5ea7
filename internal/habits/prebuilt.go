package habits

import "github.com/julianstephens/ripple/internal/models"

// CategoryColors is the color given to custom habits of each category.
var CategoryColors = map[models.HabitCategory]string{
	models.CategoryWellness:     "#8B5CF6",
	models.CategoryProductivity: "#3B82F6",
	models.CategorySocial:       "#EC4899",
	models.CategoryHealth:       "#22C55E",
	models.CategoryCustom:       "#F59E0B",
}

// Prebuilt is the catalog offered during onboarding and by `habit add --prebuilt`.
var Prebuilt = []models.Habit{
	{
		Name:                "Drink Water",
		Description:         "Drink 8 glasses of water",
		Icon:                "Droplets",
		Color:               "#3B82F6",
		Frequency:           models.FrequencyDaily,
		TargetCount:         8,
		Category:            models.CategoryHealth,
		PointsPerCompletion: 10,
	},
	{
		Name:                "Morning Meditation",
		Description:         "10 minutes of mindfulness",
		Icon:                "Brain",
		Color:               "#8B5CF6",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryWellness,
		PointsPerCompletion: 15,
	},
	{
		Name:                "Exercise",
		Description:         "30 minutes of physical activity",
		Icon:                "Dumbbell",
		Color:               "#22C55E",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryHealth,
		PointsPerCompletion: 20,
	},
	{
		Name:                "Read",
		Description:         "Read for 20 minutes",
		Icon:                "BookOpen",
		Color:               "#F59E0B",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryProductivity,
		PointsPerCompletion: 10,
	},
	{
		Name:                "Study Session",
		Description:         "One focused study block",
		Icon:                "GraduationCap",
		Color:               "#3B82F6",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryProductivity,
		PointsPerCompletion: 15,
	},
	{
		Name:                "Journal",
		Description:         "Write down your thoughts",
		Icon:                "PenLine",
		Color:               "#EC4899",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryWellness,
		PointsPerCompletion: 10,
	},
	{
		Name:                "No Phone Before Bed",
		Description:         "Screens off 30 minutes before sleep",
		Icon:                "Smartphone",
		Color:               "#6366F1",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryWellness,
		PointsPerCompletion: 15,
	},
	{
		Name:                "Eat Breakfast",
		Description:         "Start the day with a meal",
		Icon:                "Coffee",
		Color:               "#F97316",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryHealth,
		PointsPerCompletion: 10,
	},
	{
		Name:                "Call a Friend",
		Description:         "Reach out to someone you care about",
		Icon:                "Phone",
		Color:               "#EC4899",
		Frequency:           models.FrequencyWeekly,
		Category:            models.CategorySocial,
		PointsPerCompletion: 20,
	},
	{
		Name:                "Take a Walk",
		Description:         "Get outside for 15 minutes",
		Icon:                "Footprints",
		Color:               "#22C55E",
		Frequency:           models.FrequencyDaily,
		Category:            models.CategoryHealth,
		PointsPerCompletion: 10,
	},
}

// PrebuiltByName looks up a catalog entry by its exact name.
func PrebuiltByName(name string) (models.Habit, bool) {
	for _, h := range Prebuilt {
		if h.Name == name {
			h.IsPrebuilt = true
			return h, true
		}
	}
	return models.Habit{}, false
}

// AddPrebuilt adds a catalog habit. A habit of the same name that is inactive
// is reactivated instead; an active one is left alone. The bool reports
// whether anything changed.
func (s *Store) AddPrebuilt(name string) (models.Habit, bool, error) {
	tmpl, ok := PrebuiltByName(name)
	if !ok {
		return models.Habit{}, false, nil
	}

	if existing, ok := s.HabitByName(name); ok {
		if existing.Active {
			return existing, false, nil
		}
		if err := s.ToggleHabitActive(existing.ID); err != nil {
			return existing, true, err
		}
		existing.Active = true
		return existing, true, nil
	}

	tmpl.Active = true
	h, err := s.AddHabit(tmpl)
	return h, true, err
}

// AvailablePrebuilt lists catalog habits that are not currently active.
func (s *Store) AvailablePrebuilt() []models.Habit {
	var out []models.Habit
	for _, tmpl := range Prebuilt {
		if h, ok := s.HabitByName(tmpl.Name); ok && h.Active {
			continue
		}
		tmpl.IsPrebuilt = true
		out = append(out, tmpl)
	}
	return out
}
