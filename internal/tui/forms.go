package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ripple/internal/habits"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/profile"
	"github.com/julianstephens/ripple/internal/utils"
)

type HabitFormModel struct {
	Prebuilt    string
	Name        string
	Points      string
	TargetCount string
	Category    models.HabitCategory
}

// Habit builds a custom habit from the form. Prebuilt selections are added by name instead.
func (fm *HabitFormModel) Habit() (models.Habit, error) {
	points, err := strconv.Atoi(strings.TrimSpace(fm.Points))
	if err != nil {
		return models.Habit{}, fmt.Errorf("invalid points: %w", err)
	}
	target := 0
	if s := strings.TrimSpace(fm.TargetCount); s != "" {
		if target, err = strconv.Atoi(s); err != nil {
			return models.Habit{}, fmt.Errorf("invalid target count: %w", err)
		}
	}
	return models.Habit{
		Name:                strings.TrimSpace(fm.Name),
		Icon:                "Star",
		Color:               habits.CategoryColors[fm.Category],
		Frequency:           models.FrequencyDaily,
		TargetCount:         target,
		Category:            fm.Category,
		PointsPerCompletion: points,
		Active:              true,
	}, nil
}

func positiveInt(allowEmpty bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && allowEmpty {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fmt.Errorf("enter a whole number")
		}
		return nil
	}
}

// NewHabitForm offers the prebuilt catalog or a custom habit.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("Custom habit", "")}
	for _, h := range habits.Prebuilt {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (+%d)", h.Name, h.PointsPerCompletion), h.Name))
	}
	if fm.Points == "" {
		fm.Points = "10"
	}
	if fm.Category == "" {
		fm.Category = models.CategoryCustom
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Habit").
				Options(options...).
				Value(&fm.Prebuilt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.HabitCategory]().
				Title("Category").
				Options(
					huh.NewOption("Wellness", models.CategoryWellness),
					huh.NewOption("Productivity", models.CategoryProductivity),
					huh.NewOption("Social", models.CategorySocial),
					huh.NewOption("Health", models.CategoryHealth),
					huh.NewOption("Custom", models.CategoryCustom),
				).
				Value(&fm.Category),
			huh.NewInput().
				Title("Points per completion").
				Value(&fm.Points).
				Validate(positiveInt(false)),
			huh.NewInput().
				Title("Target count (blank for a single check)").
				Value(&fm.TargetCount).
				Validate(positiveInt(true)),
		).WithHideFunc(func() bool { return fm.Prebuilt != "" }),
	).WithTheme(huh.ThemeDracula())
}

// OnboardingFormModel holds the answers of the first-run questionnaire.
type OnboardingFormModel struct {
	Name       string
	Major      string
	Year       models.YearInSchool
	Bedtime    string
	WakeTime   string
	Peak       models.PeakTime
	Challenges []string
	Habits     []string
}

func NewOnboardingFormModel() *OnboardingFormModel {
	d := profile.Default()
	return &OnboardingFormModel{
		Year:     d.YearInSchool,
		Bedtime:  d.PreferredBedtime,
		WakeTime: d.PreferredWakeTime,
		Peak:     d.EnergyPattern.PeakProductivityTime,
		Habits:   []string{"Drink Water", "Exercise"},
	}
}

// Profile applies the answers on top of the default profile.
func (fm *OnboardingFormModel) Profile() models.UserProfile {
	p := profile.Default()
	p.Name = strings.TrimSpace(fm.Name)
	p.Major = strings.TrimSpace(fm.Major)
	p.YearInSchool = fm.Year
	p.PreferredBedtime = fm.Bedtime
	p.PreferredWakeTime = fm.WakeTime
	p.EnergyPattern.PeakProductivityTime = fm.Peak
	p.CurrentChallenges = fm.Challenges
	return p
}

func validTime(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

func NewOnboardingForm(fm *OnboardingFormModel) *huh.Form {
	var habitOptions []huh.Option[string]
	for _, h := range habits.Prebuilt {
		habitOptions = append(habitOptions, huh.NewOption(h.Name+" · "+h.Description, h.Name))
	}
	var challengeOptions []huh.Option[string]
	for _, c := range models.ChallengeOptions {
		challengeOptions = append(challengeOptions, huh.NewOption(c, c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Welcome to ripple").Description("A few questions to set up your day."),
			huh.NewInput().
				Title("What should we call you?").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Major").Value(&fm.Major),
			huh.NewSelect[models.YearInSchool]().
				Title("Year in school").
				Options(
					huh.NewOption("Freshman", models.YearFreshman),
					huh.NewOption("Sophomore", models.YearSophomore),
					huh.NewOption("Junior", models.YearJunior),
					huh.NewOption("Senior", models.YearSenior),
					huh.NewOption("Graduate", models.YearGraduate),
				).
				Value(&fm.Year),
		),
		huh.NewGroup(
			huh.NewInput().Title("Usual bedtime (HH:MM)").Value(&fm.Bedtime).Validate(validTime),
			huh.NewInput().Title("Usual wake time (HH:MM)").Value(&fm.WakeTime).Validate(validTime),
			huh.NewSelect[models.PeakTime]().
				Title("When are you most productive?").
				Options(
					huh.NewOption("Early morning", models.PeakEarlyMorning),
					huh.NewOption("Morning", models.PeakMorning),
					huh.NewOption("Afternoon", models.PeakAfternoon),
					huh.NewOption("Evening", models.PeakEvening),
					huh.NewOption("Night", models.PeakNight),
				).
				Value(&fm.Peak),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("What are you working on?").
				Options(challengeOptions...).
				Value(&fm.Challenges),
			huh.NewMultiSelect[string]().
				Title("Pick some habits to start with").
				Options(habitOptions...).
				Value(&fm.Habits),
		),
	).WithTheme(huh.ThemeDracula())
}
