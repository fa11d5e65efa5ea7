package wellness

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/utils"
	"github.com/julianstephens/ripple/internal/validation"
)

type MealCmd struct {
	Add    MealAddCmd    `cmd:"" help:"Log a meal."`
	List   MealListCmd   `cmd:"" help:"Show a day's meals."`
	Stats  MealStatsCmd  `cmd:"" help:"Show this week's nutrition stats."`
	Goals  MealGoalsCmd  `cmd:"" help:"Show or change nutrition goals."`
	Delete MealDeleteCmd `cmd:"" help:"Delete a meal by id (a unique prefix is enough)."`
}

type MealAddCmd struct {
	Type        string `arg:"" help:"Meal type." enum:"breakfast,lunch,dinner,snack"`
	Description string `arg:"" help:"What you ate."`
	Time        string `help:"Time eaten (HH:MM); defaults to now."`
	Quality     int    `short:"q" help:"Quality from 1 to 5." default:"3"`
	Calories    int    `help:"Calories."`
	Water       int    `help:"Glasses of water with the meal."`
	Notes       string `help:"Notes."`
	Date        string `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *MealAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	at := c.Time
	if at == "" {
		at = ctx.Clock.Now().Format("15:04")
	}
	m := models.MealEntry{
		Date:        date,
		MealType:    models.MealType(c.Type),
		Time:        at,
		Description: strings.TrimSpace(c.Description),
		Calories:    c.Calories,
		Hydration:   c.Water,
		Quality:     c.Quality,
		Notes:       c.Notes,
	}
	if err := validation.Meal(m); err != nil {
		return err
	}
	if _, err := ctx.App.Nutrition.AddMeal(m); err != nil {
		return err
	}
	fmt.Printf("Logged %s at %s on %s\n", m.MealType, m.Time, m.Date)
	if missing := ctx.App.Nutrition.MissingMeals(date); len(missing) > 0 {
		fmt.Printf("  Still missing: %s\n", joinMealTypes(missing))
	}
	return nil
}

func joinMealTypes(types []models.MealType) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

type MealListCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *MealListCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock)
	if err != nil {
		return err
	}
	meals := ctx.App.Nutrition.MealsByDate(date)
	if len(meals) == 0 {
		fmt.Printf("No meals logged for %s.\n", date)
	}
	for _, m := range meals {
		fmt.Printf("  %s  %s  %-9s %s  (quality %d/5)\n", cli.ShortID(m.ID), m.Time, m.MealType, cli.Clip(m.Description, 40), m.Quality)
	}
	if missing := ctx.App.Nutrition.MissingMeals(date); len(missing) > 0 {
		fmt.Printf("Missing: %s\n", joinMealTypes(missing))
	}
	return nil
}

type MealStatsCmd struct{}

func (c *MealStatsCmd) Run(ctx *cli.Context) error {
	st := ctx.App.Nutrition.WeeklyStats()
	g := ctx.App.Nutrition.Goals()
	fmt.Printf("Meals per day:  %.1f (goal %d)\n", st.AvgMealsPerDay, g.MealsPerDay)
	fmt.Printf("Average water:  %.1f glasses (goal %d)\n", st.AvgWater, g.DailyWaterGlasses)
	fmt.Printf("Average quality: %.1f/5\n", st.AvgQuality)
	fmt.Printf("Consistency:    %d%% of days\n", st.Consistency)
	return nil
}

type MealGoalsCmd struct {
	Calories  *int    `help:"Daily calorie goal."`
	Water     *int    `help:"Daily glasses of water."`
	Meals     *int    `help:"Meals per day."`
	Breakfast *string `help:"Preferred breakfast time (HH:MM)."`
	Lunch     *string `help:"Preferred lunch time (HH:MM)."`
	Dinner    *string `help:"Preferred dinner time (HH:MM)."`
}

func (c *MealGoalsCmd) Run(ctx *cli.Context) error {
	for _, t := range []*string{c.Breakfast, c.Lunch, c.Dinner} {
		if t != nil {
			if !utils.ValidateTimeFormat(*t) {
				return fmt.Errorf("meal times must be HH:MM, got %q", *t)
			}
		}
	}
	for _, n := range []*int{c.Calories, c.Water, c.Meals} {
		if n != nil && *n < 0 {
			return fmt.Errorf("goals cannot be negative")
		}
	}

	changed := c.Calories != nil || c.Water != nil || c.Meals != nil || c.Breakfast != nil || c.Lunch != nil || c.Dinner != nil
	if changed {
		err := ctx.App.Nutrition.SetGoals(func(g *models.NutritionGoals) {
			setInt(&g.DailyCalories, c.Calories)
			setInt(&g.DailyWaterGlasses, c.Water)
			setInt(&g.MealsPerDay, c.Meals)
			setString(&g.PreferredMealTimes.Breakfast, c.Breakfast)
			setString(&g.PreferredMealTimes.Lunch, c.Lunch)
			setString(&g.PreferredMealTimes.Dinner, c.Dinner)
		})
		if err != nil {
			return err
		}
	}

	g := ctx.App.Nutrition.Goals()
	fmt.Printf("Calories:  %d\n", g.DailyCalories)
	fmt.Printf("Water:     %d glasses\n", g.DailyWaterGlasses)
	fmt.Printf("Meals:     %d per day\n", g.MealsPerDay)
	fmt.Printf("Times:     breakfast %s, lunch %s, dinner %s\n", g.PreferredMealTimes.Breakfast, g.PreferredMealTimes.Lunch, g.PreferredMealTimes.Dinner)
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type MealDeleteCmd struct {
	ID string `arg:"" help:"Meal id or unique prefix (shown by 'ripple meal list')."`
}

func (c *MealDeleteCmd) Run(ctx *cli.Context) error {
	meals := ctx.App.Nutrition.Meals()
	ids := make([]string, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}
	id, err := cli.MatchID(c.ID, ids)
	if err != nil {
		return err
	}
	for _, m := range meals {
		if m.ID == id {
			fmt.Printf("Deleted %s from %s\n", m.MealType, m.Date)
		}
	}
	return ctx.App.Nutrition.DeleteMeal(id)
}
