package models

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// RequiredMeals are the meals reported as missing when absent; snacks never are.
var RequiredMeals = []MealType{MealBreakfast, MealLunch, MealDinner}

type MealEntry struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"` // YYYY-MM-DD format
	MealType    MealType `json:"meal_type"`
	Time        string   `json:"time"` // HH:MM format
	Description string   `json:"description"`
	Calories    int      `json:"calories,omitempty"`
	Hydration   int      `json:"hydration,omitempty"` // glasses of water
	Quality     int      `json:"quality"`             // 1-5
	Notes       string   `json:"notes,omitempty"`
}

type PreferredMealTimes struct {
	Breakfast string `json:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty"`
}

type NutritionGoals struct {
	DailyCalories      int                `json:"daily_calories,omitempty"`
	DailyWaterGlasses  int                `json:"daily_water_glasses"`
	MealsPerDay        int                `json:"meals_per_day"`
	PreferredMealTimes PreferredMealTimes `json:"preferred_meal_times"`
}

type NutritionWeeklyStats struct {
	AvgMealsPerDay float64 `json:"avg_meals_per_day"`
	AvgQuality     float64 `json:"avg_quality"`
	AvgWater       float64 `json:"avg_water"`
	Consistency    int     `json:"consistency"` // percent of days with at least one meal
}
