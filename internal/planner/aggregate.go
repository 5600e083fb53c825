package planner

import (
	"github.com/franckalain/fitplan/internal/models"
)

// Summarize recomputes a day's nutrition totals from its logged meals.
// It must run on every mutation of the meal list; a stale summary is a
// correctness bug, not an optimization opportunity.
//
// CaloriesRemaining is goal minus total when a calorie goal is set, and
// zero otherwise.
func Summarize(meals []models.LoggedMeal, dailyCalorieGoal float64) models.DailySummary {
	var s models.DailySummary
	for _, meal := range meals {
		for _, e := range meal.Entries {
			s.TotalCalories += e.Calories
			s.TotalProtein += e.Protein
			s.TotalCarbs += e.Carbs
			s.TotalFat += e.Fat
		}
	}
	if dailyCalorieGoal > 0 {
		s.CaloriesRemaining = dailyCalorieGoal - s.TotalCalories
	}
	return s
}

// DayGoals snapshots targets into the goal fields of a new NutritionDay.
// The copy is deliberate: later changes to the active Goal must not alter
// past logs.
func DayGoals(t Targets) (calories, protein, carbs, fat float64) {
	return t.Calories, float64(t.ProteinGrams), float64(t.CarbGrams), float64(t.FatGrams)
}
