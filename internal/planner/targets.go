package planner

import (
	"math"

	"github.com/franckalain/fitplan/internal/models"
)

// Targets holds one day's calorie and macro-gram targets.
type Targets struct {
	Calories     float64 `json:"calories"`
	ProteinGrams int     `json:"protein_grams"`
	CarbGrams    int     `json:"carb_grams"`
	FatGrams     int     `json:"fat_grams"`
}

// Calorie density per gram of each macronutrient.
const (
	proteinCaloriesPerGram = 4
	carbCaloriesPerGram    = 4
	fatCaloriesPerGram     = 9
)

const (
	baseCalories       = 2200
	baseCaloriesFemale = 1800
	weightLossDeficit  = 500
	muscleGainSurplus  = 300
)

// CalculateTargets derives the daily calorie and macro-gram targets from a
// goal and profile. Explicit daily calories on the goal win verbatim and
// take their macro split from the goal (with 30/40/30 per-field fallback);
// otherwise calories and split are both derived from the primary goal.
//
// The three gram values are computed independently from the percentages and
// are not reconciled against the calorie total, even when the percentages
// do not sum to 100.
func CalculateTargets(goal models.Goal, profile models.UserProfile) Targets {
	calories := goal.NutritionGoals.DailyCalories
	var protein, carbs, fat float64

	if calories > 0 {
		split := goal.NutritionGoals.MacroSplit
		protein = pctOrDefault(split.Protein, 30)
		carbs = pctOrDefault(split.Carbs, 40)
		fat = pctOrDefault(split.Fat, 30)
	} else {
		base := float64(baseCalories)
		if profile.Gender == "female" {
			base = baseCaloriesFemale
		}
		switch goal.PrimaryGoal {
		case models.GoalLoseWeight:
			calories = base - weightLossDeficit
			protein, carbs, fat = 40, 30, 30
		case models.GoalGainMuscle:
			calories = base + muscleGainSurplus
			protein, carbs, fat = 30, 40, 30
		default:
			calories = base
			protein, carbs, fat = 30, 40, 30
		}
	}

	return Targets{
		Calories:     calories,
		ProteinGrams: gramsFor(calories, protein, proteinCaloriesPerGram),
		CarbGrams:    gramsFor(calories, carbs, carbCaloriesPerGram),
		FatGrams:     gramsFor(calories, fat, fatCaloriesPerGram),
	}
}

func pctOrDefault(pct, def float64) float64 {
	if pct <= 0 {
		return def
	}
	return pct
}

func gramsFor(calories, pct, caloriesPerGram float64) int {
	return int(math.Round(calories * pct / 100 / caloriesPerGram))
}
