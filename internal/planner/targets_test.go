package planner

import (
	"testing"

	"github.com/franckalain/fitplan/internal/models"
)

func TestCalculateTargetsExplicitCalories(t *testing.T) {
	goal := models.Goal{
		PrimaryGoal: models.GoalLoseWeight,
		NutritionGoals: models.NutritionGoals{
			DailyCalories: 1800,
			MacroSplit:    models.MacroSplit{Protein: 40, Carbs: 30, Fat: 30},
		},
	}

	got := CalculateTargets(goal, models.UserProfile{})

	want := Targets{Calories: 1800, ProteinGrams: 180, CarbGrams: 135, FatGrams: 60}
	if got != want {
		t.Errorf("CalculateTargets = %+v, want %+v", got, want)
	}
}

func TestCalculateTargetsDerivedFromGoal(t *testing.T) {
	tests := []struct {
		name    string
		primary models.FitnessGoal
		gender  string
		want    Targets
	}{
		{
			name:    "gain muscle male",
			primary: models.GoalGainMuscle,
			gender:  "male",
			want:    Targets{Calories: 2500, ProteinGrams: 188, CarbGrams: 250, FatGrams: 83},
		},
		{
			name:    "lose weight female",
			primary: models.GoalLoseWeight,
			gender:  "female",
			want:    Targets{Calories: 1300, ProteinGrams: 130, CarbGrams: 98, FatGrams: 43},
		},
		{
			name:    "general fitness defaults",
			primary: models.GoalGeneralFitness,
			gender:  "male",
			want:    Targets{Calories: 2200, ProteinGrams: 165, CarbGrams: 220, FatGrams: 73},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := models.Goal{PrimaryGoal: tt.primary}
			got := CalculateTargets(goal, models.UserProfile{Gender: tt.gender})
			if got != tt.want {
				t.Errorf("CalculateTargets = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateTargetsMissingSplitFields(t *testing.T) {
	goal := models.Goal{
		PrimaryGoal: models.GoalGainMuscle,
		NutritionGoals: models.NutritionGoals{
			DailyCalories: 2000,
			MacroSplit:    models.MacroSplit{Protein: 35}, // carbs and fat unset
		},
	}

	got := CalculateTargets(goal, models.UserProfile{})

	// Explicit calories win verbatim; unset percentages fall back to 40/30.
	want := Targets{Calories: 2000, ProteinGrams: 175, CarbGrams: 200, FatGrams: 67}
	if got != want {
		t.Errorf("CalculateTargets = %+v, want %+v", got, want)
	}
}

func TestCalculateTargetsNoReconciliation(t *testing.T) {
	// Percentages summing past 100 are used as-is; the gram values are
	// independently derived and never corrected back to the calorie total.
	goal := models.Goal{
		NutritionGoals: models.NutritionGoals{
			DailyCalories: 1000,
			MacroSplit:    models.MacroSplit{Protein: 60, Carbs: 60, Fat: 60},
		},
	}

	got := CalculateTargets(goal, models.UserProfile{})

	want := Targets{Calories: 1000, ProteinGrams: 150, CarbGrams: 150, FatGrams: 67}
	if got != want {
		t.Errorf("CalculateTargets = %+v, want %+v", got, want)
	}
}
