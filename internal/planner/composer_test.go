package planner

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/franckalain/fitplan/internal/models"
)

func testPlanner() *Planner {
	return New(rand.NewSource(1))
}

func singleItemPool() FoodPool {
	return FoodPool{
		models.CategoryProteins: {{
			ID: "chicken", Name: "Chicken Breast", Calories: 165, Protein: 31,
			Category: models.CategoryProteins,
			ServingSize: models.ServingSize{Value: 100, Unit: "g"},
		}},
		models.CategoryVegetables: {{
			ID: "broccoli", Name: "Broccoli", Calories: 55, Carbs: 11,
			Category: models.CategoryVegetables,
			ServingSize: models.ServingSize{Value: 100, Unit: "g"},
		}},
		models.CategoryGrains: {{
			ID: "rice", Name: "Brown Rice", Calories: 215, Carbs: 45,
			Category: models.CategoryGrains,
			ServingSize: models.ServingSize{Value: 1, Unit: "cup"},
		}},
		models.CategoryFruits: {{
			ID: "apple", Name: "Apple", Calories: 95, Carbs: 25,
			Category: models.CategoryFruits,
			ServingSize: models.ServingSize{Value: 1, Unit: "medium"},
		}},
		models.CategoryFats: {{
			ID: "almonds", Name: "Almonds", Calories: 164, Fat: 14,
			Category: models.CategoryFats,
			ServingSize: models.ServingSize{Value: 28, Unit: "g"},
		}},
	}
}

func TestComposeMealsCountAndOrder(t *testing.T) {
	targets := Targets{Calories: 2000, ProteinGrams: 150, CarbGrams: 200, FatGrams: 67}
	pool := singleItemPool()

	tests := []struct {
		frequency int
		want      []string
	}{
		{3, []string{"breakfast", "lunch", "dinner"}},
		{4, []string{"breakfast", "lunch", "dinner", "snack"}},
		{5, []string{"breakfast", "lunch", "dinner", "snack", "snack"}},
		{7, []string{"breakfast", "lunch", "dinner", "snack", "snack"}},
	}

	for _, tt := range tests {
		meals := testPlanner().ComposeMeals(targets, tt.frequency, pool)
		if len(meals) != len(tt.want) {
			t.Fatalf("frequency %d: got %d meals, want %d", tt.frequency, len(meals), len(tt.want))
		}
		for i, name := range tt.want {
			if meals[i].Name != name {
				t.Errorf("frequency %d: meal %d = %q, want %q", tt.frequency, i, meals[i].Name, name)
			}
		}
	}
}

func TestComposeMealsFoodSelection(t *testing.T) {
	targets := Targets{Calories: 2000, ProteinGrams: 150, CarbGrams: 200, FatGrams: 67}
	meals := testPlanner().ComposeMeals(targets, 5, singleItemPool())

	breakfast := meals[0]
	// Main meals hold protein, vegetable, grain and a fat source.
	if len(breakfast.FoodItems) != 4 {
		t.Fatalf("breakfast has %d items, want 4", len(breakfast.FoodItems))
	}
	for _, f := range breakfast.FoodItems {
		if f.FoodItemID == "apple" {
			t.Errorf("breakfast should not include fruit")
		}
	}

	snack := meals[3]
	var hasFruit, hasFat bool
	for _, f := range snack.FoodItems {
		if f.FoodItemID == "apple" {
			hasFruit = true
			if f.Quantity != 1 {
				t.Errorf("snack fruit quantity = %v, want 1", f.Quantity)
			}
		}
		if f.FoodItemID == "almonds" {
			hasFat = true
		}
	}
	if !hasFruit {
		t.Errorf("snack should include a fruit")
	}
	if hasFat {
		t.Errorf("snack should not include a fats item")
	}
}

func TestComposeMealsVegetableServingsFixed(t *testing.T) {
	targets := Targets{Calories: 2000, ProteinGrams: 150, CarbGrams: 200, FatGrams: 67}
	meals := testPlanner().ComposeMeals(targets, 3, singleItemPool())

	for _, meal := range meals {
		for _, f := range meal.FoodItems {
			if f.FoodItemID == "broccoli" && f.Quantity != 2 {
				t.Errorf("%s: vegetable quantity = %v, want 2", meal.Name, f.Quantity)
			}
		}
	}
}

func TestComposeMealsCaloriesAccumulate(t *testing.T) {
	targets := Targets{Calories: 2000, ProteinGrams: 150, CarbGrams: 200, FatGrams: 67}
	pool := singleItemPool()
	meals := testPlanner().ComposeMeals(targets, 3, pool)

	items := make(map[string]models.FoodItem)
	for _, list := range pool {
		for _, item := range list {
			items[item.ID] = item
		}
	}

	for _, meal := range meals {
		var want float64
		for _, f := range meal.FoodItems {
			want += items[f.FoodItemID].Calories * f.Quantity
		}
		if math.Abs(meal.Calories-want) > 1e-9 {
			t.Errorf("%s: calories = %v, want %v", meal.Name, meal.Calories, want)
		}
	}
}

func TestComposeMealsEmptyPool(t *testing.T) {
	targets := Targets{Calories: 2000, ProteinGrams: 150, CarbGrams: 200, FatGrams: 67}
	meals := testPlanner().ComposeMeals(targets, 3, FoodPool{})

	if len(meals) != 3 {
		t.Fatalf("got %d meals, want 3", len(meals))
	}
	for _, meal := range meals {
		if len(meal.FoodItems) != 0 {
			t.Errorf("%s: expected no items from empty pool", meal.Name)
		}
		if meal.Calories != 0 {
			t.Errorf("%s: calories = %v, want 0", meal.Name, meal.Calories)
		}
		if !strings.Contains(meal.Notes, "Target:") {
			t.Errorf("%s: notes should still carry the targets, got %q", meal.Name, meal.Notes)
		}
	}
}

func TestCalculateServings(t *testing.T) {
	tests := []struct {
		name            string
		target, perServ float64
		want            float64
	}{
		{"typical", 30, 25, 1},
		{"rounds to half serving", 35, 20, 2},
		{"clamped to ceiling", 100, 5, 3},
		{"clamped to floor", 1, 50, 0.5},
		{"zero macro defaults to one serving", 30, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateServings(tt.target, tt.perServ); got != tt.want {
				t.Errorf("calculateServings(%v, %v) = %v, want %v", tt.target, tt.perServ, got, tt.want)
			}
		})
	}
}

func TestCalculateServingsAlwaysHalfStep(t *testing.T) {
	for target := 0.0; target <= 120; target += 7.3 {
		got := calculateServings(target, 17)
		if got < 0.5 || got > 3 {
			t.Fatalf("calculateServings(%v, 17) = %v, outside [0.5, 3]", target, got)
		}
		if math.Mod(got*2, 1) != 0 {
			t.Fatalf("calculateServings(%v, 17) = %v, not a multiple of 0.5", target, got)
		}
	}
}
