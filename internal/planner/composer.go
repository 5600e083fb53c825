package planner

import (
	"fmt"
	"math"

	"github.com/franckalain/fitplan/internal/models"
)

// FoodPool groups candidate food items by category.
type FoodPool map[models.FoodCategory][]models.FoodItem

// GroupFoodItems buckets a flat item list into a FoodPool.
func GroupFoodItems(items []models.FoodItem) FoodPool {
	pool := make(FoodPool)
	for _, item := range items {
		pool[item.Category] = append(pool[item.Category], item)
	}
	return pool
}

// mealSlot is one meal's share of the day's calorie and macro budget,
// expressed as percentages of the daily totals.
type mealSlot struct {
	name          string
	suggestedTime string
	caloriePct    float64
	proteinPct    float64
	carbPct       float64
	fatPct        float64
}

var baseMealSlots = []mealSlot{
	{name: "breakfast", suggestedTime: "08:00", caloriePct: 25, proteinPct: 25, carbPct: 30, fatPct: 25},
	{name: "lunch", suggestedTime: "12:30", caloriePct: 35, proteinPct: 35, carbPct: 35, fatPct: 35},
	{name: "dinner", suggestedTime: "19:00", caloriePct: 40, proteinPct: 40, carbPct: 35, fatPct: 40},
}

var snackSlots = []mealSlot{
	{name: "snack", suggestedTime: "10:30", caloriePct: 10, proteinPct: 10, carbPct: 10, fatPct: 10},
	{name: "snack", suggestedTime: "15:30", caloriePct: 10, proteinPct: 10, carbPct: 10, fatPct: 10},
}

// ComposeMeals allocates the day's budget across mealFrequency meals and
// fills each meal from the category pools. A frequency of 3 yields
// breakfast, lunch and dinner in that order; 4 appends one snack; 5 or
// more appends two. Pools are not consumed across meals, so an item can
// appear in more than one meal.
func (p *Planner) ComposeMeals(targets Targets, mealFrequency int, pool FoodPool) []models.PlannedMeal {
	slots := append([]mealSlot(nil), baseMealSlots...)
	if mealFrequency >= 4 {
		slots = append(slots, snackSlots[0])
	}
	if mealFrequency >= 5 {
		slots = append(slots, snackSlots[1])
	}

	meals := make([]models.PlannedMeal, 0, len(slots))
	for _, slot := range slots {
		meals = append(meals, p.composeMeal(slot, targets, pool))
	}
	return meals
}

func (p *Planner) composeMeal(slot mealSlot, targets Targets, pool FoodPool) models.PlannedMeal {
	calShare := targets.Calories * slot.caloriePct / 100
	proteinShare := float64(targets.ProteinGrams) * slot.proteinPct / 100
	carbShare := float64(targets.CarbGrams) * slot.carbPct / 100
	fatShare := float64(targets.FatGrams) * slot.fatPct / 100

	meal := models.PlannedMeal{
		Name:          slot.name,
		SuggestedTime: slot.suggestedTime,
		Notes: fmt.Sprintf("Target: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat",
			calShare, proteinShare, carbShare, fatShare),
	}

	if item, ok := p.pickFood(pool[models.CategoryProteins]); ok {
		addFood(&meal, item, calculateServings(proteinShare/2, item.Protein))
	}
	if item, ok := p.pickFood(pool[models.CategoryVegetables]); ok {
		addFood(&meal, item, 2)
	}
	if item, ok := p.pickFood(pool[models.CategoryGrains]); ok {
		addFood(&meal, item, calculateServings(carbShare/2, item.Carbs))
	}
	if slot.name == "snack" {
		if item, ok := p.pickFood(pool[models.CategoryFruits]); ok {
			addFood(&meal, item, 1)
		}
	} else {
		if item, ok := p.pickFood(pool[models.CategoryFats]); ok {
			addFood(&meal, item, calculateServings(fatShare/3, item.Fat))
		}
	}
	return meal
}

func addFood(meal *models.PlannedMeal, item models.FoodItem, servings float64) {
	meal.FoodItems = append(meal.FoodItems, models.PlannedFood{
		FoodItemID:  item.ID,
		Name:        item.Name,
		Quantity:    servings,
		ServingSize: item.ServingSize,
	})
	meal.Calories += item.Calories * servings
}

// calculateServings converts a gram target into a serving count for an
// item, rounded to the nearest half serving and clamped to [0.5, 3].
// Items without the relevant macro default to one serving.
func calculateServings(targetGrams, gramsPerServing float64) float64 {
	if gramsPerServing <= 0 {
		return 1
	}
	servings := math.Round(targetGrams/gramsPerServing*2) / 2
	if servings < 0.5 {
		return 0.5
	}
	if servings > 3 {
		return 3
	}
	return servings
}
