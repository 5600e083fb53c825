// Package planner derives personalized meal and workout plans from a
// user's stated goal and aggregates logged nutrition entries against it.
// It is pure computation over caller-supplied inputs and performs no I/O.
package planner

import (
	"math/rand"
	"sync"
	"time"

	"github.com/franckalain/fitplan/internal/models"
	"github.com/google/uuid"
)

// Planner is the entry point external collaborators call. It is safe for
// concurrent use; the random source backing food selection is guarded
// because math/rand sources are not.
type Planner struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// New constructs a Planner. A nil source gets a time-seeded one; tests
// pass a fixed source to make selection deterministic.
func New(src rand.Source) *Planner {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Planner{rand: rand.New(src)}
}

// WorkoutProgram bundles the generated templates with their weekly
// schedule.
type WorkoutProgram struct {
	Plans    []models.WorkoutPlan   `json:"plans"`
	Schedule []models.ScheduleEntry `json:"schedule"`
}

// GenerateNutritionPlan derives the day's targets from the goal and
// composes meals from the supplied food pool. Missing optional goal
// fields and empty pools degrade to defaults and skipped slots; the
// engine itself never fails.
func (p *Planner) GenerateNutritionPlan(goal models.Goal, profile models.UserProfile, pool FoodPool) *models.MealPlan {
	targets := CalculateTargets(goal, profile)

	frequency := goal.NutritionGoals.MealFrequency
	if frequency < 3 {
		frequency = 3
	}

	return &models.MealPlan{
		ID:            uuid.New().String(),
		UserID:        goal.UserID,
		GoalID:        goal.ID,
		Name:          planName(goal.PrimaryGoal),
		CalorieTarget: targets.Calories,
		ProteinTarget: targets.ProteinGrams,
		CarbTarget:    targets.CarbGrams,
		FatTarget:     targets.FatGrams,
		Meals:         p.ComposeMeals(targets, frequency, pool),
		CreatedAt:     time.Now(),
	}
}

// GenerateWorkoutPlan selects the workout split for the goal and schedules
// the resulting templates onto the user's preferred days.
func (p *Planner) GenerateWorkoutPlan(goal models.Goal, profile models.UserProfile, exercises []models.Exercise) *WorkoutProgram {
	plans := BuildWorkoutTemplates(goal, profile, exercises)

	now := time.Now()
	for i := range plans {
		plans[i].ID = uuid.New().String()
		plans[i].UserID = goal.UserID
		plans[i].GoalID = goal.ID
		plans[i].CreatedAt = now
	}

	schedule := BuildSchedule(plans, profile.WorkoutPreferences, goal.WeeklyWorkoutFrequency)
	for i := range schedule {
		schedule[i].ID = uuid.New().String()
		schedule[i].UserID = goal.UserID
		schedule[i].CreatedAt = now
	}

	return &WorkoutProgram{Plans: plans, Schedule: schedule}
}

// pickFood selects one item uniformly at random from a pool. Repeated
// calls with identical inputs may pick different items; only the share
// and serving math is required to be deterministic.
func (p *Planner) pickFood(pool []models.FoodItem) (models.FoodItem, bool) {
	if len(pool) == 0 {
		return models.FoodItem{}, false
	}
	p.mu.Lock()
	i := p.rand.Intn(len(pool))
	p.mu.Unlock()
	return pool[i], true
}

func planName(goal models.FitnessGoal) string {
	switch goal {
	case models.GoalLoseWeight:
		return "Weight Loss Meal Plan"
	case models.GoalGainMuscle:
		return "Muscle Gain Meal Plan"
	default:
		return "Balanced Meal Plan"
	}
}
