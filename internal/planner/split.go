package planner

import (
	"github.com/franckalain/fitplan/internal/models"
)

// fullBodyGroups is the canonical bucket order for full-body selection.
var fullBodyGroups = []models.MuscleGroup{
	models.MuscleChest,
	models.MuscleBack,
	models.MuscleShoulders,
	models.MuscleLegs,
	models.MuscleCore,
}

// splitStrategy builds the workout templates for one goal category.
type splitStrategy interface {
	templates(pool []models.Exercise, prefs models.WorkoutPreferences) []models.WorkoutPlan
}

// strategyFor maps a primary goal to its split strategy.
func strategyFor(goal models.FitnessGoal) splitStrategy {
	switch goal {
	case models.GoalGainMuscle, models.GoalIncreaseStrength:
		return pushPullLegsStrategy{}
	case models.GoalLoseWeight:
		return weightLossStrategy{}
	default:
		return generalFitnessStrategy{}
	}
}

// BuildWorkoutTemplates maps the goal to a workout-type taxonomy and emits
// the named templates for it. Empty muscle-group buckets or an empty
// cardio pool leave the corresponding slots out; templates keep their
// name, type and difficulty even with no exercises at all.
func BuildWorkoutTemplates(goal models.Goal, profile models.UserProfile, pool []models.Exercise) []models.WorkoutPlan {
	return strategyFor(goal.PrimaryGoal).templates(pool, profile.WorkoutPreferences)
}

// pushPullLegsStrategy covers gain-muscle and increase-strength.
type pushPullLegsStrategy struct{}

func (pushPullLegsStrategy) templates(pool []models.Exercise, prefs models.WorkoutPreferences) []models.WorkoutPlan {
	lifting := filterExercises(pool, prefs.EquipmentAvailable, models.TypeCompound, models.TypeIsolation)
	buckets := bucketByMuscleGroup(lifting)

	push := models.WorkoutPlan{Name: "Push Day", Type: "strength", Difficulty: "intermediate", EstimatedDuration: 60}
	appendSlots(&push, firstN(buckets[models.MuscleChest], 2), 4, 8, 90)
	appendSlots(&push, firstN(buckets[models.MuscleShoulders], 2), 3, 10, 60)
	appendSlots(&push, firstN(buckets[models.MuscleTriceps], 2), 3, 12, 60)

	pull := models.WorkoutPlan{Name: "Pull Day", Type: "strength", Difficulty: "intermediate", EstimatedDuration: 60}
	appendSlots(&pull, firstN(buckets[models.MuscleBack], 3), 4, 8, 90)
	appendSlots(&pull, firstN(buckets[models.MuscleBiceps], 2), 3, 12, 60)

	legs := models.WorkoutPlan{Name: "Leg Day", Type: "strength", Difficulty: "intermediate", EstimatedDuration: 60}
	appendSlots(&legs, firstN(buckets[models.MuscleLegs], 4), 4, 10, 90)
	appendSlots(&legs, firstN(buckets[models.MuscleCore], 2), 3, 15, 45)

	return []models.WorkoutPlan{push, pull, legs}
}

// weightLossStrategy covers lose-weight.
type weightLossStrategy struct{}

func (weightLossStrategy) templates(pool []models.Exercise, prefs models.WorkoutPreferences) []models.WorkoutPlan {
	cardio := filterExercises(pool, nil, models.TypeCardio)
	buckets := bucketByMuscleGroup(filterExercises(pool, prefs.EquipmentAvailable, models.TypeCompound, models.TypeIsolation))

	// 10 working intervals of 30s on / 15s off, modeled as 10x1 with 15s rest.
	hiit := models.WorkoutPlan{Name: "HIIT Cardio", Type: "cardio", Difficulty: "intermediate", EstimatedDuration: 20}
	appendSlots(&hiit, firstN(cardio, 1), 10, 1, 15)

	circuit := models.WorkoutPlan{Name: "Full Body Circuit", Type: "circuit", Difficulty: "beginner", EstimatedDuration: 30}
	for _, group := range fullBodyGroups {
		appendSlots(&circuit, firstN(buckets[group], 1), 3, 15, 30)
	}

	steady := models.WorkoutPlan{Name: "Steady State Cardio", Type: "cardio", Difficulty: "beginner", EstimatedDuration: 40}
	appendSlots(&steady, firstN(cardio, 1), 1, 1, 0)

	return []models.WorkoutPlan{hiit, circuit, steady}
}

// generalFitnessStrategy covers every remaining goal.
type generalFitnessStrategy struct{}

func (generalFitnessStrategy) templates(pool []models.Exercise, prefs models.WorkoutPreferences) []models.WorkoutPlan {
	cardio := filterExercises(pool, nil, models.TypeCardio)
	buckets := bucketByMuscleGroup(filterExercises(pool, prefs.EquipmentAvailable))

	planA := models.WorkoutPlan{Name: "Full Body Workout A", Type: "general", Difficulty: "beginner", EstimatedDuration: 45}
	for _, group := range fullBodyGroups {
		if ex, ok := preferCompound(buckets[group]); ok {
			appendSlots(&planA, []models.Exercise{ex}, 3, 10, 60)
		}
	}

	planB := models.WorkoutPlan{Name: "Full Body Workout B", Type: "general", Difficulty: "beginner", EstimatedDuration: 45}
	for _, group := range fullBodyGroups {
		if ex, ok := secondOrFirst(buckets[group]); ok {
			appendSlots(&planB, []models.Exercise{ex}, 3, 12, 60)
		}
	}

	session := models.WorkoutPlan{Name: "Cardio Session", Type: "cardio", Difficulty: "beginner", EstimatedDuration: 30}
	appendSlots(&session, firstN(cardio, 1), 1, 1, 0)

	return []models.WorkoutPlan{planA, planB, session}
}

// filterExercises keeps exercises matching the given equipment set (empty
// set allows all) and any of the given types (no types allows all).
func filterExercises(pool []models.Exercise, equipment []models.Equipment, types ...models.ExerciseType) []models.Exercise {
	var out []models.Exercise
	for _, ex := range pool {
		if len(equipment) > 0 && !containsEquipment(equipment, ex.Equipment) {
			continue
		}
		if len(types) > 0 && !containsType(types, ex.Type) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func containsEquipment(set []models.Equipment, e models.Equipment) bool {
	for _, v := range set {
		if v == e {
			return true
		}
	}
	return false
}

func containsType(set []models.ExerciseType, t models.ExerciseType) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func bucketByMuscleGroup(pool []models.Exercise) map[models.MuscleGroup][]models.Exercise {
	buckets := make(map[models.MuscleGroup][]models.Exercise)
	for _, ex := range pool {
		for _, group := range ex.MuscleGroups {
			buckets[group] = append(buckets[group], ex)
		}
	}
	return buckets
}

// firstN slices the first n matches; there is no further ranking.
func firstN(pool []models.Exercise, n int) []models.Exercise {
	if len(pool) < n {
		return pool
	}
	return pool[:n]
}

func preferCompound(pool []models.Exercise) (models.Exercise, bool) {
	for _, ex := range pool {
		if ex.Type == models.TypeCompound {
			return ex, true
		}
	}
	if len(pool) > 0 {
		return pool[0], true
	}
	return models.Exercise{}, false
}

func secondOrFirst(pool []models.Exercise) (models.Exercise, bool) {
	if len(pool) > 1 {
		return pool[1], true
	}
	if len(pool) == 1 {
		return pool[0], true
	}
	return models.Exercise{}, false
}

func appendSlots(plan *models.WorkoutPlan, exercises []models.Exercise, sets, reps, rest int) {
	for _, ex := range exercises {
		plan.Exercises = append(plan.Exercises, models.PlannedExercise{
			ExerciseID:      ex.ID,
			Name:            ex.Name,
			Sets:            sets,
			Reps:            reps,
			RestBetweenSets: rest,
		})
	}
}
