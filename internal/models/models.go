package models

import (
	"time"
)

// FitnessGoal is a user's primary training objective.
type FitnessGoal string

const (
	GoalLoseWeight       FitnessGoal = "lose-weight"
	GoalGainMuscle       FitnessGoal = "gain-muscle"
	GoalIncreaseStrength FitnessGoal = "increase-strength"
	GoalImproveEndurance FitnessGoal = "improve-endurance"
	GoalGeneralFitness   FitnessGoal = "general-fitness"
)

// MacroSplit allocates daily calories among the three macronutrients,
// expressed as percentages. A zero field means "not set".
type MacroSplit struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// NutritionGoals holds the user-stated nutrition targets on a Goal.
// DailyCalories of zero means the engine derives calories from the
// primary goal instead.
type NutritionGoals struct {
	DailyCalories float64    `json:"daily_calories"`
	MacroSplit    MacroSplit `json:"macro_split"`
	MealFrequency int        `json:"meal_frequency"` // meals per day, 3-5
}

// Goal is a user's stated fitness objective plus nutrition/workout targets.
type Goal struct {
	ID                     string         `json:"id"`
	UserID                 string         `json:"user_id"`
	PrimaryGoal            FitnessGoal    `json:"primary_goal"`
	SecondaryGoals         []FitnessGoal  `json:"secondary_goals,omitempty"`
	WeeklyWorkoutFrequency int            `json:"weekly_workout_frequency"` // 1-7
	NutritionGoals         NutritionGoals `json:"nutrition_goals"`
	Active                 bool           `json:"active"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// Equipment identifies a class of training equipment.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentKettlebell Equipment = "kettlebell"
)

// WorkoutPreferences holds the scheduling side of a user's profile.
type WorkoutPreferences struct {
	PreferredDays      []string    `json:"preferred_days,omitempty"` // lowercase weekday names
	EquipmentAvailable []Equipment `json:"equipment_available,omitempty"`
	PreferredTime      string      `json:"preferred_time,omitempty"` // "HH:MM"
}

// UserProfile is consumed read-only by the planning engine.
type UserProfile struct {
	ID                  string             `json:"id"`
	Gender              string             `json:"gender"`
	DietaryRestrictions []string           `json:"dietary_restrictions,omitempty"`
	WorkoutPreferences  WorkoutPreferences `json:"workout_preferences"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// FoodCategory drives pool membership during meal composition.
type FoodCategory string

const (
	CategoryProteins   FoodCategory = "proteins"
	CategoryFruits     FoodCategory = "fruits"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryGrains     FoodCategory = "grains"
	CategoryDairy      FoodCategory = "dairy"
	CategoryFats       FoodCategory = "fats"
	CategorySnacks     FoodCategory = "snacks"
)

// ServingSize is the unit one serving of a FoodItem is measured in.
type ServingSize struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// FoodItem describes one food with nutrition values per serving.
// DietaryTags lists the restriction profiles the item is suitable for
// (e.g. "vegetarian", "gluten-free"); the store's food query keeps only
// items tagged with every restriction the user declares.
type FoodItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Calories    float64      `json:"calories"` // kcal per serving
	Protein     float64      `json:"protein"`  // grams per serving
	Carbs       float64      `json:"carbs"`    // grams per serving
	Fat         float64      `json:"fat"`      // grams per serving
	Category    FoodCategory `json:"category"`
	ServingSize ServingSize  `json:"serving_size"`
	DietaryTags []string     `json:"dietary_tags,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ExerciseType classifies how an exercise loads the body.
type ExerciseType string

const (
	TypeCompound    ExerciseType = "compound"
	TypeIsolation   ExerciseType = "isolation"
	TypeCardio      ExerciseType = "cardio"
	TypeFlexibility ExerciseType = "flexibility"
)

// MuscleGroup is a coarse muscle bucket used for exercise selection.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleLegs      MuscleGroup = "legs"
	MuscleCore      MuscleGroup = "core"
)

// Exercise is one entry in the exercise catalog.
type Exercise struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Type            ExerciseType  `json:"type"`
	MuscleGroups    []MuscleGroup `json:"muscle_groups"`
	Equipment       Equipment     `json:"equipment"`
	DifficultyLevel string        `json:"difficulty_level"`
	CreatedAt       time.Time     `json:"created_at"`
}

// PlannedFood is one food slot inside a generated meal.
type PlannedFood struct {
	FoodItemID  string      `json:"food_item_id"`
	Name        string      `json:"name"`
	Quantity    float64     `json:"quantity"` // servings, multiples of 0.5
	ServingSize ServingSize `json:"serving_size"`
}

// PlannedMeal is one meal in a generated MealPlan. Calories is the sum of
// the selected items and is informational; it is not forced to equal the
// meal's calorie share.
type PlannedMeal struct {
	Name          string        `json:"name"`
	SuggestedTime string        `json:"suggested_time"`
	FoodItems     []PlannedFood `json:"food_items"`
	Calories      float64       `json:"calories"`
	Notes         string        `json:"notes,omitempty"`
}

// MealPlan is a generated nutrition artifact. A new plan is created on
// every generation call; plans are never updated in place.
type MealPlan struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	GoalID        string        `json:"goal_id,omitempty"`
	Name          string        `json:"name"`
	CalorieTarget float64       `json:"calorie_target"`
	ProteinTarget int           `json:"protein_target"` // grams
	CarbTarget    int           `json:"carb_target"`    // grams
	FatTarget     int           `json:"fat_target"`     // grams
	Meals         []PlannedMeal `json:"meals"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PlannedExercise is one exercise slot inside a workout template.
type PlannedExercise struct {
	ExerciseID      string `json:"exercise_id"`
	Name            string `json:"name"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	RestBetweenSets int    `json:"rest_between_sets"` // seconds
}

// WorkoutPlan is a reusable goal-derived workout template, distinct from a
// scheduled occurrence of it. The exercise list may be shorter than
// intended when the matching pool is empty; that is tolerated.
type WorkoutPlan struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	GoalID            string            `json:"goal_id,omitempty"`
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	Difficulty        string            `json:"difficulty"`
	Exercises         []PlannedExercise `json:"exercises"`
	EstimatedDuration int               `json:"estimated_duration"` // minutes
	CreatedAt         time.Time         `json:"created_at"`
}

// ScheduleEntry places one workout template on one weekday.
type ScheduleEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	DayOfWeek     string    `json:"day_of_week"`
	WorkoutPlanID string    `json:"workout_plan_id"`
	StartTime     string    `json:"start_time"` // "HH:MM"
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MealEntry is one logged food inside a NutritionDay meal. Nutrition
// values are captured at log time, scaled by Quantity.
type MealEntry struct {
	FoodItemID string  `json:"food_item_id,omitempty"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
}

// LoggedMeal groups the entries logged under one meal name.
type LoggedMeal struct {
	Name    string      `json:"name"`
	Entries []MealEntry `json:"entries"`
}

// DailySummary is the recomputed aggregate of a day's logged entries.
type DailySummary struct {
	TotalCalories     float64 `json:"total_calories"`
	TotalProtein      float64 `json:"total_protein"`
	TotalCarbs        float64 `json:"total_carbs"`
	TotalFat          float64 `json:"total_fat"`
	CaloriesRemaining float64 `json:"calories_remaining"`
}

// NutritionDay is the log of everything eaten on one date. The daily goal
// fields are copied from the active Goal when the day is first created and
// are never re-derived afterwards.
type NutritionDay struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	Date             string       `json:"date"` // "2006-01-02"
	Meals            []LoggedMeal `json:"meals"`
	DailyCalorieGoal float64      `json:"daily_calorie_goal"`
	DailyProteinGoal float64      `json:"daily_protein_goal"`
	DailyCarbGoal    float64      `json:"daily_carb_goal"`
	DailyFatGoal     float64      `json:"daily_fat_goal"`
	Summary          DailySummary `json:"daily_summary"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// SessionSet records one performed set within a workout session.
type SessionSet struct {
	ExerciseID string  `json:"exercise_id"`
	Weight     float64 `json:"weight,omitempty"`
	Reps       int     `json:"reps,omitempty"`
	Duration   int     `json:"duration,omitempty"` // seconds, for timed work
	Distance   float64 `json:"distance,omitempty"`
	RestAfter  int     `json:"rest_after,omitempty"` // seconds
	Completed  bool    `json:"completed"`
}

// WorkoutSession is an append-only log of a performed workout.
type WorkoutSession struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	WorkoutPlanID  string       `json:"workout_plan_id,omitempty"`
	Sets           []SessionSet `json:"sets"`
	StartTime      time.Time    `json:"start_time"`
	EndTime        time.Time    `json:"end_time"`
	CaloriesBurned float64      `json:"calories_burned,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
