// Package store persists fitplan records in SQLite and owns the
// record-level invariants the planning engine assumes: at most one active
// goal per user, and one nutrition day per (user, date).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/franckalain/fitplan/internal/models"
	"github.com/franckalain/fitplan/internal/planner"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDataUnavailable tags failures of the underlying data source so
// callers can tell them apart from engine behavior. The engine never
// masks these as generated-but-empty plans.
var ErrDataUnavailable = errors.New("data source unavailable")

// Store defines the persistence operations the request layer depends on.
type Store interface {
	// Goals. CreateGoal deactivates any previously active goal for the
	// same user in the same transaction.
	CreateGoal(ctx context.Context, goal *models.Goal) error
	ActiveGoal(ctx context.Context, userID string) (*models.Goal, error)

	// Profiles.
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	Profile(ctx context.Context, id string) (*models.UserProfile, error)

	// Catalog. ListFoodItems keeps only items tagged with every given
	// dietary restriction; ListExercises filters by equipment when the
	// set is non-empty.
	CreateFoodItem(ctx context.Context, item *models.FoodItem) error
	ListFoodItems(ctx context.Context, restrictions []string) ([]models.FoodItem, error)
	CreateExercise(ctx context.Context, ex *models.Exercise) error
	ListExercises(ctx context.Context, equipment []models.Equipment) ([]models.Exercise, error)

	// Generated artifacts. Each generation call stores new records;
	// nothing is updated in place.
	SaveMealPlan(ctx context.Context, plan *models.MealPlan) error
	SaveWorkoutProgram(ctx context.Context, program *planner.WorkoutProgram) error

	// Nutrition log. LogMeal find-or-creates the day for (user, date),
	// snapshotting the given goals on create, appends the meal's entries
	// and recomputes the daily summary inside one transaction.
	LogMeal(ctx context.Context, userID, date string, meal models.LoggedMeal, goals planner.Targets) (*models.NutritionDay, error)
	NutritionDay(ctx context.Context, userID, date string) (*models.NutritionDay, error)
	RecentNutritionDays(ctx context.Context, userID string, limit int) ([]*models.NutritionDay, error)

	// Workout log, append-only.
	SaveWorkoutSession(ctx context.Context, session *models.WorkoutSession) error

	Close() error
}

func dataErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}
