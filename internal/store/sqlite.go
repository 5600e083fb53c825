package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/franckalain/fitplan/internal/models"
	"github.com/franckalain/fitplan/internal/planner"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore implements the Store interface.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) a SQLite database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Foreign keys and WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("error enabling WAL mode: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initializeSchema(db *sql.DB) error {
	schemaBytes, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}

	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("error executing schema: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGoal inserts a goal and deactivates any previously active goal for
// the user in the same transaction, so at most one goal per user is active.
func (s *SQLiteStore) CreateGoal(ctx context.Context, goal *models.Goal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dataErr("begin create goal", err)
	}
	defer tx.Rollback()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now
	goal.Active = true

	if _, err := tx.ExecContext(ctx,
		`UPDATE goals SET active = 0, updated_at = ? WHERE user_id = ? AND active = 1`,
		now.Format(time.RFC3339), goal.UserID,
	); err != nil {
		return dataErr("deactivating previous goals", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO goals (
			id, user_id, primary_goal, secondary_goals, weekly_workout_frequency,
			daily_calories, macro_protein, macro_carbs, macro_fat, meal_frequency,
			active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		goal.ID, goal.UserID, string(goal.PrimaryGoal), marshalJSON(goal.SecondaryGoals),
		goal.WeeklyWorkoutFrequency, goal.NutritionGoals.DailyCalories,
		goal.NutritionGoals.MacroSplit.Protein, goal.NutritionGoals.MacroSplit.Carbs,
		goal.NutritionGoals.MacroSplit.Fat, goal.NutritionGoals.MealFrequency,
		goal.CreatedAt.Format(time.RFC3339), goal.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return dataErr("inserting goal", err)
	}

	if err := tx.Commit(); err != nil {
		return dataErr("committing goal", err)
	}
	return nil
}

// ActiveGoal returns the user's single active goal, newest first in case
// legacy rows predate the deactivate-on-create rule.
func (s *SQLiteStore) ActiveGoal(ctx context.Context, userID string) (*models.Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, primary_goal, secondary_goals, weekly_workout_frequency,
			daily_calories, macro_protein, macro_carbs, macro_fat, meal_frequency,
			active, created_at, updated_at
		FROM goals WHERE user_id = ? AND active = 1
		ORDER BY created_at DESC LIMIT 1`, userID)

	goal, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dataErr("querying active goal", err)
	}
	return goal, nil
}

func scanGoal(row *sql.Row) (*models.Goal, error) {
	var goal models.Goal
	var primary, secondary, createdAt, updatedAt string
	var active int
	err := row.Scan(
		&goal.ID, &goal.UserID, &primary, &secondary, &goal.WeeklyWorkoutFrequency,
		&goal.NutritionGoals.DailyCalories, &goal.NutritionGoals.MacroSplit.Protein,
		&goal.NutritionGoals.MacroSplit.Carbs, &goal.NutritionGoals.MacroSplit.Fat,
		&goal.NutritionGoals.MealFrequency, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	goal.PrimaryGoal = models.FitnessGoal(primary)
	goal.Active = active == 1
	unmarshalJSON(secondary, &goal.SecondaryGoals)
	goal.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	goal.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &goal, nil
}

// SaveProfile upserts a user profile.
func (s *SQLiteStore) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	now := time.Now()
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (
			id, gender, dietary_restrictions, preferred_days, equipment_available,
			preferred_time, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			gender = excluded.gender,
			dietary_restrictions = excluded.dietary_restrictions,
			preferred_days = excluded.preferred_days,
			equipment_available = excluded.equipment_available,
			preferred_time = excluded.preferred_time,
			updated_at = excluded.updated_at`,
		profile.ID, profile.Gender, marshalJSON(profile.DietaryRestrictions),
		marshalJSON(profile.WorkoutPreferences.PreferredDays),
		marshalJSON(profile.WorkoutPreferences.EquipmentAvailable),
		profile.WorkoutPreferences.PreferredTime,
		profile.CreatedAt.Format(time.RFC3339), profile.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return dataErr("saving profile", err)
	}
	return nil
}

// Profile retrieves a user profile by id.
func (s *SQLiteStore) Profile(ctx context.Context, id string) (*models.UserProfile, error) {
	var p models.UserProfile
	var restrictions, days, equipment, createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, gender, dietary_restrictions, preferred_days, equipment_available,
			preferred_time, created_at, updated_at
		FROM user_profiles WHERE id = ?`, id).Scan(
		&p.ID, &p.Gender, &restrictions, &days, &equipment,
		&p.WorkoutPreferences.PreferredTime, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dataErr("querying profile", err)
	}
	unmarshalJSON(restrictions, &p.DietaryRestrictions)
	unmarshalJSON(days, &p.WorkoutPreferences.PreferredDays)
	unmarshalJSON(equipment, &p.WorkoutPreferences.EquipmentAvailable)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// CreateFoodItem inserts one catalog food item.
func (s *SQLiteStore) CreateFoodItem(ctx context.Context, item *models.FoodItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO food_items (
			id, name, calories, protein, carbs, fat, category,
			serving_value, serving_unit, dietary_tags, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Calories, item.Protein, item.Carbs, item.Fat,
		string(item.Category), item.ServingSize.Value, item.ServingSize.Unit,
		marshalJSON(item.DietaryTags), item.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return dataErr("inserting food item", err)
	}
	return nil
}

// ListFoodItems returns the food catalog filtered by dietary restrictions:
// an item survives only if its tags include every given restriction.
func (s *SQLiteStore) ListFoodItems(ctx context.Context, restrictions []string) ([]models.FoodItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, calories, protein, carbs, fat, category,
			serving_value, serving_unit, dietary_tags, created_at
		FROM food_items ORDER BY name ASC`)
	if err != nil {
		return nil, dataErr("querying food items", err)
	}
	defer rows.Close()

	var items []models.FoodItem
	for rows.Next() {
		var item models.FoodItem
		var category, tags, createdAt string
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Calories, &item.Protein, &item.Carbs, &item.Fat,
			&category, &item.ServingSize.Value, &item.ServingSize.Unit, &tags, &createdAt,
		); err != nil {
			return nil, dataErr("scanning food item", err)
		}
		item.Category = models.FoodCategory(category)
		unmarshalJSON(tags, &item.DietaryTags)
		item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		if suitableFor(item.DietaryTags, restrictions) {
			items = append(items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("iterating food items", err)
	}
	return items, nil
}

func suitableFor(tags, restrictions []string) bool {
	for _, r := range restrictions {
		found := false
		for _, t := range tags {
			if t == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CreateExercise inserts one catalog exercise.
func (s *SQLiteStore) CreateExercise(ctx context.Context, ex *models.Exercise) error {
	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercises (
			id, name, type, muscle_groups, equipment, difficulty_level, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.Name, string(ex.Type), marshalJSON(ex.MuscleGroups),
		string(ex.Equipment), ex.DifficultyLevel, ex.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return dataErr("inserting exercise", err)
	}
	return nil
}

// ListExercises returns the exercise catalog, restricted to the given
// equipment when the set is non-empty.
func (s *SQLiteStore) ListExercises(ctx context.Context, equipment []models.Equipment) ([]models.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, muscle_groups, equipment, difficulty_level, created_at
		FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, dataErr("querying exercises", err)
	}
	defer rows.Close()

	allowed := make(map[models.Equipment]bool, len(equipment))
	for _, e := range equipment {
		allowed[e] = true
	}

	var exercises []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		var exType, groups, equip, createdAt string
		if err := rows.Scan(&ex.ID, &ex.Name, &exType, &groups, &equip, &ex.DifficultyLevel, &createdAt); err != nil {
			return nil, dataErr("scanning exercise", err)
		}
		ex.Type = models.ExerciseType(exType)
		ex.Equipment = models.Equipment(equip)
		unmarshalJSON(groups, &ex.MuscleGroups)
		ex.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		if len(allowed) > 0 && !allowed[ex.Equipment] {
			continue
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("iterating exercises", err)
	}
	return exercises, nil
}

// SaveMealPlan stores a generated meal plan as a new record.
func (s *SQLiteStore) SaveMealPlan(ctx context.Context, plan *models.MealPlan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meal_plans (
			id, user_id, goal_id, name, calorie_target, protein_target,
			carb_target, fat_target, meals, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.UserID, plan.GoalID, plan.Name, plan.CalorieTarget,
		plan.ProteinTarget, plan.CarbTarget, plan.FatTarget,
		marshalJSON(plan.Meals), plan.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return dataErr("inserting meal plan", err)
	}
	return nil
}

// SaveWorkoutProgram stores the generated templates and schedule entries.
func (s *SQLiteStore) SaveWorkoutProgram(ctx context.Context, program *planner.WorkoutProgram) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dataErr("begin save workout program", err)
	}
	defer tx.Rollback()

	for _, plan := range program.Plans {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO workout_plans (
				id, user_id, goal_id, name, type, difficulty, exercises,
				estimated_duration, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			plan.ID, plan.UserID, plan.GoalID, plan.Name, plan.Type, plan.Difficulty,
			marshalJSON(plan.Exercises), plan.EstimatedDuration,
			plan.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return dataErr("inserting workout plan", err)
		}
	}

	for _, entry := range program.Schedule {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_entries (
				id, user_id, day_of_week, workout_plan_id, start_time, notes, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.UserID, entry.DayOfWeek, entry.WorkoutPlanID,
			entry.StartTime, entry.Notes, entry.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return dataErr("inserting schedule entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return dataErr("committing workout program", err)
	}
	return nil
}

// LogMeal appends a meal's entries to the day's log, creating the day with
// goal snapshots on first use, and recomputes the daily summary before
// committing. Entries logged under an existing meal name merge into that
// meal.
func (s *SQLiteStore) LogMeal(ctx context.Context, userID, date string, meal models.LoggedMeal, goals planner.Targets) (*models.NutritionDay, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, dataErr("begin log meal", err)
	}
	defer tx.Rollback()

	now := time.Now()
	day, err := scanNutritionDay(tx.QueryRowContext(ctx,
		nutritionDaySelect+` WHERE user_id = ? AND date = ?`, userID, date))
	if err == sql.ErrNoRows {
		calories, protein, carbs, fat := planner.DayGoals(goals)
		day = &models.NutritionDay{
			ID:               uuid.New().String(),
			UserID:           userID,
			Date:             date,
			DailyCalorieGoal: calories,
			DailyProteinGoal: protein,
			DailyCarbGoal:    carbs,
			DailyFatGoal:     fat,
			CreatedAt:        now,
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO nutrition_days (
				id, user_id, date, meals, calorie_goal, protein_goal, carb_goal,
				fat_goal, created_at, updated_at
			) VALUES (?, ?, ?, '[]', ?, ?, ?, ?, ?, ?)`,
			day.ID, day.UserID, day.Date, day.DailyCalorieGoal, day.DailyProteinGoal,
			day.DailyCarbGoal, day.DailyFatGoal,
			now.Format(time.RFC3339), now.Format(time.RFC3339),
		); err != nil {
			return nil, dataErr("creating nutrition day", err)
		}
	} else if err != nil {
		return nil, dataErr("querying nutrition day", err)
	}

	merged := false
	for i := range day.Meals {
		if day.Meals[i].Name == meal.Name {
			day.Meals[i].Entries = append(day.Meals[i].Entries, meal.Entries...)
			merged = true
			break
		}
	}
	if !merged {
		day.Meals = append(day.Meals, meal)
	}

	day.Summary = planner.Summarize(day.Meals, day.DailyCalorieGoal)
	day.UpdatedAt = now

	if _, err := tx.ExecContext(ctx, `
		UPDATE nutrition_days SET
			meals = ?, total_calories = ?, total_protein = ?, total_carbs = ?,
			total_fat = ?, calories_remaining = ?, updated_at = ?
		WHERE id = ?`,
		marshalJSON(day.Meals), day.Summary.TotalCalories, day.Summary.TotalProtein,
		day.Summary.TotalCarbs, day.Summary.TotalFat, day.Summary.CaloriesRemaining,
		day.UpdatedAt.Format(time.RFC3339), day.ID,
	); err != nil {
		return nil, dataErr("updating nutrition day", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, dataErr("committing meal log", err)
	}
	return day, nil
}

const nutritionDaySelect = `
	SELECT id, user_id, date, meals, calorie_goal, protein_goal, carb_goal,
		fat_goal, total_calories, total_protein, total_carbs, total_fat,
		calories_remaining, created_at, updated_at
	FROM nutrition_days`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNutritionDay(row rowScanner) (*models.NutritionDay, error) {
	var day models.NutritionDay
	var meals, createdAt, updatedAt string
	err := row.Scan(
		&day.ID, &day.UserID, &day.Date, &meals, &day.DailyCalorieGoal,
		&day.DailyProteinGoal, &day.DailyCarbGoal, &day.DailyFatGoal,
		&day.Summary.TotalCalories, &day.Summary.TotalProtein,
		&day.Summary.TotalCarbs, &day.Summary.TotalFat,
		&day.Summary.CaloriesRemaining, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	unmarshalJSON(meals, &day.Meals)
	day.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	day.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &day, nil
}

// NutritionDay retrieves one day's log.
func (s *SQLiteStore) NutritionDay(ctx context.Context, userID, date string) (*models.NutritionDay, error) {
	day, err := scanNutritionDay(s.db.QueryRowContext(ctx,
		nutritionDaySelect+` WHERE user_id = ? AND date = ?`, userID, date))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dataErr("querying nutrition day", err)
	}
	return day, nil
}

// RecentNutritionDays retrieves the most recent logged days, newest first.
func (s *SQLiteStore) RecentNutritionDays(ctx context.Context, userID string, limit int) ([]*models.NutritionDay, error) {
	rows, err := s.db.QueryContext(ctx,
		nutritionDaySelect+` WHERE user_id = ? ORDER BY date DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, dataErr("querying nutrition days", err)
	}
	defer rows.Close()

	var days []*models.NutritionDay
	for rows.Next() {
		day, err := scanNutritionDay(rows)
		if err != nil {
			return nil, dataErr("scanning nutrition day", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("iterating nutrition days", err)
	}
	return days, nil
}

// SaveWorkoutSession appends one completed session; sessions are never
// mutated after this.
func (s *SQLiteStore) SaveWorkoutSession(ctx context.Context, session *models.WorkoutSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workout_sessions (
			id, user_id, workout_plan_id, sets, start_time, end_time,
			calories_burned, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.WorkoutPlanID, marshalJSON(session.Sets),
		session.StartTime.Format(time.RFC3339), session.EndTime.Format(time.RFC3339),
		session.CaloriesBurned, session.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return dataErr("inserting workout session", err)
	}
	return nil
}

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return "[]"
	}
	return string(data)
}

func unmarshalJSON(data string, v any) {
	if data == "" {
		return
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		log.Printf("Error decoding stored JSON: %v", err)
	}
}
