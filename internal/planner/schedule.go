package planner

import (
	"github.com/franckalain/fitplan/internal/models"
)

var defaultWorkoutDays = []string{"monday", "wednesday", "friday", "saturday"}

const defaultStartTime = "18:00"

// BuildSchedule assigns the generated templates to the user's preferred
// days, cycling through templates when the weekly frequency exceeds the
// template count. Unset preferences fall back to a Mon/Wed/Fri/Sat default
// and an 18:00 start time.
func BuildSchedule(plans []models.WorkoutPlan, prefs models.WorkoutPreferences, weeklyFrequency int) []models.ScheduleEntry {
	if len(plans) == 0 || weeklyFrequency < 1 {
		return nil
	}

	days := prefs.PreferredDays
	if len(days) == 0 {
		days = defaultWorkoutDays
	}
	if weeklyFrequency < len(days) {
		days = days[:weeklyFrequency]
	}

	startTime := prefs.PreferredTime
	if startTime == "" {
		startTime = defaultStartTime
	}

	entries := make([]models.ScheduleEntry, 0, len(days))
	for i, day := range days {
		plan := plans[i%len(plans)]
		entries = append(entries, models.ScheduleEntry{
			DayOfWeek:     day,
			WorkoutPlanID: plan.ID,
			StartTime:     startTime,
			Notes:         plan.Name,
		})
	}
	return entries
}
