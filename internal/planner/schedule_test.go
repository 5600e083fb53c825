package planner

import (
	"testing"

	"github.com/franckalain/fitplan/internal/models"
)

func namedPlans(ids ...string) []models.WorkoutPlan {
	plans := make([]models.WorkoutPlan, len(ids))
	for i, id := range ids {
		plans[i] = models.WorkoutPlan{ID: id, Name: id}
	}
	return plans
}

func TestBuildScheduleCyclesTemplates(t *testing.T) {
	prefs := models.WorkoutPreferences{
		PreferredDays: []string{"monday", "tuesday", "thursday", "friday", "sunday"},
		PreferredTime: "06:30",
	}

	entries := BuildSchedule(namedPlans("t0", "t1", "t2"), prefs, 5)

	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	wantPlans := []string{"t0", "t1", "t2", "t0", "t1"}
	for i, want := range wantPlans {
		if entries[i].WorkoutPlanID != want {
			t.Errorf("entry %d plan = %q, want %q", i, entries[i].WorkoutPlanID, want)
		}
		if entries[i].DayOfWeek != prefs.PreferredDays[i] {
			t.Errorf("entry %d day = %q, want %q", i, entries[i].DayOfWeek, prefs.PreferredDays[i])
		}
		if entries[i].StartTime != "06:30" {
			t.Errorf("entry %d start time = %q, want 06:30", i, entries[i].StartTime)
		}
	}
}

func TestBuildScheduleDefaults(t *testing.T) {
	entries := BuildSchedule(namedPlans("a", "b", "c"), models.WorkoutPreferences{}, 3)

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	wantDays := []string{"monday", "wednesday", "friday"}
	for i, day := range wantDays {
		if entries[i].DayOfWeek != day {
			t.Errorf("entry %d day = %q, want %q", i, entries[i].DayOfWeek, day)
		}
		if entries[i].StartTime != "18:00" {
			t.Errorf("entry %d start time = %q, want 18:00", i, entries[i].StartTime)
		}
	}
}

func TestBuildScheduleFrequencyExceedsDays(t *testing.T) {
	// Only four default days exist, so a frequency of 7 yields four entries.
	entries := BuildSchedule(namedPlans("a", "b"), models.WorkoutPreferences{}, 7)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
}

func TestBuildScheduleEmptyInputs(t *testing.T) {
	if entries := BuildSchedule(nil, models.WorkoutPreferences{}, 3); entries != nil {
		t.Errorf("expected no schedule without templates, got %v", entries)
	}
	if entries := BuildSchedule(namedPlans("a"), models.WorkoutPreferences{}, 0); entries != nil {
		t.Errorf("expected no schedule for zero frequency, got %v", entries)
	}
}
