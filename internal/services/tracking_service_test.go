package services

import (
	"testing"

	"github.com/healthhubhq/backend/internal/models"
)

func plan(week int, day string, completed, pending int) models.WorkoutPlan {
	p := models.WorkoutPlan{WeekNumber: week, DayOfWeek: day}
	for i := 0; i < completed; i++ {
		p.Exercises = append(p.Exercises, models.Exercise{Completed: true})
	}
	for i := 0; i < pending; i++ {
		p.Exercises = append(p.Exercises, models.Exercise{})
	}
	return p
}

func TestWorkoutProgressStats(t *testing.T) {
	plans := []models.WorkoutPlan{
		plan(1, "MON", 3, 0),
		plan(1, "WED", 1, 1),
		plan(2, "MON", 0, 2),
		plan(2, "FRI", 1, 2),
	}

	got := WorkoutProgressStats(plans)

	if got.TotalExercises != 10 {
		t.Errorf("TotalExercises = %d; want 10", got.TotalExercises)
	}
	if got.CompletedExercises != 5 {
		t.Errorf("CompletedExercises = %d; want 5", got.CompletedExercises)
	}
	if got.OverallRate != 50.0 {
		t.Errorf("OverallRate = %v; want 50.0", got.OverallRate)
	}

	if len(got.Weekly) != 2 {
		t.Fatalf("got %d weeks; want 2", len(got.Weekly))
	}
	if got.Weekly[0].WeekNumber != 1 || got.Weekly[0].CompletionRate != 80.0 {
		t.Errorf("week 1 = %+v; want rate 80.0", got.Weekly[0])
	}
	if got.Weekly[1].WeekNumber != 2 || got.Weekly[1].CompletionRate != 20.0 {
		t.Errorf("week 2 = %+v; want rate 20.0", got.Weekly[1])
	}

	// Daily stats follow the MON..SAT ordering and skip unused days.
	if len(got.Daily) != 3 {
		t.Fatalf("got %d days; want 3", len(got.Daily))
	}
	if got.Daily[0].Day != "MON" || got.Daily[1].Day != "WED" || got.Daily[2].Day != "FRI" {
		t.Errorf("day order = %v %v %v; want MON WED FRI", got.Daily[0].Day, got.Daily[1].Day, got.Daily[2].Day)
	}
	if got.Daily[0].CompletionRate != 60.0 {
		t.Errorf("MON rate = %v; want 60.0", got.Daily[0].CompletionRate)
	}
}

func TestWorkoutProgressStatsRounding(t *testing.T) {
	got := WorkoutProgressStats([]models.WorkoutPlan{plan(1, "TUE", 1, 2)})
	if got.OverallRate != 33.3 {
		t.Errorf("OverallRate = %v; want 33.3", got.OverallRate)
	}
}

func TestWorkoutProgressStatsEmpty(t *testing.T) {
	got := WorkoutProgressStats(nil)
	if got.TotalExercises != 0 || got.OverallRate != 0 {
		t.Errorf("empty plans = %+v; want zeros", got)
	}
	if len(got.Weekly) != 0 || len(got.Daily) != 0 {
		t.Error("empty plans must not produce week or day rows")
	}
}
