package dto

import (
	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/models"
)

// ExerciseInput is one exercise inside a workout plan day.
type ExerciseInput struct {
	Name         string              `json:"name" validate:"required,max=200"`
	ExerciseType models.ExerciseType `json:"exercise_type" validate:"required,oneof=CARDIO STRENGTH FLEXIBILITY HIIT YOGA CORE"`
	Sets         int                 `json:"sets" validate:"gte=1"`
	Reps         int                 `json:"reps" validate:"gte=1"`
	Description  string              `json:"description"`
}

// WorkoutDayInput is one day of the weekly plan.
type WorkoutDayInput struct {
	DayOfWeek string          `json:"day_of_week" validate:"required,oneof=MON TUE WED THU FRI SAT"`
	Exercises []ExerciseInput `json:"exercises" validate:"dive"`
}

// CreateWorkoutPlanRequest creates (or extends) one week of plans for an
// L2 member.
type CreateWorkoutPlanRequest struct {
	WeekNumber int               `json:"week_number" validate:"required,gte=1"`
	StartDate  string            `json:"start_date" validate:"required,datetime=2006-01-02"`
	Days       []WorkoutDayInput `json:"days" validate:"required,min=1,dive"`
}

// UpsertProteinIntakeRequest records a day's shake intake by natural key.
type UpsertProteinIntakeRequest struct {
	MembershipID uuid.UUID `json:"membership_id" validate:"required"`
	Date         string    `json:"date" validate:"required,datetime=2006-01-02"`
	Morning      bool      `json:"morning"`
	Evening      bool      `json:"evening"`
	Notes        string    `json:"notes"`
}

// AddMedicalCheckupRequest appends a checkup record to a membership.
type AddMedicalCheckupRequest struct {
	CheckupDate     string               `json:"checkup_date" validate:"required,datetime=2006-01-02"`
	CheckupType     string               `json:"checkup_type" validate:"required,max=200"`
	Status          models.CheckupStatus `json:"status" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
	Findings        string               `json:"findings"`
	Recommendations string               `json:"recommendations"`
	NextCheckupDate string               `json:"next_checkup_date" validate:"omitempty,datetime=2006-01-02"`
	ConductedBy     string               `json:"conducted_by"`
}

// ToggleExerciseResponse reports the new completion state.
type ToggleExerciseResponse struct {
	ExerciseID  uuid.UUID `json:"exercise_id"`
	Completed   bool      `json:"completed"`
	CompletedAt *string   `json:"completed_at,omitempty"`
}

// WeekStats is one week's workout completion summary.
type WeekStats struct {
	WeekNumber         int     `json:"week_number"`
	TotalExercises     int     `json:"total_exercises"`
	CompletedExercises int     `json:"completed_exercises"`
	CompletionRate     float64 `json:"completion_rate"`
}

// DayStats is one weekday's completion summary across all weeks.
type DayStats struct {
	Day                string  `json:"day"`
	TotalExercises     int     `json:"total_exercises"`
	CompletedExercises int     `json:"completed_exercises"`
	CompletionRate     float64 `json:"completion_rate"`
}

// WorkoutProgressResponse is the L2 progress chart payload.
type WorkoutProgressResponse struct {
	Weekly             []WeekStats `json:"weekly"`
	Daily              []DayStats  `json:"daily"`
	TotalExercises     int         `json:"total_exercises"`
	CompletedExercises int         `json:"completed_exercises"`
	OverallRate        float64     `json:"overall_rate"`
}

// ManagedUserDataResponse is the admin view over one member's tracking data.
type ManagedUserDataResponse struct {
	UserID          uuid.UUID               `json:"user_id"`
	FullName        string                  `json:"full_name"`
	Membership      *models.Membership      `json:"membership"`
	WorkoutPlans    []models.WorkoutPlan    `json:"workout_plans"`
	ProteinIntakes  []models.ProteinIntake  `json:"protein_intakes"`
	MedicalCheckups []models.MedicalCheckup `json:"medical_checkups"`
}
