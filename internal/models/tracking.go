package models

import (
	"time"

	"github.com/google/uuid"
)

// Weekday codes used by workout plans (no Sunday sessions).
var WorkoutDays = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT"}

func ValidWorkoutDay(day string) bool {
	for _, d := range WorkoutDays {
		if d == day {
			return true
		}
	}
	return false
}

// WorkoutPlan is one day of a member's weekly plan; unique per
// (membership, week, day).
type WorkoutPlan struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MembershipID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workout_plans_week_day" json:"membership_id"`
	WeekNumber   int       `gorm:"not null;uniqueIndex:idx_workout_plans_week_day" json:"week_number"`
	DayOfWeek    string    `gorm:"size:3;not null;uniqueIndex:idx_workout_plans_week_day" json:"day_of_week"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`

	Membership Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"-"`
	Exercises  []Exercise `gorm:"foreignKey:WorkoutPlanID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

// ExerciseType categorizes a workout exercise.
type ExerciseType string

const (
	ExerciseCardio      ExerciseType = "CARDIO"
	ExerciseStrength    ExerciseType = "STRENGTH"
	ExerciseFlexibility ExerciseType = "FLEXIBILITY"
	ExerciseHIIT        ExerciseType = "HIIT"
	ExerciseYoga        ExerciseType = "YOGA"
	ExerciseCore        ExerciseType = "CORE"
)

func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseCardio, ExerciseStrength, ExerciseFlexibility, ExerciseHIIT, ExerciseYoga, ExerciseCore:
		return true
	}
	return false
}

// Exercise is a single entry in a workout plan, completable only by the
// owning member.
type Exercise struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkoutPlanID uuid.UUID    `gorm:"type:uuid;not null;index" json:"workout_plan_id"`
	Name          string       `gorm:"size:200;not null" json:"name"`
	ExerciseType  ExerciseType `gorm:"size:20;not null" json:"exercise_type"`
	Sets          int          `gorm:"default:1" json:"sets"`
	Reps          int          `gorm:"default:1" json:"reps"`
	Description   string       `gorm:"type:text" json:"description,omitempty"`
	SortOrder     int          `gorm:"default:0" json:"sort_order"`
	Completed     bool         `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`

	WorkoutPlan WorkoutPlan `gorm:"foreignKey:WorkoutPlanID;constraint:OnDelete:CASCADE" json:"-"`
}

// ProteinIntake is the daily shake log, upserted by natural key
// (membership, date).
type ProteinIntake struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MembershipID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_protein_membership_date" json:"membership_id"`
	Date             time.Time  `gorm:"type:date;not null;uniqueIndex:idx_protein_membership_date" json:"date"`
	MorningIntake    bool       `gorm:"default:false" json:"morning_intake"`
	EveningIntake    bool       `gorm:"default:false" json:"evening_intake"`
	Notes            string     `gorm:"type:text" json:"notes,omitempty"`
	UpdatedByAdminID *uuid.UUID `gorm:"type:uuid" json:"updated_by_admin,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Membership Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"-"`
}

// CheckupStatus tracks a scheduled medical checkup.
type CheckupStatus string

const (
	CheckupScheduled CheckupStatus = "SCHEDULED"
	CheckupCompleted CheckupStatus = "COMPLETED"
	CheckupCancelled CheckupStatus = "CANCELLED"
)

func (s CheckupStatus) Valid() bool {
	switch s {
	case CheckupScheduled, CheckupCompleted, CheckupCancelled:
		return true
	}
	return false
}

// MedicalCheckup is an append-only log entry per membership.
type MedicalCheckup struct {
	ID               uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MembershipID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"membership_id"`
	CheckupDate      time.Time     `gorm:"type:date;not null" json:"checkup_date"`
	CheckupType      string        `gorm:"size:200;not null" json:"checkup_type"`
	Status           CheckupStatus `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
	Findings         string        `gorm:"type:text" json:"findings,omitempty"`
	Recommendations  string        `gorm:"type:text" json:"recommendations,omitempty"`
	NextCheckupDate  *time.Time    `gorm:"type:date" json:"next_checkup_date,omitempty"`
	ConductedBy      string        `gorm:"size:200" json:"conducted_by,omitempty"`
	UpdatedByAdminID *uuid.UUID    `gorm:"type:uuid" json:"updated_by_admin,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Membership Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"-"`
}
