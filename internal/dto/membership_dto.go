package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/models"
)

// RegisterMemberRequest creates a member account with its membership in
// one transaction. Addons apply to tier L3 only; the TRAINER addon needs
// a valid approved trainer id.
type RegisterMemberRequest struct {
	FullName    string `json:"full_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`

	Tier           billing.Tier `json:"tier" validate:"required,oneof=L1 L2 L3"`
	Age            int          `json:"age" validate:"required,gte=12,lte=100"`
	CurrentWeight  float64      `json:"current_weight" validate:"gte=0"`
	JoinDate       string       `json:"join_date" validate:"required,datetime=2006-01-02"`
	MedicalHistory string       `json:"medical_history"`

	PrepayMonthly  bool `json:"prepay_monthly"`
	MonthsSelected int  `json:"months_selected" validate:"gte=0,lte=24"`
	ExtraProtein   bool `json:"extra_protein"`

	Addons            []models.AddonType `json:"addons" validate:"dive,oneof=TRAINER ZUMBA NUTRITION WELLNESS"`
	AssignedTrainerID *uuid.UUID         `json:"assigned_trainer_id"`
}

// FeePreviewResponse is the fee calculator output for the preview endpoint.
type FeePreviewResponse struct {
	Tier      billing.Tier      `json:"tier"`
	Months    int               `json:"months"`
	Prepay    bool              `json:"prepay"`
	Breakdown billing.Breakdown `json:"breakdown"`
}

// PaymentActionRequest carries optional admin notes for confirm/cancel.
type PaymentActionRequest struct {
	Notes string `json:"notes"`
}

// MembershipSummary is the admin-facing row for one membership.
type MembershipSummary struct {
	MembershipID    uuid.UUID            `json:"membership_id"`
	UserID          uuid.UUID            `json:"user_id"`
	FullName        string               `json:"full_name"`
	Email           string               `json:"email"`
	Tier            billing.Tier         `json:"tier"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	Total           float64              `json:"total"`
	JoinDate        time.Time            `json:"join_date"`
	ExpiryDate      *time.Time           `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int                 `json:"days_until_expiry,omitempty"`
	ExpiringSoon    bool                 `json:"expiring_soon"`
}

// AdminDashboardResponse aggregates counts and pending work for the admin.
type AdminDashboardResponse struct {
	TotalMembers       int64               `json:"total_members"`
	TotalTrainers      int64               `json:"total_trainers"`
	PendingTrainers    int64               `json:"pending_trainers"`
	PendingPayments    int64               `json:"pending_payments"`
	ExpiringSoon       int                 `json:"expiring_soon"`
	TierCounts         map[string]int64    `json:"tier_counts"`
	Memberships        []MembershipSummary `json:"memberships"`
	PendingTrainerList []TrainerSummary    `json:"pending_trainer_list"`
}

// MemberDashboardResponse is everything a member sees on login.
type MemberDashboardResponse struct {
	Membership       *models.Membership      `json:"membership"`
	Addons           []models.Addon          `json:"addons,omitempty"`
	ExpiryDate       *time.Time              `json:"expiry_date,omitempty"`
	DaysUntilExpiry  *int                    `json:"days_until_expiry,omitempty"`
	ExpiryWarning    bool                    `json:"expiry_warning"`
	WorkoutPlans     []models.WorkoutPlan    `json:"workout_plans,omitempty"`
	ProteinIntakes   []models.ProteinIntake  `json:"protein_intakes,omitempty"`
	MedicalCheckups  []models.MedicalCheckup `json:"medical_checkups,omitempty"`
	AssignedTrainers []AssignedTrainer       `json:"assigned_trainers,omitempty"`
}

// AssignedTrainer pairs an assigned trainer with the member's existing rating.
type AssignedTrainer struct {
	TrainerID      uuid.UUID `json:"trainer_id"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
	ExistingRating *int      `json:"existing_rating,omitempty"`
}

// UpdateUserRequest is the admin edit of a user's basic and role-specific
// fields. Role-specific subforms are validated against the user's actual
// role; fields for other roles are rejected rather than silently ignored.
type UpdateUserRequest struct {
	FullName    string `json:"full_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`

	// Admin/trainer-specific.
	Qualification        *string `json:"qualification"`
	Specialization       *string `json:"specialization"`
	ExperienceYears      *int    `json:"experience_years"`
	CertificationDetails *string `json:"certification_details"`
}
