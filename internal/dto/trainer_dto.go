package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/models"
)

// RejectTrainerRequest carries the mandatory rejection reason.
type RejectTrainerRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// TrainerSummary is one row in the trainer directory or the admin's
// pending queue.
type TrainerSummary struct {
	TrainerID       uuid.UUID             `json:"trainer_id"`
	ProfileID       uuid.UUID             `json:"profile_id"`
	FullName        string                `json:"full_name"`
	Email           string                `json:"email"`
	PhoneNumber     string                `json:"phone_number"`
	Specialization  string                `json:"specialization"`
	Qualification   string                `json:"qualification"`
	ExperienceYears int                   `json:"experience_years"`
	ApprovalStatus  models.ApprovalStatus `json:"approval_status"`
	ApprovalDate    *time.Time            `json:"approval_date,omitempty"`
	AvgRating       float64               `json:"avg_rating"`
	RatingCount     int64                 `json:"rating_count"`
}

// TrainerDirectoryResponse lists approved trainers with rating stats.
type TrainerDirectoryResponse struct {
	TotalTrainers int              `json:"total_trainers"`
	Trainers      []TrainerSummary `json:"trainers"`
}

// TrainerDashboardResponse is the trainer's own view: profile plus clients
// assigned through TRAINER add-ons.
type TrainerDashboardResponse struct {
	Profile      *models.TrainerProfile `json:"profile"`
	TotalClients int                    `json:"total_clients"`
	Clients      []AssignedClient       `json:"clients"`
}

// AssignedClient is one member assigned to a trainer.
type AssignedClient struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Tier     string    `json:"tier"`
}

// SubmitRatingRequest creates or updates the member's rating of a trainer.
type SubmitRatingRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

// RatingBucket is one star level's share of a trainer's ratings.
type RatingBucket struct {
	Stars      int     `json:"stars"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TrainerRatingsResponse is the read-side rating projection for a trainer.
type TrainerRatingsResponse struct {
	TrainerID    uuid.UUID              `json:"trainer_id"`
	FullName     string                 `json:"full_name"`
	AvgRating    float64                `json:"avg_rating"`
	TotalRatings int64                  `json:"total_ratings"`
	Distribution []RatingBucket         `json:"distribution"`
	Ratings      []models.TrainerRating `json:"ratings"`
}
