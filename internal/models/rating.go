package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainerRating is one member's rating of one trainer under one
// membership. The composite unique index gives upsert-by-natural-key
// semantics: resubmitting updates the row instead of duplicating it.
type TrainerRating struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_trainer_membership" json:"user_id"`
	TrainerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_trainer_membership;index" json:"trainer_id"`
	MembershipID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_trainer_membership" json:"membership_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Review       string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Trainer    User       `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"-"`
	Membership Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"-"`
}
