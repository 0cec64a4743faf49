package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. Authorization decisions go
// through middleware.RequireRole rather than ad-hoc string checks.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleMember  Role = "MEMBER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// User is the account record shared by all three roles.
//
// The partial unique index on role closes the check-then-create race for
// the single-admin invariant: at most one row may carry role='ADMIN',
// enforced by the database rather than an application-level existence check.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Role         Role           `gorm:"size:10;not null;index:idx_users_single_admin,unique,where:role = 'ADMIN'" json:"role"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	PhoneNumber  string         `gorm:"size:15" json:"phone_number"`
	ProfilePhoto string         `gorm:"type:text" json:"profile_photo,omitempty"`
	Active       bool           `gorm:"default:true" json:"active"`
	RegisteredAt time.Time      `gorm:"autoCreateTime" json:"registered_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// AdminProfile extends the single admin account.
type AdminProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Qualification string    `gorm:"size:255" json:"qualification"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
