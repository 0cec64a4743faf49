package dto

import (
	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/models"
)

// RegisterAdminRequest creates the single admin account.
type RegisterAdminRequest struct {
	FullName      string `json:"full_name" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	PhoneNumber   string `json:"phone_number" validate:"required,max=15"`
	Qualification string `json:"qualification" validate:"required,max=255"`
}

// RegisterTrainerRequest creates an inactive trainer account pending approval.
type RegisterTrainerRequest struct {
	FullName             string `json:"full_name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PhoneNumber          string `json:"phone_number" validate:"required,max=15"`
	Qualification        string `json:"qualification" validate:"required,max=255"`
	Specialization       string `json:"specialization" validate:"required,max=255"`
	ExperienceYears      int    `json:"experience_years" validate:"gte=0"`
	CertificationDetails string `json:"certification_details" validate:"required"`
	Licenses             string `json:"licenses"`
	Accreditations       string `json:"accreditations"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// RegisteredResponse confirms a completed registration. Warnings carry
// non-fatal side-effect failures (mail, receipt rendering).
type RegisteredResponse struct {
	Message  string    `json:"message"`
	UserID   uuid.UUID `json:"user_id"`
	Warnings []string  `json:"warnings,omitempty"`
}
