package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the trainer activation state machine. Pending is the
// initial state; Approved and Rejected are terminal. The only transitions
// are Approve and Reject below — anything else is a guard error.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

var (
	ErrNotPending      = errors.New("trainer application is not pending")
	ErrReasonRequired  = errors.New("a rejection reason is required")
	ErrApproverMissing = errors.New("approver identity is required")
)

// TrainerProfile extends a trainer account with credentials and the
// admin approval state. One profile per trainer user.
type TrainerProfile struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Qualification        string         `gorm:"size:255" json:"qualification"`
	Specialization       string         `gorm:"size:255" json:"specialization"`
	ExperienceYears      int            `gorm:"default:0" json:"experience_years"`
	CertificationDetails string         `gorm:"type:text" json:"certification_details"`
	Licenses             string         `gorm:"type:text" json:"licenses,omitempty"`
	Accreditations       string         `gorm:"type:text" json:"accreditations,omitempty"`
	ApprovalStatus       ApprovalStatus `gorm:"size:10;not null;default:'PENDING';index" json:"approval_status"`
	ApprovedByID         *uuid.UUID     `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovalDate         *time.Time     `json:"approval_date,omitempty"`
	RejectionReason      string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	User                 User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Approve transitions Pending -> Approved, recording the approver and time.
// The caller is responsible for activating the account and persisting both.
func (p *TrainerProfile) Approve(approver uuid.UUID, at time.Time) error {
	if p.ApprovalStatus != ApprovalPending {
		return ErrNotPending
	}
	if approver == uuid.Nil {
		return ErrApproverMissing
	}
	p.ApprovalStatus = ApprovalApproved
	p.ApprovedByID = &approver
	p.ApprovalDate = &at
	return nil
}

// Reject transitions Pending -> Rejected with a mandatory reason. The
// account stays inactive.
func (p *TrainerProfile) Reject(approver uuid.UUID, reason string, at time.Time) error {
	if p.ApprovalStatus != ApprovalPending {
		return ErrNotPending
	}
	if approver == uuid.Nil {
		return ErrApproverMissing
	}
	if reason == "" {
		return ErrReasonRequired
	}
	p.ApprovalStatus = ApprovalRejected
	p.ApprovedByID = &approver
	p.ApprovalDate = &at
	p.RejectionReason = reason
	return nil
}
