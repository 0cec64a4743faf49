package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/billing"
)

// PaymentStatus tracks admin confirmation of the registration payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Membership is the 1:1 member plan record. The unique index on user_id
// enforces one membership per account at the storage layer.
type Membership struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Tier           billing.Tier  `gorm:"size:2;not null" json:"tier"`
	RegistrationID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"registration_id"`
	Age            int           `gorm:"not null" json:"age"`
	CurrentWeight  float64       `json:"current_weight"`
	JoinDate       time.Time     `gorm:"not null" json:"join_date"`
	MedicalHistory string        `gorm:"type:text" json:"medical_history,omitempty"`

	PaymentStatus        PaymentStatus `gorm:"size:10;not null;default:'PENDING';index" json:"payment_status"`
	PaymentConfirmedByID *uuid.UUID    `gorm:"type:uuid" json:"payment_confirmed_by,omitempty"`
	PaymentConfirmedAt   *time.Time    `json:"payment_confirmed_at,omitempty"`
	PaymentNotes         string        `gorm:"type:text" json:"payment_notes,omitempty"`

	PrepayMonthly  bool `gorm:"default:false" json:"prepay_monthly"`
	MonthsSelected int  `gorm:"default:0" json:"months_selected"`

	// L2 only.
	ExtraProtein bool `gorm:"default:false" json:"extra_protein"`

	BaseFee    float64 `gorm:"default:0" json:"base_fee"`
	MonthlyFee float64 `gorm:"default:0" json:"monthly_fee"`
	Discount   float64 `gorm:"default:0" json:"discount"`
	AddonFees  float64 `gorm:"default:0" json:"addon_fees"`
	Total      float64 `gorm:"default:0" json:"total"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User   User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Addons []Addon `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"addons,omitempty"`
}

// BeforeSave recomputes the fee breakdown from the stored inputs. The
// calculation is idempotent, so saving an unchanged membership never
// drifts the total.
func (m *Membership) BeforeSave(*gorm.DB) error {
	b := billing.CalculateFee(m.Tier, m.PrepayMonthly, m.MonthsSelected, m.AddonFees)
	m.BaseFee = b.BaseFee
	m.MonthlyFee = b.MonthlyFee
	m.Discount = b.Discount
	m.Total = b.Total
	return nil
}

// ExpiryDate returns the membership expiry, or ok=false when not prepaying.
func (m *Membership) ExpiryDate() (time.Time, bool) {
	return billing.ExpiryDate(m.JoinDate, m.PrepayMonthly, m.MonthsSelected)
}

// DaysUntilExpiry returns whole days until expiry relative to today.
func (m *Membership) DaysUntilExpiry(today time.Time) (int, bool) {
	return billing.DaysUntilExpiry(m.JoinDate, m.PrepayMonthly, m.MonthsSelected, today)
}

// ExpiringSoon reports whether the membership expires within 7 days.
func (m *Membership) ExpiringSoon(today time.Time) bool {
	return billing.ExpiringSoon(m.JoinDate, m.PrepayMonthly, m.MonthsSelected, today)
}

// AddonType identifies an optional paid L3 feature.
type AddonType string

const (
	AddonTrainer   AddonType = "TRAINER"
	AddonZumba     AddonType = "ZUMBA"
	AddonNutrition AddonType = "NUTRITION"
	AddonWellness  AddonType = "WELLNESS"
)

func (t AddonType) Valid() bool {
	switch t {
	case AddonTrainer, AddonZumba, AddonNutrition, AddonWellness:
		return true
	}
	return false
}

// DisplayName returns the catalogue name for an add-on.
func (t AddonType) DisplayName() string {
	switch t {
	case AddonTrainer:
		return "Personal Trainer Booking"
	case AddonZumba:
		return "Zumba & Martial Arts"
	case AddonNutrition:
		return "Premium Nutrition Hub"
	case AddonWellness:
		return "Mental Wellness Dashboard"
	}
	return string(t)
}

// Addon belongs to one L3 membership; at most one per (membership, type).
// Only TRAINER add-ons carry an assigned trainer.
type Addon struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MembershipID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_addons_membership_type" json:"membership_id"`
	AddonType         AddonType  `gorm:"size:20;not null;uniqueIndex:idx_addons_membership_type" json:"addon_type"`
	Fee               float64    `gorm:"default:1000" json:"fee"`
	AssignedTrainerID *uuid.UUID `gorm:"type:uuid" json:"assigned_trainer_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	Membership      Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"-"`
	AssignedTrainer *User      `gorm:"foreignKey:AssignedTrainerID" json:"assigned_trainer,omitempty"`
}

// PaymentReceipt records the generated registration receipt artifact.
type PaymentReceipt struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MembershipID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"membership_id"`
	ReceiptNumber uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"receipt_number"`
	PDFPath       string    `gorm:"type:text" json:"pdf_path,omitempty"`
	GeneratedAt   time.Time `gorm:"autoCreateTime" json:"generated_at"`

	Membership Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"-"`
}
