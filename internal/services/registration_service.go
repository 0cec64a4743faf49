package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/config"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/mail"
	"github.com/healthhubhq/backend/internal/models"
	"github.com/healthhubhq/backend/internal/receipts"
)

var (
	ErrAddonsNotAllowed = errors.New("add-ons are only available on the L3 tier")
	ErrTrainerNotFound  = errors.New("selected trainer not found or not approved")
	ErrDuplicateAddon   = errors.New("duplicate add-on selection")
)

// RegistrationService is the member registration orchestrator: account,
// membership, add-ons and fee computation commit as one transaction;
// receipt generation and email dispatch run after commit and degrade to
// warnings on failure.
type RegistrationService struct {
	db     *gorm.DB
	cfg    *config.Config
	sender mail.Sender
}

func NewRegistrationService(db *gorm.DB, cfg *config.Config, sender mail.Sender) *RegistrationService {
	return &RegistrationService{db: db, cfg: cfg, sender: sender}
}

// RegisterMember creates the member account with its membership. The
// returned warnings list non-fatal side-effect failures.
func (s *RegistrationService) RegisterMember(ctx context.Context, req *dto.RegisterMemberRequest) (*models.Membership, []string, error) {
	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid join date: %w", err)
	}

	if len(req.Addons) > 0 && req.Tier != billing.TierL3 {
		return nil, nil, ErrAddonsNotAllowed
	}
	seen := make(map[models.AddonType]bool, len(req.Addons))
	for _, a := range req.Addons {
		if seen[a] {
			return nil, nil, ErrDuplicateAddon
		}
		seen[a] = true
	}

	// The trainer add-on needs an approved, active trainer up front.
	var trainer *models.User
	if seen[models.AddonTrainer] {
		if req.AssignedTrainerID == nil {
			return nil, nil, ErrTrainerNotFound
		}
		trainer, err = s.approvedTrainer(*req.AssignedTrainerID)
		if err != nil {
			return nil, nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Role:        models.RoleMember,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
		Active:      true,
	}

	membership := models.Membership{
		ID:             uuid.New(),
		UserID:         user.ID,
		Tier:           req.Tier,
		RegistrationID: uuid.New(),
		Age:            req.Age,
		CurrentWeight:  req.CurrentWeight,
		JoinDate:       joinDate,
		MedicalHistory: req.MedicalHistory,
		PaymentStatus:  models.PaymentPending,
		PrepayMonthly:  req.PrepayMonthly,
		MonthsSelected: req.MonthsSelected,
		ExtraProtein:   req.Tier == billing.TierL2 && req.ExtraProtein,
		AddonFees:      billing.AddonFee * float64(len(req.Addons)),
	}

	receipt := models.PaymentReceipt{
		ID:            uuid.New(),
		MembershipID:  membership.ID,
		ReceiptNumber: uuid.New(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// BeforeSave recomputes the fee breakdown from the stored inputs.
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		for _, addonType := range req.Addons {
			addon := models.Addon{
				ID:           uuid.New(),
				MembershipID: membership.ID,
				AddonType:    addonType,
				Fee:          billing.AddonFee,
			}
			if addonType == models.AddonTrainer && trainer != nil {
				addon.AssignedTrainerID = &trainer.ID
			}
			if err := tx.Create(&addon).Error; err != nil {
				return err
			}
		}
		return tx.Create(&receipt).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("member registration failed: %w", err)
	}

	// Registration is committed; everything below is failure-isolated.
	warnings := s.dispatchReceipt(ctx, &user, &membership, &receipt)
	return &membership, warnings, nil
}

// dispatchReceipt renders the PDF, stores it, and emails the member. Each
// failure is logged and reported as a warning, never as an error.
func (s *RegistrationService) dispatchReceipt(ctx context.Context, user *models.User, m *models.Membership, receipt *models.PaymentReceipt) []string {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SideEffectTimeout)
	defer cancel()

	var warnings []string

	var addons []models.Addon
	if err := s.db.Preload("AssignedTrainer").Where("membership_id = ?", m.ID).Find(&addons).Error; err != nil {
		slog.Warn("failed to load addons for receipt", "error", err, "membership_id", m.ID)
	}

	pdfBytes, err := receipts.Render(s.snapshot(user, m, receipt, addons))
	if err != nil {
		slog.Warn("receipt generation failed", "error", err, "membership_id", m.ID)
		warnings = append(warnings, "receipt generation failed")
	} else if path, err := s.storeReceipt(m, pdfBytes); err != nil {
		slog.Warn("receipt storage failed", "error", err, "membership_id", m.ID)
		warnings = append(warnings, "receipt storage failed")
	} else if err := s.db.Model(receipt).Update("pdf_path", path).Error; err != nil {
		slog.Warn("receipt record update failed", "error", err, "membership_id", m.ID)
	}

	msg := mail.MembershipMessage(user, m, addons, s.cfg.BaseURL+"/login", pdfBytes)
	if err := s.sender.Send(ctx, msg); err != nil {
		slog.Warn("membership email failed", "error", err, "user_id", user.ID)
		warnings = append(warnings, "confirmation email failed")
	}

	return warnings
}

func (s *RegistrationService) storeReceipt(m *models.Membership, pdfBytes []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.ReceiptsDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.ReceiptsDir, fmt.Sprintf("receipt_%s.pdf", m.RegistrationID))
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *RegistrationService) snapshot(user *models.User, m *models.Membership, receipt *models.PaymentReceipt, addons []models.Addon) receipts.Snapshot {
	return receipts.Snapshot{
		RegistrationID: m.RegistrationID.String(),
		ReceiptNumber:  receipt.ReceiptNumber.String(),
		GeneratedAt:    receipt.GeneratedAt,
		MemberName:     user.FullName,
		Email:          user.Email,
		Phone:          user.PhoneNumber,
		Age:            m.Age,
		WeightKg:       m.CurrentWeight,
		JoinDate:       m.JoinDate,
		TierCode:       string(m.Tier),
		TierName:       m.Tier.DisplayName(),
		Amenities:      amenities(m, addons),
		Prepay:         m.PrepayMonthly,
		Months:         m.MonthsSelected,
		MonthlyRate:    billing.MonthlyRate(m.Tier),
		BaseFee:        m.BaseFee,
		MonthlyFee:     m.MonthlyFee,
		Discount:       m.Discount,
		AddonFees:      m.AddonFees,
		Total:          m.Total,
	}
}

func amenities(m *models.Membership, addons []models.Addon) []string {
	switch m.Tier {
	case billing.TierL1:
		return []string{"Basic Gym Access", "Standard Equipment"}
	case billing.TierL2:
		out := []string{
			"All L1 Features",
			"Workout Planner",
			"Nutrition Recommendations",
			"Weekly Performance Insights",
		}
		if m.ExtraProtein {
			out = append(out, "Extra Protein Supplementation")
		}
		return out
	case billing.TierL3:
		out := []string{"All L1 + L2 Features", "Daily Protein Shake (40g)"}
		for _, a := range addons {
			line := a.AddonType.DisplayName()
			if a.AddonType == models.AddonTrainer && a.AssignedTrainer != nil {
				line += " - " + a.AssignedTrainer.FullName
			}
			out = append(out, line)
		}
		return out
	}
	return nil
}

// approvedTrainer loads a trainer that is approved and active.
func (s *RegistrationService) approvedTrainer(id uuid.UUID) (*models.User, error) {
	var trainer models.User
	err := s.db.
		Joins("JOIN trainer_profiles ON trainer_profiles.user_id = users.id").
		Where("users.id = ? AND users.role = ? AND users.active = true AND trainer_profiles.approval_status = ?",
			id, models.RoleTrainer, models.ApprovalApproved).
		First(&trainer).Error
	if err != nil {
		return nil, ErrTrainerNotFound
	}
	return &trainer, nil
}
