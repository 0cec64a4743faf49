package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/healthhubhq/backend/internal/config"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
)

var (
	ErrPaymentNotPending  = errors.New("payment is not pending")
	ErrFieldNotApplicable = errors.New("field does not apply to this user's role")
)

// MembershipService covers the admin-side membership surface: payment
// confirmation, dashboards and user edits.
type MembershipService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewMembershipService(db *gorm.DB, cfg *config.Config) *MembershipService {
	return &MembershipService{db: db, cfg: cfg}
}

// ConfirmPayment moves a pending payment to Paid. Paid is terminal:
// re-confirming or cancelling afterwards is refused.
func (s *MembershipService) ConfirmPayment(membershipID, adminID uuid.UUID, notes string) (*models.Membership, error) {
	return s.settlePayment(membershipID, adminID, models.PaymentPaid, notes)
}

// CancelPayment moves a pending payment to Cancelled.
func (s *MembershipService) CancelPayment(membershipID, adminID uuid.UUID, notes string) (*models.Membership, error) {
	return s.settlePayment(membershipID, adminID, models.PaymentCancelled, notes)
}

func (s *MembershipService) settlePayment(membershipID, adminID uuid.UUID, to models.PaymentStatus, notes string) (*models.Membership, error) {
	var membership models.Membership
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&membership, "id = ?", membershipID).Error; err != nil {
			return ErrMembershipNotFound
		}
		if membership.PaymentStatus != models.PaymentPending {
			return ErrPaymentNotPending
		}

		now := time.Now()
		membership.PaymentStatus = to
		membership.PaymentConfirmedByID = &adminID
		membership.PaymentConfirmedAt = &now
		membership.PaymentNotes = notes
		return tx.Save(&membership).Error
	})
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) || errors.Is(err, ErrPaymentNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return &membership, nil
}

// AdminDashboard aggregates member counts, tier distribution, pending
// work and per-membership expiry state.
func (s *MembershipService) AdminDashboard(pendingTrainers []dto.TrainerSummary) (*dto.AdminDashboardResponse, error) {
	resp := &dto.AdminDashboardResponse{
		TierCounts:         make(map[string]int64),
		PendingTrainerList: pendingTrainers,
		PendingTrainers:    int64(len(pendingTrainers)),
	}

	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleMember).Count(&resp.TotalMembers).Error; err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if err := s.db.Model(&models.User{}).Where("role = ? AND active = true", models.RoleTrainer).Count(&resp.TotalTrainers).Error; err != nil {
		return nil, fmt.Errorf("failed to count trainers: %w", err)
	}
	if err := s.db.Model(&models.Membership{}).Where("payment_status = ?", models.PaymentPending).Count(&resp.PendingPayments).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending payments: %w", err)
	}

	var memberships []models.Membership
	if err := s.db.Preload("User").Order("created_at DESC").Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	today := time.Now()
	for _, m := range memberships {
		resp.TierCounts[string(m.Tier)]++

		summary := dto.MembershipSummary{
			MembershipID:  m.ID,
			UserID:        m.UserID,
			FullName:      m.User.FullName,
			Email:         m.User.Email,
			Tier:          m.Tier,
			PaymentStatus: m.PaymentStatus,
			Total:         m.Total,
			JoinDate:      m.JoinDate,
		}
		if expiry, ok := m.ExpiryDate(); ok {
			summary.ExpiryDate = &expiry
			if days, ok := m.DaysUntilExpiry(today); ok {
				summary.DaysUntilExpiry = &days
			}
			summary.ExpiringSoon = m.ExpiringSoon(today)
			if summary.ExpiringSoon {
				resp.ExpiringSoon++
			}
		}
		resp.Memberships = append(resp.Memberships, summary)
	}

	return resp, nil
}

// MemberDashboard assembles everything a member sees on login: plan,
// add-ons, expiry state, tracking data and assigned trainers.
func (s *MembershipService) MemberDashboard(userID uuid.UUID) (*dto.MemberDashboardResponse, error) {
	var membership models.Membership
	err := s.db.Preload("Addons.AssignedTrainer").Where("user_id = ?", userID).First(&membership).Error
	if err != nil {
		return nil, ErrMembershipNotFound
	}

	resp := &dto.MemberDashboardResponse{
		Membership: &membership,
		Addons:     membership.Addons,
	}

	today := time.Now()
	if expiry, ok := membership.ExpiryDate(); ok {
		resp.ExpiryDate = &expiry
		if days, ok := membership.DaysUntilExpiry(today); ok {
			resp.DaysUntilExpiry = &days
		}
		resp.ExpiryWarning = membership.ExpiringSoon(today)
	}

	err = s.db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("membership_id = ? AND active = true", membership.ID).
		Order("week_number ASC").
		Find(&resp.WorkoutPlans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load workout plans: %w", err)
	}

	err = s.db.Where("membership_id = ?", membership.ID).
		Order("date DESC").Limit(30).
		Find(&resp.ProteinIntakes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load protein intakes: %w", err)
	}

	err = s.db.Where("membership_id = ?", membership.ID).
		Order("checkup_date DESC").
		Find(&resp.MedicalCheckups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load checkups: %w", err)
	}

	resp.AssignedTrainers, err = s.assignedTrainers(userID, &membership)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *MembershipService) assignedTrainers(userID uuid.UUID, m *models.Membership) ([]dto.AssignedTrainer, error) {
	var out []dto.AssignedTrainer
	for _, addon := range m.Addons {
		if addon.AddonType != models.AddonTrainer || addon.AssignedTrainer == nil {
			continue
		}

		entry := dto.AssignedTrainer{
			TrainerID: addon.AssignedTrainer.ID,
			FullName:  addon.AssignedTrainer.FullName,
		}

		var profile models.TrainerProfile
		if err := s.db.Where("user_id = ?", addon.AssignedTrainer.ID).First(&profile).Error; err == nil {
			entry.Specialization = profile.Specialization
		}

		var rating models.TrainerRating
		err := s.db.Where("user_id = ? AND trainer_id = ? AND membership_id = ?",
			userID, addon.AssignedTrainer.ID, m.ID).First(&rating).Error
		if err == nil {
			entry.ExistingRating = &rating.Rating
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load rating: %w", err)
		}

		out = append(out, entry)
	}
	return out, nil
}

// UpdateUser applies an admin edit to a user's basic fields and the
// subform matching their role. Subform fields for other roles are
// rejected rather than silently ignored.
func (s *MembershipService) UpdateUser(userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := checkRoleFields(user.Role, req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user.FullName = req.FullName
		user.Email = req.Email
		user.PhoneNumber = req.PhoneNumber
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		switch user.Role {
		case models.RoleAdmin:
			if req.Qualification != nil {
				return tx.Model(&models.AdminProfile{}).
					Where("user_id = ?", user.ID).
					Update("qualification", *req.Qualification).Error
			}
		case models.RoleTrainer:
			updates := map[string]any{}
			if req.Qualification != nil {
				updates["qualification"] = *req.Qualification
			}
			if req.Specialization != nil {
				updates["specialization"] = *req.Specialization
			}
			if req.ExperienceYears != nil {
				updates["experience_years"] = *req.ExperienceYears
			}
			if req.CertificationDetails != nil {
				updates["certification_details"] = *req.CertificationDetails
			}
			if len(updates) > 0 {
				return tx.Model(&models.TrainerProfile{}).
					Where("user_id = ?", user.ID).
					Updates(updates).Error
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// lockForUpdate serializes concurrent payment decisions on one row.
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func checkRoleFields(role models.Role, req *dto.UpdateUserRequest) error {
	trainerOnly := req.Specialization != nil || req.ExperienceYears != nil || req.CertificationDetails != nil
	switch role {
	case models.RoleMember:
		if trainerOnly || req.Qualification != nil {
			return ErrFieldNotApplicable
		}
	case models.RoleAdmin:
		if trainerOnly {
			return ErrFieldNotApplicable
		}
	}
	return nil
}
