package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/config"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/mail"
	"github.com/healthhubhq/backend/internal/models"
)

var ErrApplicationNotFound = errors.New("trainer application not found")

type TrainerService struct {
	db     *gorm.DB
	cfg    *config.Config
	sender mail.Sender
	rating *RatingService
}

func NewTrainerService(db *gorm.DB, cfg *config.Config, sender mail.Sender, rating *RatingService) *TrainerService {
	return &TrainerService{db: db, cfg: cfg, sender: sender, rating: rating}
}

// Approve transitions a pending application to Approved and activates the
// account. The notification is failure-isolated.
func (s *TrainerService) Approve(ctx context.Context, profileID uuid.UUID, adminID uuid.UUID) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	if err := s.db.Preload("User").First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	now := time.Now()
	if err := profile.Approve(adminID, now); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The update only lands if the row is still pending, so a
		// concurrent decision cannot overwrite a terminal state.
		res := tx.Model(&models.TrainerProfile{}).
			Where("id = ? AND approval_status = ?", profile.ID, models.ApprovalPending).
			Updates(map[string]any{
				"approval_status": profile.ApprovalStatus,
				"approved_by_id":  profile.ApprovedByID,
				"approval_date":   profile.ApprovalDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotPending
		}
		return tx.Model(&models.User{}).Where("id = ?", profile.UserID).Update("active", true).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to approve trainer: %w", err)
	}

	s.notify(ctx, func(adminName string) mail.Message {
		return mail.TrainerApprovedMessage(&profile.User, adminName, now, s.cfg.BaseURL+"/login")
	}, adminID, profile.UserID)

	return &profile, nil
}

// Reject transitions a pending application to Rejected with a reason. The
// account stays inactive.
func (s *TrainerService) Reject(ctx context.Context, profileID uuid.UUID, adminID uuid.UUID, reason string) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	if err := s.db.Preload("User").First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	if err := profile.Reject(adminID, reason, time.Now()); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TrainerProfile{}).
			Where("id = ? AND approval_status = ?", profile.ID, models.ApprovalPending).
			Updates(map[string]any{
				"approval_status":  profile.ApprovalStatus,
				"approved_by_id":   profile.ApprovedByID,
				"approval_date":    profile.ApprovalDate,
				"rejection_reason": profile.RejectionReason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotPending
		}
		return tx.Model(&models.User{}).Where("id = ?", profile.UserID).Update("active", false).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to reject trainer: %w", err)
	}

	trainerUser := profile.User
	s.notify(ctx, func(string) mail.Message {
		return mail.TrainerRejectedMessage(&trainerUser, reason)
	}, adminID, profile.UserID)

	return &profile, nil
}

func (s *TrainerService) notify(ctx context.Context, build func(adminName string) mail.Message, adminID, trainerID uuid.UUID) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SideEffectTimeout)
	defer cancel()

	var admin models.User
	adminName := "HealthHub Admin"
	if err := s.db.First(&admin, "id = ?", adminID).Error; err == nil {
		adminName = admin.FullName
	}

	if err := s.sender.Send(ctx, build(adminName)); err != nil {
		slog.Warn("trainer status email failed", "error", err, "trainer_id", trainerID)
	}
}

// Pending lists applications awaiting review, newest first.
func (s *TrainerService) Pending() ([]dto.TrainerSummary, error) {
	var profiles []models.TrainerProfile
	err := s.db.Preload("User").
		Where("approval_status = ?", models.ApprovalPending).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending trainers: %w", err)
	}

	out := make([]dto.TrainerSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, summarize(p, 0, 0))
	}
	return out, nil
}

// Directory lists approved trainers with their rating statistics.
func (s *TrainerService) Directory() (*dto.TrainerDirectoryResponse, error) {
	var profiles []models.TrainerProfile
	err := s.db.Preload("User").
		Where("approval_status = ?", models.ApprovalApproved).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approved trainers: %w", err)
	}

	trainers := make([]dto.TrainerSummary, 0, len(profiles))
	for _, p := range profiles {
		avg, count, err := s.rating.Summary(p.UserID)
		if err != nil {
			return nil, err
		}
		trainers = append(trainers, summarize(p, avg, count))
	}

	return &dto.TrainerDirectoryResponse{
		TotalTrainers: len(trainers),
		Trainers:      trainers,
	}, nil
}

// Dashboard returns a trainer's profile and assigned clients.
func (s *TrainerService) Dashboard(trainerID uuid.UUID) (*dto.TrainerDashboardResponse, error) {
	var profile models.TrainerProfile
	if err := s.db.First(&profile, "user_id = ?", trainerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var addons []models.Addon
	err := s.db.Preload("Membership.User").
		Where("assigned_trainer_id = ? AND addon_type = ?", trainerID, models.AddonTrainer).
		Find(&addons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned clients: %w", err)
	}

	clients := make([]dto.AssignedClient, 0, len(addons))
	for _, a := range addons {
		clients = append(clients, dto.AssignedClient{
			UserID:   a.Membership.UserID,
			FullName: a.Membership.User.FullName,
			Email:    a.Membership.User.Email,
			Tier:     string(a.Membership.Tier),
		})
	}

	return &dto.TrainerDashboardResponse{
		Profile:      &profile,
		TotalClients: len(clients),
		Clients:      clients,
	}, nil
}

func summarize(p models.TrainerProfile, avg float64, count int64) dto.TrainerSummary {
	return dto.TrainerSummary{
		TrainerID:       p.UserID,
		ProfileID:       p.ID,
		FullName:        p.User.FullName,
		Email:           p.User.Email,
		PhoneNumber:     p.User.PhoneNumber,
		Specialization:  p.Specialization,
		Qualification:   p.Qualification,
		ExperienceYears: p.ExperienceYears,
		ApprovalStatus:  p.ApprovalStatus,
		ApprovalDate:    p.ApprovalDate,
		AvgRating:       avg,
		RatingCount:     count,
	}
}
