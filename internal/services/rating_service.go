package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
)

var (
	ErrRatingTierRequired   = errors.New("trainer ratings require an active L3 membership")
	ErrTrainerNotAssigned   = errors.New("trainer is not assigned to this membership")
	ErrRatedTrainerNotFound = errors.New("trainer not found")
	ErrMembershipNotFound   = errors.New("membership not found")
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// Submit records a member's rating of their assigned trainer. The upsert
// keys on (user, trainer, membership), so resubmitting replaces the
// earlier score instead of stacking a second row.
func (s *RatingService) Submit(userID, trainerID uuid.UUID, req *dto.SubmitRatingRequest) (*models.TrainerRating, error) {
	var membership models.Membership
	if err := s.db.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		return nil, ErrMembershipNotFound
	}
	if membership.Tier != billing.TierL3 {
		return nil, ErrRatingTierRequired
	}

	var assigned int64
	err := s.db.Model(&models.Addon{}).
		Where("membership_id = ? AND addon_type = ? AND assigned_trainer_id = ?",
			membership.ID, models.AddonTrainer, trainerID).
		Count(&assigned).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check trainer assignment: %w", err)
	}
	if assigned == 0 {
		return nil, ErrTrainerNotAssigned
	}

	rating := models.TrainerRating{
		ID:           uuid.New(),
		UserID:       userID,
		TrainerID:    trainerID,
		MembershipID: membership.ID,
		Rating:       req.Rating,
		Review:       req.Review,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "trainer_id"}, {Name: "membership_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	// Re-read so the caller sees the surviving row, not the candidate.
	var saved models.TrainerRating
	err = s.db.Where("user_id = ? AND trainer_id = ? AND membership_id = ?",
		userID, trainerID, membership.ID).First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load rating: %w", err)
	}
	return &saved, nil
}

// Summary returns a trainer's mean rating (rounded to one decimal, zero
// when unrated) and rating count.
func (s *RatingService) Summary(trainerID uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := s.db.Model(&models.TrainerRating{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("trainer_id = ?", trainerID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	if row.Avg == nil {
		return 0, row.Count, nil
	}
	return round1(*row.Avg), row.Count, nil
}

// Stats returns the full rating projection for one trainer: mean, count,
// star distribution and the individual reviews.
func (s *RatingService) Stats(trainerID uuid.UUID) (*dto.TrainerRatingsResponse, error) {
	var trainer models.User
	if err := s.db.Where("id = ? AND role = ?", trainerID, models.RoleTrainer).First(&trainer).Error; err != nil {
		return nil, ErrRatedTrainerNotFound
	}

	var ratings []models.TrainerRating
	err := s.db.Where("trainer_id = ?", trainerID).
		Order("updated_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	counts := make(map[int]int64, 5)
	var sum int64
	for _, r := range ratings {
		counts[r.Rating]++
		sum += int64(r.Rating)
	}

	total := int64(len(ratings))
	avg := 0.0
	if total > 0 {
		avg = round1(float64(sum) / float64(total))
	}

	return &dto.TrainerRatingsResponse{
		TrainerID:    trainerID,
		FullName:     trainer.FullName,
		AvgRating:    avg,
		TotalRatings: total,
		Distribution: RatingDistribution(counts, total),
		Ratings:      ratings,
	}, nil
}

// RatingDistribution builds the 5-down-to-1 star buckets with percentage
// shares rounded to one decimal. All buckets are present even when empty.
func RatingDistribution(counts map[int]int64, total int64) []dto.RatingBucket {
	buckets := make([]dto.RatingBucket, 0, 5)
	for stars := 5; stars >= 1; stars-- {
		pct := 0.0
		if total > 0 {
			pct = round1(float64(counts[stars]) / float64(total) * 100)
		}
		buckets = append(buckets, dto.RatingBucket{
			Stars:      stars,
			Count:      counts[stars],
			Percentage: pct,
		})
	}
	return buckets
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
