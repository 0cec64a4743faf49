package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
)

// seedL3Membership creates an L3 membership for userID with a TRAINER
// add-on assigned to trainerID.
func seedL3Membership(t *testing.T, db *gorm.DB, userID, trainerID uuid.UUID) models.Membership {
	t.Helper()

	m := models.Membership{
		ID:             uuid.New(),
		UserID:         userID,
		Tier:           billing.TierL3,
		RegistrationID: uuid.New(),
		Age:            30,
		JoinDate:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		PaymentStatus:  models.PaymentPending,
		AddonFees:      billing.AddonFee,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}
	addon := models.Addon{
		ID:                uuid.New(),
		MembershipID:      m.ID,
		AddonType:         models.AddonTrainer,
		Fee:               billing.AddonFee,
		AssignedTrainerID: &trainerID,
	}
	if err := db.Create(&addon).Error; err != nil {
		t.Fatalf("create addon: %v", err)
	}
	return m
}

func TestSubmitRatingUpsertsByNaturalKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db)

	memberID, trainerID := uuid.New(), uuid.New()
	seedL3Membership(t, db, memberID, trainerID)

	first, err := svc.Submit(memberID, trainerID, &dto.SubmitRatingRequest{Rating: 4, Review: "solid sessions"})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second, err := svc.Submit(memberID, trainerID, &dto.SubmitRatingRequest{Rating: 2, Review: "missed appointments"})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}

	if second.ID != first.ID {
		t.Error("resubmitting must update the existing row, not create a new one")
	}
	if second.Rating != 2 || second.Review != "missed appointments" {
		t.Errorf("surviving row = %d %q; want the resubmitted values", second.Rating, second.Review)
	}

	var count int64
	if err := db.Model(&models.TrainerRating{}).Count(&count).Error; err != nil {
		t.Fatalf("count ratings: %v", err)
	}
	if count != 1 {
		t.Fatalf("rating rows = %d; want 1 after resubmission", count)
	}

	avg, n, err := svc.Summary(trainerID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if n != 1 || avg != 2.0 {
		t.Errorf("Summary = (%v, %d); want mean 2 over 1 rating", avg, n)
	}
}

func TestSubmitRatingGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db)

	trainerID := uuid.New()

	t.Run("no membership", func(t *testing.T) {
		_, err := svc.Submit(uuid.New(), trainerID, &dto.SubmitRatingRequest{Rating: 5})
		if !errors.Is(err, ErrMembershipNotFound) {
			t.Fatalf("err = %v; want ErrMembershipNotFound", err)
		}
	})

	t.Run("tier below L3", func(t *testing.T) {
		memberID := uuid.New()
		m := models.Membership{
			ID:             uuid.New(),
			UserID:         memberID,
			Tier:           billing.TierL2,
			RegistrationID: uuid.New(),
			Age:            30,
			JoinDate:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			PaymentStatus:  models.PaymentPending,
		}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("create membership: %v", err)
		}
		_, err := svc.Submit(memberID, trainerID, &dto.SubmitRatingRequest{Rating: 5})
		if !errors.Is(err, ErrRatingTierRequired) {
			t.Fatalf("err = %v; want ErrRatingTierRequired", err)
		}
	})

	t.Run("trainer not assigned", func(t *testing.T) {
		memberID := uuid.New()
		seedL3Membership(t, db, memberID, trainerID)
		_, err := svc.Submit(memberID, uuid.New(), &dto.SubmitRatingRequest{Rating: 5})
		if !errors.Is(err, ErrTrainerNotAssigned) {
			t.Fatalf("err = %v; want ErrTrainerNotAssigned", err)
		}
	})
}

func TestRatingDistribution(t *testing.T) {
	counts := map[int]int64{5: 6, 4: 2, 3: 1, 1: 1}
	buckets := RatingDistribution(counts, 10)

	if len(buckets) != 5 {
		t.Fatalf("got %d buckets; want 5", len(buckets))
	}
	if buckets[0].Stars != 5 || buckets[4].Stars != 1 {
		t.Error("buckets must run from 5 stars down to 1")
	}

	want := map[int]float64{5: 60.0, 4: 20.0, 3: 10.0, 2: 0.0, 1: 10.0}
	var totalPct float64
	for _, b := range buckets {
		if b.Percentage != want[b.Stars] {
			t.Errorf("stars=%d percentage = %v; want %v", b.Stars, b.Percentage, want[b.Stars])
		}
		totalPct += b.Percentage
	}
	if math.Abs(totalPct-100) > 0.1 {
		t.Errorf("percentages sum to %v; want 100±0.1", totalPct)
	}
}

func TestRatingDistributionRounding(t *testing.T) {
	// 1/3 and 2/3 shares round to one decimal.
	buckets := RatingDistribution(map[int]int64{5: 2, 1: 1}, 3)
	for _, b := range buckets {
		switch b.Stars {
		case 5:
			if b.Percentage != 66.7 {
				t.Errorf("5-star percentage = %v; want 66.7", b.Percentage)
			}
		case 1:
			if b.Percentage != 33.3 {
				t.Errorf("1-star percentage = %v; want 33.3", b.Percentage)
			}
		}
	}
}

func TestRatingDistributionEmpty(t *testing.T) {
	buckets := RatingDistribution(map[int]int64{}, 0)
	if len(buckets) != 5 {
		t.Fatalf("got %d buckets; want 5", len(buckets))
	}
	for _, b := range buckets {
		if b.Count != 0 || b.Percentage != 0 {
			t.Errorf("empty distribution bucket %d = %+v; want zeros", b.Stars, b)
		}
	}
}
