package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrNotPlanOwner      = errors.New("exercise does not belong to your membership")
	ErrPlannerTierOnly   = errors.New("workout plans are available on the L2 tier only")
	ErrProteinNotTracked = errors.New("protein tracking is not enabled for this membership")
	ErrPlanExists        = errors.New("a plan already exists for that week and day")
)

// TrackingService covers the per-membership activity data: workout plans,
// exercise completion, protein intake and medical checkups.
type TrackingService struct {
	db *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

// ToggleExercise flips completion state on one exercise. Only the member
// owning the plan may toggle; completion timestamps clear on un-toggle.
func (s *TrackingService) ToggleExercise(userID, exerciseID uuid.UUID) (*dto.ToggleExerciseResponse, error) {
	var exercise models.Exercise
	err := s.db.Preload("WorkoutPlan.Membership").First(&exercise, "id = ?", exerciseID).Error
	if err != nil {
		return nil, ErrExerciseNotFound
	}
	if exercise.WorkoutPlan.Membership.UserID != userID {
		return nil, ErrNotPlanOwner
	}

	exercise.Completed = !exercise.Completed
	if exercise.Completed {
		now := time.Now()
		exercise.CompletedAt = &now
	} else {
		exercise.CompletedAt = nil
	}

	err = s.db.Model(&exercise).Select("completed", "completed_at").Updates(map[string]any{
		"completed":    exercise.Completed,
		"completed_at": exercise.CompletedAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update exercise: %w", err)
	}

	resp := &dto.ToggleExerciseResponse{
		ExerciseID: exercise.ID,
		Completed:  exercise.Completed,
	}
	if exercise.CompletedAt != nil {
		formatted := exercise.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &formatted
	}
	return resp, nil
}

// CreateWorkoutPlan creates one week of daily plans with their exercises
// for an L2 member. The week/day unique index rejects duplicates.
func (s *TrackingService) CreateWorkoutPlan(memberUserID uuid.UUID, req *dto.CreateWorkoutPlanRequest) ([]models.WorkoutPlan, error) {
	membership, err := s.membershipFor(memberUserID)
	if err != nil {
		return nil, err
	}
	if membership.Tier != billing.TierL2 {
		return nil, ErrPlannerTierOnly
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate := startDate.AddDate(0, 0, 6)

	var plans []models.WorkoutPlan
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, day := range req.Days {
			plan := models.WorkoutPlan{
				ID:           uuid.New(),
				MembershipID: membership.ID,
				WeekNumber:   req.WeekNumber,
				DayOfWeek:    day.DayOfWeek,
				StartDate:    startDate,
				EndDate:      endDate,
				Active:       true,
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
			for i, ex := range day.Exercises {
				exercise := models.Exercise{
					ID:            uuid.New(),
					WorkoutPlanID: plan.ID,
					Name:          ex.Name,
					ExerciseType:  ex.ExerciseType,
					Sets:          ex.Sets,
					Reps:          ex.Reps,
					Description:   ex.Description,
					SortOrder:     i,
				}
				if err := tx.Create(&exercise).Error; err != nil {
					return err
				}
				plan.Exercises = append(plan.Exercises, exercise)
			}
			plans = append(plans, plan)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPlanExists
		}
		return nil, fmt.Errorf("failed to create workout plan: %w", err)
	}
	return plans, nil
}

// UpsertProteinIntake records one day's shake intake by natural key
// (membership, date). Re-submitting a date overwrites the earlier entry.
func (s *TrackingService) UpsertProteinIntake(adminID uuid.UUID, req *dto.UpsertProteinIntakeRequest) (*models.ProteinIntake, error) {
	var membership models.Membership
	if err := s.db.First(&membership, "id = ?", req.MembershipID).Error; err != nil {
		return nil, ErrMembershipNotFound
	}
	if !proteinTracked(&membership) {
		return nil, ErrProteinNotTracked
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	intake := models.ProteinIntake{
		ID:               uuid.New(),
		MembershipID:     membership.ID,
		Date:             date,
		MorningIntake:    req.Morning,
		EveningIntake:    req.Evening,
		Notes:            req.Notes,
		UpdatedByAdminID: &adminID,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "membership_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"morning_intake", "evening_intake", "notes", "updated_by_admin_id", "updated_at"}),
	}).Create(&intake).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save protein intake: %w", err)
	}

	var saved models.ProteinIntake
	err = s.db.Where("membership_id = ? AND date = ?", membership.ID, date).First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load protein intake: %w", err)
	}
	return &saved, nil
}

// AddMedicalCheckup appends a checkup record. The log is append-only;
// corrections are new entries.
func (s *TrackingService) AddMedicalCheckup(adminID, membershipID uuid.UUID, req *dto.AddMedicalCheckupRequest) (*models.MedicalCheckup, error) {
	var membership models.Membership
	if err := s.db.First(&membership, "id = ?", membershipID).Error; err != nil {
		return nil, ErrMembershipNotFound
	}

	checkupDate, err := time.Parse("2006-01-02", req.CheckupDate)
	if err != nil {
		return nil, fmt.Errorf("invalid checkup date: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.CheckupScheduled
	}

	checkup := models.MedicalCheckup{
		ID:               uuid.New(),
		MembershipID:     membership.ID,
		CheckupDate:      checkupDate,
		CheckupType:      req.CheckupType,
		Status:           status,
		Findings:         req.Findings,
		Recommendations:  req.Recommendations,
		ConductedBy:      req.ConductedBy,
		UpdatedByAdminID: &adminID,
	}
	if req.NextCheckupDate != "" {
		next, err := time.Parse("2006-01-02", req.NextCheckupDate)
		if err != nil {
			return nil, fmt.Errorf("invalid next checkup date: %w", err)
		}
		checkup.NextCheckupDate = &next
	}

	if err := s.db.Create(&checkup).Error; err != nil {
		return nil, fmt.Errorf("failed to save checkup: %w", err)
	}
	return &checkup, nil
}

// ManagedUserData is the admin view over one member's membership and all
// tracking records.
func (s *TrackingService) ManagedUserData(userID uuid.UUID) (*dto.ManagedUserDataResponse, error) {
	var user models.User
	if err := s.db.Where("id = ? AND role = ?", userID, models.RoleMember).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var membership models.Membership
	if err := s.db.Preload("Addons.AssignedTrainer").Where("user_id = ?", userID).First(&membership).Error; err != nil {
		return nil, ErrMembershipNotFound
	}

	resp := &dto.ManagedUserDataResponse{
		UserID:     user.ID,
		FullName:   user.FullName,
		Membership: &membership,
	}

	err := s.db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("membership_id = ?", membership.ID).
		Order("week_number ASC").
		Find(&resp.WorkoutPlans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load workout plans: %w", err)
	}

	err = s.db.Where("membership_id = ?", membership.ID).
		Order("date DESC").
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

	return resp, nil
}

// WorkoutProgress computes the member's completion statistics across all
// their plans.
func (s *TrackingService) WorkoutProgress(userID uuid.UUID) (*dto.WorkoutProgressResponse, error) {
	membership, err := s.membershipFor(userID)
	if err != nil {
		return nil, err
	}
	if membership.Tier != billing.TierL2 {
		return nil, ErrPlannerTierOnly
	}

	var plans []models.WorkoutPlan
	err = s.db.Preload("Exercises").
		Where("membership_id = ?", membership.ID).
		Order("week_number ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load workout plans: %w", err)
	}

	return WorkoutProgressStats(plans), nil
}

// WorkoutProgressStats aggregates completion rates per week, per weekday
// and overall, all rounded to one decimal.
func WorkoutProgressStats(plans []models.WorkoutPlan) *dto.WorkoutProgressResponse {
	type tally struct{ total, done int }
	weeks := make(map[int]*tally)
	days := make(map[string]*tally)
	var weekOrder []int
	overall := tally{}

	for _, plan := range plans {
		w, ok := weeks[plan.WeekNumber]
		if !ok {
			w = &tally{}
			weeks[plan.WeekNumber] = w
			weekOrder = append(weekOrder, plan.WeekNumber)
		}
		d, ok := days[plan.DayOfWeek]
		if !ok {
			d = &tally{}
			days[plan.DayOfWeek] = d
		}
		for _, ex := range plan.Exercises {
			w.total++
			d.total++
			overall.total++
			if ex.Completed {
				w.done++
				d.done++
				overall.done++
			}
		}
	}

	resp := &dto.WorkoutProgressResponse{
		TotalExercises:     overall.total,
		CompletedExercises: overall.done,
		OverallRate:        completionRate(overall.done, overall.total),
	}
	for _, week := range weekOrder {
		t := weeks[week]
		resp.Weekly = append(resp.Weekly, dto.WeekStats{
			WeekNumber:         week,
			TotalExercises:     t.total,
			CompletedExercises: t.done,
			CompletionRate:     completionRate(t.done, t.total),
		})
	}
	for _, day := range models.WorkoutDays {
		t, ok := days[day]
		if !ok {
			continue
		}
		resp.Daily = append(resp.Daily, dto.DayStats{
			Day:                day,
			TotalExercises:     t.total,
			CompletedExercises: t.done,
			CompletionRate:     completionRate(t.done, t.total),
		})
	}
	return resp
}

func completionRate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(done) / float64(total) * 100)
}

func proteinTracked(m *models.Membership) bool {
	return m.Tier == billing.TierL3 || (m.Tier == billing.TierL2 && m.ExtraProtein)
}

func (s *TrackingService) membershipFor(userID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	if err := s.db.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		return nil, ErrMembershipNotFound
	}
	return &membership, nil
}
