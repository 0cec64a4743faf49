package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
)

func TestHashTokenStable(t *testing.T) {
	a := hashToken("refresh-token-value")
	b := hashToken("refresh-token-value")
	if a != b {
		t.Error("hashing the same token twice must match")
	}
	if a == hashToken("other-token") {
		t.Error("different tokens must not collide")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d; want 64 hex chars", len(a))
	}
}

func seedTrainer(t *testing.T, svc *AuthService, email, password string, status models.ApprovalStatus, reason string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		ID:          uuid.New(),
		Role:        models.RoleTrainer,
		FullName:    "Ravi Kumar",
		Email:       email,
		Password:    string(hash),
		PhoneNumber: "9876543210",
		Active:      status == models.ApprovalApproved,
	}
	if err := svc.db.Create(&user).Error; err != nil {
		t.Fatalf("create trainer user: %v", err)
	}
	profile := models.TrainerProfile{
		ID:              uuid.New(),
		UserID:          user.ID,
		Specialization:  "Strength Training",
		ApprovalStatus:  status,
		RejectionReason: reason,
	}
	if err := svc.db.Create(&profile).Error; err != nil {
		t.Fatalf("create trainer profile: %v", err)
	}
}

func TestLoginTrainerApprovalGate(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig(), &recorderSender{})

	seedTrainer(t, svc, "pending@example.com", "S3curePass!", models.ApprovalPending, "")
	seedTrainer(t, svc, "rejected@example.com", "S3curePass!", models.ApprovalRejected, "certification could not be verified")
	seedTrainer(t, svc, "approved@example.com", "S3curePass!", models.ApprovalApproved, "")

	t.Run("pending is refused", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "pending@example.com", Password: "S3curePass!"})
		if !errors.Is(err, ErrTrainerPending) {
			t.Fatalf("err = %v; want ErrTrainerPending", err)
		}
		if resp != nil {
			t.Error("no session may be established for a pending trainer")
		}
	})

	t.Run("rejected is refused with the reason", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "rejected@example.com", Password: "S3curePass!"})
		if !errors.Is(err, ErrTrainerRejected) {
			t.Fatalf("err = %v; want ErrTrainerRejected", err)
		}
		if !strings.Contains(err.Error(), "certification could not be verified") {
			t.Errorf("err = %v; want the stored rejection reason", err)
		}
		if resp != nil {
			t.Error("no session may be established for a rejected trainer")
		}
	})

	t.Run("approved logs in", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "approved@example.com", Password: "S3curePass!"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("approved trainer must receive a token pair")
		}
		if resp.User.Role != models.RoleTrainer {
			t.Errorf("role = %q; want TRAINER", resp.User.Role)
		}
	})

	t.Run("wrong password wins over approval state", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "approved@example.com", Password: "not-it"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v; want ErrInvalidCredentials", err)
		}
	})
}

func TestLoginInactiveMemberRefused(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig(), &recorderSender{})

	hash, err := bcrypt.GenerateFromPassword([]byte("S3curePass!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		ID:       uuid.New(),
		Role:     models.RoleMember,
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: string(hash),
		Active:   false,
	}
	if err := svc.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err = svc.Login(&dto.LoginRequest{Email: "asha@example.com", Password: "S3curePass!"})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("err = %v; want ErrAccountInactive", err)
	}
}
