package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/config"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/mail"
	"github.com/healthhubhq/backend/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminExists        = errors.New("an administrator account already exists")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrTrainerPending     = errors.New("your trainer account is pending admin approval")
	ErrTrainerRejected    = errors.New("your trainer account has been rejected")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	sender mail.Sender
}

func NewAuthService(db *gorm.DB, cfg *config.Config, sender mail.Sender) *AuthService {
	return &AuthService{db: db, cfg: cfg, sender: sender}
}

// RegisterAdmin creates the single admin account. The partial unique
// index on role is the authority for exclusivity; a duplicate-key error
// from a concurrent registration surfaces as ErrAdminExists.
func (s *AuthService) RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Role:        models.RoleAdmin,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
		Active:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.AdminProfile{
			ID:            uuid.New(),
			UserID:        user.ID,
			Qualification: req.Qualification,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, s.translateCreateError(err, req.Email)
	}

	s.sendWelcome(ctx, &user)
	return &user, nil
}

// RegisterTrainer creates an inactive trainer account with a pending
// approval credential. The trainer cannot login until an admin approves.
func (s *AuthService) RegisterTrainer(ctx context.Context, req *dto.RegisterTrainerRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Role:        models.RoleTrainer,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
		Active:      false,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.TrainerProfile{
			ID:                   uuid.New(),
			UserID:               user.ID,
			Qualification:        req.Qualification,
			Specialization:       req.Specialization,
			ExperienceYears:      req.ExperienceYears,
			CertificationDetails: req.CertificationDetails,
			Licenses:             req.Licenses,
			Accreditations:       req.Accreditations,
			ApprovalStatus:       models.ApprovalPending,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, s.translateCreateError(err, req.Email)
	}

	s.sendWelcome(ctx, &user)
	return &user, nil
}

// Login authenticates any role. Trainer accounts are gated on approval
// state: Pending and Rejected are refused with state-specific errors and
// no session is established.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role == models.RoleTrainer {
		var profile models.TrainerProfile
		if err := s.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			return nil, fmt.Errorf("trainer profile not found: %w", err)
		}
		switch profile.ApprovalStatus {
		case models.ApprovalPending:
			return nil, ErrTrainerPending
		case models.ApprovalRejected:
			return nil, fmt.Errorf("%w: %s", ErrTrainerRejected, profile.RejectionReason)
		}
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if !user.Active {
		return nil, ErrAccountInactive
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// sendWelcome dispatches the registration email; failure is logged and
// never propagated.
func (s *AuthService) sendWelcome(ctx context.Context, user *models.User) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SideEffectTimeout)
	defer cancel()
	msg := mail.RegistrationMessage(user, s.cfg.BaseURL+"/login")
	if err := s.sender.Send(ctx, msg); err != nil {
		slog.Warn("welcome email failed", "error", err, "user_id", user.ID)
	}
}

// translateCreateError maps unique-index violations onto domain errors.
func (s *AuthService) translateCreateError(err error, email string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var count int64
		s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
		if count > 0 {
			return ErrEmailTaken
		}
		return ErrAdminExists
	}
	return fmt.Errorf("failed to create user: %w", err)
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
