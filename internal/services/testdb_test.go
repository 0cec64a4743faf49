package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/healthhubhq/backend/internal/config"
	"github.com/healthhubhq/backend/internal/mail"
)

// newTestDB opens an isolated in-memory SQLite database holding the
// tables the service tests touch. The production schema is postgres
// (uuid defaults, a partial index), so the tables are declared by hand
// instead of auto-migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// :memory: is per-connection; a second pooled connection would see
	// an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	ddl := []string{
		`CREATE TABLE users (
			id text PRIMARY KEY,
			role text NOT NULL,
			full_name text NOT NULL,
			email text NOT NULL UNIQUE,
			password text NOT NULL,
			phone_number text,
			profile_photo text,
			active numeric,
			registered_at datetime,
			created_at datetime,
			updated_at datetime,
			deleted_at datetime
		)`,
		`CREATE TABLE trainer_profiles (
			id text PRIMARY KEY,
			user_id text NOT NULL UNIQUE,
			qualification text,
			specialization text,
			experience_years integer,
			certification_details text,
			licenses text,
			accreditations text,
			approval_status text NOT NULL DEFAULT 'PENDING',
			approved_by_id text,
			approval_date datetime,
			rejection_reason text,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE TABLE refresh_tokens (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			token_hash text NOT NULL UNIQUE,
			expires_at datetime NOT NULL,
			revoked numeric,
			created_at datetime
		)`,
		`CREATE TABLE memberships (
			id text PRIMARY KEY,
			user_id text NOT NULL UNIQUE,
			tier text NOT NULL,
			registration_id text NOT NULL UNIQUE,
			age integer,
			current_weight real,
			join_date datetime,
			medical_history text,
			payment_status text NOT NULL DEFAULT 'PENDING',
			payment_confirmed_by_id text,
			payment_confirmed_at datetime,
			payment_notes text,
			prepay_monthly numeric,
			months_selected integer,
			extra_protein numeric,
			base_fee real,
			monthly_fee real,
			discount real,
			addon_fees real,
			total real,
			created_at datetime,
			updated_at datetime,
			deleted_at datetime
		)`,
		`CREATE TABLE addons (
			id text PRIMARY KEY,
			membership_id text NOT NULL,
			addon_type text NOT NULL,
			fee real,
			assigned_trainer_id text,
			created_at datetime
		)`,
		`CREATE UNIQUE INDEX idx_addons_membership_type ON addons (membership_id, addon_type)`,
		`CREATE TABLE trainer_ratings (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			trainer_id text NOT NULL,
			membership_id text NOT NULL,
			rating integer NOT NULL,
			review text,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE UNIQUE INDEX idx_ratings_user_trainer_membership ON trainer_ratings (user_id, trainer_id, membership_id)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create test schema: %v", err)
		}
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   15 * time.Minute,
		JWTRefreshExpiry:  168 * time.Hour,
		SideEffectTimeout: time.Second,
		BaseURL:           "http://localhost:8080",
	}
}

// recorderSender captures outgoing mail instead of delivering it.
type recorderSender struct {
	sent []mail.Message
}

func (r *recorderSender) Send(_ context.Context, msg mail.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}
