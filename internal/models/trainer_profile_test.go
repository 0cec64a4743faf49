package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func pendingProfile() *TrainerProfile {
	return &TrainerProfile{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		ApprovalStatus: ApprovalPending,
	}
}

func TestApprove(t *testing.T) {
	profile := pendingProfile()
	admin := uuid.New()
	at := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	if err := profile.Approve(admin, at); err != nil {
		t.Fatalf("Approve returned %v", err)
	}
	if profile.ApprovalStatus != ApprovalApproved {
		t.Errorf("status = %v; want %v", profile.ApprovalStatus, ApprovalApproved)
	}
	if profile.ApprovedByID == nil || *profile.ApprovedByID != admin {
		t.Error("approver not recorded")
	}
	if profile.ApprovalDate == nil || !profile.ApprovalDate.Equal(at) {
		t.Error("approval date not recorded")
	}
}

func TestApproveGuards(t *testing.T) {
	admin := uuid.New()
	at := time.Now()

	profile := pendingProfile()
	if err := profile.Approve(uuid.Nil, at); !errors.Is(err, ErrApproverMissing) {
		t.Errorf("nil approver: got %v; want ErrApproverMissing", err)
	}

	if err := profile.Approve(admin, at); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if err := profile.Approve(admin, at); !errors.Is(err, ErrNotPending) {
		t.Errorf("re-approve: got %v; want ErrNotPending", err)
	}
}

func TestReject(t *testing.T) {
	profile := pendingProfile()
	admin := uuid.New()
	at := time.Now()

	if err := profile.Reject(admin, "incomplete certification", at); err != nil {
		t.Fatalf("Reject returned %v", err)
	}
	if profile.ApprovalStatus != ApprovalRejected {
		t.Errorf("status = %v; want %v", profile.ApprovalStatus, ApprovalRejected)
	}
	if profile.RejectionReason != "incomplete certification" {
		t.Errorf("reason = %q", profile.RejectionReason)
	}
}

func TestRejectGuards(t *testing.T) {
	admin := uuid.New()
	at := time.Now()

	profile := pendingProfile()
	if err := profile.Reject(admin, "", at); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("empty reason: got %v; want ErrReasonRequired", err)
	}
	if profile.ApprovalStatus != ApprovalPending {
		t.Error("failed rejection must not change state")
	}

	if err := profile.Reject(admin, "reason", at); err != nil {
		t.Fatalf("first reject failed: %v", err)
	}
	if err := profile.Approve(admin, at); !errors.Is(err, ErrNotPending) {
		t.Errorf("approve after reject: got %v; want ErrNotPending", err)
	}
	if err := profile.Reject(admin, "again", at); !errors.Is(err, ErrNotPending) {
		t.Errorf("re-reject: got %v; want ErrNotPending", err)
	}
}
