package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/models"
)

func sampleUser(role models.Role) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Role:         role,
		FullName:     "Asha Verma",
		Email:        "asha@example.com",
		PhoneNumber:  "9876543210",
		RegisteredAt: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegistrationMessage(t *testing.T) {
	msg := RegistrationMessage(sampleUser(models.RoleTrainer), "https://healthhub.fit/login")

	if msg.To != "asha@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "Trainer") {
		t.Errorf("subject should name the role: %q", msg.Subject)
	}
	for _, want := range []string{"Asha Verma", "https://healthhub.fit/login", "June 1, 2025"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestTrainerRejectedMessageCarriesReason(t *testing.T) {
	msg := TrainerRejectedMessage(sampleUser(models.RoleTrainer), "certification could not be verified")

	if !strings.Contains(msg.Body, "certification could not be verified") {
		t.Error("rejection reason missing from body")
	}
	if len(msg.Attachments) != 0 {
		t.Error("rejection mail should have no attachments")
	}
}

func TestMembershipMessageWithReceipt(t *testing.T) {
	user := sampleUser(models.RoleMember)
	m := &models.Membership{
		RegistrationID: uuid.New(),
		Tier:           billing.TierL3,
		JoinDate:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		BaseFee:        2000,
		MonthlyFee:     14200,
		Discount:       800,
		AddonFees:      1000,
		Total:          17200,
	}
	addons := []models.Addon{
		{AddonType: models.AddonTrainer, AssignedTrainer: &models.User{FullName: "Ravi Kumar"}},
		{AddonType: models.AddonZumba},
	}

	msg := MembershipMessage(user, m, addons, "https://healthhub.fit/login", []byte("%PDF-fake"))

	for _, want := range []string{
		"Personal Trainer Booking",
		"Ravi Kumar",
		"Zumba & Martial Arts",
		"Rs 17200.00",
		"receipt is attached",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if len(msg.Attachments) != 1 {
		t.Fatalf("got %d attachments; want 1", len(msg.Attachments))
	}
	if !strings.HasSuffix(msg.Attachments[0].Filename, ".pdf") {
		t.Errorf("attachment filename = %q", msg.Attachments[0].Filename)
	}
}

func TestMembershipMessageWithoutReceipt(t *testing.T) {
	user := sampleUser(models.RoleMember)
	m := &models.Membership{
		RegistrationID: uuid.New(),
		Tier:           billing.TierL1,
		JoinDate:       time.Now(),
		BaseFee:        2000,
		Total:          2000,
	}

	msg := MembershipMessage(user, m, nil, "https://healthhub.fit/login", nil)

	if len(msg.Attachments) != 0 {
		t.Error("failed receipt render must not attach anything")
	}
	if strings.Contains(msg.Body, "receipt is attached") {
		t.Error("body must not promise an attachment that is missing")
	}
	if strings.Contains(msg.Body, "Add-ons Selected") {
		t.Error("no add-on section expected for L1")
	}
}
