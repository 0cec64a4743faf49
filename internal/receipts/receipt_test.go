package receipts

import (
	"bytes"
	"testing"
	"time"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		RegistrationID: "7f9c34b2-9a1e-4c7d-8a2b-1f0e5d6c4a3b",
		ReceiptNumber:  "0d2e8b7a-5c4f-4e3d-9b1a-6c7d8e9f0a1b",
		GeneratedAt:    time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
		MemberName:     "Asha Verma",
		Email:          "asha@example.com",
		Phone:          "9876543210",
		Age:            29,
		WeightKg:       61.5,
		JoinDate:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		TierCode:       "L3",
		TierName:       "EliteChamp",
		Amenities:      []string{"All L1 + L2 Features", "Daily Protein Shake (40g)", "Personal Trainer Booking"},
		Prepay:         true,
		Months:         6,
		MonthlyRate:    2500,
		BaseFee:        2000,
		MonthlyFee:     14200,
		Discount:       800,
		AddonFees:      1000,
		Total:          17200,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(sampleSnapshot())
	if err != nil {
		t.Fatalf("Render returned %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Render produced no bytes")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", out[:8])
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := sampleSnapshot()

	first, err := Render(s)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := Render(s)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical snapshots must render identical bytes")
	}
}

func TestRenderWithoutOptionalSections(t *testing.T) {
	s := sampleSnapshot()
	s.Prepay = false
	s.Months = 0
	s.MonthlyFee = 0
	s.Discount = 0
	s.AddonFees = 0
	s.Total = 2000
	s.Amenities = nil

	out, err := Render(s)
	if err != nil {
		t.Fatalf("Render returned %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Render produced no bytes")
	}
}
