package billing

import "testing"

func TestCalculateFee(t *testing.T) {
	tests := []struct {
		name       string
		tier       Tier
		prepay     bool
		months     int
		addonTotal float64
		want       Breakdown
	}{
		{
			name: "L1 no prepay",
			tier: TierL1,
			want: Breakdown{BaseFee: 2000, Total: 2000},
		},
		{
			name:   "L2 months selected but not prepaying",
			tier:   TierL2,
			months: 6,
			want:   Breakdown{BaseFee: 2000, Total: 2000},
		},
		{
			name:   "L1 prepay two months no discount",
			tier:   TierL1,
			prepay: true,
			months: 2,
			want:   Breakdown{BaseFee: 2000, MonthlyFee: 3000, Total: 5000},
		},
		{
			name:   "L1 prepay four months discounts the two extra",
			tier:   TierL1,
			prepay: true,
			months: 4,
			want:   Breakdown{BaseFee: 2000, MonthlyFee: 5600, Discount: 400, Total: 7600},
		},
		{
			name:   "L2 prepay three months",
			tier:   TierL2,
			prepay: true,
			months: 3,
			want:   Breakdown{BaseFee: 2000, MonthlyFee: 7300, Discount: 200, Total: 9300},
		},
		{
			name:       "L3 prepay with addons",
			tier:       TierL3,
			prepay:     true,
			months:     6,
			addonTotal: 2000,
			want:       Breakdown{BaseFee: 2000, MonthlyFee: 14200, Discount: 800, AddonFees: 2000, Total: 18200},
		},
		{
			name:       "L3 addons without prepay",
			tier:       TierL3,
			addonTotal: 3000,
			want:       Breakdown{BaseFee: 2000, AddonFees: 3000, Total: 5000},
		},
		{
			name:   "prepay flag with zero months charges nothing monthly",
			tier:   TierL3,
			prepay: true,
			months: 0,
			want:   Breakdown{BaseFee: 2000, Total: 2000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateFee(tt.tier, tt.prepay, tt.months, tt.addonTotal)
			if got != tt.want {
				t.Errorf("CalculateFee(%v, %v, %d, %v) = %+v; want %+v",
					tt.tier, tt.prepay, tt.months, tt.addonTotal, got, tt.want)
			}
		})
	}
}

func TestCalculateFeeIdempotent(t *testing.T) {
	first := CalculateFee(TierL2, true, 8, 1000)
	second := CalculateFee(TierL2, true, 8, 1000)
	if first != second {
		t.Errorf("repeated calculation drifted: %+v vs %+v", first, second)
	}
}

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		tier Tier
		want float64
	}{
		{TierL1, 1500},
		{TierL2, 2500},
		{TierL3, 2500},
		{Tier("L9"), 0},
	}
	for _, tt := range tests {
		if got := MonthlyRate(tt.tier); got != tt.want {
			t.Errorf("MonthlyRate(%v) = %v; want %v", tt.tier, got, tt.want)
		}
	}
}

func TestTierValid(t *testing.T) {
	for _, tier := range []Tier{TierL1, TierL2, TierL3} {
		if !tier.Valid() {
			t.Errorf("%v should be valid", tier)
		}
	}
	for _, tier := range []Tier{"", "l1", "L4"} {
		if tier.Valid() {
			t.Errorf("%v should be invalid", tier)
		}
	}
}
