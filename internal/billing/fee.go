// Package billing holds the membership fee and lifecycle arithmetic. All
// functions are pure so persistence can recompute on every save and get
// the same numbers back.
package billing

// Tier is a membership plan level.
type Tier string

const (
	TierL1 Tier = "L1" // FitStarter
	TierL2 Tier = "L2" // ProActive
	TierL3 Tier = "L3" // EliteChamp
)

func (t Tier) Valid() bool {
	switch t {
	case TierL1, TierL2, TierL3:
		return true
	}
	return false
}

// DisplayName returns the marketing name for a tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierL1:
		return "FitStarter"
	case TierL2:
		return "ProActive"
	case TierL3:
		return "EliteChamp"
	}
	return string(t)
}

const (
	// BaseFee is the flat registration fee charged to every member.
	BaseFee = 2000.0

	// AddonFee is charged per selected L3 add-on.
	AddonFee = 1000.0

	// prepayDiscountPerMonth applies to every prepaid month beyond the second.
	prepayDiscountPerMonth = 200.0
	discountFreeMonths     = 2
)

// MonthlyRate returns the per-month rate for a tier.
func MonthlyRate(tier Tier) float64 {
	switch tier {
	case TierL1:
		return 1500
	case TierL2, TierL3:
		return 2500
	}
	return 0
}

// Breakdown is the computed fee split for a membership.
type Breakdown struct {
	BaseFee    float64 `json:"base_fee"`
	MonthlyFee float64 `json:"monthly_fee"`
	Discount   float64 `json:"discount"`
	AddonFees  float64 `json:"addon_fees"`
	Total      float64 `json:"total"`
}

// CalculateFee computes the fee breakdown for a membership request.
// MonthlyFee is the discounted total for all prepaid months; Discount is
// the amount already subtracted from it.
func CalculateFee(tier Tier, prepay bool, months int, addonTotal float64) Breakdown {
	b := Breakdown{BaseFee: BaseFee, AddonFees: addonTotal}

	if prepay && months > 0 {
		monthly := MonthlyRate(tier) * float64(months)
		if months > discountFreeMonths {
			b.Discount = prepayDiscountPerMonth * float64(months-discountFreeMonths)
			monthly -= b.Discount
		}
		b.MonthlyFee = monthly
	}

	b.Total = b.BaseFee + b.MonthlyFee + b.AddonFees
	return b
}
