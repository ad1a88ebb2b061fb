package membership

// Tier is a membership level and its fee schedule in CFA francs.
type Tier struct {
	Name            string
	RegistrationFee float64
	MonthlyFee      float64
	DiscountPct     int
}

const (
	TierEssential = "essential"
	TierPremium   = "premium"
	TierElite     = "elite"
)

var tiers = map[string]Tier{
	TierEssential: {Name: "Essential", RegistrationFee: 10000, MonthlyFee: 1000, DiscountPct: 5},
	TierPremium:   {Name: "Premium", RegistrationFee: 10000, MonthlyFee: 2000, DiscountPct: 10},
	TierElite:     {Name: "Elite", RegistrationFee: 10000, MonthlyFee: 5000, DiscountPct: 20},
}

// TierByID returns the tier definition for a tier id.
func TierByID(id string) (Tier, bool) {
	t, ok := tiers[id]
	return t, ok
}

// ReferralCommission is the commission accrued for a referred
// registration: 10% of the registration fee.
func ReferralCommission(t Tier) float64 {
	return t.RegistrationFee * 10 / 100
}
