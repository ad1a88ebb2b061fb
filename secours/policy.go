package secours

import (
	"database/sql"
	"elverra-club-backend/model"
	"fmt"
)

const (
	TypeMotors      = "motors"
	TypeCataCatanis = "cata_catanis"
	TypeAuto        = "auto"
	TypeTelephone   = "telephone"
	TypeSchoolFees  = "school_fees"
)

// defaultPolicies seed the per-type token pricing and purchase bounds.
// The secours_token_policies table overrides them, so operations can
// retune pricing without a deploy.
var defaultPolicies = map[string]model.TokenPolicy{
	TypeMotors:      {SubscriptionType: TypeMotors, TokenValueFCFA: 250, MinTokens: 10, MaxTokens: 60},
	TypeCataCatanis: {SubscriptionType: TypeCataCatanis, TokenValueFCFA: 500, MinTokens: 10, MaxTokens: 60},
	TypeAuto:        {SubscriptionType: TypeAuto, TokenValueFCFA: 750, MinTokens: 10, MaxTokens: 60},
	TypeTelephone:   {SubscriptionType: TypeTelephone, TokenValueFCFA: 250, MinTokens: 10, MaxTokens: 60},
	TypeSchoolFees:  {SubscriptionType: TypeSchoolFees, TokenValueFCFA: 500, MinTokens: 10, MaxTokens: 60},
}

// ValidType reports whether the subscription type is one of the five
// Ô Secours products.
func ValidType(subscriptionType string) bool {
	_, ok := defaultPolicies[subscriptionType]
	return ok
}

// policyFor reads the policy row for a type, falling back to the seeded
// default when the table has no row.
func policyFor(db *sql.DB, subscriptionType string) (model.TokenPolicy, error) {
	def, ok := defaultPolicies[subscriptionType]
	if !ok {
		return model.TokenPolicy{}, fmt.Errorf("policyFor: unknown subscription type: %s", subscriptionType)
	}

	var p model.TokenPolicy
	err := db.QueryRow(
		`SELECT subscription_type, token_value_fcfa, min_tokens, max_tokens FROM secours_token_policies WHERE subscription_type = ?`,
		subscriptionType,
	).Scan(&p.SubscriptionType, &p.TokenValueFCFA, &p.MinTokens, &p.MaxTokens)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return model.TokenPolicy{}, fmt.Errorf("policyFor: unable to read policy for %s: %w", subscriptionType, err)
	}

	return p, nil
}
