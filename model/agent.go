package model

import (
	"time"
)

type Agent struct {
	AgentID  int64 `json:"agent_id,omitempty"`
	MemberID int64 `json:"member_id,omitempty"`

	ReferralCode string `json:"referral_code,omitempty"`
	AgentType    string `json:"agent_type,omitempty"`

	CommissionsTotal     float64 `json:"commissions_total"`
	CommissionsPending   float64 `json:"commissions_pending"`
	CommissionsWithdrawn float64 `json:"commissions_withdrawn"`

	IsActive bool `json:"is_active,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
}

type Referral struct {
	ReferralID       int64   `json:"referral_id,omitempty"`
	AgentID          int64   `json:"agent_id,omitempty"`
	ReferredMemberID int64   `json:"referred_member_id,omitempty"`
	CommissionAmount float64 `json:"commission_amount,omitempty"`
	CommissionPaid   bool    `json:"commission_paid"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
}
