package model

import (
	"time"
)

const (
	RescuePending  = "pending"
	RescueApproved = "approved"
	RescueRejected = "rejected"
)

type SecoursSubscription struct {
	SubscriptionID   int64  `json:"subscription_id,omitempty"`
	MemberID         int64  `json:"member_id,omitempty"`
	SubscriptionType string `json:"subscription_type,omitempty"`

	TokenBalance int64 `json:"token_balance"`
	IsActive     bool  `json:"is_active,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
}

type TokenTransaction struct {
	TransactionID  int64  `json:"transaction_id,omitempty"`
	SubscriptionID int64  `json:"subscription_id,omitempty"`
	TokenAmount    int64  `json:"token_amount,omitempty"`
	AmountFCFA     int64  `json:"amount_fcfa,omitempty"`
	PaymentMethod  string `json:"payment_method,omitempty"`
	Reference      string `json:"reference,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
}

type RescueRequest struct {
	RescueRequestID int64  `json:"rescue_request_id,omitempty"`
	SubscriptionID  int64  `json:"subscription_id,omitempty"`
	Description     string `json:"description,omitempty"`
	ValueFCFA       int64  `json:"value_fcfa,omitempty"`
	TokensDebited   int64  `json:"tokens_debited,omitempty"`
	Status          string `json:"status,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

type TokenPolicy struct {
	SubscriptionType string `json:"subscription_type"`
	TokenValueFCFA   int64  `json:"token_value_fcfa"`
	MinTokens        int64  `json:"min_tokens"`
	MaxTokens        int64  `json:"max_tokens"`
}
