package model

import (
	"time"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentApplied   = "applied"
)

type Payment struct {
	PaymentID int64 `json:"payment_id,omitempty"`
	MemberID  int64 `json:"member_id,omitempty"`

	PaymentType   string  `json:"payment_type,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Currency      string  `json:"currency,omitempty"`

	Status               string `json:"status,omitempty"`
	TransactionReference string `json:"transaction_reference,omitempty"`
	GatewayResponse      string `json:"gateway_response,omitempty"`

	CreatedDate *time.Time `json:"created_date,omitempty"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

type PaymentGateway struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`

	IsActive bool `json:"is_active"`

	FeePercentage float64 `json:"fee_percentage"`
	FeeFixed      float64 `json:"fee_fixed"`

	BaseURL             string   `json:"base_url,omitempty"`
	SupportedCurrencies []string `json:"supported_currencies,omitempty"`
	Description         string   `json:"description,omitempty"`
}

type PaymentRequest struct {
	MemberID      int64   `json:"member_id,omitempty"`
	PaymentType   string  `json:"payment_type,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerPhone string  `json:"customer_phone,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`

	// TransactionReference doubles as the idempotency key. When the
	// client resubmits the same reference the earlier attempt is
	// returned instead of a second charge.
	TransactionReference string `json:"transaction_reference,omitempty"`
}

type PaymentResponse struct {
	Success         bool              `json:"success"`
	TransactionID   string            `json:"transaction_id,omitempty"`
	PaymentURL      string            `json:"payment_url,omitempty"`
	Instructions    string            `json:"instructions,omitempty"`
	GatewayResponse map[string]string `json:"gateway_response,omitempty"`
	Error           string            `json:"error,omitempty"`
}
