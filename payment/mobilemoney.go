package payment

import (
	"context"
	"elverra-club-backend/model"
	"elverra-club-backend/vault"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// mobileMoney is the adapter for the Wave and Moov checkout APIs, which
// share the same session-based shape: an api-key authenticated POST that
// returns a hosted checkout URL.
type mobileMoney struct {
	gatewayID   string
	baseURL     string
	creds       *vault.Credentials
	returnURL   string
	callbackURL string
	client      *http.Client
}

func newMobileMoney(gatewayID, baseURL string, creds *vault.Credentials, returnURL, callbackURL string) *mobileMoney {
	return &mobileMoney{
		gatewayID:   gatewayID,
		baseURL:     strings.TrimRight(baseURL, "/"),
		creds:       creds,
		returnURL:   returnURL,
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *mobileMoney) Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	body := map[string]interface{}{
		"amount":           req.Amount,
		"currency":         req.Currency,
		"client_reference": req.TransactionReference,
		"customer_phone":   req.CustomerPhone,
		"success_url":      m.returnURL,
		"error_url":        m.returnURL,
		"webhook_url":      fmt.Sprintf("%s/%s", m.callbackURL, m.gatewayID),
	}

	var res struct {
		ID          string `json:"id"`
		CheckoutURL string `json:"checkout_url"`
		Status      string `json:"status"`
	}

	headers := map[string]string{"Authorization": "Bearer " + m.creds.APIKey}
	err := do(ctx, m.client, http.MethodPost, m.baseURL+"/checkout/sessions", headers, body, &res)
	if err != nil {
		return nil, fmt.Errorf("initiate: checkout session call failed: %w", err)
	}

	return &model.PaymentResponse{
		Success:       true,
		TransactionID: res.ID,
		PaymentURL:    res.CheckoutURL,
		GatewayResponse: map[string]string{
			"status":    "initiated",
			"reference": req.TransactionReference,
		},
	}, nil
}

func (m *mobileMoney) CheckStatus(ctx context.Context, transactionID string) (string, error) {
	var res struct {
		Status string `json:"status"`
	}

	headers := map[string]string{"Authorization": "Bearer " + m.creds.APIKey}
	url := fmt.Sprintf("%s/checkout/sessions/%s", m.baseURL, transactionID)
	err := do(ctx, m.client, http.MethodGet, url, headers, nil, &res)
	if err != nil {
		return "", fmt.Errorf("checkStatus: checkout session lookup failed: %w", err)
	}

	return res.Status, nil
}

func (m *mobileMoney) VerifyWebhook(payload []byte, signature string) bool {
	return verifyHMAC(m.creds.WebhookSecret, payload, signature)
}
