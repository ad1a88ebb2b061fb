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

// samaMoney drives the SAMA Money merchant API. Requests authenticate
// with the merchant code and public key in the body and the transaction
// key as a bearer header.
type samaMoney struct {
	baseURL     string
	creds       *vault.Credentials
	returnURL   string
	callbackURL string
	client      *http.Client
}

func newSamaMoney(baseURL string, creds *vault.Credentials, returnURL, callbackURL string) *samaMoney {
	return &samaMoney{
		baseURL:     strings.TrimRight(baseURL, "/"),
		creds:       creds,
		returnURL:   returnURL,
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *samaMoney) Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	body := map[string]interface{}{
		"merchant_code":         s.creds.MerchantCode,
		"user_id":               s.creds.UserID,
		"public_key":            s.creds.PublicKey,
		"amount":                req.Amount,
		"currency":              req.Currency,
		"customer_phone":        req.CustomerPhone,
		"customer_name":         req.CustomerName,
		"customer_email":        req.CustomerEmail,
		"transaction_reference": req.TransactionReference,
		"callback_url":          fmt.Sprintf("%s/sama_money", s.callbackURL),
		"return_url":            s.returnURL,
	}

	var res struct {
		Status        string `json:"status"`
		Message       string `json:"message"`
		TransactionID string `json:"transaction_id"`
		PaymentURL    string `json:"payment_url"`
	}

	headers := map[string]string{"Authorization": "Bearer " + s.creds.TransactionKey}
	err := do(ctx, s.client, http.MethodPost, s.baseURL+"/payment/initiate", headers, body, &res)
	if err != nil {
		return nil, fmt.Errorf("initiate: payment/initiate call failed: %w", err)
	}

	return &model.PaymentResponse{
		Success:       true,
		TransactionID: res.TransactionID,
		PaymentURL:    res.PaymentURL,
		GatewayResponse: map[string]string{
			"status":        "initiated",
			"reference":     req.TransactionReference,
			"merchant_code": s.creds.MerchantCode,
		},
	}, nil
}

func (s *samaMoney) CheckStatus(ctx context.Context, transactionID string) (string, error) {
	var res struct {
		Status string `json:"status"`
	}

	headers := map[string]string{"Authorization": "Bearer " + s.creds.TransactionKey}
	url := fmt.Sprintf("%s/payment/status/%s", s.baseURL, transactionID)
	err := do(ctx, s.client, http.MethodGet, url, headers, nil, &res)
	if err != nil {
		return "", fmt.Errorf("checkStatus: payment/status call failed: %w", err)
	}

	return res.Status, nil
}

func (s *samaMoney) VerifyWebhook(payload []byte, signature string) bool {
	return verifyHMAC(s.creds.WebhookSecret, payload, signature)
}
