package payment

import (
	"context"
	"elverra-club-backend/model"
	"elverra-club-backend/vault"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"encoding/json"
)

// stripeCard drives the Stripe PaymentIntents API. Stripe takes
// form-encoded bodies, so it does not share the JSON helper.
type stripeCard struct {
	baseURL string
	creds   *vault.Credentials
	client  *http.Client
}

func newStripeCard(baseURL string, creds *vault.Credentials) *stripeCard {
	return &stripeCard{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *stripeCard) Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	form := url.Values{}
	// Stripe amounts are in minor units.
	form.Set("amount", fmt.Sprintf("%d", int64(req.Amount*100)))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("metadata[reference]", req.TransactionReference)
	form.Set("receipt_email", req.CustomerEmail)

	var res struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Status       string `json:"status"`
	}

	err := s.post(ctx, s.baseURL+"/payment_intents", form, &res)
	if err != nil {
		return nil, fmt.Errorf("initiate: payment_intents call failed: %w", err)
	}

	return &model.PaymentResponse{
		Success:       true,
		TransactionID: res.ID,
		GatewayResponse: map[string]string{
			"status":        res.Status,
			"reference":     req.TransactionReference,
			"client_secret": res.ClientSecret,
		},
	}, nil
}

func (s *stripeCard) CheckStatus(ctx context.Context, transactionID string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/payment_intents/%s", s.baseURL, transactionID), nil)
	if err != nil {
		return "", fmt.Errorf("checkStatus: unable to create request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+s.creds.APIKey)

	res, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkStatus: request failed: %w", err)
	}
	defer res.Body.Close()

	var data struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("checkStatus: error decoding response: %w", err)
	}

	return data.Status, nil
}

func (s *stripeCard) VerifyWebhook(payload []byte, signature string) bool {
	return verifyHMAC(s.creds.WebhookSecret, payload, signature)
}

func (s *stripeCard) post(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("post: unable to create request: %w", err)
	}
	req = req.WithContext(ctx)

	req.Header.Set("Authorization", "Bearer "+s.creds.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("post: error reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("post: %s returned %d: %s", endpoint, res.StatusCode, string(data))
	}

	return json.Unmarshal(data, out)
}
