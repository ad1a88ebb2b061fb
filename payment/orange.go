package payment

import (
	"context"
	"elverra-club-backend/model"
	"elverra-club-backend/vault"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const orangeOAuthURL = "https://api.orange.com/oauth/v3/token"

// orangeMoney drives the Orange Money WebPayment API: an OAuth2
// client-credentials token exchange followed by a webpayment POST that
// yields a redirect URL for the customer.
type orangeMoney struct {
	baseURL     string
	oauthURL    string
	creds       *vault.Credentials
	returnURL   string
	callbackURL string
	client      *http.Client

	token       string
	tokenExpiry time.Time
}

func newOrangeMoney(baseURL string, creds *vault.Credentials, returnURL, callbackURL string) *orangeMoney {
	return &orangeMoney{
		baseURL:     strings.TrimRight(baseURL, "/"),
		oauthURL:    orangeOAuthURL,
		creds:       creds,
		returnURL:   returnURL,
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (o *orangeMoney) Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	token, err := o.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("initiate: unable to get oauth token: %w", err)
	}

	body := map[string]interface{}{
		"merchant_key": o.creds.MerchantCode,
		"currency":     req.Currency,
		"order_id":     req.TransactionReference,
		"amount":       req.Amount,
		"return_url":   o.returnURL,
		"cancel_url":   o.returnURL,
		"notif_url":    fmt.Sprintf("%s/orange_money", o.callbackURL),
		"lang":         "fr",
		"reference":    o.creds.MerchantLogin,
	}

	var res struct {
		Status     int    `json:"status"`
		Message    string `json:"message"`
		PayToken   string `json:"pay_token"`
		PaymentURL string `json:"payment_url"`
		NotifToken string `json:"notif_token"`
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	err = do(ctx, o.client, http.MethodPost, o.baseURL+"/webpayment", headers, body, &res)
	if err != nil {
		return nil, fmt.Errorf("initiate: webpayment call failed: %w", err)
	}

	return &model.PaymentResponse{
		Success:       true,
		TransactionID: res.PayToken,
		PaymentURL:    res.PaymentURL,
		GatewayResponse: map[string]string{
			"status":      "initiated",
			"reference":   req.TransactionReference,
			"notif_token": res.NotifToken,
		},
	}, nil
}

func (o *orangeMoney) CheckStatus(ctx context.Context, transactionID string) (string, error) {
	token, err := o.accessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("checkStatus: unable to get oauth token: %w", err)
	}

	body := map[string]interface{}{
		"order_id":  transactionID,
		"pay_token": transactionID,
	}

	var res struct {
		Status string `json:"status"`
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	err = do(ctx, o.client, http.MethodPost, o.baseURL+"/transactionstatus", headers, body, &res)
	if err != nil {
		return "", fmt.Errorf("checkStatus: transactionstatus call failed: %w", err)
	}

	return res.Status, nil
}

func (o *orangeMoney) VerifyWebhook(payload []byte, signature string) bool {
	return verifyHMAC(o.creds.WebhookSecret, payload, signature)
}

func (o *orangeMoney) accessToken(ctx context.Context) (string, error) {
	if o.token != "" && time.Now().Before(o.tokenExpiry) {
		return o.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest(http.MethodPost, o.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("accessToken: unable to create request: %w", err)
	}
	req = req.WithContext(ctx)

	basic := base64.StdEncoding.EncodeToString([]byte(o.creds.ClientID + ":" + o.creds.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("accessToken: token request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("accessToken: token request returned %d", res.StatusCode)
	}

	var tokenRes struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := decodeJSON(res.Body, &tokenRes); err != nil {
		return "", fmt.Errorf("accessToken: error decoding token response: %w", err)
	}

	o.token = tokenRes.AccessToken
	o.tokenExpiry = time.Now().Add(time.Duration(tokenRes.ExpiresIn-60) * time.Second)
	return o.token, nil
}
