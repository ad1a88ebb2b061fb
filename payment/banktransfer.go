package payment

import (
	"context"
	"elverra-club-backend/model"
	"fmt"
)

// bankTransfer issues static transfer instructions. Completion happens
// when an operator confirms receipt through the webhook endpoint.
type bankTransfer struct {
	bankName      string
	accountName   string
	accountNumber string
	webhookSecret string
}

func newBankTransfer(bankName, accountName, accountNumber, webhookSecret string) *bankTransfer {
	return &bankTransfer{
		bankName:      bankName,
		accountName:   accountName,
		accountNumber: accountNumber,
		webhookSecret: webhookSecret,
	}
}

func (b *bankTransfer) Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	instructions := fmt.Sprintf(
		"Transfer %.0f %s to %s, account %s (%s). Use reference %s so the payment can be matched.",
		req.Amount, req.Currency, b.bankName, b.accountNumber, b.accountName, req.TransactionReference,
	)

	return &model.PaymentResponse{
		Success:       true,
		TransactionID: req.TransactionReference,
		Instructions:  instructions,
		GatewayResponse: map[string]string{
			"status":    "awaiting_transfer",
			"reference": req.TransactionReference,
		},
	}, nil
}

func (b *bankTransfer) CheckStatus(ctx context.Context, transactionID string) (string, error) {
	// The bank gives no API to poll; status moves via operator webhook.
	return model.PaymentPending, nil
}

func (b *bankTransfer) VerifyWebhook(payload []byte, signature string) bool {
	return verifyHMAC(b.webhookSecret, payload, signature)
}
