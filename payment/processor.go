package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"elverra-club-backend/model"
	"encoding/hex"
)

// Processor is the gateway adapter contract. Every provider, including
// the sandbox double, sits behind this interface.
type Processor interface {
	Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error)
	CheckStatus(ctx context.Context, transactionID string) (string, error)
	VerifyWebhook(payload []byte, signature string) bool
}

// verifyHMAC checks a hex-encoded HMAC-SHA256 signature over the payload.
func verifyHMAC(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
