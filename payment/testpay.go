package payment

import (
	"context"
	"elverra-club-backend/model"
	"fmt"
)

// testPay is the sandbox processor. It is deterministic: references
// prefixed with "FAIL" are declined, everything else succeeds.
type testPay struct {
	webhookSecret string
}

func newTestPay(webhookSecret string) *testPay {
	return &testPay{webhookSecret: webhookSecret}
}

func (t *testPay) Initiate(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	if len(req.TransactionReference) >= 4 && req.TransactionReference[:4] == "FAIL" {
		return nil, fmt.Errorf("initiate: test payment declined")
	}

	return &model.PaymentResponse{
		Success:       true,
		TransactionID: "TEST_" + req.TransactionReference,
		PaymentURL:    "https://pay.test/redirect/" + req.TransactionReference,
		GatewayResponse: map[string]string{
			"status":    "initiated",
			"reference": req.TransactionReference,
		},
	}, nil
}

func (t *testPay) CheckStatus(ctx context.Context, transactionID string) (string, error) {
	return model.PaymentCompleted, nil
}

func (t *testPay) VerifyWebhook(payload []byte, signature string) bool {
	return verifyHMAC(t.webhookSecret, payload, signature)
}
