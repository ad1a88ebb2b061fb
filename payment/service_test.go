package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"elverra-club-backend/gateway"
	"elverra-club-backend/model"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessUnsupportedGateway(t *testing.T) {
	s := NewService(gateway.NewRegistry(nil, 0), nil, nil, true)

	res := s.Process(context.Background(), nil, "quantum_wallet", &model.PaymentRequest{Amount: 1000})

	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Equal(t, "Unsupported payment gateway: quantum_wallet", res.Error)
}

func TestTestPayInitiate(t *testing.T) {
	p := newTestPay("secret")

	res, err := p.Initiate(context.Background(), &model.PaymentRequest{TransactionReference: "ORANGE_1_abc"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "TEST_ORANGE_1_abc", res.TransactionID)
	assert.NotEmpty(t, res.PaymentURL)
}

func TestTestPayDeclines(t *testing.T) {
	p := newTestPay("secret")

	_, err := p.Initiate(context.Background(), &model.PaymentRequest{TransactionReference: "FAIL_1"})

	require.Error(t, err)
}

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"transaction_reference":"ORANGE_1_abc","status":"completed"}`)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, verifyHMAC("secret", payload, signature))
	assert.False(t, verifyHMAC("secret", payload, "deadbeef"))
	assert.False(t, verifyHMAC("other", payload, signature))
	assert.False(t, verifyHMAC("", payload, signature))
	assert.False(t, verifyHMAC("secret", payload, ""))
}

func TestNewReference(t *testing.T) {
	ref := newReference("orange_money")

	parts := strings.SplitN(ref, "_", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "ORANGE", parts[0])
	assert.Len(t, parts[2], 8)

	assert.NotEqual(t, ref, newReference("orange_money"))
}

func TestResponseFromRecord(t *testing.T) {
	completed := responseFromRecord(&model.Payment{
		Status:               model.PaymentCompleted,
		TransactionReference: "SAMA_1_def",
		GatewayResponse:      `{"status":"ok"}`,
	})
	assert.True(t, completed.Success)
	assert.Equal(t, "SAMA_1_def", completed.TransactionID)
	assert.Equal(t, "ok", completed.GatewayResponse["status"])

	failed := responseFromRecord(&model.Payment{Status: model.PaymentFailed, TransactionReference: "SAMA_2_ghi"})
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Error)
}
