package membership

import (
	"elverra-club-backend/codec"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardKey = []byte("0123456789abcdef0123456789abcdef")

func cardToken(t *testing.T, payload CardPayload) string {
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	token, err := codec.Encrypt(cardKey, b)
	require.NoError(t, err)
	return token
}

func TestValidateCard(t *testing.T) {
	expiry := time.Now().UTC().Add(180 * 24 * time.Hour)
	token := cardToken(t, CardPayload{
		MemberCode: "ELV-482910",
		Tier:       TierPremium,
		ExpiryDate: expiry,
		IssuedAt:   time.Now().UTC(),
	})

	payload, valid, err := ValidateCard(token, cardKey)
	require.NoError(t, err)

	assert.True(t, valid)
	assert.Equal(t, "ELV-482910", payload.MemberCode)
	assert.Equal(t, TierPremium, payload.Tier)
	assert.True(t, payload.ExpiryDate.Equal(expiry))
}

func TestValidateCardExpired(t *testing.T) {
	token := cardToken(t, CardPayload{
		MemberCode: "ELV-111111",
		Tier:       TierEssential,
		ExpiryDate: time.Now().UTC().Add(-time.Hour),
	})

	_, valid, err := ValidateCard(token, cardKey)
	require.NoError(t, err)

	assert.False(t, valid)
}

func TestValidateCardGarbageToken(t *testing.T) {
	_, _, err := ValidateCard("not-a-card-token", cardKey)

	require.Error(t, err)
}

func TestValidateCardWrongKey(t *testing.T) {
	token := cardToken(t, CardPayload{MemberCode: "ELV-222222", Tier: TierElite})

	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	_, _, err := ValidateCard(token, otherKey)

	require.Error(t, err)
}
