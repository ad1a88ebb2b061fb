package handler

import (
	"context"
	c "elverra-club-backend/context"
	"elverra-club-backend/membership"
	"elverra-club-backend/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:            "amadou@example.com",
		Password:         "s3cret99",
		ConfirmPassword:  "s3cret99",
		FullName:         "Amadou Diallo",
		PhoneCountryCode: "+223",
		PhoneNumber:      "70123456",
		Tier:             membership.TierPremium,
	}
}

func TestValidateRegister(t *testing.T) {
	assert.Nil(t, validateRegister(registerRequest()))
}

func TestValidateRegisterShortPassword(t *testing.T) {
	req := registerRequest()
	req.Password = "abc"
	req.ConfirmPassword = "abc"

	err := validateRegister(req)

	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Contains(t, err.Message, "6 characters")
}

func TestValidateRegisterPasswordMismatch(t *testing.T) {
	req := registerRequest()
	req.ConfirmPassword = "different"

	err := validateRegister(req)

	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestValidateRegisterInvalidEmail(t *testing.T) {
	req := registerRequest()
	req.Email = "not-an-email"

	require.NotNil(t, validateRegister(req))
}

func TestValidateRegisterUnknownTier(t *testing.T) {
	req := registerRequest()
	req.Tier = "platinum"

	require.NotNil(t, validateRegister(req))
}

func TestValidateRegisterMissingName(t *testing.T) {
	req := registerRequest()
	req.FullName = "  "

	require.NotNil(t, validateRegister(req))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, validateEmail("fatou@elverra.ml"))
	assert.True(t, validateEmail("a.b+c@sub.example.com"))
	assert.False(t, validateEmail("fatou@"))
	assert.False(t, validateEmail("@elverra.ml"))
	assert.False(t, validateEmail("plain"))
}

func TestMemberIDFromContext(t *testing.T) {
	ctx := c.SetContextWithValue(context.Background(), c.ContextKeyMemberID, "42")

	id, ok := memberID(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = memberID(context.Background())
	assert.False(t, ok)

	bad := c.SetContextWithValue(context.Background(), c.ContextKeyMemberID, "abc")
	_, ok = memberID(bad)
	assert.False(t, ok)
}
