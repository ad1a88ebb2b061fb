package agent

import (
	"context"
	"database/sql"
	"elverra-club-backend/response"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestWithdrawalOTPRejectsNonPositiveAmount(t *testing.T) {
	s := NewService()

	for _, amount := range []float64{0, -500} {
		_, err := s.RequestWithdrawalOTP(context.Background(), nil, 1, amount, nil, nil, "secret")
		require.Error(t, err)

		var er response.ErrorResponse
		require.True(t, errors.As(err, &er))
		assert.Equal(t, http.StatusBadRequest, er.StatusCode)
	}
}

func TestConfirmWithdrawalRejectsNonPositiveAmount(t *testing.T) {
	s := NewService()

	for _, amount := range []float64{0, -1} {
		err := s.ConfirmWithdrawal(context.Background(), nil, nil, 1, amount, "123456")
		require.Error(t, err)

		var er response.ErrorResponse
		require.True(t, errors.As(err, &er))
		assert.Equal(t, http.StatusBadRequest, er.StatusCode)
	}
}

func TestWithdrawalClaim(t *testing.T) {
	val := withdrawalClaim("482913", 1000)

	otp, amount, ok := parseWithdrawalClaim(val)
	require.True(t, ok)
	assert.Equal(t, "482913", otp)
	assert.Equal(t, float64(1000), amount)
}

func TestParseWithdrawalClaimRejectsMalformedValues(t *testing.T) {
	for _, val := range []string{"", "482913", "482913:abc"} {
		_, _, ok := parseWithdrawalClaim(val)
		assert.False(t, ok, val)
	}
}

func TestFormatPhone(t *testing.T) {
	valid := func(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

	assert.Equal(t, "+22370000000", formatPhone(valid("+223"), valid("70000000")))
	assert.Equal(t, "", formatPhone(valid("+223"), sql.NullString{}))
	assert.Equal(t, "", formatPhone(sql.NullString{}, valid("  ")))
	assert.Equal(t, "70000000", formatPhone(sql.NullString{}, valid("70000000")))
}
