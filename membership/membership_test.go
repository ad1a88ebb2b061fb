package membership

import (
	"elverra-club-backend/model"
	"elverra-club-backend/response"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewable(t *testing.T) {
	assert.NoError(t, renewable("REN_1", model.PaymentCompleted))

	err := renewable("REN_1", model.PaymentApplied)
	require.Error(t, err)

	var er response.ErrorResponse
	require.True(t, errors.As(err, &er))
	assert.Equal(t, http.StatusBadRequest, er.StatusCode)
	assert.Contains(t, er.Description, "already been applied")

	for _, status := range []string{model.PaymentPending, model.PaymentFailed} {
		err := renewable("REN_1", status)
		require.Error(t, err, status)

		var er response.ErrorResponse
		require.True(t, errors.As(err, &er))
		assert.Contains(t, er.Description, "not completed")
	}
}
