package gateway

import (
	"context"
	"elverra-club-backend/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFees(t *testing.T) {
	gw := model.PaymentGateway{FeePercentage: 1.5, FeeFixed: 0}

	assert.Equal(t, 150.0, Fees(gw, 10000))
	assert.Equal(t, 10150.0, TotalAmount(gw, 10000))
}

func TestFeesWithFixedComponent(t *testing.T) {
	gw := model.PaymentGateway{FeePercentage: 0.5, FeeFixed: 500}

	assert.Equal(t, 550.0, Fees(gw, 10000))
	assert.Equal(t, 10550.0, TotalAmount(gw, 10000))
}

func TestFeesZeroAmount(t *testing.T) {
	gw := model.PaymentGateway{FeePercentage: 2.9, FeeFixed: 30}

	assert.Equal(t, 30.0, Fees(gw, 0))
}

func TestDefaultGateways(t *testing.T) {
	ids := make(map[string]model.PaymentGateway, len(defaultGateways))
	for _, gw := range defaultGateways {
		ids[gw.ID] = gw
	}

	require.Len(t, ids, 6)
	for _, id := range []string{"orange_money", "sama_money", "wave_money", "moov_money", "bank_transfer", "stripe"} {
		gw, ok := ids[id]
		require.True(t, ok, id)
		assert.True(t, gw.IsActive, id)
		assert.NotEmpty(t, gw.Name, id)
		assert.NotEmpty(t, gw.SupportedCurrencies, id)
	}

	assert.Equal(t, 1.5, ids["orange_money"].FeePercentage)
	assert.Equal(t, 1.2, ids["sama_money"].FeePercentage)
	assert.Equal(t, 1.0, ids["wave_money"].FeePercentage)
	assert.Equal(t, 1.8, ids["moov_money"].FeePercentage)
	assert.Equal(t, 500.0, ids["bank_transfer"].FeeFixed)
	assert.Equal(t, 30.0, ids["stripe"].FeeFixed)
}

func TestFilterActive(t *testing.T) {
	gws := []model.PaymentGateway{
		{ID: "a", IsActive: true},
		{ID: "b", IsActive: false},
		{ID: "c", IsActive: true},
	}

	active := filterActive(gws)

	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	r := NewRegistry(nil, 0)

	gws := r.Load(context.Background(), nil)

	assert.Equal(t, defaultGateways, gws)
}

func TestByID(t *testing.T) {
	r := NewRegistry(nil, 0)

	gw, ok := r.ByID(context.Background(), nil, "orange_money")
	require.True(t, ok)
	assert.Equal(t, "Orange Money", gw.Name)

	_, ok = r.ByID(context.Background(), nil, "bitcoin")
	assert.False(t, ok)
}
