package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierByID(t *testing.T) {
	essential, ok := TierByID(TierEssential)
	require.True(t, ok)
	assert.Equal(t, 10000.0, essential.RegistrationFee)
	assert.Equal(t, 1000.0, essential.MonthlyFee)
	assert.Equal(t, 5, essential.DiscountPct)

	premium, ok := TierByID(TierPremium)
	require.True(t, ok)
	assert.Equal(t, 2000.0, premium.MonthlyFee)
	assert.Equal(t, 10, premium.DiscountPct)

	elite, ok := TierByID(TierElite)
	require.True(t, ok)
	assert.Equal(t, 5000.0, elite.MonthlyFee)
	assert.Equal(t, 20, elite.DiscountPct)

	_, ok = TierByID("platinum")
	assert.False(t, ok)
}

func TestReferralCommission(t *testing.T) {
	for _, id := range []string{TierEssential, TierPremium, TierElite} {
		tier, ok := TierByID(id)
		require.True(t, ok)
		assert.Equal(t, 1000.0, ReferralCommission(tier), id)
	}
}

func TestNewMemberCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := newMemberCode()
		require.NoError(t, err)

		require.Len(t, code, 10)
		assert.Equal(t, "ELV-", code[:4])
		for _, c := range code[4:] {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[code] = true
	}

	assert.Greater(t, len(seen), 1)
}
