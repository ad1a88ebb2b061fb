package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferralCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := newReferralCode()
		require.NoError(t, err)

		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", c), code)
		}
		seen[code] = true
	}

	assert.Greater(t, len(seen), 1)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(errDup("Error 1062: Duplicate entry 'ABC234' for key 'referral_code'")))
	assert.False(t, isDuplicate(errDup("Error 1045: Access denied")))
	assert.False(t, isDuplicate(nil))
}

type errDup string

func (e errDup) Error() string { return string(e) }
