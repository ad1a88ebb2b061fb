package secours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidType(t *testing.T) {
	for _, typ := range []string{TypeMotors, TypeCataCatanis, TypeAuto, TypeTelephone, TypeSchoolFees} {
		assert.True(t, ValidType(typ), typ)
	}

	assert.False(t, ValidType("yacht"))
	assert.False(t, ValidType(""))
}

func TestDefaultPolicies(t *testing.T) {
	cases := map[string]int64{
		TypeMotors:      250,
		TypeCataCatanis: 500,
		TypeAuto:        750,
		TypeTelephone:   250,
		TypeSchoolFees:  500,
	}

	for typ, value := range cases {
		policy, ok := defaultPolicies[typ]
		require.True(t, ok, typ)
		assert.Equal(t, value, policy.TokenValueFCFA, typ)
		assert.Equal(t, int64(10), policy.MinTokens, typ)
		assert.Equal(t, int64(60), policy.MaxTokens, typ)
	}
}

func TestTokensFor(t *testing.T) {
	assert.Equal(t, int64(4), tokensFor(1000, 250))
	assert.Equal(t, int64(5), tokensFor(1001, 250))
	assert.Equal(t, int64(1), tokensFor(1, 750))
	assert.Equal(t, int64(2), tokensFor(1000, 500))
	assert.Equal(t, int64(3), tokensFor(1001, 500))
}

type errDup string

func (e errDup) Error() string {
	return string(e)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(errDup("Error 1062: Duplicate entry '7-motors' for key 'uq_member_type'")))
	assert.False(t, isDuplicate(errDup("Error 1452: Cannot add or update a child row")))
	assert.False(t, isDuplicate(errDup("1062")))
	assert.False(t, isDuplicate(nil))
}
