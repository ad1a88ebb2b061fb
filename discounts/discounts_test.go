package discounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 9500.0, DiscountedPrice(10000, 5))
	assert.Equal(t, 9000.0, DiscountedPrice(10000, 10))
	assert.Equal(t, 8000.0, DiscountedPrice(10000, 20))
	assert.Equal(t, 10000.0, DiscountedPrice(10000, 0))
	assert.Equal(t, 10000.0, DiscountedPrice(10000, -5))
	assert.Equal(t, 0.0, DiscountedPrice(10000, 100))
	assert.Equal(t, 0.0, DiscountedPrice(10000, 150))
}
