package discount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscount_BelowLowestTier(t *testing.T) {
	c := New(DefaultTiers())
	got := c.Discount(decimal.NewFromFloat(49.99))
	assert.True(t, got.IsZero(), "expected zero discount, got %s", got)
}

func TestDiscount_ExactThresholdIsInclusive(t *testing.T) {
	c := New(DefaultTiers())
	got := c.Discount(decimal.NewFromInt(50))
	assert.True(t, got.Equal(decimal.NewFromFloat(2.50)), "got %s", got)
}

func TestDiscount_SelectsHighestQualifyingTier(t *testing.T) {
	c := New(DefaultTiers())
	got := c.Discount(decimal.NewFromInt(250))
	assert.True(t, got.Equal(decimal.NewFromFloat(37.50)), "got %s", got)
}

func TestDiscount_RoundsHalfUp(t *testing.T) {
	c := New(DefaultTiers())
	got := c.Discount(decimal.NewFromFloat(100.05))
	assert.True(t, got.Equal(decimal.NewFromFloat(10.01)), "got %s", got)
}

func TestRateFor_Zero(t *testing.T) {
	c := New(DefaultTiers())
	assert.True(t, c.RateFor(decimal.NewFromInt(10)).IsZero())
}

func TestNew_OrderIndependent(t *testing.T) {
	shuffled := []Tier{
		{Threshold: decimal.NewFromInt(200), Rate: decimal.NewFromFloat(0.15)},
		{Threshold: decimal.NewFromInt(50), Rate: decimal.NewFromFloat(0.05)},
		{Threshold: decimal.NewFromInt(100), Rate: decimal.NewFromFloat(0.10)},
	}
	c := New(shuffled)
	assert.True(t, c.RateFor(decimal.NewFromInt(150)).Equal(decimal.NewFromFloat(0.10)))
}
