// Package discount implements the tiered discount calculator: a pure
// function from subtotal to discount amount, with no dependency on the
// store or any other component.
package discount

import "github.com/shopspring/decimal"

// Tier is one (threshold, rate) step. Thresholds are inclusive: a
// subtotal equal to a tier's threshold qualifies for that tier.
type Tier struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// Calculator selects the highest qualifying tier for a subtotal and
// rounds HALF_UP to 2 decimal places.
type Calculator struct {
	tiers []Tier
}

// DefaultTiers returns the default tier configuration.
func DefaultTiers() []Tier {
	return []Tier{
		{Threshold: decimal.NewFromInt(50), Rate: decimal.NewFromFloat(0.05)},
		{Threshold: decimal.NewFromInt(100), Rate: decimal.NewFromFloat(0.10)},
		{Threshold: decimal.NewFromInt(200), Rate: decimal.NewFromFloat(0.15)},
	}
}

// New builds a Calculator from tiers. Order does not matter; New sorts
// by threshold ascending so RateFor can assume the cheapest tier first.
func New(tiers []Tier) *Calculator {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Threshold.LessThan(sorted[j-1].Threshold); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return &Calculator{tiers: sorted}
}

// Discount returns the discount amount for subtotal, 2 decimals,
// HALF_UP. A subtotal below the lowest threshold returns zero.
func (c *Calculator) Discount(subtotal decimal.Decimal) decimal.Decimal {
	rate := c.RateFor(subtotal)
	if rate.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(rate).Round(2)
}

// RateFor returns the rate of the highest tier whose threshold is at
// or below subtotal, or zero if none qualify.
func (c *Calculator) RateFor(subtotal decimal.Decimal) decimal.Decimal {
	best := decimal.Zero
	for _, t := range c.tiers {
		if subtotal.GreaterThanOrEqual(t.Threshold) {
			best = t.Rate
		}
	}
	return best
}
