package coupon

import (
	"testing"
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/stretchr/testify/assert"
)

var evalTime = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func activeCoupon() model.Coupon {
	return model.Coupon{
		Code:          "PROMO10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		Scope:         model.ScopeWholeCart,
		Active:        true,
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Coupon)
		want   Status
	}{
		{"active with no window", func(c *model.Coupon) {}, StatusActive},
		{"deactivated flag wins", func(c *model.Coupon) {
			c.Active = false
			c.EndDate = timePtr(evalTime.Add(-time.Hour))
		}, StatusDeactivated},
		{"scheduled before start", func(c *model.Coupon) {
			c.StartDate = timePtr(evalTime.Add(time.Hour))
		}, StatusScheduled},
		{"expired after end", func(c *model.Coupon) {
			c.EndDate = timePtr(evalTime.Add(-time.Hour))
		}, StatusExpired},
		{"exhausted at cap", func(c *model.Coupon) {
			c.MaxRedemptions = intPtr(3)
			c.Redemptions = 3
		}, StatusExhausted},
		{"under cap stays active", func(c *model.Coupon) {
			c.MaxRedemptions = intPtr(3)
			c.Redemptions = 2
		}, StatusActive},
		{"window boundaries are inclusive", func(c *model.Coupon) {
			c.StartDate = timePtr(evalTime)
			c.EndDate = timePtr(evalTime)
		}, StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := activeCoupon()
			tt.mutate(&c)
			assert.Equal(t, tt.want, StatusOf(c, evalTime))
		})
	}
}

func TestEvaluatePercentageWholeCart(t *testing.T) {
	c := activeCoupon() // 10%
	cart := []CartLine{{ProductID: 1, UnitPrice: 100, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.True(t, result.Eligible)
	assert.Equal(t, int64(10), result.Discount)
}

func TestEvaluateFixedAmountCappedAtSubtotal(t *testing.T) {
	c := activeCoupon()
	c.DiscountType = model.DiscountFixedAmount
	c.DiscountValue = 50
	cart := []CartLine{{ProductID: 1, UnitPrice: 30, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.True(t, result.Eligible)
	assert.Equal(t, int64(30), result.Discount)
}

func TestEvaluateExpiryReportedBeforeMinimumAmount(t *testing.T) {
	c := activeCoupon()
	c.MinCartAmount = 100
	c.EndDate = timePtr(evalTime.Add(-24 * time.Hour))
	cart := []CartLine{{ProductID: 1, UnitPrice: 50, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonExpired, result.Reason)
}

func TestEvaluateBelowMinimum(t *testing.T) {
	c := activeCoupon()
	c.MinCartAmount = 100
	cart := []CartLine{{ProductID: 1, UnitPrice: 99, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonBelowMinimum, result.Reason)
}

func TestEvaluateSpecificProductsNoIntersection(t *testing.T) {
	c := activeCoupon()
	c.Scope = model.ScopeSpecificProducts
	cart := []CartLine{
		{ProductID: 3, UnitPrice: 40, Quantity: 1},
		{ProductID: 9, UnitPrice: 60, Quantity: 1},
	}

	result := Evaluate(c, []uint{7}, cart, evalTime)

	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonNoMatch, result.Reason)
}

func TestEvaluateSpecificProductsDiscountsMatchingLinesOnly(t *testing.T) {
	c := activeCoupon() // 10%
	c.Scope = model.ScopeSpecificProducts
	cart := []CartLine{
		{ProductID: 7, UnitPrice: 200, Quantity: 2}, // matching, 400
		{ProductID: 3, UnitPrice: 999, Quantity: 1}, // not linked
	}

	result := Evaluate(c, []uint{7}, cart, evalTime)

	assert.True(t, result.Eligible)
	assert.Equal(t, int64(40), result.Discount)
}

func TestEvaluateSpecificProductsZeroPricedMatchStillApplies(t *testing.T) {
	// A matching line priced at zero is not "no match": the coupon
	// applies, the discount is just nothing.
	c := activeCoupon() // 10%
	c.Scope = model.ScopeSpecificProducts
	cart := []CartLine{
		{ProductID: 7, UnitPrice: 0, Quantity: 1},
		{ProductID: 3, UnitPrice: 500, Quantity: 1},
	}

	result := Evaluate(c, []uint{7}, cart, evalTime)

	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
	assert.Zero(t, result.Discount)
}

func TestEvaluateWholeCartIgnoresStaleLinks(t *testing.T) {
	// Scope changed back to whole_cart; leftover links must not narrow
	// the discount base.
	c := activeCoupon() // 10%
	cart := []CartLine{
		{ProductID: 3, UnitPrice: 100, Quantity: 1},
		{ProductID: 9, UnitPrice: 100, Quantity: 1},
	}

	result := Evaluate(c, []uint{7}, cart, evalTime)

	assert.True(t, result.Eligible)
	assert.Equal(t, int64(20), result.Discount)
}

func TestEvaluateExhaustedCoupon(t *testing.T) {
	c := activeCoupon()
	c.MaxRedemptions = intPtr(1)
	c.Redemptions = 1
	cart := []CartLine{{ProductID: 1, UnitPrice: 100, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonExhausted, result.Reason)
}

func TestEvaluateDeactivatedCoupon(t *testing.T) {
	c := activeCoupon()
	c.Active = false
	cart := []CartLine{{ProductID: 1, UnitPrice: 100, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonDeactivated, result.Reason)
}

func TestEvaluatePercentageRoundsHalfUp(t *testing.T) {
	c := activeCoupon() // 10%
	cart := []CartLine{{ProductID: 1, UnitPrice: 105, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	// 10% of 105 is 10.5, rounded half-up on the minor unit.
	assert.Equal(t, int64(11), result.Discount)
}

func TestEvaluatePercentageCappedAtBase(t *testing.T) {
	c := activeCoupon()
	c.DiscountValue = 150
	cart := []CartLine{{ProductID: 1, UnitPrice: 100, Quantity: 1}}

	result := Evaluate(c, nil, cart, evalTime)

	assert.Equal(t, int64(100), result.Discount)
}

func TestCartLineQuantityDefaultsToOne(t *testing.T) {
	line := CartLine{UnitPrice: 250}
	assert.Equal(t, int64(250), line.Subtotal())
}
