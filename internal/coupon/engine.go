// Package coupon evaluates coupon applicability and computes discounted
// totals. The same evaluation runs at edit-time previews and at
// redemption-time, so the rules live here once, as pure functions.
package coupon

import (
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
)

// Status is the derived lifecycle state of a coupon. Only the Active
// flag is persisted; everything else is inferred from timestamps and the
// redemption counter at evaluation time.
type Status string

const (
	StatusActive      Status = "active"
	StatusScheduled   Status = "scheduled"
	StatusExpired     Status = "expired"
	StatusExhausted   Status = "exhausted"
	StatusDeactivated Status = "deactivated"
)

// Ineligibility reasons, in the order they are checked.
const (
	ReasonDeactivated  = "coupon is deactivated"
	ReasonNotStarted   = "coupon is not active yet"
	ReasonExpired      = "coupon has expired"
	ReasonExhausted    = "coupon redemption limit reached"
	ReasonBelowMinimum = "cart subtotal below minimum purchase amount"
	ReasonNoMatch      = "no matching products"
)

// CartLine is one line of the cart being evaluated.
type CartLine struct {
	ProductID uint  `json:"product_id"`
	UnitPrice int64 `json:"unit_price"`
	Quantity  int   `json:"quantity"`
}

// Subtotal returns the line amount, with quantity defaulting to 1.
func (l CartLine) Subtotal() int64 {
	qty := l.Quantity
	if qty <= 0 {
		qty = 1
	}
	return l.UnitPrice * int64(qty)
}

// Result is the outcome of evaluating a coupon against a cart.
type Result struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Discount int64  `json:"discount"`
}

// StatusOf derives the coupon's lifecycle state at the given instant.
// The explicit flag wins over everything; then the validity window, then
// the redemption cap.
func StatusOf(c model.Coupon, now time.Time) Status {
	if !c.Active {
		return StatusDeactivated
	}
	if c.StartDate != nil && c.StartDate.After(now) {
		return StatusScheduled
	}
	if c.EndDate != nil && c.EndDate.Before(now) {
		return StatusExpired
	}
	if c.MaxRedemptions != nil && c.Redemptions >= *c.MaxRedemptions {
		return StatusExhausted
	}
	return StatusActive
}

// ineligibleReason maps a non-active status to its caller-facing reason.
func ineligibleReason(status Status) string {
	switch status {
	case StatusDeactivated:
		return ReasonDeactivated
	case StatusScheduled:
		return ReasonNotStarted
	case StatusExpired:
		return ReasonExpired
	case StatusExhausted:
		return ReasonExhausted
	}
	return ""
}

// Evaluate decides whether the coupon applies to the cart and computes
// the discount. Checks run in a fixed order: derived status first, then
// the minimum purchase threshold, then product scoping. linked is the
// coupon's product link set and is consulted only when the scope says to;
// stale links from a scope change are ignored.
func Evaluate(c model.Coupon, linked []uint, cart []CartLine, now time.Time) Result {
	if status := StatusOf(c, now); status != StatusActive {
		return Result{Reason: ineligibleReason(status)}
	}

	var subtotal int64
	for _, line := range cart {
		subtotal += line.Subtotal()
	}
	if subtotal < c.MinCartAmount {
		return Result{Reason: ReasonBelowMinimum}
	}

	base := subtotal
	if c.Scope == model.ScopeSpecificProducts {
		matched, ok := matchingSubtotal(linked, cart)
		if !ok {
			return Result{Reason: ReasonNoMatch}
		}
		base = matched
	}

	return Result{Eligible: true, Discount: discountAmount(c, base)}
}

// matchingSubtotal sums the lines whose product ids intersect the link
// set and reports whether any line matched at all. The two are distinct:
// a matching line priced at zero still makes the coupon applicable, the
// discount just amounts to nothing.
func matchingSubtotal(linked []uint, cart []CartLine) (int64, bool) {
	linkedSet := make(map[uint]struct{}, len(linked))
	for _, id := range linked {
		linkedSet[id] = struct{}{}
	}

	var base int64
	matched := false
	for _, line := range cart {
		if _, ok := linkedSet[line.ProductID]; ok {
			base += line.Subtotal()
			matched = true
		}
	}
	return base, matched
}

// discountAmount applies the discount formula to the base amount. A
// percentage rounds half-up on the minor unit; a fixed amount never
// exceeds the base, so the remainder can never go negative.
func discountAmount(c model.Coupon, base int64) int64 {
	var discount int64
	switch c.DiscountType {
	case model.DiscountPercentage:
		discount = (base*c.DiscountValue + 50) / 100
	case model.DiscountFixedAmount:
		discount = c.DiscountValue
	}

	if discount > base {
		discount = base
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
