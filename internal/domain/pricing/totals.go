package pricing

import (
	"time"

	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/domain/money"
)

type Line struct {
	Product  Product
	Quantity int
}

type Totals struct {
	Lines    []Result
	Subtotal int64
	Coupon   *coupon.Outcome
	Total    int64
}

// Price resolves every line independently and sums the line totals.
func Price(lines []Line, now time.Time) Totals {
	t := Totals{Lines: make([]Result, 0, len(lines))}
	for _, l := range lines {
		r := Resolve(l.Product, l.Quantity, now)
		t.Lines = append(t.Lines, r)
		t.Subtotal += r.LineTotal
	}
	t.Total = t.Subtotal
	return t
}

// ApplyCoupon evaluates c once against the discounted subtotal.
func (t Totals) ApplyCoupon(c *coupon.Coupon, userUsage int, now time.Time) Totals {
	lines := make([]coupon.Line, len(t.Lines))
	for i, r := range t.Lines {
		lines[i] = coupon.Line{ProductID: r.ProductID, Category: r.Category}
	}
	return t.WithOutcome(c.Evaluate(coupon.Order{
		Subtotal:  t.Subtotal,
		Lines:     lines,
		UserUsage: userUsage,
		Now:       now,
	}))
}

// WithOutcome records a coupon outcome; only applied outcomes change the total.
func (t Totals) WithOutcome(o coupon.Outcome) Totals {
	t.Coupon = &o
	t.Total = t.Subtotal
	if o.Applied {
		t.Total = money.FloorZero(t.Subtotal - money.Min(o.DiscountAmount, t.Subtotal))
	}
	return t
}

func (t Totals) CouponDiscount() int64 {
	if t.Coupon == nil || !t.Coupon.Applied {
		return 0
	}
	return t.Subtotal - t.Total
}
