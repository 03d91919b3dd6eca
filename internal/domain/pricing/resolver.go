package pricing

import (
	"time"

	"github.com/google/uuid"
)

// Product is what the catalog knows about one product at resolution time.
type Product struct {
	ID        uuid.UUID
	Name      string
	BasePrice int64
	Category  string
	Discounts []Discount
}

type Result struct {
	ProductID          uuid.UUID
	Category           string
	Quantity           int
	BasePrice          int64
	EffectiveUnitPrice int64
	AppliedDiscount    *Discount
	LineTotal          int64
}

// Resolve picks at most one discount for the product: product scope beats
// category scope beats global scope. Within the winning scope the lowest
// effective price wins, ties broken by lowest discount id.
func Resolve(p Product, qty int, now time.Time) Result {
	base := p.BasePrice
	if base < 0 {
		base = 0
	}

	var (
		best      *Discount
		bestPrice int64
	)
	for i := range p.Discounts {
		d := p.Discounts[i]
		if !d.QualifiesAt(now) || !d.Targets(p.ID, p.Category) {
			continue
		}
		price := d.Apply(base)
		if best == nil || better(d, price, *best, bestPrice) {
			cp := d
			best = &cp
			bestPrice = price
		}
	}

	effective := base
	if best != nil {
		effective = bestPrice
	}
	if qty < 0 {
		qty = 0
	}
	return Result{
		ProductID:          p.ID,
		Category:           p.Category,
		Quantity:           qty,
		BasePrice:          base,
		EffectiveUnitPrice: effective,
		AppliedDiscount:    best,
		LineTotal:          effective * int64(qty),
	}
}

func better(cand Discount, candPrice int64, cur Discount, curPrice int64) bool {
	if cand.Scope.rank() != cur.Scope.rank() {
		return cand.Scope.rank() < cur.Scope.rank()
	}
	if candPrice != curPrice {
		return candPrice < curPrice
	}
	return cand.ID < cur.ID
}
