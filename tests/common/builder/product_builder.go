//go:build unit || e2e

package builder

import (
	"time"

	"storefront-cart/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID        uuid.UUID
	Name      string
	BasePrice int64
	Category  string
	Discounts []pricing.Discount
	nextID    int64
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:        uuid.New(),
		Name:      "Test Product",
		BasePrice: 1000,
		Category:  "books",
		nextID:    1,
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

func (p *ProductBuilder) WithBasePrice(cents int64) *ProductBuilder {
	p.BasePrice = cents
	return p
}

func (p *ProductBuilder) WithCategory(category string) *ProductBuilder {
	p.Category = category
	return p
}

func (p *ProductBuilder) WithProductPercent(pct int64) *ProductBuilder {
	return p.WithDiscount(pricing.ScopeProduct, pricing.KindPercentage, pct)
}

func (p *ProductBuilder) WithCategoryPercent(pct int64) *ProductBuilder {
	return p.WithDiscount(pricing.ScopeCategory, pricing.KindPercentage, pct)
}

func (p *ProductBuilder) WithGlobalPercent(pct int64) *ProductBuilder {
	return p.WithDiscount(pricing.ScopeGlobal, pricing.KindPercentage, pct)
}

func (p *ProductBuilder) WithDiscount(scope pricing.Scope, kind pricing.Kind, value int64) *ProductBuilder {
	p.Discounts = append(p.Discounts, NewDiscountBuilder().
		WithID(p.nextID).
		WithScope(scope).
		WithKind(kind, value).
		ForProduct(p.ID, p.Category).
		Build())
	p.nextID++
	return p
}

func (p *ProductBuilder) WithDiscounts(ds ...pricing.Discount) *ProductBuilder {
	p.Discounts = append(p.Discounts, ds...)
	return p
}

func (p *ProductBuilder) Build() pricing.Product {
	ds := make([]pricing.Discount, len(p.Discounts))
	copy(ds, p.Discounts)
	return pricing.Product{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		Category:  p.Category,
		Discounts: ds,
	}
}

type DiscountBuilder struct {
	d pricing.Discount
}

func NewDiscountBuilder() *DiscountBuilder {
	return &DiscountBuilder{d: pricing.Discount{
		ID:       1,
		Scope:    pricing.ScopeGlobal,
		Kind:     pricing.KindPercentage,
		Value:    decimal.NewFromInt(10),
		IsActive: true,
	}}
}

func (b *DiscountBuilder) WithID(id int64) *DiscountBuilder {
	b.d.ID = id
	return b
}

func (b *DiscountBuilder) WithScope(scope pricing.Scope) *DiscountBuilder {
	b.d.Scope = scope
	return b
}

func (b *DiscountBuilder) WithKind(kind pricing.Kind, value int64) *DiscountBuilder {
	b.d.Kind = kind
	b.d.Value = decimal.NewFromInt(value)
	return b
}

// ForProduct fills the target matching the discount's scope.
func (b *DiscountBuilder) ForProduct(productID uuid.UUID, category string) *DiscountBuilder {
	switch b.d.Scope {
	case pricing.ScopeProduct:
		b.d.TargetProductID = productID
	case pricing.ScopeCategory:
		b.d.TargetCategory = category
	}
	return b
}

func (b *DiscountBuilder) Inactive() *DiscountBuilder {
	b.d.IsActive = false
	return b
}

func (b *DiscountBuilder) EndingAt(t time.Time) *DiscountBuilder {
	b.d.EndDate = &t
	return b
}

func (b *DiscountBuilder) Build() pricing.Discount {
	return b.d
}
