//go:build unit || e2e

package builder

import (
	"time"

	"storefront-cart/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	Params coupon.Params
}

// NewCouponBuilder returns an active global 10% coupon valid for a day
// either side of now.
func NewCouponBuilder(now time.Time) *CouponBuilder {
	return &CouponBuilder{Params: coupon.Params{
		ID:                uuid.New(),
		Code:              "SAVE10",
		Kind:              coupon.KindPercentage,
		Value:             decimal.NewFromInt(10),
		UsageLimitPerUser: 1,
		StartDate:         now.Add(-24 * time.Hour),
		ExpirationDate:    now.Add(24 * time.Hour),
		IsActive:          true,
		IsGlobal:          true,
	}}
}

func (b *CouponBuilder) With(mutate func(*coupon.Params)) *CouponBuilder {
	mutate(&b.Params)
	return b
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Params.Code = code
	return b
}

func (b *CouponBuilder) WithFixed(cents int64) *CouponBuilder {
	b.Params.Kind = coupon.KindFixed
	b.Params.Value = decimal.NewFromInt(cents)
	return b
}

func (b *CouponBuilder) WithPercent(pct int64) *CouponBuilder {
	b.Params.Kind = coupon.KindPercentage
	b.Params.Value = decimal.NewFromInt(pct)
	return b
}

func (b *CouponBuilder) WithMinimumOrder(cents int64) *CouponBuilder {
	b.Params.MinimumOrderAmount = cents
	return b
}

func (b *CouponBuilder) WithMaximumDiscount(cents int64) *CouponBuilder {
	b.Params.MaximumDiscountAmount = &cents
	return b
}

func (b *CouponBuilder) WithUsage(timesUsed int, limitTotal *int) *CouponBuilder {
	b.Params.TimesUsed = timesUsed
	b.Params.UsageLimitTotal = limitTotal
	return b
}

func (b *CouponBuilder) WithWindow(start, end time.Time) *CouponBuilder {
	b.Params.StartDate = start
	b.Params.ExpirationDate = end
	return b
}

func (b *CouponBuilder) Inactive() *CouponBuilder {
	b.Params.IsActive = false
	return b
}

func (b *CouponBuilder) RestrictedTo(productIDs []uuid.UUID, categories []string) *CouponBuilder {
	b.Params.IsGlobal = false
	b.Params.ApplicableProductIDs = productIDs
	b.Params.ApplicableCategories = categories
	return b
}

func (b *CouponBuilder) Excluding(productIDs []uuid.UUID, categories []string) *CouponBuilder {
	b.Params.ExcludedProductIDs = productIDs
	b.Params.ExcludedCategories = categories
	return b
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(b.Params)
}

func (b *CouponBuilder) MustBuild() *coupon.Coupon {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}
