//go:build unit

package pricing_test

import (
	"testing"

	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/domain/pricing"
	"storefront-cart/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	lines := []pricing.Line{
		{Product: builder.NewProductBuilder().WithBasePrice(1000).WithProductPercent(10).Build(), Quantity: 2},
		{Product: builder.NewProductBuilder().WithBasePrice(250).Build(), Quantity: 4},
	}

	totals := pricing.Price(lines, now)

	require.Len(t, totals.Lines, 2)
	assert.Equal(t, int64(2800), totals.Subtotal)
	assert.Equal(t, int64(2800), totals.Total)
	assert.Nil(t, totals.Coupon)
}

func TestTotals_ApplyCoupon(t *testing.T) {
	t.Run("最低注文額未満は不適用で合計そのまま", func(t *testing.T) {
		c := builder.NewCouponBuilder(now).WithMinimumOrder(500).WithCode("MIN500").MustBuild()
		lines := []pricing.Line{{Product: builder.NewProductBuilder().WithBasePrice(400).Build(), Quantity: 1}}

		totals := pricing.Price(lines, now).ApplyCoupon(c, 0, now)

		require.NotNil(t, totals.Coupon)
		assert.False(t, totals.Coupon.Applied)
		assert.Equal(t, coupon.ReasonMinimumOrderNotMet, totals.Coupon.Reason)
		assert.Equal(t, int64(400), totals.Total)
		assert.Equal(t, int64(0), totals.CouponDiscount())
	})

	t.Run("割引後小計に対してクーポンを適用", func(t *testing.T) {
		c := builder.NewCouponBuilder(now).WithPercent(10).MustBuild()
		lines := []pricing.Line{{Product: builder.NewProductBuilder().WithBasePrice(1000).WithGlobalPercent(50).Build(), Quantity: 2}}

		totals := pricing.Price(lines, now).ApplyCoupon(c, 0, now)

		assert.Equal(t, int64(1000), totals.Subtotal)
		assert.True(t, totals.Coupon.Applied)
		assert.Equal(t, int64(100), totals.CouponDiscount())
		assert.Equal(t, int64(900), totals.Total)
	})

	t.Run("固定額は小計を超えない", func(t *testing.T) {
		c := builder.NewCouponBuilder(now).WithFixed(5000).MustBuild()
		lines := []pricing.Line{{Product: builder.NewProductBuilder().WithBasePrice(300).Build(), Quantity: 1}}

		totals := pricing.Price(lines, now).ApplyCoupon(c, 0, now)

		assert.Equal(t, int64(300), totals.CouponDiscount())
		assert.Equal(t, int64(0), totals.Total)
	})
}

func TestTotals_WithOutcome(t *testing.T) {
	totals := pricing.Price([]pricing.Line{
		{Product: builder.NewProductBuilder().WithBasePrice(700).Build(), Quantity: 1},
	}, now).WithOutcome(coupon.Ineligible("NOPE", coupon.ReasonNotFound))

	assert.Equal(t, int64(700), totals.Total)
	assert.Equal(t, coupon.ReasonNotFound, totals.Coupon.Reason)
}
