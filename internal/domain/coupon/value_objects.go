package coupon

import (
	"errors"
	"regexp"
	"strings"

	"storefront-cart/internal/domain/money"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// Discount is either a fixed amount in cents or a percentage, never both.
type Discount struct {
	amountOffCents *int64
	percentOff     *decimal.Decimal
}

func NewFixedDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOffCents: &amountOffCents}, nil
}

func NewPercentageDiscount(percentOff decimal.Decimal) (Discount, error) {
	if percentOff.IsNegative() || percentOff.GreaterThan(decimal.NewFromInt(100)) {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewDiscount(kind Kind, value decimal.Decimal) (Discount, error) {
	switch kind {
	case KindFixed:
		return NewFixedDiscount(value.Truncate(0).IntPart())
	case KindPercentage:
		return NewPercentageDiscount(value)
	}
	return Discount{}, errors.New("discount kind must be percentage or fixed")
}

func (d Discount) Kind() Kind {
	if d.IsPercentage() {
		return KindPercentage
	}
	return KindFixed
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) IsFixed() bool {
	return d.amountOffCents != nil
}

func (d Discount) AmountOffCents() int64 {
	if d.amountOffCents != nil {
		return *d.amountOffCents
	}
	return 0
}

func (d Discount) PercentOff() decimal.Decimal {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return decimal.Zero
}

// CalculateDiscountAmount never returns more than priceCents.
func (d Discount) CalculateDiscountAmount(priceCents int64) int64 {
	if priceCents <= 0 {
		return 0
	}
	if d.IsPercentage() {
		return money.Min(money.PercentOf(priceCents, d.PercentOff()), priceCents)
	}
	return money.Min(d.AmountOffCents(), priceCents)
}
