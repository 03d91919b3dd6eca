package coupon

import (
	"errors"
	"strings"
	"time"

	"storefront-cart/internal/domain/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateWindow   = errors.New("coupon start date must not be after expiration date")
	ErrInvalidMinimumOrder = errors.New("minimum order amount cannot be negative")
	ErrInvalidUsageLimit   = errors.New("usage limits cannot be negative")
)

type Params struct {
	ID                    uuid.UUID
	Code                  string
	Kind                  Kind
	Value                 decimal.Decimal
	MinimumOrderAmount    int64
	MaximumDiscountAmount *int64
	UsageLimitTotal       *int
	UsageLimitPerUser     int
	TimesUsed             int
	StartDate             time.Time
	ExpirationDate        time.Time
	IsActive              bool
	IsGlobal              bool
	ApplicableProductIDs  []uuid.UUID
	ApplicableCategories  []string
	ExcludedProductIDs    []uuid.UUID
	ExcludedCategories    []string
}

type Coupon struct {
	id                    uuid.UUID
	code                  Code
	discount              Discount
	minimumOrderAmount    int64
	maximumDiscountAmount *int64
	usageLimitTotal       *int
	usageLimitPerUser     int
	timesUsed             int
	startDate             time.Time
	expirationDate        time.Time
	isActive              bool
	isGlobal              bool
	applicableProductIDs  []uuid.UUID
	applicableCategories  []string
	excludedProductIDs    []uuid.UUID
	excludedCategories    []string
}

func NewCoupon(p Params) (*Coupon, error) {
	code, err := NewCouponCode(p.Code)
	if err != nil {
		return nil, err
	}
	discount, err := NewDiscount(p.Kind, p.Value)
	if err != nil {
		return nil, err
	}
	if p.MinimumOrderAmount < 0 {
		return nil, ErrInvalidMinimumOrder
	}
	if p.UsageLimitPerUser < 0 || p.TimesUsed < 0 || (p.UsageLimitTotal != nil && *p.UsageLimitTotal < 0) {
		return nil, ErrInvalidUsageLimit
	}
	if p.StartDate.After(p.ExpirationDate) {
		return nil, ErrInvalidDateWindow
	}

	return &Coupon{
		id:                    p.ID,
		code:                  code,
		discount:              discount,
		minimumOrderAmount:    p.MinimumOrderAmount,
		maximumDiscountAmount: p.MaximumDiscountAmount,
		usageLimitTotal:       p.UsageLimitTotal,
		usageLimitPerUser:     p.UsageLimitPerUser,
		timesUsed:             p.TimesUsed,
		startDate:             p.StartDate,
		expirationDate:        p.ExpirationDate,
		isActive:              p.IsActive,
		isGlobal:              p.IsGlobal,
		applicableProductIDs:  p.ApplicableProductIDs,
		applicableCategories:  p.ApplicableCategories,
		excludedProductIDs:    p.ExcludedProductIDs,
		excludedCategories:    p.ExcludedCategories,
	}, nil
}

// Line is one priced cart line as seen by coupon eligibility.
type Line struct {
	ProductID uuid.UUID
	Category  string
}

type Order struct {
	// Subtotal is the sum of discounted line totals.
	Subtotal  int64
	Lines     []Line
	UserUsage int
	Now       time.Time
}

// Evaluate checks eligibility in a fixed order and reports the first failing
// reason. An eligible coupon discounts the subtotal, capped by the maximum
// discount amount and by the subtotal itself.
func (c *Coupon) Evaluate(o Order) Outcome {
	switch {
	case o.Subtotal < c.minimumOrderAmount:
		return Ineligible(c.code, ReasonMinimumOrderNotMet)
	case o.Now.Before(c.startDate):
		return Ineligible(c.code, ReasonNotStarted)
	case o.Now.After(c.expirationDate):
		return Ineligible(c.code, ReasonExpired)
	case !c.isActive:
		return Ineligible(c.code, ReasonInactive)
	case c.usageLimitTotal != nil && c.timesUsed >= *c.usageLimitTotal:
		return Ineligible(c.code, ReasonUsageLimitReached)
	case c.usageLimitPerUser > 0 && o.UserUsage >= c.usageLimitPerUser:
		return Ineligible(c.code, ReasonPerUserLimitReached)
	case len(o.Lines) > 0 && c.allExcluded(o.Lines):
		return Ineligible(c.code, ReasonAllProductsExcluded)
	case !c.isGlobal && !c.anyApplicable(o.Lines):
		return Ineligible(c.code, ReasonNoApplicableProducts)
	}

	amount := c.discount.CalculateDiscountAmount(money.FloorZero(o.Subtotal))
	if c.maximumDiscountAmount != nil {
		amount = money.Min(amount, money.FloorZero(*c.maximumDiscountAmount))
	}
	return Outcome{Code: c.code, Applied: true, DiscountAmount: amount}
}

func (c *Coupon) allExcluded(lines []Line) bool {
	for _, l := range lines {
		if !c.isExcluded(l) {
			return false
		}
	}
	return true
}

func (c *Coupon) isExcluded(l Line) bool {
	return containsID(c.excludedProductIDs, l.ProductID) || containsFold(c.excludedCategories, l.Category)
}

func (c *Coupon) anyApplicable(lines []Line) bool {
	for _, l := range lines {
		if containsID(c.applicableProductIDs, l.ProductID) || containsFold(c.applicableCategories, l.Category) {
			return true
		}
	}
	return false
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsFold(values []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func (c *Coupon) ID() uuid.UUID                 { return c.id }
func (c *Coupon) Code() Code                    { return c.code }
func (c *Coupon) Discount() Discount            { return c.discount }
func (c *Coupon) MinimumOrderAmount() int64     { return c.minimumOrderAmount }
func (c *Coupon) MaximumDiscountAmount() *int64 { return c.maximumDiscountAmount }
func (c *Coupon) UsageLimitTotal() *int         { return c.usageLimitTotal }
func (c *Coupon) UsageLimitPerUser() int        { return c.usageLimitPerUser }
func (c *Coupon) TimesUsed() int                { return c.timesUsed }
func (c *Coupon) StartDate() time.Time          { return c.startDate }
func (c *Coupon) ExpirationDate() time.Time     { return c.expirationDate }
func (c *Coupon) IsActive() bool                { return c.isActive }
func (c *Coupon) IsGlobal() bool                { return c.isGlobal }
