package pricing

import (
	"errors"
	"strings"
	"time"

	"storefront-cart/internal/domain/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidScope  = errors.New("invalid discount scope")
	ErrInvalidKind   = errors.New("invalid discount kind")
	ErrMissingTarget = errors.New("discount target is required for product and category scope")
)

type Scope string

const (
	ScopeProduct  Scope = "product"
	ScopeCategory Scope = "category"
	ScopeGlobal   Scope = "global"
)

func NewScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(s)) {
	case ScopeProduct:
		return ScopeProduct, nil
	case ScopeCategory:
		return ScopeCategory, nil
	case ScopeGlobal:
		return ScopeGlobal, nil
	}
	return "", ErrInvalidScope
}

// rank orders scopes by precedence; lower wins.
func (s Scope) rank() int {
	switch s {
	case ScopeProduct:
		return 0
	case ScopeCategory:
		return 1
	case ScopeGlobal:
		return 2
	}
	return 3
}

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

func NewKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindPercentage:
		return KindPercentage, nil
	case KindFixed:
		return KindFixed, nil
	}
	return "", ErrInvalidKind
}

// Discount is a catalog promotion. Value is a percentage for KindPercentage
// and an amount in cents for KindFixed.
type Discount struct {
	ID              int64
	Scope           Scope
	TargetProductID uuid.UUID
	TargetCategory  string
	Kind            Kind
	Value           decimal.Decimal
	IsActive        bool
	EndDate         *time.Time
}

func (d Discount) Validate() error {
	if d.Scope.rank() > ScopeGlobal.rank() {
		return ErrInvalidScope
	}
	if d.Kind != KindPercentage && d.Kind != KindFixed {
		return ErrInvalidKind
	}
	if d.Scope == ScopeProduct && d.TargetProductID == uuid.Nil {
		return ErrMissingTarget
	}
	if d.Scope == ScopeCategory && strings.TrimSpace(d.TargetCategory) == "" {
		return ErrMissingTarget
	}
	return nil
}

// QualifiesAt reports whether the discount is active and not past its end date.
// The end date itself is still valid.
func (d Discount) QualifiesAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	return d.EndDate == nil || !now.After(*d.EndDate)
}

func (d Discount) Targets(productID uuid.UUID, category string) bool {
	switch d.Scope {
	case ScopeProduct:
		return d.TargetProductID == productID
	case ScopeCategory:
		return category != "" && strings.EqualFold(d.TargetCategory, category)
	case ScopeGlobal:
		return true
	}
	return false
}

// Apply returns the discounted unit price, floored at 0.
func (d Discount) Apply(base int64) int64 {
	switch d.Kind {
	case KindPercentage:
		return money.FloorZero(base - money.PercentOf(base, d.Value))
	case KindFixed:
		return money.FloorZero(base - d.Value.Truncate(0).IntPart())
	}
	return base
}
