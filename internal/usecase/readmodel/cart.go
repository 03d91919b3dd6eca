package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type CartItemRM struct {
	ProductID         uuid.UUID `json:"product_id"`
	Quantity          int       `json:"quantity"`
	UnitPriceSnapshot *int64    `json:"unit_price_snapshot,omitempty"`
}

type SyncStatusRM struct {
	State     string       `json:"state"`
	UserID    *uuid.UUID   `json:"user_id,omitempty"`
	Pending   []CartItemRM `json:"pending"`
	LastError string       `json:"last_error,omitempty"`
}

// CartRM is the active cart. Source is "local" or "remote".
type CartRM struct {
	Source string       `json:"source"`
	Items  []CartItemRM `json:"items"`
	Sync   SyncStatusRM `json:"sync"`
}

type PricedLineRM struct {
	ProductID          uuid.UUID `json:"product_id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Quantity           int       `json:"quantity"`
	BasePrice          int64     `json:"base_price"`
	EffectiveUnitPrice int64     `json:"effective_unit_price"`
	DiscountID         *int64    `json:"discount_id,omitempty"`
	DiscountScope      string    `json:"discount_scope,omitempty"`
	LineTotal          int64     `json:"line_total"`
}

type UnresolvedLineRM struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Error     string    `json:"error"`
}

type CouponOutcomeRM struct {
	Code           string `json:"code"`
	Applied        bool   `json:"applied"`
	Reason         string `json:"reason,omitempty"`
	DiscountAmount int64  `json:"discount_amount"`
}

type TotalsRM struct {
	Lines          []PricedLineRM     `json:"lines"`
	Unresolved     []UnresolvedLineRM `json:"unresolved"`
	Subtotal       int64              `json:"subtotal"`
	Coupon         *CouponOutcomeRM   `json:"coupon,omitempty"`
	CouponDiscount int64              `json:"coupon_discount"`
	Total          int64              `json:"total"`
}

type QuoteRM struct {
	TotalsRM
	ItemCount int       `json:"item_count"`
	QuotedAt  time.Time `json:"quoted_at"`
}
