package response

import (
	"storefront-cart/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CartItemResponse struct {
	ProductID         uuid.UUID `json:"product_id"`
	Quantity          int       `json:"quantity"`
	UnitPriceSnapshot *int64    `json:"unit_price_snapshot,omitempty"`
}

type SyncStatusResponse struct {
	State     string             `json:"state"`
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	Pending   []CartItemResponse `json:"pending"`
	LastError string             `json:"last_error,omitempty"`
}

type CartResponse struct {
	Source string             `json:"source"`
	Items  []CartItemResponse `json:"items"`
	Sync   SyncStatusResponse `json:"sync"`
}

type PricedLineResponse struct {
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

type UnresolvedLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Error     string    `json:"error"`
}

type CouponOutcomeResponse struct {
	Code           string `json:"code"`
	Applied        bool   `json:"applied"`
	Reason         string `json:"reason,omitempty"`
	DiscountAmount int64  `json:"discount_amount"`
}

type TotalsResponse struct {
	Lines          []PricedLineResponse     `json:"lines"`
	Unresolved     []UnresolvedLineResponse `json:"unresolved"`
	Subtotal       int64                    `json:"subtotal"`
	Coupon         *CouponOutcomeResponse   `json:"coupon,omitempty"`
	CouponDiscount int64                    `json:"coupon_discount"`
	Total          int64                    `json:"total"`
}

type QuoteResponse struct {
	Lines          []PricedLineResponse     `json:"lines"`
	Unresolved     []UnresolvedLineResponse `json:"unresolved"`
	Subtotal       int64                    `json:"subtotal"`
	Coupon         *CouponOutcomeResponse   `json:"coupon,omitempty"`
	CouponDiscount int64                    `json:"coupon_discount"`
	Total          int64                    `json:"total"`
	ItemCount      int                      `json:"item_count"`
	QuotedAt       int64                    `json:"quoted_at"`
}

var copyOpts = copier.Option{DeepCopy: true}

func FromCartRM(rm *readmodel.CartRM) (*CartResponse, error) {
	res := &CartResponse{}
	if err := copier.CopyWithOption(res, rm, copyOpts); err != nil {
		return nil, err
	}
	res.Items = nonNil(res.Items)
	res.Sync.Pending = nonNil(res.Sync.Pending)
	return res, nil
}

func FromSyncStatusRM(rm readmodel.SyncStatusRM) (*SyncStatusResponse, error) {
	res := &SyncStatusResponse{}
	if err := copier.CopyWithOption(res, &rm, copyOpts); err != nil {
		return nil, err
	}
	res.Pending = nonNil(res.Pending)
	return res, nil
}

func FromTotalsRM(rm *readmodel.TotalsRM) (*TotalsResponse, error) {
	res := &TotalsResponse{}
	if err := copier.CopyWithOption(res, rm, copyOpts); err != nil {
		return nil, err
	}
	res.Lines = nonNil(res.Lines)
	res.Unresolved = nonNil(res.Unresolved)
	return res, nil
}

func FromQuoteRM(rm *readmodel.QuoteRM) (*QuoteResponse, error) {
	res := &QuoteResponse{}
	if err := copier.CopyWithOption(res, &rm.TotalsRM, copyOpts); err != nil {
		return nil, err
	}
	res.Lines = nonNil(res.Lines)
	res.Unresolved = nonNil(res.Unresolved)
	res.ItemCount = rm.ItemCount
	res.QuotedAt = rm.QuotedAt.Unix()
	return res, nil
}

// nonNil keeps empty lists rendered as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
