package request

import (
	"strings"

	"github.com/google/uuid"
)

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  *int      `json:"quantity" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type QuoteRequest struct {
	CouponCode *string `json:"coupon_code,omitempty"`
}

func (r QuoteRequest) GetCouponCode() string {
	if r.CouponCode == nil {
		return ""
	}
	return strings.TrimSpace(*r.CouponCode)
}
