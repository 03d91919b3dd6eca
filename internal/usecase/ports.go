package usecase

import (
	"context"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/domain/pricing"

	"github.com/google/uuid"
)

type LocalCartStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) (cartsync.LocalCart, error)
	Save(ctx context.Context, sessionID uuid.UUID, lc cartsync.LocalCart) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type RemoteCartStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	// UpsertDelta adds delta to the stored quantity, creating the row if needed.
	UpsertDelta(ctx context.Context, userID, productID uuid.UUID, delta int, unitPrice *int64) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type ProductCatalog interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (pricing.Product, error)
}

type CouponDirectory interface {
	Lookup(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	UserUsage(ctx context.Context, couponID, userID uuid.UUID) (int, error)
}
