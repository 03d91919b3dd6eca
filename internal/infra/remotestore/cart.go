package remotestore

import (
	"context"
	"log/slog"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/infra/db"
	"storefront-cart/internal/pkg/metrics"

	"github.com/google/uuid"
)

const (
	listItemsSQL = `
SELECT product_id, quantity, unit_price_snapshot
FROM cart_items
WHERE user_id = $1
ORDER BY created_at, product_id`

	// Adding a delta never overwrites: an existing row accumulates.
	upsertDeltaSQL = `
INSERT INTO cart_items (user_id, product_id, quantity, unit_price_snapshot)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity,
    unit_price_snapshot = COALESCE(EXCLUDED.unit_price_snapshot, cart_items.unit_price_snapshot),
    updated_at = now()`

	setQuantitySQL = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = EXCLUDED.quantity,
    updated_at = now()`

	removeItemSQL = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
)

// CartStore is the authenticated shopper's server-side cart.
type CartStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCartStore(conn db.DBTX, logger *slog.Logger) *CartStore {
	return &CartStore{db: conn, logger: logger}
}

func (s *CartStore) List(ctx context.Context, userID uuid.UUID) (items []cart.Item, err error) {
	defer observe("list", time.Now(), &err)

	rows, err := s.db.Query(ctx, listItemsSQL, userID)
	if err != nil {
		return nil, s.wrap(ctx, "failed to list remote cart", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPriceSnapshot); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDecode, "failed to scan remote cart row", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(ctx, "failed to iterate remote cart", err)
	}
	return items, nil
}

func (s *CartStore) UpsertDelta(ctx context.Context, userID, productID uuid.UUID, delta int, unitPrice *int64) (err error) {
	defer observe("upsert_delta", time.Now(), &err)

	if _, err = s.db.Exec(ctx, upsertDeltaSQL, userID, productID, delta, unitPrice); err != nil {
		return s.wrap(ctx, "failed to add to remote cart", err)
	}
	return nil
}

func (s *CartStore) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (err error) {
	defer observe("set_quantity", time.Now(), &err)

	if _, err = s.db.Exec(ctx, setQuantitySQL, userID, productID, qty); err != nil {
		return s.wrap(ctx, "failed to set remote cart quantity", err)
	}
	return nil
}

func (s *CartStore) Remove(ctx context.Context, userID, productID uuid.UUID) (err error) {
	defer observe("remove", time.Now(), &err)

	if _, err = s.db.Exec(ctx, removeItemSQL, userID, productID); err != nil {
		return s.wrap(ctx, "failed to remove from remote cart", err)
	}
	return nil
}

func (s *CartStore) wrap(ctx context.Context, msg string, err error) error {
	if db.IsForeignKeyViolation(err) {
		return infra.WrapRepoErr(s.logger, infra.KindForeignKeyViolated, msg, err)
	}
	return infra.WrapRepoErr(s.logger, infra.KindFor(ctx, err), msg, err)
}

func observe(op string, startedAt time.Time, err *error) {
	metrics.ObserveRemoteCall(op, *err, startedAt)
}
