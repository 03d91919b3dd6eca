//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestProduct inserts the product and its discounts. Discount ids are
// assigned by the database.
func CreateTestProduct(t *testing.T, db DBLike, p pricing.Product) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO products (id, name, base_price, category) VALUES ($1, $2, $3, $4)",
		p.ID, p.Name, p.BasePrice, p.Category)
	require.NoError(t, err)

	for _, d := range p.Discounts {
		CreateTestDiscount(t, db, d)
	}
	return p.ID
}

func CreateTestDiscount(t *testing.T, db DBLike, d pricing.Discount) int64 {
	t.Helper()

	var (
		productID *uuid.UUID
		category  *string
	)
	switch d.Scope {
	case pricing.ScopeProduct:
		productID = &d.TargetProductID
	case pricing.ScopeCategory:
		category = &d.TargetCategory
	}

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO discounts (scope, target_product_id, target_category, kind, value, is_active, end_date)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING id`,
		string(d.Scope), productID, category, string(d.Kind), d.Value.String(), d.IsActive, d.EndDate,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestCoupon(t *testing.T, db DBLike, p coupon.Params) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO coupons (id, code, kind, value, minimum_order_amount, maximum_discount_amount,
		                     usage_limit_total, usage_limit_per_user, times_used,
		                     start_date, expiration_date, is_active, is_global)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, strings.ToUpper(p.Code), string(p.Kind), p.Value.String(), p.MinimumOrderAmount, p.MaximumDiscountAmount,
		p.UsageLimitTotal, p.UsageLimitPerUser, p.TimesUsed,
		p.StartDate, p.ExpirationDate, p.IsActive, p.IsGlobal,
	)
	require.NoError(t, err)

	insertTargets := func(relation string, productIDs []uuid.UUID, categories []string) {
		for _, id := range productIDs {
			_, err := db.Exec(ctx, "INSERT INTO coupon_targets (coupon_id, relation, product_id) VALUES ($1, $2, $3)", p.ID, relation, id)
			require.NoError(t, err)
		}
		for _, c := range categories {
			_, err := db.Exec(ctx, "INSERT INTO coupon_targets (coupon_id, relation, category) VALUES ($1, $2, $3)", p.ID, relation, c)
			require.NoError(t, err)
		}
	}
	insertTargets("applicable", p.ApplicableProductIDs, p.ApplicableCategories)
	insertTargets("excluded", p.ExcludedProductIDs, p.ExcludedCategories)

	return p.ID
}

func CreateTestRedemption(t *testing.T, db DBLike, couponID, userID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO coupon_redemptions (coupon_id, user_id) VALUES ($1, $2)", couponID, userID)
	require.NoError(t, err)
}

// RemoteCartQuantities reads a user's remote cart straight from the table.
func RemoteCartQuantities(t *testing.T, db DBLike, userID uuid.UUID) map[uuid.UUID]int {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT product_id, quantity FROM cart_items WHERE user_id = $1", userID)
	require.NoError(t, err)
	defer rows.Close()

	out := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id  uuid.UUID
			qty int
		)
		require.NoError(t, rows.Scan(&id, &qty))
		out[id] = qty
	}
	require.NoError(t, rows.Err())
	return out
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
