package coupondir

import (
	"context"
	"log/slog"
	"time"

	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	findCouponSQL = `
SELECT id, code, kind, value::text, minimum_order_amount, maximum_discount_amount,
       usage_limit_total, usage_limit_per_user, times_used, start_date, expiration_date,
       is_active, is_global
FROM coupons
WHERE code = $1`

	findTargetsSQL = `SELECT relation, product_id, category FROM coupon_targets WHERE coupon_id = $1`

	countRedemptionsSQL = `SELECT count(*) FROM coupon_redemptions WHERE coupon_id = $1 AND user_id = $2`
)

type couponRow struct {
	ID                    uuid.UUID
	Code                  string
	Kind                  string
	Value                 string
	MinimumOrderAmount    int64
	MaximumDiscountAmount *int64
	UsageLimitTotal       *int
	UsageLimitPerUser     int
	TimesUsed             int
	StartDate             time.Time
	ExpirationDate        time.Time
	IsActive              bool
	IsGlobal              bool
}

// Directory looks coupons up by code. Redemption counting is owned by the
// checkout flow; this side only reads it.
type Directory struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDirectory(pool *pgxpool.Pool, logger *slog.Logger) *Directory {
	return &Directory{pool: pool, logger: logger}
}

func (d *Directory) Lookup(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	params, err := db.RunInTx(ctx, d.pool, func(tx db.DBTX) (coupon.Params, error) {
		var r couponRow
		err := tx.QueryRow(ctx, findCouponSQL, code.String()).Scan(
			&r.ID, &r.Code, &r.Kind, &r.Value, &r.MinimumOrderAmount, &r.MaximumDiscountAmount,
			&r.UsageLimitTotal, &r.UsageLimitPerUser, &r.TimesUsed, &r.StartDate, &r.ExpirationDate,
			&r.IsActive, &r.IsGlobal,
		)
		if err != nil {
			if db.IsNoRows(err) {
				return coupon.Params{}, infra.WrapRepoErr(d.logger, infra.KindNotFound, "coupon not found", err)
			}
			return coupon.Params{}, infra.WrapRepoErr(d.logger, infra.KindFor(ctx, err), "failed to find coupon", err)
		}

		p, err := toParams(r)
		if err != nil {
			return coupon.Params{}, infra.WrapRepoErr(d.logger, infra.KindDecode, "invalid coupon value", err)
		}
		if err := d.loadTargets(ctx, tx, &p); err != nil {
			return coupon.Params{}, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	c, err := coupon.NewCoupon(params)
	if err != nil {
		return nil, infra.WrapRepoErr(d.logger, infra.KindDecode, "stored coupon is invalid", err)
	}
	return c, nil
}

func (d *Directory) UserUsage(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	var n int
	if err := d.pool.QueryRow(ctx, countRedemptionsSQL, couponID, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr(d.logger, infra.KindFor(ctx, err), "failed to count coupon redemptions", err)
	}
	return n, nil
}

func (d *Directory) loadTargets(ctx context.Context, tx db.DBTX, p *coupon.Params) error {
	rows, err := tx.Query(ctx, findTargetsSQL, p.ID)
	if err != nil {
		return infra.WrapRepoErr(d.logger, infra.KindFor(ctx, err), "failed to list coupon targets", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			relation  string
			productID *uuid.UUID
			category  *string
		)
		if err := rows.Scan(&relation, &productID, &category); err != nil {
			return infra.WrapRepoErr(d.logger, infra.KindDecode, "failed to scan coupon target", err)
		}
		excluded := relation == "excluded"
		switch {
		case productID != nil && excluded:
			p.ExcludedProductIDs = append(p.ExcludedProductIDs, *productID)
		case productID != nil:
			p.ApplicableProductIDs = append(p.ApplicableProductIDs, *productID)
		case category != nil && excluded:
			p.ExcludedCategories = append(p.ExcludedCategories, *category)
		case category != nil:
			p.ApplicableCategories = append(p.ApplicableCategories, *category)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr(d.logger, infra.KindFor(ctx, err), "failed to iterate coupon targets", err)
	}
	return nil
}

func toParams(r couponRow) (coupon.Params, error) {
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return coupon.Params{}, err
	}
	return coupon.Params{
		ID:                    r.ID,
		Code:                  r.Code,
		Kind:                  coupon.Kind(r.Kind),
		Value:                 value,
		MinimumOrderAmount:    r.MinimumOrderAmount,
		MaximumDiscountAmount: r.MaximumDiscountAmount,
		UsageLimitTotal:       r.UsageLimitTotal,
		UsageLimitPerUser:     r.UsageLimitPerUser,
		TimesUsed:             r.TimesUsed,
		StartDate:             r.StartDate,
		ExpirationDate:        r.ExpirationDate,
		IsActive:              r.IsActive,
		IsGlobal:              r.IsGlobal,
	}, nil
}
