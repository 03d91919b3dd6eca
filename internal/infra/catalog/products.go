package catalog

import (
	"context"
	"log/slog"
	"time"

	"storefront-cart/internal/domain/pricing"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	findProductSQL = `SELECT id, name, base_price, category FROM products WHERE id = $1`

	// Candidate discounts for one product; expiry is judged by the resolver.
	findDiscountsSQL = `
SELECT id, scope, target_product_id, target_category, kind, value::text, is_active, end_date
FROM discounts
WHERE is_active
  AND (scope = 'global'
       OR (scope = 'product' AND target_product_id = $1)
       OR (scope = 'category' AND lower(target_category) = lower($2)))
ORDER BY id`
)

type ProductCatalog struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewProductCatalog(conn db.DBTX, logger *slog.Logger) *ProductCatalog {
	return &ProductCatalog{db: conn, logger: logger}
}

func (c *ProductCatalog) GetProduct(ctx context.Context, productID uuid.UUID) (pricing.Product, error) {
	var p pricing.Product
	err := c.db.QueryRow(ctx, findProductSQL, productID).Scan(&p.ID, &p.Name, &p.BasePrice, &p.Category)
	if err != nil {
		if db.IsNoRows(err) {
			return pricing.Product{}, infra.WrapRepoErr(c.logger, infra.KindNotFound, "product not found", err)
		}
		return pricing.Product{}, infra.WrapRepoErr(c.logger, infra.KindFor(ctx, err), "failed to find product", err)
	}

	discounts, err := c.findDiscounts(ctx, p.ID, p.Category)
	if err != nil {
		return pricing.Product{}, err
	}
	p.Discounts = discounts
	return p, nil
}

func (c *ProductCatalog) findDiscounts(ctx context.Context, productID uuid.UUID, category string) ([]pricing.Discount, error) {
	rows, err := c.db.Query(ctx, findDiscountsSQL, productID, category)
	if err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindFor(ctx, err), "failed to list discounts", err)
	}
	defer rows.Close()

	var out []pricing.Discount
	for rows.Next() {
		var (
			d              pricing.Discount
			scope, kind    string
			value          string
			targetProduct  *uuid.UUID
			targetCategory *string
			endDate        *time.Time
		)
		if err := rows.Scan(&d.ID, &scope, &targetProduct, &targetCategory, &kind, &value, &d.IsActive, &endDate); err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindDecode, "failed to scan discount", err)
		}
		if d.Scope, err = pricing.NewScope(scope); err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindDecode, "unknown discount scope", err)
		}
		if d.Kind, err = pricing.NewKind(kind); err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindDecode, "unknown discount kind", err)
		}
		if d.Value, err = decimal.NewFromString(value); err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindDecode, "invalid discount value", err)
		}
		if targetProduct != nil {
			d.TargetProductID = *targetProduct
		}
		if targetCategory != nil {
			d.TargetCategory = *targetCategory
		}
		d.EndDate = endDate
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindFor(ctx, err), "failed to iterate discounts", err)
	}
	return out, nil
}
