package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/domain/pricing"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/pkg/clock"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/pkg/metrics"
	"storefront-cart/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type PricingService struct {
	catalog ProductCatalog
	coupons CouponDirectory
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger
}

func NewPricingService(catalog ProductCatalog, coupons CouponDirectory, clk clock.Clock, timeout time.Duration, logger *slog.Logger) *PricingService {
	return &PricingService{
		catalog: catalog,
		coupons: coupons,
		clock:   clk,
		timeout: timeout,
		logger:  logger,
	}
}

// Totals prices each distinct product once. Products the catalog cannot
// resolve are reported and left out of the subtotal. The coupon, if any, is
// evaluated once against the subtotal.
func (p *PricingService) Totals(ctx context.Context, items []cart.Item, userID uuid.UUID, couponCode string) (*readmodel.TotalsRM, error) {
	now := p.clock.Now()

	lines := make([]pricing.Line, 0, len(items))
	unresolved := make([]readmodel.UnresolvedLineRM, 0)
	for _, it := range cart.FromItems(items).Items() {
		product, err := p.lookupProduct(ctx, it.ProductID)
		if err != nil {
			unresolved = append(unresolved, readmodel.UnresolvedLineRM{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Error:     err.Error(),
			})
			continue
		}
		lines = append(lines, pricing.Line{Product: product, Quantity: it.Quantity})
	}

	totals := pricing.Price(lines, now)
	if strings.TrimSpace(couponCode) != "" {
		outcome, err := p.evaluateCoupon(ctx, totals, userID, couponCode, now)
		if err != nil {
			return nil, err
		}
		totals = outcome
		metrics.CouponOutcomesTotal.WithLabelValues(totals.Coupon.MetricLabel()).Inc()
	}

	return toTotalsRM(totals, lines, unresolved), nil
}

func (p *PricingService) lookupProduct(ctx context.Context, productID uuid.UUID) (pricing.Product, error) {
	callCtx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	product, err := p.catalog.GetProduct(callCtx, productID)
	if err != nil {
		p.logger.Warn("product unresolvable",
			slog.String("product_id", productID.String()),
			slog.String("error", err.Error()))
		return pricing.Product{}, errs.Mark(&StoreOpError{Op: "get_product", ProductID: productID, Err: err}, ErrProductUnresolvable)
	}
	return product, nil
}

func (p *PricingService) evaluateCoupon(ctx context.Context, totals pricing.Totals, userID uuid.UUID, raw string, now time.Time) (pricing.Totals, error) {
	code, err := coupon.NewCouponCode(raw)
	if err != nil {
		return totals.WithOutcome(coupon.Ineligible(coupon.Code(strings.ToUpper(strings.TrimSpace(raw))), coupon.ReasonInvalidCode)), nil
	}

	callCtx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	c, err := p.coupons.Lookup(callCtx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return totals.WithOutcome(coupon.Ineligible(code, coupon.ReasonNotFound)), nil
		}
		return pricing.Totals{}, errs.Mark(errs.Wrap(err, "coupon lookup"), ErrCouponLookupFailed)
	}

	usage := 0
	if userID != uuid.Nil {
		usage, err = p.coupons.UserUsage(callCtx, c.ID(), userID)
		if err != nil {
			return pricing.Totals{}, errs.Mark(errs.Wrap(err, "coupon usage lookup"), ErrCouponLookupFailed)
		}
	}

	return totals.ApplyCoupon(c, usage, now), nil
}

func toTotalsRM(t pricing.Totals, lines []pricing.Line, unresolved []readmodel.UnresolvedLineRM) *readmodel.TotalsRM {
	rm := &readmodel.TotalsRM{
		Lines:          make([]readmodel.PricedLineRM, len(t.Lines)),
		Unresolved:     unresolved,
		Subtotal:       t.Subtotal,
		CouponDiscount: t.CouponDiscount(),
		Total:          t.Total,
	}
	for i, r := range t.Lines {
		line := readmodel.PricedLineRM{
			ProductID:          r.ProductID,
			Name:               lines[i].Product.Name,
			Category:           r.Category,
			Quantity:           r.Quantity,
			BasePrice:          r.BasePrice,
			EffectiveUnitPrice: r.EffectiveUnitPrice,
			LineTotal:          r.LineTotal,
		}
		if r.AppliedDiscount != nil {
			id := r.AppliedDiscount.ID
			line.DiscountID = &id
			line.DiscountScope = string(r.AppliedDiscount.Scope)
		}
		rm.Lines[i] = line
	}
	if t.Coupon != nil {
		rm.Coupon = &readmodel.CouponOutcomeRM{
			Code:           t.Coupon.Code.String(),
			Applied:        t.Coupon.Applied,
			Reason:         string(t.Coupon.Reason),
			DiscountAmount: t.CouponDiscount(),
		}
	}
	return rm
}

// SnapshotPrice returns the product's current base price, or nil when the
// catalog cannot answer. The snapshot is informational only.
func (p *PricingService) SnapshotPrice(ctx context.Context, productID uuid.UUID) *int64 {
	callCtx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	product, err := p.catalog.GetProduct(callCtx, productID)
	if err != nil {
		p.logger.Debug("no price snapshot", slog.String("product_id", productID.String()))
		return nil
	}
	price := product.BasePrice
	return &price
}
