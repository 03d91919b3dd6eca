package components

import (
	"log/slog"

	"storefront-cart/internal/infra/catalog"
	"storefront-cart/internal/infra/coupondir"
	"storefront-cart/internal/infra/db"
	"storefront-cart/internal/infra/kv"
	"storefront-cart/internal/infra/localstore"
	"storefront-cart/internal/infra/remotestore"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	storeModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var storeModule = fx.Module("persistence/store",
	fx.Provide(
		// Local cart
		fx.Annotate(
			NewLocalCartStore,
			fx.As(new(usecase.LocalCartStore)),
		),
		// Remote cart
		fx.Annotate(
			remotestore.NewCartStore,
			fx.As(new(usecase.RemoteCartStore)),
		),
		// Catalog
		fx.Annotate(
			catalog.NewProductCatalog,
			fx.As(new(usecase.ProductCatalog)),
		),
		// Coupon
		fx.Annotate(
			coupondir.NewDirectory,
			fx.As(new(usecase.CouponDirectory)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewLocalCartStore(store kv.Store, cfg config.Config, logger *slog.Logger) *localstore.Store {
	return localstore.NewStore(store, cfg.Cart.LocalKeyPrefix, logger)
}
