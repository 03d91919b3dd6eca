package components

import (
	"log/slog"

	"storefront-cart/internal/pkg/clock"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCartModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCartModule = fx.Module("usecase/cart",
	fx.Provide(
		NewPricingService,
		NewFacadeDeps,
		NewSessionRegistry,
		func(r *usecase.SessionRegistry) usecase.CartSessions { return r },
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPricingService(catalog usecase.ProductCatalog, coupons usecase.CouponDirectory, clk clock.Clock, cfg config.Config, logger *slog.Logger) *usecase.PricingService {
	return usecase.NewPricingService(catalog, coupons, clk, cfg.Cart.RemoteTimeout, logger)
}

func NewFacadeDeps(
	local usecase.LocalCartStore,
	remote usecase.RemoteCartStore,
	pricing *usecase.PricingService,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) usecase.FacadeDeps {
	return usecase.FacadeDeps{
		Local:         local,
		Remote:        remote,
		Pricing:       pricing,
		Clock:         clk,
		RemoteTimeout: cfg.Cart.RemoteTimeout,
		Logger:        logger,
	}
}

func NewSessionRegistry(deps usecase.FacadeDeps, cfg config.Config) *usecase.SessionRegistry {
	return usecase.NewSessionRegistry(deps, cfg.Cart.SessionTTL)
}
