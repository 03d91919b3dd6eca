package components

import (
	"storefront-cart/internal/handler"
	"storefront-cart/internal/handler/api"
	"storefront-cart/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		middleware.NewAuthMiddleware,
		middleware.NewCartSessionMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
