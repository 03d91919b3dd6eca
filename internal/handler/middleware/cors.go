package middleware

import (
	"log/slog"
	"slices"

	"storefront-cart/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware allows credentialed requests so browsers send the cart
// session cookie cross-origin. A "*" origin is echoed back per request since
// wildcards cannot be combined with credentials.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if cfg.AllowCredentials && slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	slog.Info("CORS middleware initialized",
		slog.Any("allow_origins", cfg.AllowOrigins),
		slog.Bool("allow_credentials", cfg.AllowCredentials))
	return cors.New(corsCfg)
}
