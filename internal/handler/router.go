package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-cart/internal/handler/api"
	"storefront-cart/internal/handler/middleware"
	"storefront-cart/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	cartHandler *api.CartHandler,
	authMiddleware *middleware.AuthMiddleware,
	sessionMiddleware *middleware.CartSessionMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cartHandler, authMiddleware, sessionMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cartHandler *api.CartHandler, authMiddleware *middleware.AuthMiddleware, sessionMiddleware *middleware.CartSessionMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.OptionalAuth(), sessionMiddleware.Attach())
		addRoutes(cart, []route{
			{Method: http.MethodGet, Path: "", Handler: cartHandler.GetCart},
			{Method: http.MethodPost, Path: "/items", Handler: cartHandler.AddItem},
			{Method: http.MethodPut, Path: "/items/:productId", Handler: cartHandler.SetQuantity},
			{Method: http.MethodDelete, Path: "/items/:productId", Handler: cartHandler.RemoveItem},
			{Method: http.MethodGet, Path: "/totals", Handler: cartHandler.GetTotals},
			{Method: http.MethodPost, Path: "/checkout/quote", Handler: cartHandler.QuoteCheckout},
			{Method: http.MethodGet, Path: "/sync", Handler: cartHandler.SyncStatus},
			{Method: http.MethodPost, Path: "/sync/retry", Handler: cartHandler.RetrySync},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
