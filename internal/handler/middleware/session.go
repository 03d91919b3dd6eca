package middleware

import (
	"log/slog"
	"net/http"

	"storefront-cart/internal/handler/httperr"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/pkg/cookie"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxCartKey        = "cart"
	ctxCartSessionKey = "cart_session_id"
)

type CartSessionMiddleware struct {
	sessions usecase.CartSessions
	cfg      config.CartConfig
	logger   *slog.Logger
}

func NewCartSessionMiddleware(sessions usecase.CartSessions, cfg config.Config, logger *slog.Logger) *CartSessionMiddleware {
	return &CartSessionMiddleware{
		sessions: sessions,
		cfg:      cfg.Cart,
		logger:   logger,
	}
}

// Attach resolves the cart session cookie, issuing a new session when it is
// missing, and feeds the request's auth signal to the session's cart. Must
// run after OptionalAuth.
func (m *CartSessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cookie.GetCartSession(c, m.cfg)
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
		}
		cookie.SetCartSession(c, m.cfg, sessionID)

		svc := m.sessions.Session(sessionID)
		c.Set(ctxCartSessionKey, sessionID.String())
		SetCartService(c, svc)

		if err := svc.Observe(c.Request.Context(), AuthSignal(c)); err != nil {
			if !errs.Is(err, usecase.ErrMergeFailed) {
				httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cart session error", nil)
				return
			}
			// the cart stays usable; the failure is reported through the sync status
			m.logger.Warn("Cart merge failed on login",
				slog.String("cart_session", sessionID.String()),
				slog.String("error", err.Error()))
		}
		c.Next()
	}
}

func SetCartService(c *gin.Context, svc usecase.CartService) {
	c.Set(ctxCartKey, svc)
}

func GetCartService(c *gin.Context) (usecase.CartService, bool) {
	v, exists := c.Get(ctxCartKey)
	if !exists {
		return nil, false
	}
	svc, ok := v.(usecase.CartService)
	return svc, ok
}

func GetCartSessionID(c *gin.Context) string {
	return c.GetString(ctxCartSessionKey)
}
