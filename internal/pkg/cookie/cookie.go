package cookie

import (
	"net/http"

	"storefront-cart/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const AccessTokenCookieName = "access_token"

// SetCartSession issues the cart session cookie. It lives as long as the server keeps the session.
func SetCartSession(c *gin.Context, cfg config.CartConfig, sessionID uuid.UUID) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cfg.SessionCookieName,
		sessionID.String(),
		int(cfg.SessionTTL.Seconds()),
		"/",
		cfg.CookieDomain,
		cfg.CookieSecure,
		true, // HttpOnly
	)
}

func ClearCartSession(c *gin.Context, cfg config.CartConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.SessionCookieName, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// GetCartSession returns uuid.Nil when the cookie is absent or not a uuid.
func GetCartSession(c *gin.Context, cfg config.CartConfig) uuid.UUID {
	raw, err := c.Cookie(cfg.SessionCookieName)
	if err != nil || raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
