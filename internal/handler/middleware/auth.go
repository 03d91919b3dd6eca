package middleware

import (
	"log/slog"
	"strings"

	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/pkg/cookie"
	"storefront-cart/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxUserIDKey = "user_id"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
// A missing or invalid token leaves the request anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.Next()
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Debug("Ignoring invalid access token", "error", err.Error())
			c.Next()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
		})
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// AuthSignal is the auth session seen on this request.
func AuthSignal(c *gin.Context) cartsync.Signal {
	if id, ok := GetUserID(c); ok {
		return cartsync.LoggedIn(id)
	}
	return cartsync.Anonymous()
}
