package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"storefront-cart/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error when a handler recorded one
// without writing a body, and a generic 500 otherwise.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		if public := c.Errors.ByType(gin.ErrorTypePublic).Last(); public != nil {
			if resp, ok := public.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			c.JSON(status, httperr.NewResponse(status, http.StatusText(status), nil))
			return
		}
		c.JSON(http.StatusInternalServerError,
			httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					slog.String("panic", fmt.Sprint(r)),
					slog.String("path", c.Request.URL.Path),
					slog.String("cart_session", GetCartSessionID(c)))

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}
