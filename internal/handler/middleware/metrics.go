package middleware

import (
	"strconv"
	"time"

	"storefront-cart/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), startedAt)
	}
}
