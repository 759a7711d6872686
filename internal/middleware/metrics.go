package middleware

import (
	"time"

	"clawdeye-installer/services"

	"github.com/gin-gonic/gin"
)

/**
 * Request statistics middleware for the status API
 * @description
 * - Counts requests and records handling time per route
 * - Responses with status >= 400 also bump the error counter
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		services.IncrementRequestCount(route)
		services.RecordRequestDuration(route, duration)

		if statusCode >= 400 {
			services.IncrementErrorCount(route)
		}
	}
}
