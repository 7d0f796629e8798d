package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/user-service/internal/infrastructure/monitoring"
)

// Metrics records per-request Prometheus metrics (count + latency), keyed by
// the route template so path parameters do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		monitoring.ObserveRequest(
			path,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
