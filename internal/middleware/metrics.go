package middleware

import (
	"time"

	"aptbooking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight gauge. Paths are
// labelled by route template to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncInFlight()
		defer metrics.DecInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
