package api

import (
	"strconv"
	"time"

	"exercise-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records a counter and duration sample per request. The
// route template (not the raw path) is used as the endpoint label to keep
// cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
