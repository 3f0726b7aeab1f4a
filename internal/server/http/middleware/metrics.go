package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
)

// RequestMetrics records request counts and latencies labelled by route template.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
