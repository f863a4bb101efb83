package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sporting-life/enrollment-api/internal/service"
)

// Metrics records request count and latency per route template. Requests
// that miss every route are labeled by raw path so 404 noise stays visible.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	if metricsSvc == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
