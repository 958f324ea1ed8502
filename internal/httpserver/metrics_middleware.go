package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"leveragebrief/pkg/metrics"
)

// MetricsMiddleware records request durations for every route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			// 未匹配路由统一归类，避免指标维度爆炸
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
