package middleware

import (
	"time"

	"fu-news-go/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数量、耗时和并发数。path 使用路由模板，避免 ID 造成标签爆炸。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.TrackInFlight()
		start := time.Now()

		c.Next()

		done()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
