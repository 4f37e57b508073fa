package middleware

import (
	"time"

	"smartplates/internal/infrastructure/monitoring"

	"github.com/gin-gonic/gin"
)

// Metrics 記錄請求數與延遲，path 使用路由樣板避免標籤爆量
func Metrics(m *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := m.RequestStarted()
		defer done()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
