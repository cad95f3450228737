package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BinarniyKot/book-library-api/pkg/metrics"
)

// Metrics 记录HTTP请求指标
// path使用路由模板(c.FullPath),避免每个图书ID产生一个标签值
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.TrackInProgress()
		defer done()

		start := time.Now()
		c.Next()

		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
