package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrisstampar/fx-api/pkg/logger"
	"github.com/chrisstampar/fx-api/pkg/metrics"
)

// Performance times every request, exposes the duration in response
// headers and feeds the metrics collector.
func Performance(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if collector != nil {
			collector.RecordRequest()
		}

		c.Next()

		duration := time.Since(start)
		success := c.Writer.Status() < 500
		if collector != nil {
			collector.RecordRequestComplete(duration, success)
		}

		c.Header("X-Process-Time", fmt.Sprintf("%.6f", duration.Seconds()))
		c.Header("X-Response-Time", duration.String())

		log := logger.GetLogger().WithContext(c.Request.Context())
		log.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()))
	}
}
