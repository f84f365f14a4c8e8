// internal/server/middleware.go
package server

import (
	"fmt"
	"strconv"
	"time"

	apperrors "dygs-jobs/internal/common/errors"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/common/metrics"
	"dygs-jobs/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
			"clientIp":  c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request completed", fields)
			return
		}
		log.Info("request completed", fields)
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// rateLimit rejects clients over the configured submission rate. A nil
// limiter lets everything through.
func rateLimit(limiter ratelimit.Limiter, errs *apperrors.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		metrics.RateLimited.Inc()
		errs.Respond(c, apperrors.NewRateLimitedError())
	}
}

func recovery(errs *apperrors.ErrorHandler) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		errs.Respond(c, apperrors.NewInternalError(fmt.Sprintf("panic: %v", recovered)))
	})
}
