package middlewares

import (
	"log/slog"
	"strconv"
	"time"

	"sick-fits/metrics"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request and records Prometheus metrics.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		elapsed := time.Since(start)

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := ctx.Writer.Status()

		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(elapsed.Seconds())

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		logger.Log(ctx.Request.Context(), level, "request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"errors", ctx.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
