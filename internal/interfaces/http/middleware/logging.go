package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"subtrack/internal/shared/logger"
)

// Logger logs one line per request with method, path, status and latency.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		}

		if userID, exists := c.Get("user_id"); exists {
			args = append(args, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed", args...)
		case status >= 400:
			log.Warnw("HTTP request completed", args...)
		default:
			log.Debugw("HTTP request completed", args...)
		}
	}
}
