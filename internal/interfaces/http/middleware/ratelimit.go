package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrack/internal/infrastructure/ratelimit"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

// RateLimit throttles a route per client IP using the given limiter. When
// the limiter itself fails the request is allowed through rather than
// blocking all traffic on a Redis outage.
func RateLimit(limiter ratelimit.RateLimiter, name string, perMinute int, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", name, c.ClientIP())

		allowed, err := limiter.Allow(key, ratelimit.Config{RequestsPerMinute: perMinute})
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err, "route", name)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
