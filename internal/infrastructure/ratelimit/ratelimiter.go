// Package ratelimit throttles authentication endpoints.
package ratelimit

type Config struct {
	RequestsPerMinute int
}

type RateLimiter interface {
	// Allow records an attempt under key and reports whether it fits the limit.
	Allow(key string, config Config) (bool, error)
	Reset(key string) error
}
