package ratelimit

// NoopRateLimiter allows everything. Used when Redis is disabled.
type NoopRateLimiter struct{}

func NewNoopRateLimiter() RateLimiter {
	return &NoopRateLimiter{}
}

func (l *NoopRateLimiter) Allow(key string, config Config) (bool, error) {
	return true, nil
}

func (l *NoopRateLimiter) Reset(key string) error {
	return nil
}
