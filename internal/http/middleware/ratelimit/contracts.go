package ratelimit

// Limiter decides whether a request keyed by client may proceed.
type Limiter interface {
	Allow(key string) bool
}

// NopLimiter allows everything.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }
