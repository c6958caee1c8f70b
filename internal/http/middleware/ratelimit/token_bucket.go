package ratelimit

import (
	"sync"
	"time"
)

const bucketTTL = 10 * time.Minute

// TokenBucket is a per-key token bucket limiter.
type TokenBucket struct {
	rate  float64 // tokens per second
	burst float64

	clock   Clock
	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a limiter refilling rate tokens per second up to
// burst. Non-positive arguments are clamped to 1.
func NewTokenBucket(clock Clock, rate float64, burst int) *TokenBucket {
	if clock == nil {
		clock = RealClock{}
	}
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:    rate,
		burst:   float64(burst),
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether the key may proceed and consumes a token if so.
func (l *TokenBucket) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepIdle(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}

	if dt := now.Sub(b.last); dt > 0 {
		b.tokens += dt.Seconds() * l.rate
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweepIdle drops buckets not seen for bucketTTL. Called under l.mu at most
// once per TTL interval.
func (l *TokenBucket) sweepIdle(now time.Time) {
	if !l.swept.IsZero() && now.Sub(l.swept) < bucketTTL {
		return
	}
	l.swept = now
	for k, b := range l.buckets {
		if now.Sub(b.last) > bucketTTL {
			delete(l.buckets, k)
		}
	}
}
