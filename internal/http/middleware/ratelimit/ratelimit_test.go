package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"p2p-delivery/internal/logx"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucket(clock, 1, 2)

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"), "burst exhausted")

	clock.advance(time.Second)
	require.True(t, l.Allow("a"), "one token refilled")
	require.False(t, l.Allow("a"))
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucket(clock, 1, 1)

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
}

func TestTokenBucket_RefillCapsAtBurst(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucket(clock, 10, 3)

	require.True(t, l.Allow("a"))
	clock.advance(time.Hour)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("a"))
	}
	require.False(t, l.Allow("a"))
}

type stubLimiter struct {
	allow bool
}

func (s stubLimiter) Allow(string) bool { return s.allow }

func TestMiddleware_AllowedPassesThrough(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
		w.WriteHeader(http.StatusOK)
	})

	m := New(logx.Nop(), nil, stubLimiter{allow: true})
	h := m.Handler()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/order", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, nextCalled)
}

func TestMiddleware_BlockedReturns429(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next must not be called")
	})

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratelimit_denied_total",
		Help: "denied requests",
	})

	m := New(logx.Nop(), counter, stubLimiter{allow: false})
	h := m.Handler()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/order", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
	require.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestClientIP_FallbackToRemoteAddr(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "not-a-hostport"
	require.Equal(t, "not-a-hostport", clientIP(r))

	r.RemoteAddr = ""
	require.Equal(t, "unknown", clientIP(r))
}
