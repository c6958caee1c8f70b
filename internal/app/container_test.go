package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"p2p-delivery/internal/config"
	"p2p-delivery/internal/http/middleware/ratelimit"
	"p2p-delivery/internal/service/dispatch"
	"p2p-delivery/internal/service/orders"
	"p2p-delivery/internal/sweeper"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:      18080,
		Delivery:  config.DefaultDelivery(),
		Matching:  config.DefaultMatching(),
		Kafka:     config.DefaultKafka(),
		RateLimit: config.DefaultRateLimit(),
	}
}

func buildContainer(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()
	return NewContainerBuilder().
		WithConfig(cfg).
		WithLogFatalf(func(format string, args ...interface{}) {
			t.Fatalf(format, args...)
		}).
		MustBuild(context.Background())
}

func TestContainer_ResolvesFullGraph(t *testing.T) {
	c := buildContainer(t, testConfig())

	err := c.Invoke(func(
		mux http.Handler,
		srv *http.Server,
		engine *dispatch.Engine,
		orderSvc *orders.Service,
		sw *sweeper.Sweeper,
	) {
		require.NotNil(t, mux)
		require.Equal(t, ":18080", srv.Addr)
		require.NotNil(t, engine)
		require.NotNil(t, orderSvc)
		require.NotNil(t, sw)
	})
	require.NoError(t, err)
}

func TestContainer_RateLimitDisabledByDefault(t *testing.T) {
	c := buildContainer(t, testConfig())

	err := c.Invoke(func(m *ratelimit.Middleware) {
		require.Nil(t, m)
	})
	require.NoError(t, err)
}

func TestContainer_RateLimitEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Rate = 10
	cfg.RateLimit.Burst = 20
	c := buildContainer(t, cfg)

	err := c.Invoke(func(m *ratelimit.Middleware) {
		require.NotNil(t, m)
	})
	require.NoError(t, err)
}

func TestContainer_UnknownStrategyFailsResolution(t *testing.T) {
	cfg := testConfig()
	cfg.Matching.Strategy = "closest"
	c := buildContainer(t, cfg)

	err := c.Invoke(func(engine *dispatch.Engine) {})
	require.Error(t, err)
}
