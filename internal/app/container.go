package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"p2p-delivery/internal/config"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/http/handlers"
	"p2p-delivery/internal/http/middleware/ratelimit"
	"p2p-delivery/internal/http/router"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/metrics"
	"p2p-delivery/internal/notify"
	"p2p-delivery/internal/service/courier"
	"p2p-delivery/internal/service/customer"
	"p2p-delivery/internal/service/dashboard"
	"p2p-delivery/internal/service/dispatch"
	"p2p-delivery/internal/service/match"
	"p2p-delivery/internal/service/orders"
	"p2p-delivery/internal/service/payment"
	"p2p-delivery/internal/storage"
	"p2p-delivery/internal/sweeper"
	"p2p-delivery/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig makes the builder use a fixed configuration instead of Load.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStores(container); err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDispatch(container); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	if err := registerServices(container); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	if err := registerBackground(container); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		loadConfig,
	)
}

func registerStores(container *dig.Container) error {
	return provideAll(container,
		storage.NewOrders,
		storage.NewCouriers,
		storage.NewCustomers,
		storage.NewPayments,
	)
}

// registerCollector registers c on the default registerer, reusing an
// existing collector when the process already registered one.
func registerCollector[T prometheus.Collector](c T) (T, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

func registerMetrics(container *dig.Container) error {
	named := map[string]func() prometheus.Counter{
		"orders_placed_total":        metrics.NewOrdersPlacedTotal,
		"orders_assigned_total":      metrics.NewOrdersAssignedTotal,
		"orders_expired_total":       metrics.NewOrdersExpiredTotal,
		"deliveries_completed_total": metrics.NewDeliveriesCompletedTotal,
		"rate_limit_exceeded_total":  metrics.NewRateLimitExceededTotal,
	}
	for name, ctor := range named {
		ctor := ctor
		if err := container.Provide(func() (prometheus.Counter, error) {
			return registerCollector(ctor())
		}, dig.Name(name)); err != nil {
			return fmt.Errorf("provide counter %s: %w", name, err)
		}
	}
	return provideAll(container, func() (prometheus.Gauge, error) {
		return registerCollector(metrics.NewBacklogDepth())
	})
}

type engineIn struct {
	dig.In

	Orders        *storage.Orders
	Couriers      *storage.Couriers
	Strategy      match.Strategy
	Logger        logx.Logger
	AssignedTotal prometheus.Counter `name:"orders_assigned_total"`
	BacklogDepth  prometheus.Gauge
}

func registerDispatch(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) (match.Strategy, error) {
			return match.ForName(cfg.Matching.Strategy)
		},
		func(in engineIn) *dispatch.Engine {
			return dispatch.NewEngine(in.Orders, in.Couriers, in.Strategy, in.Logger, in.AssignedTotal, in.BacklogDepth)
		},
	)
}

type notifierIn struct {
	dig.In

	Logger    logx.Logger
	Producer  *kafka.Producer
	Placed    prometheus.Counter `name:"orders_placed_total"`
	Delivered prometheus.Counter `name:"deliveries_completed_total"`
}

func registerServices(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger) (*kafka.Producer, error) {
			return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		},
		func(in notifierIn) notify.Notifier {
			counting := notify.NewCounters(in.Placed, in.Delivered)
			if in.Producer == nil {
				return notify.Multi(notify.NewLog(in.Logger), counting)
			}
			return notify.Multi(notify.NewLog(in.Logger), counting, in.Producer)
		},
		customer.NewService,
		payment.NewService,
		courier.NewService,
		dashboard.NewService,
		func(e *dispatch.Engine) orders.Dispatcher { return e },
		func(s *customer.Service) orders.CustomerPort { return s },
		func(s *payment.Service) orders.PaymentPort { return s },
		func(cfg *config.Config) []domain.ItemCategory {
			items := make([]domain.ItemCategory, 0, len(cfg.Items))
			for _, it := range cfg.Items {
				items = append(items, domain.ItemCategory(it))
			}
			return items
		},
		orders.NewService,
	)
}

type sweeperIn struct {
	dig.In

	Orders       *orders.Service
	Cfg          *config.Config
	Logger       logx.Logger
	ExpiredTotal prometheus.Counter `name:"orders_expired_total"`
}

func registerBackground(container *dig.Container) error {
	return provideAll(container, func(in sweeperIn) *sweeper.Sweeper {
		return sweeper.New(
			in.Orders,
			in.Cfg.Delivery.ExpiryThreshold,
			in.Cfg.Delivery.SweepInterval,
			in.Logger,
			in.ExpiredTotal,
		)
	})
}

type rateLimitIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	rl := in.Cfg.RateLimit
	if rl.Rate <= 0 {
		return nil
	}
	limiter := ratelimit.NewTokenBucket(ratelimit.RealClock{}, rl.Rate, rl.Burst)
	return ratelimit.New(in.Logger, in.Counter, limiter)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(
		logger logx.Logger,
		base *handlers.Handlers,
		order *handlers.OrderHandler,
		cour *handlers.CourierHandler,
		cust *handlers.CustomerHandler,
		dash *handlers.DashboardHandler,
		rl *ratelimit.Middleware,
	) http.Handler {
		return router.New(router.Deps{
			Logger:    logger,
			Base:      base,
			Order:     order,
			Courier:   cour,
			Customer:  cust,
			Dashboard: dash,
			RateLimit: rl,
		})
	}
	return provideAll(container,
		handlers.New,
		handlers.NewOrderUsecase,
		handlers.NewOrderHandler,
		handlers.NewCourierUsecase,
		handlers.NewCourierHandler,
		handlers.NewCustomerUsecase,
		handlers.NewCustomerHandler,
		handlers.NewDashboardUsecase,
		handlers.NewDashboardHandler,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}
