package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"p2p-delivery/internal/http/handlers"
	"p2p-delivery/internal/http/middleware"
	"p2p-delivery/internal/http/middleware/ratelimit"
	"p2p-delivery/internal/logx"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Order     *handlers.OrderHandler
	Courier   *handlers.CourierHandler
	Customer  *handlers.CustomerHandler
	Dashboard *handlers.DashboardHandler
	RateLimit *ratelimit.Middleware // optional
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/order", func(r chi.Router) {
		r.Post("/", d.Order.Place)
		r.Get("/{id}", d.Order.GetByID)
		r.Post("/{id}/cancel", d.Order.Cancel)
		r.Post("/{id}/pickup", d.Order.Pickup)
		r.Post("/{id}/deliver", d.Order.Deliver)
		r.Post("/{id}/pay", d.Order.Pay)
	})

	r.Post("/courier", d.Courier.Create)
	r.Get("/couriers", d.Courier.List)
	r.Route("/courier/{id}", func(r chi.Router) {
		r.Get("/", d.Courier.GetByID)
		r.Post("/rating", d.Courier.Rate)
	})

	r.Post("/customer", d.Customer.Create)
	r.Get("/customer/{id}", d.Customer.GetByID)

	r.Get("/dashboard/top-couriers", d.Dashboard.TopCouriers)

	r.NotFound(d.Base.NotFound)

	return r
}
