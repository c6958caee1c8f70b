package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersPlacedTotal returns a Prometheus counter for the number of orders accepted for delivery
func NewOrdersPlacedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders accepted for delivery",
	})
}

// NewOrdersAssignedTotal returns a Prometheus counter for the number of order-courier assignments
func NewOrdersAssignedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_assigned_total",
		Help: "Total number of order-courier assignments",
	})
}

// NewOrdersExpiredTotal returns a Prometheus counter for the number of orders cancelled by the expiry sweep
func NewOrdersExpiredTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_expired_total",
		Help: "Total number of orders cancelled by the expiry sweep",
	})
}

// NewDeliveriesCompletedTotal returns a Prometheus counter for the number of completed deliveries
func NewDeliveriesCompletedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_completed_total",
		Help: "Total number of completed deliveries",
	})
}

// NewBacklogDepth returns a Prometheus gauge for the number of orders waiting for a courier
func NewBacklogDepth() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "order_backlog_depth",
		Help: "Number of orders waiting for a courier",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
