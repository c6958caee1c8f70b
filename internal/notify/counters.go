package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type counters struct {
	placed    prometheus.Counter
	delivered prometheus.Counter
}

// NewCounters returns a Notifier that feeds the placed and delivered
// counters from the event stream. Either counter may be nil.
func NewCounters(placed, delivered prometheus.Counter) Notifier {
	return counters{placed: placed, delivered: delivered}
}

func (c counters) Notify(_ context.Context, _ string, event string) {
	switch event {
	case EventPlaced:
		if c.placed != nil {
			c.placed.Inc()
		}
	case EventDelivered:
		if c.delivered != nil {
			c.delivered.Inc()
		}
	}
}
