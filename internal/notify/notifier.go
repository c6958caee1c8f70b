// Package notify defines the fire-and-forget notification collaborator.
// Every order state transition produces one event; delivery is best-effort
// and failures never propagate to the transition caller.
package notify

import (
	"context"

	"p2p-delivery/internal/logx"
)

// Event kinds emitted on order transitions.
const (
	EventPlaced    = "order_placed"
	EventAssigned  = "order_assigned"
	EventPickedUp  = "order_picked_up"
	EventDelivered = "order_delivered"
	EventCancelled = "order_cancelled"
	EventExpired   = "order_expired"
	EventPaid      = "order_paid"
)

// Notifier delivers a transition event for an order. Implementations must be
// non-blocking from the caller's perspective and must not return errors;
// failures are logged inside the implementation.
type Notifier interface {
	Notify(ctx context.Context, orderID, event string)
}

type logNotifier struct {
	logger logx.Logger
}

// NewLog returns a Notifier that writes events to the structured log.
func NewLog(logger logx.Logger) Notifier {
	return logNotifier{logger: logger}
}

func (n logNotifier) Notify(_ context.Context, orderID, event string) {
	n.logger.Info("notification",
		logx.String("order_id", orderID),
		logx.String("event", event),
	)
}

type nopNotifier struct{}

// Nop returns a no-op Notifier.
func Nop() Notifier { return nopNotifier{} }

func (nopNotifier) Notify(context.Context, string, string) {}

// Multi fans an event out to several notifiers; nil entries are skipped.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type multi []Notifier

func (m multi) Notify(ctx context.Context, orderID, event string) {
	for _, n := range m {
		n.Notify(ctx, orderID, event)
	}
}
