// Package dispatch implements the assignment engine: the single place where
// order-courier bindings are created and released. One engine mutex
// linearizes matching, binding and backlog mutation, which is what makes
// courier assignment exactly-once per availability event.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/service/match"
	"p2p-delivery/internal/storage"
)

// Result is the outcome of an assignment attempt. Queued=true is a success:
// the order waits in the backlog for the next freed courier.
type Result struct {
	CourierID string
	Queued    bool
}

// Engine binds pending orders to free couriers and maintains the FIFO
// backlog of unmatched orders. Matching is event-driven: placement and
// courier-freed events trigger it, nothing polls.
type Engine struct {
	mu       sync.Mutex
	orders   *storage.Orders
	couriers *storage.Couriers
	strategy match.Strategy
	backlog  []string
	logger   logx.Logger

	assignedTotal prometheus.Counter
	backlogDepth  prometheus.Gauge
}

// NewEngine creates the assignment engine. Metric collectors may be nil.
func NewEngine(
	orders *storage.Orders,
	couriers *storage.Couriers,
	strategy match.Strategy,
	logger logx.Logger,
	assignedTotal prometheus.Counter,
	backlogDepth prometheus.Gauge,
) *Engine {
	if strategy == nil {
		strategy = match.FirstFree{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Engine{
		orders:        orders,
		couriers:      couriers,
		strategy:      strategy,
		logger:        logger,
		assignedTotal: assignedTotal,
		backlogDepth:  backlogDepth,
	}
}

// TryAssign attempts to bind the order to a free courier under one critical
// section. When no courier is free the order is appended to the backlog tail.
// Two placements racing for the last free courier are serialized by the
// engine lock: exactly one binds, the other observes an empty candidate set
// on its own snapshot and queues.
func (e *Engine) TryAssign(ctx context.Context, orderID string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.orders.Get(orderID)
	if !ok {
		return Result{}, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	if o.Status != domain.OrderPending {
		return Result{}, fmt.Errorf("order %s is %s: %w", orderID, o.Status, apperr.ErrInvalidTransition)
	}

	courier, ok := e.strategy.SelectCourier(e.couriers.FreeSnapshot())
	if !ok {
		e.enqueueLocked(orderID)
		e.logger.Info("order queued, no couriers free",
			logx.String("order_id", orderID),
			logx.Int("backlog", len(e.backlog)),
		)
		return Result{Queued: true}, nil
	}

	if err := e.bindLocked(ctx, orderID, courier.ID); err != nil {
		return Result{}, err
	}
	return Result{CourierID: courier.ID}, nil
}

// OnCourierFreed releases the courier back to FREE (incrementing its
// completed counter when the release comes from a delivery) and drains the
// backlog in strict arrival order while both a queued order and a free
// courier remain.
func (e *Engine) OnCourierFreed(ctx context.Context, courierID string, delivered bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.couriers.Update(courierID, func(c *domain.Courier) error {
		c.Status = domain.CourierFree
		c.OrderID = nil
		if delivered {
			c.Completed++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("free courier %s: %w", courierID, err)
	}

	e.logger.Info("courier freed",
		logx.String("courier_id", courierID),
		logx.Any("delivered", delivered),
	)
	e.drainLocked(ctx)
	return nil
}

// Forget drops the order from the backlog, if queued. Called when a pending
// order is cancelled or expires.
func (e *Engine) Forget(orderID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, id := range e.backlog {
		if id == orderID {
			e.backlog = append(e.backlog[:i], e.backlog[i+1:]...)
			break
		}
	}
	e.setDepthLocked()
}

// BacklogLen returns the number of queued orders.
func (e *Engine) BacklogLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.backlog)
}

// drainLocked pops backlog entries head-first, binding each to a courier
// chosen by the strategy, until the backlog is empty or no courier is free.
// Stale entries (orders cancelled or expired while queued) are discarded
// without consuming a courier. Caller holds e.mu.
func (e *Engine) drainLocked(ctx context.Context) {
	for len(e.backlog) > 0 {
		courier, ok := e.strategy.SelectCourier(e.couriers.FreeSnapshot())
		if !ok {
			break
		}
		orderID := e.backlog[0]
		e.backlog = e.backlog[1:]

		if err := e.bindLocked(ctx, orderID, courier.ID); err != nil {
			if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrNotFound) {
				e.logger.Debug("stale backlog entry dropped", logx.String("order_id", orderID))
				continue
			}
			e.logger.Error("backlog bind failed", logx.String("order_id", orderID), logx.Err(err))
			break
		}
	}
	e.setDepthLocked()
}

// bindLocked atomically links order and courier: order PENDING -> ASSIGNED,
// courier FREE -> BUSY. Lock order is orders before couriers. Caller holds
// e.mu, so the courier observed FREE in the snapshot cannot be taken by
// anyone else before we mark it BUSY.
func (e *Engine) bindLocked(ctx context.Context, orderID, courierID string) error {
	err := e.orders.Update(orderID, func(o *domain.Order) error {
		if o.Status != domain.OrderPending {
			return fmt.Errorf("order %s is %s: %w", orderID, o.Status, apperr.ErrInvalidTransition)
		}
		o.Status = domain.OrderAssigned
		o.CourierID = &courierID
		return nil
	})
	if err != nil {
		return err
	}

	err = e.couriers.Update(courierID, func(c *domain.Courier) error {
		if !c.Free() {
			return fmt.Errorf("courier %s is %s: %w", courierID, c.Status, apperr.ErrInvalidTransition)
		}
		c.Status = domain.CourierBusy
		c.OrderID = &orderID
		return nil
	})
	if err != nil {
		// Roll the order back so no partial binding is observable. Cannot
		// happen while all courier releases go through the engine lock, but
		// a failed bind must leave state unchanged.
		_ = e.orders.Update(orderID, func(o *domain.Order) error {
			o.Status = domain.OrderPending
			o.CourierID = nil
			return nil
		})
		return err
	}

	if e.assignedTotal != nil {
		e.assignedTotal.Inc()
	}
	e.logger.Info("order assigned",
		logx.String("order_id", orderID),
		logx.String("courier_id", courierID),
	)
	return nil
}

func (e *Engine) enqueueLocked(orderID string) {
	for _, id := range e.backlog {
		if id == orderID {
			return
		}
	}
	e.backlog = append(e.backlog, orderID)
	e.setDepthLocked()
}

func (e *Engine) setDepthLocked() {
	if e.backlogDepth != nil {
		e.backlogDepth.Set(float64(len(e.backlog)))
	}
}
