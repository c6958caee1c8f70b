// Package orders exposes the order lifecycle controller: place, cancel,
// pickup and deliver, plus the expiry cleanup invoked by the sweeper. It
// enforces legal state transitions and delegates courier binding to the
// dispatch engine. Transition failures are returned synchronously and never
// retried here; retry policy belongs to the caller.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/notify"
	"p2p-delivery/internal/storage"
)

// PlaceRequest carries the input for order placement.
type PlaceRequest struct {
	CustomerID string
	Item       domain.ItemCategory
	Quantity   int
	Weight     float64
	Amount     float64
	Mode       domain.PaymentMode
}

// Service is the order lifecycle controller.
type Service struct {
	orders    *storage.Orders
	engine    Dispatcher
	customers CustomerPort
	payments  PaymentPort
	notifier  notify.Notifier
	allowed   map[domain.ItemCategory]struct{}
	logger    logx.Logger
	now       func() time.Time
	newID     func() string
}

// NewService creates the lifecycle controller. The allowed item set comes
// from configuration; an empty set falls back to the built-in categories.
func NewService(
	ordersStore *storage.Orders,
	engine Dispatcher,
	customers CustomerPort,
	payments PaymentPort,
	notifier notify.Notifier,
	allowedItems []domain.ItemCategory,
	logger logx.Logger,
) *Service {
	if len(allowedItems) == 0 {
		allowedItems = domain.DefaultItemCategories()
	}
	if notifier == nil {
		notifier = notify.Nop()
	}
	allowed := make(map[domain.ItemCategory]struct{}, len(allowedItems))
	for _, it := range allowedItems {
		allowed[it] = struct{}{}
	}
	return &Service{
		orders:    ordersStore,
		engine:    engine,
		customers: customers,
		payments:  payments,
		notifier:  notifier,
		allowed:   allowed,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Place validates and creates an order, then asks the engine for a courier.
// Both outcomes of the attempt are successful placements: the returned order
// is ASSIGNED on an immediate match and PENDING when queued.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (domain.Order, error) {
	if err := s.validatePlace(req); err != nil {
		return domain.Order{}, err
	}
	if _, err := s.customers.Get(ctx, req.CustomerID); err != nil {
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}

	o := domain.Order{
		ID:         s.newID(),
		CustomerID: req.CustomerID,
		Item:       req.Item,
		Quantity:   req.Quantity,
		Weight:     req.Weight,
		Amount:     req.Amount,
		Mode:       req.Mode,
		Status:     domain.OrderPending,
		CreatedAt:  s.now(),
	}
	if o.Quantity <= 0 {
		o.Quantity = 1
	}
	s.orders.Put(o.ID, o)
	s.notifier.Notify(ctx, o.ID, notify.EventPlaced)

	res, err := s.engine.TryAssign(ctx, o.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("assign order %s: %w", o.ID, err)
	}
	if !res.Queued {
		s.notifier.Notify(ctx, o.ID, notify.EventAssigned)
	}

	placed, _ := s.orders.Get(o.ID)
	s.logger.Info("order placed",
		logx.String("order_id", o.ID),
		logx.String("customer_id", o.CustomerID),
		logx.String("item", string(o.Item)),
		logx.String("status", string(placed.Status)),
	)
	return placed, nil
}

// Get returns an order by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	o, ok := s.orders.Get(id)
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	return o, nil
}

// Cancel cancels an order from PENDING or ASSIGNED. Orders already picked up
// cannot be cancelled. A courier bound to the order is released and the
// backlog is drained so the freed courier immediately takes the next queued
// order.
func (s *Service) Cancel(ctx context.Context, id string) error {
	var (
		prevStatus  domain.OrderStatus
		prevCourier *string
	)
	err := s.orders.Update(id, func(o *domain.Order) error {
		if !o.Status.CanCancel() {
			return fmt.Errorf("cancel order %s in %s: %w", id, o.Status, apperr.ErrInvalidTransition)
		}
		prevStatus = o.Status
		prevCourier = o.CourierID
		o.Status = domain.OrderCancelled
		o.CourierID = nil
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("order %s: %w", id, err)
		}
		return err
	}

	if prevStatus == domain.OrderPending {
		s.engine.Forget(id)
	}
	if prevCourier != nil {
		if err := s.engine.OnCourierFreed(ctx, *prevCourier, false); err != nil {
			s.logger.Error("release courier after cancel failed",
				logx.String("order_id", id),
				logx.String("courier_id", *prevCourier),
				logx.Err(err),
			)
		}
	}

	s.notifier.Notify(ctx, id, notify.EventCancelled)
	s.logger.Info("order cancelled",
		logx.String("order_id", id),
		logx.String("was", string(prevStatus)),
	)
	return nil
}

// Pickup marks an ASSIGNED order as picked up by its courier and records the
// pickup timestamp.
func (s *Service) Pickup(ctx context.Context, id, courierID string) error {
	err := s.orders.Update(id, func(o *domain.Order) error {
		if o.Status != domain.OrderAssigned {
			return fmt.Errorf("pickup order %s in %s: %w", id, o.Status, apperr.ErrInvalidTransition)
		}
		if o.CourierID == nil || *o.CourierID != courierID {
			return fmt.Errorf("pickup order %s by %s: %w", id, courierID, apperr.ErrNotAssigned)
		}
		now := s.now()
		o.Status = domain.OrderPickedUp
		o.PickedUpAt = &now
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, id, notify.EventPickedUp)
	s.logger.Info("order picked up",
		logx.String("order_id", id),
		logx.String("courier_id", courierID),
	)
	return nil
}

// Deliver marks a PICKED_UP order as delivered, records the delivery
// timestamp, frees the courier (draining the backlog) and invokes the
// payment collaborator for the order amount. Payment failure does not roll
// back delivery state.
func (s *Service) Deliver(ctx context.Context, id, courierID string) error {
	var amount float64
	var mode domain.PaymentMode

	err := s.orders.Update(id, func(o *domain.Order) error {
		if o.Status != domain.OrderPickedUp {
			return fmt.Errorf("deliver order %s in %s: %w", id, o.Status, apperr.ErrInvalidTransition)
		}
		if o.CourierID == nil || *o.CourierID != courierID {
			return fmt.Errorf("deliver order %s by %s: %w", id, courierID, apperr.ErrNotAssigned)
		}
		now := s.now()
		o.Status = domain.OrderDelivered
		o.DeliveredAt = &now
		amount, mode = o.Amount, o.Mode
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.engine.OnCourierFreed(ctx, courierID, true); err != nil {
		s.logger.Error("release courier after delivery failed",
			logx.String("order_id", id),
			logx.String("courier_id", courierID),
			logx.Err(err),
		)
	}

	s.notifier.Notify(ctx, id, notify.EventDelivered)
	s.logger.Info("order delivered",
		logx.String("order_id", id),
		logx.String("courier_id", courierID),
	)

	if amount > 0 {
		s.collectPayment(ctx, id, amount, mode)
	}
	return nil
}

// Pay collects payment for an order explicitly, outside the delivery path.
// Paying an already-paid order is a logged no-op.
func (s *Service) Pay(ctx context.Context, id string, amount float64, mode domain.PaymentMode) error {
	claimed, err := s.claimPayment(id)
	if err != nil {
		return err
	}
	if !claimed {
		s.logger.Info("order already paid", logx.String("order_id", id))
		return nil
	}
	p, err := s.payments.Charge(ctx, id, amount, mode)
	if err != nil {
		s.releasePaymentClaim(id)
		return err
	}
	s.recordPayment(ctx, id, p.ID)
	return nil
}

// CleanupExpired cancels PENDING orders older than the threshold, via the
// same path as a user-initiated cancel. ASSIGNED orders are never touched.
// Idempotent: an order cancelled by a concurrent request is skipped. Returns
// the number of orders expired.
func (s *Service) CleanupExpired(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	expired := 0

	for _, o := range s.orders.All() {
		if o.Status != domain.OrderPending || !o.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.Cancel(ctx, o.ID); err != nil {
			if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return expired, err
		}
		expired++
		s.notifier.Notify(ctx, o.ID, notify.EventExpired)
		s.logger.Info("order expired",
			logx.String("order_id", o.ID),
			logx.Time("created_at", o.CreatedAt),
		)
	}
	return expired, nil
}

func (s *Service) validatePlace(req PlaceRequest) error {
	if _, ok := s.allowed[req.Item]; !ok {
		return fmt.Errorf("item %q: %w", req.Item, apperr.ErrInvalidItem)
	}
	if req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("quantity %d exceeds %d: %w", req.Quantity, domain.MaxQuantity, apperr.ErrInvalid)
	}
	if req.Weight < 0 || req.Weight > domain.MaxWeight {
		return fmt.Errorf("weight %.1fkg exceeds %.1fkg: %w", req.Weight, domain.MaxWeight, apperr.ErrInvalid)
	}
	if req.Amount < 0 {
		return fmt.Errorf("amount %.2f: %w", req.Amount, apperr.ErrInvalid)
	}
	if req.Amount > 0 && !req.Mode.Valid() {
		return fmt.Errorf("payment mode %q: %w", req.Mode, apperr.ErrInvalid)
	}
	return nil
}

func (s *Service) collectPayment(ctx context.Context, id string, amount float64, mode domain.PaymentMode) {
	claimed, err := s.claimPayment(id)
	if err != nil || !claimed {
		return
	}
	p, err := s.payments.Charge(ctx, id, amount, mode)
	if err != nil {
		s.releasePaymentClaim(id)
		// Payment is not a delivery precondition; log and move on.
		s.logger.Error("payment failed",
			logx.String("order_id", id),
			logx.Float64("amount", amount),
			logx.Err(err),
		)
		return
	}
	s.recordPayment(ctx, id, p.ID)
}

// claimPayment flips Paid under the store lock so concurrent payment
// attempts see exactly one winner. A false claim means another caller got
// there first; the loser must not charge.
func (s *Service) claimPayment(id string) (bool, error) {
	claimed := false
	err := s.orders.Update(id, func(o *domain.Order) error {
		if o.Paid {
			return nil
		}
		o.Paid = true
		claimed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("order %s: %w", id, err)
	}
	return claimed, nil
}

func (s *Service) releasePaymentClaim(id string) {
	err := s.orders.Update(id, func(o *domain.Order) error {
		o.Paid = false
		o.PaymentID = nil
		return nil
	})
	if err != nil {
		s.logger.Error("release payment claim failed", logx.String("order_id", id), logx.Err(err))
	}
}

func (s *Service) recordPayment(ctx context.Context, id, paymentID string) {
	err := s.orders.Update(id, func(o *domain.Order) error {
		o.PaymentID = &paymentID
		return nil
	})
	if err != nil {
		s.logger.Error("record payment failed", logx.String("order_id", id), logx.Err(err))
		return
	}
	s.notifier.Notify(ctx, id, notify.EventPaid)
}
