package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/storage"
)

// Service is the in-process payment collaborator. The gateway is synchronous
// and always succeeds once input validation passes; transactions are
// recorded for later lookup.
type Service struct {
	payments *storage.Payments
	logger   logx.Logger
	now      func() time.Time
	newID    func() string
}

// NewService creates the payment service.
func NewService(payments *storage.Payments, logger logx.Logger) *Service {
	return &Service{
		payments: payments,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

// Charge records a payment transaction for the order.
func (s *Service) Charge(ctx context.Context, orderID string, amount float64, mode domain.PaymentMode) (domain.Payment, error) {
	if amount <= 0 {
		return domain.Payment{}, fmt.Errorf("amount %.2f: %w", amount, apperr.ErrInvalid)
	}
	if !mode.Valid() {
		return domain.Payment{}, fmt.Errorf("payment mode %q: %w", mode, apperr.ErrInvalid)
	}

	p := domain.Payment{
		ID:        s.newID(),
		OrderID:   orderID,
		Amount:    amount,
		Mode:      mode,
		Status:    domain.PaymentSuccess,
		CreatedAt: s.now(),
	}
	s.payments.Put(p.ID, p)

	s.logger.Info("payment collected",
		logx.String("payment_id", p.ID),
		logx.String("order_id", orderID),
		logx.Float64("amount", amount),
		logx.String("mode", string(mode)),
	)
	return p, nil
}

// Get returns a recorded transaction by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Payment, error) {
	p, ok := s.payments.Get(id)
	if !ok {
		return domain.Payment{}, fmt.Errorf("payment %s: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}
