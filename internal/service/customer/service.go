package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/storage"
)

// Service manages customer profiles. CRUD only; the order lifecycle just
// needs an existence check at placement.
type Service struct {
	customers *storage.Customers
	now       func() time.Time
	newID     func() string
}

// NewService creates the customer service.
func NewService(customers *storage.Customers) *Service {
	return &Service{
		customers: customers,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Onboard registers a new customer and returns the created profile.
func (s *Service) Onboard(ctx context.Context, name string) (domain.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Customer{}, fmt.Errorf("customer name: %w", apperr.ErrInvalid)
	}
	c := domain.Customer{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		RegisteredAt: s.now(),
	}
	if err := s.customers.PutNew(c.ID, c); err != nil {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", c.ID, err)
	}
	return c, nil
}

// Get returns a customer by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Customer, error) {
	c, ok := s.customers.Get(id)
	if !ok {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", id, apperr.ErrNotFound)
	}
	return c, nil
}
