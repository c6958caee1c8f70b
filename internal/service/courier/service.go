package courier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/storage"
)

// Rating bounds for the rating collaborator.
const (
	MinRating = 1
	MaxRating = 5
)

// Service coordinates courier onboarding, lookups and the rating
// collaborator. Availability and job bindings are mutated exclusively by the
// dispatch engine; this service never touches them.
type Service struct {
	couriers *storage.Couriers
	logger   logx.Logger
	now      func() time.Time
	newID    func() string
}

// NewService creates the courier service.
func NewService(couriers *storage.Couriers, logger logx.Logger) *Service {
	return &Service{
		couriers: couriers,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

// Onboard registers a new courier in FREE state.
func (s *Service) Onboard(ctx context.Context, name string) (domain.Courier, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Courier{}, fmt.Errorf("courier name: %w", apperr.ErrInvalid)
	}
	c := domain.Courier{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		Status:       domain.CourierFree,
		RegisteredAt: s.now(),
	}
	if err := s.couriers.PutNew(c.ID, c); err != nil {
		return domain.Courier{}, fmt.Errorf("courier %s: %w", c.ID, err)
	}
	s.logger.Info("courier onboarded", logx.String("courier_id", c.ID))
	return c, nil
}

// Get returns a courier by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Courier, error) {
	c, ok := s.couriers.Get(id)
	if !ok {
		return domain.Courier{}, fmt.Errorf("courier %s: %w", id, apperr.ErrNotFound)
	}
	return c, nil
}

// List returns a snapshot of all couriers.
func (s *Service) List(ctx context.Context) ([]domain.Courier, error) {
	return s.couriers.All(), nil
}

// Rate records a rating for the courier. The score must be within 1..5 and
// the courier must have at least one delivered order; otherwise
// apperr.ErrInvalidRating is returned.
func (s *Service) Rate(ctx context.Context, id string, score int) (domain.Courier, error) {
	if score < MinRating || score > MaxRating {
		return domain.Courier{}, fmt.Errorf("score %d not in [%d, %d]: %w",
			score, MinRating, MaxRating, apperr.ErrInvalidRating)
	}

	err := s.couriers.Update(id, func(c *domain.Courier) error {
		if c.Completed == 0 {
			return fmt.Errorf("courier %s has no delivered orders: %w", id, apperr.ErrInvalidRating)
		}
		c.RatingSum += score
		c.RatingCount++
		return nil
	})
	if err != nil {
		return domain.Courier{}, err
	}

	c, _ := s.couriers.Get(id)
	s.logger.Info("courier rated",
		logx.String("courier_id", id),
		logx.Int("score", score),
		logx.Float64("rating", c.Rating()),
	)
	return c, nil
}
