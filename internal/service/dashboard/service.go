package dashboard

import (
	"context"
	"fmt"
	"sort"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/storage"
)

// Sort keys for top-courier queries.
const (
	ByRating    = "rating"
	ByCompleted = "completed"
)

const defaultLimit = 5

// Service serves read-only dashboard views. All queries operate on entity
// store snapshots, never on live locked state.
type Service struct {
	couriers *storage.Couriers
}

// NewService creates the dashboard service.
func NewService(couriers *storage.Couriers) *Service {
	return &Service{couriers: couriers}
}

// TopCouriers returns the top couriers ordered by average rating or by
// completed-delivery count. A non-positive limit falls back to the default.
func (s *Service) TopCouriers(ctx context.Context, by string, limit int) ([]domain.Courier, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	couriers := s.couriers.All()
	switch by {
	case ByRating, "":
		sort.Slice(couriers, func(i, j int) bool {
			if couriers[i].Rating() == couriers[j].Rating() {
				return couriers[i].ID < couriers[j].ID
			}
			return couriers[i].Rating() > couriers[j].Rating()
		})
	case ByCompleted:
		sort.Slice(couriers, func(i, j int) bool {
			if couriers[i].Completed == couriers[j].Completed {
				return couriers[i].ID < couriers[j].ID
			}
			return couriers[i].Completed > couriers[j].Completed
		})
	default:
		return nil, fmt.Errorf("sort key %q: %w", by, apperr.ErrInvalid)
	}

	if len(couriers) > limit {
		couriers = couriers[:limit]
	}
	return couriers, nil
}
