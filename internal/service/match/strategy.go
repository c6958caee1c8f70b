// Package match holds the pluggable courier matching policy. Strategies are
// pure: they pick from a snapshot of FREE couriers and never mutate state,
// so swapping the policy does not touch the dispatch engine.
package match

import (
	"fmt"

	"p2p-delivery/internal/domain"
)

// Strategy selects a courier for a pending order from a snapshot of FREE
// couriers. The second return value is false when no candidate fits.
type Strategy interface {
	SelectCourier(candidates []domain.Courier) (domain.Courier, bool)
}

// Strategy selector names accepted in configuration.
const (
	StrategyFirstFree = "first_free"
	StrategyTopRated  = "top_rated"
)

// FirstFree picks the FREE courier with the earliest registration timestamp.
// Stable and starvation-free: a long-idle courier is never skipped. Ties are
// broken by ID to keep selection deterministic.
type FirstFree struct{}

// SelectCourier implements Strategy.
func (FirstFree) SelectCourier(candidates []domain.Courier) (domain.Courier, bool) {
	var best domain.Courier
	found := false
	for _, c := range candidates {
		if !c.Free() {
			continue
		}
		if !found || earlier(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

func earlier(a, b domain.Courier) bool {
	if a.RegisteredAt.Equal(b.RegisteredAt) {
		return a.ID < b.ID
	}
	return a.RegisteredAt.Before(b.RegisteredAt)
}

// TopRated picks the FREE courier with the highest average rating,
// falling back to earliest registration among equally rated ones.
type TopRated struct{}

// SelectCourier implements Strategy.
func (TopRated) SelectCourier(candidates []domain.Courier) (domain.Courier, bool) {
	var best domain.Courier
	found := false
	for _, c := range candidates {
		if !c.Free() {
			continue
		}
		if !found || c.Rating() > best.Rating() || (c.Rating() == best.Rating() && earlier(c, best)) {
			best = c
			found = true
		}
	}
	return best, found
}

// ForName returns the strategy registered under the given selector name.
func ForName(name string) (Strategy, error) {
	switch name {
	case StrategyFirstFree, "":
		return FirstFree{}, nil
	case StrategyTopRated:
		return TopRated{}, nil
	default:
		return nil, fmt.Errorf("unknown matching strategy: %q", name)
	}
}
