package domain

import "time"

// Courier represents a delivery courier. A courier is BUSY iff exactly one
// order references it as assigned and not yet delivered or cancelled; OrderID
// holds that reference.
type Courier struct {
	ID           string
	Name         string
	Status       CourierStatus
	OrderID      *string
	RegisteredAt time.Time

	// Completed counts delivered orders.
	Completed int

	// Rating accumulator for external aggregation.
	RatingSum   int
	RatingCount int
}

// Rating returns the average rating, 0 when the courier was never rated.
func (c Courier) Rating() float64 {
	if c.RatingCount == 0 {
		return 0
	}
	return float64(c.RatingSum) / float64(c.RatingCount)
}

// Free reports whether the courier can take an order.
func (c Courier) Free() bool {
	return c.Status == CourierFree
}
