package domain

import "time"

// Order represents a delivery order. The struct is a plain data carrier;
// transitions are enforced by the order lifecycle service, mutation happens
// only through the entity store's atomic update.
type Order struct {
	ID          string
	CustomerID  string
	Item        ItemCategory
	Quantity    int
	Weight      float64
	Status      OrderStatus
	CourierID   *string
	CreatedAt   time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time

	// Payment info. Amount and Mode are captured at placement; PaymentID is
	// set once the payment collaborator records the transaction.
	Amount    float64
	Mode      PaymentMode
	PaymentID *string
	Paid      bool
}

// Assigned reports whether the order currently holds a courier binding.
func (o Order) Assigned() bool {
	return o.CourierID != nil
}

// Guardrails for order placement.
const (
	MaxQuantity = 10
	MaxWeight   = 50.0
)
