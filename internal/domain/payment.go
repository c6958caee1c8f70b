package domain

import "time"

// Payment is a recorded payment transaction for an order.
type Payment struct {
	ID        string
	OrderID   string
	Amount    float64
	Mode      PaymentMode
	Status    string
	CreatedAt time.Time
}

// PaymentSuccess is the status of a completed transaction. The in-process
// gateway is synchronous, so every recorded payment carries it.
const PaymentSuccess = "SUCCESS"

// Customer is a registered customer profile. Profile management is
// CRUD-shaped; the engine only needs existence checks at placement.
type Customer struct {
	ID           string
	Name         string
	RegisteredAt time.Time
}
