package orders

import (
	"context"

	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/service/dispatch"
)

// Dispatcher abstracts the assignment engine operations the lifecycle
// controller needs.
type Dispatcher interface {
	TryAssign(ctx context.Context, orderID string) (dispatch.Result, error)
	OnCourierFreed(ctx context.Context, courierID string, delivered bool) error
	Forget(orderID string)
}

// PaymentPort abstracts the payment collaborator. Invoked on delivery
// completion; a failure is logged and does not roll back delivery state.
type PaymentPort interface {
	Charge(ctx context.Context, orderID string, amount float64, mode domain.PaymentMode) (domain.Payment, error)
}

// CustomerPort abstracts the customer registry existence check.
type CustomerPort interface {
	Get(ctx context.Context, id string) (domain.Customer, error)
}
