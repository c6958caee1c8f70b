package handlers

import (
	"context"

	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/service/courier"
	"p2p-delivery/internal/service/customer"
	"p2p-delivery/internal/service/dashboard"
	"p2p-delivery/internal/service/orders"
)

type orderUsecase interface {
	Place(ctx context.Context, req orders.PlaceRequest) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	Cancel(ctx context.Context, id string) error
	Pickup(ctx context.Context, id, courierID string) error
	Deliver(ctx context.Context, id, courierID string) error
	Pay(ctx context.Context, id string, amount float64, mode domain.PaymentMode) error
}

type courierUsecase interface {
	Onboard(ctx context.Context, name string) (domain.Courier, error)
	Get(ctx context.Context, id string) (domain.Courier, error)
	List(ctx context.Context) ([]domain.Courier, error)
	Rate(ctx context.Context, id string, score int) (domain.Courier, error)
}

type customerUsecase interface {
	Onboard(ctx context.Context, name string) (domain.Customer, error)
	Get(ctx context.Context, id string) (domain.Customer, error)
}

type dashboardUsecase interface {
	TopCouriers(ctx context.Context, by string, limit int) ([]domain.Courier, error)
}

// NewOrderUsecase wires the order lifecycle service into an orderUsecase.
func NewOrderUsecase(svc *orders.Service) orderUsecase {
	return svc
}

// NewCourierUsecase wires the courier service into a courierUsecase.
func NewCourierUsecase(svc *courier.Service) courierUsecase {
	return svc
}

// NewCustomerUsecase wires the customer service into a customerUsecase.
func NewCustomerUsecase(svc *customer.Service) customerUsecase {
	return svc
}

// NewDashboardUsecase wires the dashboard service into a dashboardUsecase.
func NewDashboardUsecase(svc *dashboard.Service) dashboardUsecase {
	return svc
}
