package handlers

import (
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/service/orders"
)

func (r placeOrderRequest) toModel() orders.PlaceRequest {
	return orders.PlaceRequest{
		CustomerID: r.CustomerID,
		Item:       domain.ItemCategory(r.Item),
		Quantity:   r.Quantity,
		Weight:     r.Weight,
		Amount:     r.Amount,
		Mode:       domain.PaymentMode(r.Mode),
	}
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Item:        string(o.Item),
		Quantity:    o.Quantity,
		Weight:      o.Weight,
		Status:      o.Status,
		CourierID:   o.CourierID,
		CreatedAt:   o.CreatedAt,
		PickedUpAt:  o.PickedUpAt,
		DeliveredAt: o.DeliveredAt,
		Amount:      o.Amount,
		Mode:        string(o.Mode),
		Paid:        o.Paid,
	}
}

func courierToResponse(c domain.Courier) courierDTO {
	return courierDTO{
		ID:           c.ID,
		Name:         c.Name,
		Status:       c.Status,
		OrderID:      c.OrderID,
		RegisteredAt: c.RegisteredAt,
		Completed:    c.Completed,
		Rating:       c.Rating(),
	}
}

func couriersToResponse(list []domain.Courier) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, courierToResponse(c))
	}
	return out
}

func customerToResponse(c domain.Customer) customerDTO {
	return customerDTO{
		ID:           c.ID,
		Name:         c.Name,
		RegisteredAt: c.RegisteredAt,
	}
}
