package handlers

import (
	"time"

	"p2p-delivery/internal/domain"
)

type placeOrderRequest struct {
	CustomerID string  `json:"customer_id"`
	Item       string  `json:"item"`
	Quantity   int     `json:"quantity"`
	Weight     float64 `json:"weight"`
	Amount     float64 `json:"amount"`
	Mode       string  `json:"payment_mode"`
}

type actingCourierRequest struct {
	CourierID string `json:"courier_id"`
}

type payOrderRequest struct {
	Amount float64 `json:"amount"`
	Mode   string  `json:"payment_mode"`
}

type orderDTO struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	Item        string             `json:"item"`
	Quantity    int                `json:"quantity"`
	Weight      float64            `json:"weight,omitempty"`
	Status      domain.OrderStatus `json:"status"`
	CourierID   *string            `json:"courier_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	PickedUpAt  *time.Time         `json:"picked_up_at,omitempty"`
	DeliveredAt *time.Time         `json:"delivered_at,omitempty"`
	Amount      float64            `json:"amount,omitempty"`
	Mode        string             `json:"payment_mode,omitempty"`
	Paid        bool               `json:"paid"`
}

type registerNameRequest struct {
	Name string `json:"name"`
}

type rateCourierRequest struct {
	Score int `json:"score"`
}

type courierDTO struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Status       domain.CourierStatus `json:"status"`
	OrderID      *string              `json:"order_id,omitempty"`
	RegisteredAt time.Time            `json:"registered_at"`
	Completed    int                  `json:"completed"`
	Rating       float64              `json:"rating"`
}

type customerDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}
