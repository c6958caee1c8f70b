package handlers

import (
	"context"
	"errors"
	"net/http"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
)

// OrderHandler serves HTTP endpoints for the order lifecycle.
type OrderHandler struct {
	usecase orderUsecase
	logger  logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, uc orderUsecase) *OrderHandler {
	return &OrderHandler{usecase: uc, logger: logger}
}

// Place handles POST /order.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.usecase.Place(r.Context(), req.toModel())
	switch {
	case err == nil:
		w.Header().Set("Location", "/order/"+o.ID)
		writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(o))
	case errors.Is(err, apperr.ErrInvalidItem):
		writeError(h.logger, w, r, http.StatusBadRequest, "item not allowed")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "customer not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /order/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	o, err := h.usecase.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Cancel handles POST /order/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.usecase.Cancel(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "cancelled"})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrInvalidTransition):
		writeError(h.logger, w, r, http.StatusConflict, "order can no longer be cancelled")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Pickup handles POST /order/{id}/pickup.
func (h *OrderHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	h.courierAction(w, r, h.usecase.Pickup, "picked_up")
}

// Deliver handles POST /order/{id}/deliver.
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	h.courierAction(w, r, h.usecase.Deliver, "delivered")
}

// Pay handles POST /order/{id}/pay.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req payOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err = h.usecase.Pay(r.Context(), id, req.Amount, domain.PaymentMode(req.Mode))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "paid"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

type courierActionFn func(ctx context.Context, id, courierID string) error

func (h *OrderHandler) courierAction(w http.ResponseWriter, r *http.Request, fn courierActionFn, done string) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req actingCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CourierID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	err = fn(r.Context(), id, req.CourierID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": done})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrNotAssigned):
		writeError(h.logger, w, r, http.StatusForbidden, "order is assigned to another courier")
	case errors.Is(err, apperr.ErrInvalidTransition):
		writeError(h.logger, w, r, http.StatusConflict, "illegal order state transition")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
