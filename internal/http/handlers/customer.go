package handlers

import (
	"errors"
	"net/http"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/logx"
)

// CustomerHandler serves HTTP endpoints for customer profiles.
type CustomerHandler struct {
	usecase customerUsecase
	logger  logx.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(logger logx.Logger, uc customerUsecase) *CustomerHandler {
	return &CustomerHandler{usecase: uc, logger: logger}
}

// Create handles POST /customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerNameRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.Onboard(r.Context(), req.Name)
	switch {
	case err == nil:
		w.Header().Set("Location", "/customer/"+c.ID)
		writeJSON(h.logger, w, r, http.StatusCreated, customerToResponse(c))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /customer/{id}.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.usecase.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, customerToResponse(c))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "customer not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
