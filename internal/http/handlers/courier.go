package handlers

import (
	"errors"
	"net/http"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/logx"
)

// CourierHandler serves HTTP endpoints for courier resources.
type CourierHandler struct {
	usecase courierUsecase
	logger  logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	return &CourierHandler{usecase: uc, logger: logger}
}

// Create handles POST /courier.
func (h *CourierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerNameRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.Onboard(r.Context(), req.Name)
	switch {
	case err == nil:
		w.Header().Set("Location", "/courier/"+c.ID)
		writeJSON(h.logger, w, r, http.StatusCreated, courierToResponse(c))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /courier/{id}.
func (h *CourierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.usecase.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /couriers.
func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.List(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, couriersToResponse(list))
}

// Rate handles POST /courier/{id}/rating.
func (h *CourierHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req rateCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.Rate(r.Context(), id, req.Score)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c))
	case errors.Is(err, apperr.ErrInvalidRating):
		writeError(h.logger, w, r, http.StatusBadRequest, "courier cannot be rated")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
