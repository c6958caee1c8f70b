package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/logx"
)

// DashboardHandler serves read-only leaderboard views.
type DashboardHandler struct {
	usecase dashboardUsecase
	logger  logx.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(logger logx.Logger, uc dashboardUsecase) *DashboardHandler {
	return &DashboardHandler{usecase: uc, logger: logger}
}

// TopCouriers handles GET /dashboard/top-couriers.
func (h *DashboardHandler) TopCouriers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	list, err := h.usecase.TopCouriers(r.Context(), q.Get("by"), limit)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, couriersToResponse(list))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid sort key")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
