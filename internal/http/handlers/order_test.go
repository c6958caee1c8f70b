package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/service/orders"
)

type stubOrderUsecase struct {
	placeFn   func(ctx context.Context, req orders.PlaceRequest) (domain.Order, error)
	getFn     func(ctx context.Context, id string) (domain.Order, error)
	cancelFn  func(ctx context.Context, id string) error
	pickupFn  func(ctx context.Context, id, courierID string) error
	deliverFn func(ctx context.Context, id, courierID string) error
	payFn     func(ctx context.Context, id string, amount float64, mode domain.PaymentMode) error
}

func (s *stubOrderUsecase) Place(ctx context.Context, req orders.PlaceRequest) (domain.Order, error) {
	if s.placeFn == nil {
		panic("Place not expected in this test")
	}
	return s.placeFn(ctx, req)
}

func (s *stubOrderUsecase) Get(ctx context.Context, id string) (domain.Order, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func (s *stubOrderUsecase) Cancel(ctx context.Context, id string) error {
	if s.cancelFn == nil {
		panic("Cancel not expected in this test")
	}
	return s.cancelFn(ctx, id)
}

func (s *stubOrderUsecase) Pickup(ctx context.Context, id, courierID string) error {
	if s.pickupFn == nil {
		panic("Pickup not expected in this test")
	}
	return s.pickupFn(ctx, id, courierID)
}

func (s *stubOrderUsecase) Deliver(ctx context.Context, id, courierID string) error {
	if s.deliverFn == nil {
		panic("Deliver not expected in this test")
	}
	return s.deliverFn(ctx, id, courierID)
}

func (s *stubOrderUsecase) Pay(ctx context.Context, id string, amount float64, mode domain.PaymentMode) error {
	if s.payFn == nil {
		panic("Pay not expected in this test")
	}
	return s.payFn(ctx, id, amount, mode)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestOrderHandler_Place_Created(t *testing.T) {
	t.Parallel()

	body := `{"customer_id":"c-1","item":"FOOD","quantity":2,"amount":120,"payment_mode":"UPI"}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	uc := &stubOrderUsecase{
		placeFn: func(ctx context.Context, pr orders.PlaceRequest) (domain.Order, error) {
			require.Equal(t, "c-1", pr.CustomerID)
			require.Equal(t, domain.ItemFood, pr.Item)
			require.Equal(t, 2, pr.Quantity)
			return domain.Order{
				ID:         "o-1",
				CustomerID: pr.CustomerID,
				Item:       pr.Item,
				Quantity:   pr.Quantity,
				Status:     domain.OrderPending,
				CreatedAt:  created,
				Amount:     120,
				Mode:       domain.PayUPI,
			}, nil
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.Place(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/order/o-1", rr.Header().Get("Location"))

	expectedJSON := `{
        "id": "o-1",
        "customer_id": "c-1",
        "item": "FOOD",
        "quantity": 2,
        "status": "PENDING",
        "created_at": "2025-01-02T03:04:05Z",
        "amount": 120,
        "payment_mode": "UPI",
        "paid": false
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestOrderHandler_Place_ItemNotAllowed(t *testing.T) {
	t.Parallel()

	body := `{"customer_id":"c-1","item":"FURNITURE"}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	rr := httptest.NewRecorder()

	uc := &stubOrderUsecase{
		placeFn: func(ctx context.Context, pr orders.PlaceRequest) (domain.Order, error) {
			return domain.Order{}, apperr.ErrInvalidItem
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.Place(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "item not allowed"}`, rr.Body.String())
}

func TestOrderHandler_Place_BadJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"customer_id":`))
	rr := httptest.NewRecorder()

	h := NewOrderHandler(logx.Nop(), &stubOrderUsecase{})
	h.Place(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid json"}`, rr.Body.String())
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/order/o-404", nil)
	req = withURLParam(req, "id", "o-404")
	rr := httptest.NewRecorder()

	uc := &stubOrderUsecase{
		getFn: func(ctx context.Context, id string) (domain.Order, error) {
			require.Equal(t, "o-404", id)
			return domain.Order{}, apperr.ErrNotFound
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.GetByID(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "order not found"}`, rr.Body.String())
}

func TestOrderHandler_Cancel_Conflict(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/order/o-1/cancel", nil)
	req = withURLParam(req, "id", "o-1")
	rr := httptest.NewRecorder()

	uc := &stubOrderUsecase{
		cancelFn: func(ctx context.Context, id string) error {
			return apperr.ErrInvalidTransition
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.Cancel(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "order can no longer be cancelled"}`, rr.Body.String())
}

func TestOrderHandler_Pickup_WrongCourier(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"d-2"}`
	req := httptest.NewRequest(http.MethodPost, "/order/o-1/pickup", strings.NewReader(body))
	req = withURLParam(req, "id", "o-1")
	rr := httptest.NewRecorder()

	uc := &stubOrderUsecase{
		pickupFn: func(ctx context.Context, id, courierID string) error {
			require.Equal(t, "o-1", id)
			require.Equal(t, "d-2", courierID)
			return apperr.ErrNotAssigned
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.Pickup(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error": "order is assigned to another courier"}`, rr.Body.String())
}

func TestOrderHandler_Pickup_MissingCourier(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/order/o-1/pickup", strings.NewReader(`{}`))
	req = withURLParam(req, "id", "o-1")
	rr := httptest.NewRecorder()

	h := NewOrderHandler(logx.Nop(), &stubOrderUsecase{})
	h.Pickup(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_Deliver_OK(t *testing.T) {
	t.Parallel()

	body := `{"courier_id":"d-1"}`
	req := httptest.NewRequest(http.MethodPost, "/order/o-1/deliver", strings.NewReader(body))
	req = withURLParam(req, "id", "o-1")
	rr := httptest.NewRecorder()

	uc := &stubOrderUsecase{
		deliverFn: func(ctx context.Context, id, courierID string) error {
			return nil
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.Deliver(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "delivered"}`, rr.Body.String())
}

func TestOrderHandler_Pay_Invalid(t *testing.T) {
	t.Parallel()

	body := `{"amount":-5,"payment_mode":"CASH"}`
	req := httptest.NewRequest(http.MethodPost, "/order/o-1/pay", strings.NewReader(body))
	req = withURLParam(req, "id", "o-1")
	rr := httptest.NewRecorder()

	uc := &stubOrderUsecase{
		payFn: func(ctx context.Context, id string, amount float64, mode domain.PaymentMode) error {
			return apperr.ErrInvalid
		},
	}

	h := NewOrderHandler(logx.Nop(), uc)
	h.Pay(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid input"}`, rr.Body.String())
}
