package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/http/handlers"
	"p2p-delivery/internal/http/router"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/notify"
	"p2p-delivery/internal/service/courier"
	"p2p-delivery/internal/service/customer"
	"p2p-delivery/internal/service/dashboard"
	"p2p-delivery/internal/service/dispatch"
	"p2p-delivery/internal/service/match"
	"p2p-delivery/internal/service/orders"
	"p2p-delivery/internal/service/payment"
	"p2p-delivery/internal/storage"
)

func newTestRouter(t *testing.T) (http.Handler, *storage.Couriers) {
	t.Helper()

	log := logx.Nop()
	orderStore := storage.NewOrders()
	courierStore := storage.NewCouriers()

	engine := dispatch.NewEngine(orderStore, courierStore, match.FirstFree{}, log, nil, nil)
	customers := customer.NewService(storage.NewCustomers())
	payments := payment.NewService(storage.NewPayments(), log)
	couriers := courier.NewService(courierStore, log)
	orderSvc := orders.NewService(orderStore, engine, customers, payments, notify.Nop(), nil, log)
	dash := dashboard.NewService(courierStore)

	h := router.New(router.Deps{
		Logger:    log,
		Base:      handlers.New(log),
		Order:     handlers.NewOrderHandler(log, orderSvc),
		Courier:   handlers.NewCourierHandler(log, couriers),
		Customer:  handlers.NewCustomerHandler(log, customers),
		Dashboard: handlers.NewDashboardHandler(log, dash),
	})
	return h, courierStore
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_PlaceAndTrackOrder(t *testing.T) {
	t.Parallel()

	h, courierStore := newTestRouter(t)
	courierStore.Put("d-1", domain.Courier{
		ID:           "d-1",
		Name:         "Ravi",
		Status:       domain.CourierFree,
		RegisteredAt: time.Unix(100, 0),
	})

	w := doJSON(t, h, http.MethodPost, "/customer", `{"name":"Sumit"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var cust struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cust))

	w = doJSON(t, h, http.MethodPost, "/order", `{"customer_id":"`+cust.ID+`","item":"FOOD","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		ID        string  `json:"id"`
		Status    string  `json:"status"`
		CourierID *string `json:"courier_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	require.Equal(t, "ASSIGNED", placed.Status)
	require.NotNil(t, placed.CourierID)
	require.Equal(t, "d-1", *placed.CourierID)

	w = doJSON(t, h, http.MethodPost, "/order/"+placed.ID+"/pickup", `{"courier_id":"d-1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/order/"+placed.ID+"/deliver", `{"courier_id":"d-1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/order/"+placed.ID, nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"DELIVERED"`)

	// delivered courier shows up in the leaderboard
	req = httptest.NewRequest(http.MethodGet, "/dashboard/top-couriers?by=completed", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"completed":1`)
}

func TestRouter_BaseRoutes(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodHead, "/healthcheck", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}
