package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2p-delivery/internal/apperr"
	"p2p-delivery/internal/domain"
	"p2p-delivery/internal/logx"
)

type stubCourierUsecase struct {
	onboardFn func(ctx context.Context, name string) (domain.Courier, error)
	getFn     func(ctx context.Context, id string) (domain.Courier, error)
	listFn    func(ctx context.Context) ([]domain.Courier, error)
	rateFn    func(ctx context.Context, id string, score int) (domain.Courier, error)
}

func (s *stubCourierUsecase) Onboard(ctx context.Context, name string) (domain.Courier, error) {
	if s.onboardFn == nil {
		panic("Onboard not expected in this test")
	}
	return s.onboardFn(ctx, name)
}

func (s *stubCourierUsecase) Get(ctx context.Context, id string) (domain.Courier, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func (s *stubCourierUsecase) List(ctx context.Context) ([]domain.Courier, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx)
}

func (s *stubCourierUsecase) Rate(ctx context.Context, id string, score int) (domain.Courier, error) {
	if s.rateFn == nil {
		panic("Rate not expected in this test")
	}
	return s.rateFn(ctx, id, score)
}

func TestCourierHandler_Create_Created(t *testing.T) {
	t.Parallel()

	body := `{"name":"Ravi"}`
	req := httptest.NewRequest(http.MethodPost, "/courier", strings.NewReader(body))
	rr := httptest.NewRecorder()

	registered := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	uc := &stubCourierUsecase{
		onboardFn: func(ctx context.Context, name string) (domain.Courier, error) {
			require.Equal(t, "Ravi", name)
			return domain.Courier{
				ID:           "d-1",
				Name:         name,
				Status:       domain.CourierFree,
				RegisteredAt: registered,
			}, nil
		},
	}

	h := NewCourierHandler(logx.Nop(), uc)
	h.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/courier/d-1", rr.Header().Get("Location"))

	expectedJSON := `{
        "id": "d-1",
        "name": "Ravi",
        "status": "FREE",
        "registered_at": "2025-03-04T05:06:07Z",
        "completed": 0,
        "rating": 0
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestCourierHandler_Rate_NotRateable(t *testing.T) {
	t.Parallel()

	body := `{"score":6}`
	req := httptest.NewRequest(http.MethodPost, "/courier/d-1/rating", strings.NewReader(body))
	req = withURLParam(req, "id", "d-1")
	rr := httptest.NewRecorder()

	uc := &stubCourierUsecase{
		rateFn: func(ctx context.Context, id string, score int) (domain.Courier, error) {
			require.Equal(t, 6, score)
			return domain.Courier{}, apperr.ErrInvalidRating
		},
	}

	h := NewCourierHandler(logx.Nop(), uc)
	h.Rate(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "courier cannot be rated"}`, rr.Body.String())
}

func TestCourierHandler_List_OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/couriers", nil)
	rr := httptest.NewRecorder()

	uc := &stubCourierUsecase{
		listFn: func(ctx context.Context) ([]domain.Courier, error) {
			return []domain.Courier{
				{ID: "d-1", Name: "Ravi", Status: domain.CourierFree, RatingSum: 9, RatingCount: 2, Completed: 2},
			}, nil
		},
	}

	h := NewCourierHandler(logx.Nop(), uc)
	h.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"rating":4.5`)
}

type stubDashboardUsecase struct {
	topFn func(ctx context.Context, by string, limit int) ([]domain.Courier, error)
}

func (s *stubDashboardUsecase) TopCouriers(ctx context.Context, by string, limit int) ([]domain.Courier, error) {
	return s.topFn(ctx, by, limit)
}

func TestDashboardHandler_TopCouriers_PassesQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard/top-couriers?by=completed&limit=3", nil)
	rr := httptest.NewRecorder()

	uc := &stubDashboardUsecase{
		topFn: func(ctx context.Context, by string, limit int) ([]domain.Courier, error) {
			require.Equal(t, "completed", by)
			require.Equal(t, 3, limit)
			return nil, nil
		},
	}

	h := NewDashboardHandler(logx.Nop(), uc)
	h.TopCouriers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDashboardHandler_TopCouriers_BadSortKey(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard/top-couriers?by=height", nil)
	rr := httptest.NewRecorder()

	uc := &stubDashboardUsecase{
		topFn: func(ctx context.Context, by string, limit int) ([]domain.Courier, error) {
			return nil, apperr.ErrInvalid
		},
	}

	h := NewDashboardHandler(logx.Nop(), uc)
	h.TopCouriers(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid sort key"}`, rr.Body.String())
}
