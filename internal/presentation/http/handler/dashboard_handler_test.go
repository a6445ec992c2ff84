package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/salescope/salescope-api/internal/application/service"
	"github.com/salescope/salescope-api/internal/domain/repository"
)

type stubAnalyticsRepo struct {
	totals repository.SalesTotals
	years  []int
}

func (r *stubAnalyticsRepo) GetSalesTotals(context.Context, *int) (repository.SalesTotals, error) {
	return r.totals, nil
}

func (r *stubAnalyticsRepo) GetMonthlyRevenue(context.Context, *int) ([]repository.MonthlyRevenueResult, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetTopProducts(context.Context, *int, int) ([]repository.RevenueByNameResult, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetTopCustomers(context.Context, *int, int) ([]repository.RevenueByNameResult, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetSaleYears(context.Context) ([]int, error) {
	return r.years, nil
}

func newDashboardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewDashboardService(&stubAnalyticsRepo{
		totals: repository.SalesTotals{RevenueCents: 5000, Count: 2},
		years:  []int{2024},
	})
	h := NewDashboardHandler(svc)

	router := gin.New()
	router.GET("/dashboard", h.GetStats)
	return router
}

func TestDashboardGetStats(t *testing.T) {
	router := newDashboardRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			TotalRevenue   float64 `json:"total_revenue"`
			SalesCount     int64   `json:"sales_count"`
			AvailableYears []int   `json:"available_years"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.InDelta(t, 50.0, body.Data.TotalRevenue, 0.001)
	assert.Equal(t, int64(2), body.Data.SalesCount)
	assert.Equal(t, []int{2024}, body.Data.AvailableYears)
}

func TestDashboardGetStatsWithYearFilter(t *testing.T) {
	router := newDashboardRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?year=2024", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardRejectsBadYear(t *testing.T) {
	router := newDashboardRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?year=twenty", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
