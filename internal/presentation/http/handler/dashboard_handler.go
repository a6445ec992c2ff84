package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/salescope/salescope-api/internal/application/service"
	"github.com/salescope/salescope-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics, optionally filtered by year
func (h *DashboardHandler) GetStats(c *gin.Context) {
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved successfully", stats)
}

// parseYearQuery reads the optional ?year= filter. On a malformed value it
// writes a 400 response and returns ok=false.
func parseYearQuery(c *gin.Context) (*int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return nil, true
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "Invalid year filter")
		return nil, false
	}
	return &year, true
}
