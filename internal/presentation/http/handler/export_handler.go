package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salescope/salescope-api/internal/application/service"
	"github.com/salescope/salescope-api/internal/presentation/http/dto/response"
)

// ExportHandler handles sale export downloads
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV handles downloading sales as a CSV file, optionally filtered by year
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportCSV(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := service.ExportFilename(year) + ".csv"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportXLSX handles downloading sales as an Excel workbook, optionally filtered by year
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportXLSX(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := service.ExportFilename(year) + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
