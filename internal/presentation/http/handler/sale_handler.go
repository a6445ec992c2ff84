package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/application/service"
	"github.com/salescope/salescope-api/internal/presentation/http/dto/response"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService   *service.SaleService
	importService *service.ImportService
	uploadMaxSize int64
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, importService *service.ImportService, uploadMaxSize int64) *SaleHandler {
	return &SaleHandler{
		saleService:   saleService,
		importService: importService,
		uploadMaxSize: uploadMaxSize,
	}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID uuid.UUID `json:"customer_id" binding:"required"`
		ProductID  uuid.UUID `json:"product_id" binding:"required"`
		Quantity   int       `json:"quantity" binding:"required"`
		UnitPrice  *float64  `json:"unit_price"`
		SoldAt     time.Time `json:"sold_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		SoldAt:     req.SoldAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Update handles updating a sale. The client sends back the updated_at it
// last read; a stale value yields 409.
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req struct {
		UpdatedAt  time.Time  `json:"updated_at" binding:"required"`
		CustomerID *uuid.UUID `json:"customer_id"`
		ProductID  *uuid.UUID `json:"product_id"`
		Quantity   *int       `json:"quantity"`
		SoldAt     *time.Time `json:"sold_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), &service.UpdateSaleInput{
		ID:                id,
		ExpectedUpdatedAt: req.UpdatedAt,
		CustomerID:        req.CustomerID,
		ProductID:         req.ProductID,
		Quantity:          req.Quantity,
		SoldAt:            req.SoldAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Delete handles deleting a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Import handles bulk CSV upload of sales
func (h *SaleHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "CSV file is required (multipart field 'file')")
		return
	}
	if h.uploadMaxSize > 0 && fileHeader.Size > h.uploadMaxSize {
		response.BadRequest(c, "Uploaded file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	summary, err := h.importService.ImportSales(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", summary)
}
