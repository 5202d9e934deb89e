package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/restoerp/backend/internal/application/ledger"
	"github.com/restoerp/backend/internal/interfaces/http/middleware"
)

// StockImportHandler handles stock import API endpoints
type StockImportHandler struct {
	BaseHandler
	service *ledgerapp.ImportService
}

// NewStockImportHandler creates a new StockImportHandler
func NewStockImportHandler(service *ledgerapp.ImportService) *StockImportHandler {
	return &StockImportHandler{service: service}
}

// RegisterRoutes registers stock import routes
func (h *StockImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/stock-imports")
	{
		imports.POST("", h.Create)
		imports.GET("", h.List)
		imports.GET("/:id", h.GetByID)
		imports.PUT("/:id", h.Update)
		imports.DELETE("/:id", h.Delete)
	}
}

// Create records a goods receipt and increases ingredient stock
func (h *StockImportHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	imp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, imp)
}

// List lists import documents with filtering and pagination
func (h *StockImportHandler) List(c *gin.Context) {
	var filter ledgerapp.ImportListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID retrieves an import document by ID
func (h *StockImportHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid import ID format")
		return
	}

	imp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, imp)
}

// Update revises an import document, reconciling stock with the line changes
func (h *StockImportHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid import ID format")
		return
	}

	var req ledgerapp.UpdateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	imp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, imp)
}

// Delete removes an import document and rolls its stock effect back
func (h *StockImportHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid import ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
