package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/restoerp/backend/internal/application/ledger"
	"github.com/restoerp/backend/internal/interfaces/http/middleware"
)

// StockExportHandler handles stock export API endpoints
type StockExportHandler struct {
	BaseHandler
	service *ledgerapp.ExportService
}

// NewStockExportHandler creates a new StockExportHandler
func NewStockExportHandler(service *ledgerapp.ExportService) *StockExportHandler {
	return &StockExportHandler{service: service}
}

// RegisterRoutes registers stock export routes
func (h *StockExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/stock-exports")
	{
		exports.POST("", h.Create)
		exports.GET("", h.List)
		exports.GET("/:id", h.GetByID)
		exports.PUT("/:id", h.Update)
		exports.PATCH("/:id/status", h.UpdateStatus)
		exports.DELETE("/:id", h.Delete)
	}
}

// Create records a goods issuance. Stock only moves if the document is
// created in completed status.
func (h *StockExportHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	exp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, exp)
}

// List lists export documents with filtering and pagination
func (h *StockExportHandler) List(c *gin.Context) {
	var filter ledgerapp.ExportListFilter
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

// GetByID retrieves an export document by ID
func (h *StockExportHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	exp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exp)
}

// Update revises an export document. A status change in the payload is
// applied before the line edits are reconciled.
func (h *StockExportHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	var req ledgerapp.UpdateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	exp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exp)
}

// UpdateStatus transitions the export document to a new status
func (h *StockExportHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	var req ledgerapp.UpdateExportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	exp, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exp)
}

// Delete removes an export document, returning stock if it was completed
func (h *StockExportHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
