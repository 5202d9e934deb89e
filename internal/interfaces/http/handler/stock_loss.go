package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/restoerp/backend/internal/application/ledger"
	"github.com/restoerp/backend/internal/interfaces/http/middleware"
)

// StockLossHandler handles stock loss API endpoints
type StockLossHandler struct {
	BaseHandler
	service *ledgerapp.LossService
}

// NewStockLossHandler creates a new StockLossHandler
func NewStockLossHandler(service *ledgerapp.LossService) *StockLossHandler {
	return &StockLossHandler{service: service}
}

// RegisterRoutes registers stock loss routes
func (h *StockLossHandler) RegisterRoutes(rg *gin.RouterGroup) {
	losses := rg.Group("/stock-losses")
	{
		losses.POST("", h.Create)
		losses.GET("", h.List)
		losses.GET("/:id", h.GetByID)
		losses.PUT("/:id", h.Update)
		losses.DELETE("/:id", h.Delete)
	}
}

// Create records a loss and decreases ingredient stock immediately
func (h *StockLossHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateLossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	loss, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, loss)
}

// List lists loss records with filtering and pagination
func (h *StockLossHandler) List(c *gin.Context) {
	var filter ledgerapp.LossListFilter
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

// GetByID retrieves a loss record by ID
func (h *StockLossHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid loss ID format")
		return
	}

	loss, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loss)
}

// Update revises a loss record, returning the old quantity before the
// new one is deducted
func (h *StockLossHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid loss ID format")
		return
	}

	var req ledgerapp.UpdateLossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	loss, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loss)
}

// Delete removes a loss record and returns its quantity to stock
func (h *StockLossHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid loss ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
