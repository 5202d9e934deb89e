package handler

import (
	"github.com/gin-gonic/gin"
	ingredientapp "github.com/restoerp/backend/internal/application/ingredient"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/restoerp/backend/internal/interfaces/http/middleware"
)

// IngredientHandler handles ingredient and category API endpoints
type IngredientHandler struct {
	BaseHandler
	service *ingredientapp.Service
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(service *ingredientapp.Service) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// RegisterRoutes registers ingredient and category routes
func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/ingredient-categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	ingredients := rg.Group("/ingredients")
	{
		ingredients.POST("", h.Create)
		ingredients.GET("", h.List)
		ingredients.GET("/:id", h.GetByID)
		ingredients.PUT("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
	}
}

// categoryListQuery holds pagination parameters for the category list
type categoryListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// CreateCategory creates a new ingredient category
func (h *IngredientHandler) CreateCategory(c *gin.Context) {
	var req ingredientapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListCategories lists ingredient categories with pagination
func (h *IngredientHandler) ListCategories(c *gin.Context) {
	var query categoryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.OrderBy != "" {
		filter.OrderBy = query.OrderBy
	}
	if query.OrderDir != "" {
		filter.OrderDir = query.OrderDir
	}
	filter.Search = query.Search

	result, err := h.service.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetCategory retrieves a category by ID
func (h *IngredientHandler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// UpdateCategory renames or activates a category
func (h *IngredientHandler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req ingredientapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// DeleteCategory deletes a category
func (h *IngredientHandler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Create creates a new ingredient
func (h *IngredientHandler) Create(c *gin.Context) {
	var req ingredientapp.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ing, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ing)
}

// List lists ingredients with filtering and pagination
func (h *IngredientHandler) List(c *gin.Context) {
	var filter ingredientapp.IngredientListFilter
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

// GetByID retrieves an ingredient by ID
func (h *IngredientHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	ing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ing)
}

// Update applies a partial update to an ingredient
func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	var req ingredientapp.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ing, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ing)
}

// Delete deletes an ingredient
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
