package ingredient

import (
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create an ingredient category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IsActive *bool  `json:"is_active"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category aggregate to its response form
func ToCategoryResponse(c *ingredient.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateIngredientRequest represents a request to create an ingredient
type CreateIngredientRequest struct {
	CategoryID uuid.UUID       `json:"category_id" binding:"required"`
	Name       string          `json:"name" binding:"required,max=200"`
	Unit       string          `json:"unit" binding:"required,max=20"`
	MinStock   decimal.Decimal `json:"min_stock"`
	MaxStock   decimal.Decimal `json:"max_stock"`
}

// UpdateIngredientRequest represents a partial update of an ingredient.
// Stock cannot be set here; it only moves through ledger operations.
type UpdateIngredientRequest struct {
	CategoryID *uuid.UUID       `json:"category_id"`
	Name       *string          `json:"name" binding:"omitempty,max=200"`
	Unit       *string          `json:"unit" binding:"omitempty,max=20"`
	MinStock   *decimal.Decimal `json:"min_stock"`
	MaxStock   *decimal.Decimal `json:"max_stock"`
	IsActive   *bool            `json:"is_active"`
}

// IngredientListFilter represents filter options for the ingredient list
type IngredientListFilter struct {
	Search       string     `form:"search"`
	CategoryID   *uuid.UUID `form:"category_id"`
	BelowMinimum *bool      `form:"below_minimum"`
	IsActive     *bool      `form:"is_active"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f IngredientListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.CategoryID != nil {
		filter.Filters["category_id"] = *f.CategoryID
	}
	if f.IsActive != nil {
		filter.Filters["is_active"] = *f.IsActive
	}
	return filter
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID             uuid.UUID       `json:"id"`
	CategoryID     uuid.UUID       `json:"category_id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinStock       decimal.Decimal `json:"min_stock"`
	MaxStock       decimal.Decimal `json:"max_stock"`
	IsActive       bool            `json:"is_active"`
	IsBelowMinimum bool            `json:"is_below_minimum"`
	IsAboveMaximum bool            `json:"is_above_maximum"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToIngredientResponse converts an ingredient aggregate to its response form
func ToIngredientResponse(ing *ingredient.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:             ing.ID,
		CategoryID:     ing.CategoryID,
		Name:           ing.Name,
		Unit:           ing.Unit,
		CurrentStock:   ing.CurrentStock,
		MinStock:       ing.MinStock,
		MaxStock:       ing.MaxStock,
		IsActive:       ing.IsActive,
		IsBelowMinimum: ing.IsBelowMinimum(),
		IsAboveMaximum: ing.IsAboveMaximum(),
		CreatedAt:      ing.CreatedAt,
		UpdatedAt:      ing.UpdatedAt,
		Version:        ing.GetVersion(),
	}
}
