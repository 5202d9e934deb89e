package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormIngredientRepository implements ingredient.Repository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID finds an ingredient by its ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	var ing ingredient.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}

// FindByIDs finds multiple ingredients by their IDs
func (r *GormIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ingredient.Ingredient, error) {
	if len(ids) == 0 {
		return []ingredient.Ingredient{}, nil
	}

	var ingredients []ingredient.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindAll finds ingredients with filtering and pagination
func (r *GormIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingredient.Ingredient, error) {
	var ingredients []ingredient.Ingredient
	query := r.applyFilters(r.db.WithContext(ctx).Model(&ingredient.Ingredient{}), filter)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyListOptions(query, filter, IngredientSortFields, "created_at")

	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindBelowMinimum finds ingredients whose stock is under their minimum threshold
func (r *GormIngredientRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]ingredient.Ingredient, error) {
	var ingredients []ingredient.Ingredient
	query := applyListOptions(
		r.applyFilters(
			r.db.WithContext(ctx).Model(&ingredient.Ingredient{}).
				Where("min_stock > 0 AND current_stock < min_stock"),
			filter,
		),
		filter, IngredientSortFields, "created_at",
	)

	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Count counts ingredients matching the filter
func (r *GormIngredientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&ingredient.Ingredient{}), filter)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ing *ingredient.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

// SaveWithLock saves catalog fields with optimistic locking. CurrentStock
// is deliberately excluded from the update set; it only moves through
// AdjustStock.
func (r *GormIngredientRepository) SaveWithLock(ctx context.Context, ing *ingredient.Ingredient) error {
	result := r.db.WithContext(ctx).
		Model(ing).
		Where("id = ? AND version = ?", ing.ID, ing.Version-1).
		Updates(map[string]interface{}{
			"category_id": ing.CategoryID,
			"name":        ing.Name,
			"unit":        ing.Unit,
			"min_stock":   ing.MinStock,
			"max_stock":   ing.MaxStock,
			"is_active":   ing.IsActive,
			"updated_by":  ing.UpdatedBy,
			"version":     ing.Version,
			"updated_at":  ing.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes an ingredient
func (r *GormIngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ingredient.Ingredient{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustStock applies a stock delta as a single atomic in-database
// increment, so concurrent ledger operations on the same ingredient
// cannot lose updates.
func (r *GormIngredientRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&ingredient.Ingredient{}).
		Where("id = ?", id).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", delta))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilters maps the generic filter keys onto ingredient columns
func (r *GormIngredientRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

// GormCategoryRepository implements ingredient.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Category, error) {
	var category ingredient.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds categories with pagination
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingredient.Category, error) {
	var categories []ingredient.Category
	query := r.db.WithContext(ctx).Model(&ingredient.Category{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyListOptions(query, filter, CategorySortFields, "created_at")

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ingredient.Category{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *ingredient.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ingredient.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyListOptions applies pagination and validated ordering to a query
func applyListOptions(query *gorm.DB, filter shared.Filter, allowedSort map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedSort, defaultOrder)
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure the repositories implement their domain interfaces
var _ ingredient.Repository = (*GormIngredientRepository)(nil)
var _ ingredient.CategoryRepository = (*GormCategoryRepository)(nil)
