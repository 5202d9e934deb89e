package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockLossRepository implements ledger.StockLossRepository using GORM
type GormStockLossRepository struct {
	db *gorm.DB
}

// NewGormStockLossRepository creates a new GormStockLossRepository
func NewGormStockLossRepository(db *gorm.DB) *GormStockLossRepository {
	return &GormStockLossRepository{db: db}
}

// FindByID finds a stock loss by its ID
func (r *GormStockLossRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockLoss, error) {
	var loss ledger.StockLoss
	if err := r.db.WithContext(ctx).First(&loss, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loss, nil
}

// FindAll finds stock losses with filtering and pagination
func (r *GormStockLossRepository) FindAll(ctx context.Context, filter ledger.LossFilter) ([]ledger.StockLoss, error) {
	var losses []ledger.StockLoss
	query := applyListOptions(r.applyFilters(r.db.WithContext(ctx).Model(&ledger.StockLoss{}), filter), filter.Filter, StockLossSortFields, "loss_date")

	if err := query.Find(&losses).Error; err != nil {
		return nil, err
	}
	return losses, nil
}

// Count counts stock losses matching the filter
func (r *GormStockLossRepository) Count(ctx context.Context, filter ledger.LossFilter) (int64, error) {
	var count int64
	if err := r.applyFilters(r.db.WithContext(ctx).Model(&ledger.StockLoss{}), filter).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock loss
func (r *GormStockLossRepository) Save(ctx context.Context, loss *ledger.StockLoss) error {
	return r.db.WithContext(ctx).Save(loss).Error
}

// Delete deletes a stock loss
func (r *GormStockLossRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.StockLoss{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilters maps the loss filter onto the query
func (r *GormStockLossRepository) applyFilters(query *gorm.DB, filter ledger.LossFilter) *gorm.DB {
	if filter.IngredientID != nil {
		query = query.Where("ingredient_id = ?", *filter.IngredientID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		query = query.Where("loss_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("loss_date <= ?", *filter.DateTo)
	}
	return query
}

// Ensure GormStockLossRepository implements StockLossRepository
var _ ledger.StockLossRepository = (*GormStockLossRepository)(nil)
