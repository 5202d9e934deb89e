package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockExportRepository implements ledger.StockExportRepository using GORM
type GormStockExportRepository struct {
	db *gorm.DB
}

// NewGormStockExportRepository creates a new GormStockExportRepository
func NewGormStockExportRepository(db *gorm.DB) *GormStockExportRepository {
	return &GormStockExportRepository{db: db}
}

// FindByID finds a stock export with its detail rows
func (r *GormStockExportRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockExport, error) {
	var exp ledger.StockExport
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&exp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// FindAll finds stock exports with filtering and pagination
func (r *GormStockExportRepository) FindAll(ctx context.Context, filter ledger.ExportFilter) ([]ledger.StockExport, error) {
	var exports []ledger.StockExport
	query := applyListOptions(r.applyFilters(r.db.WithContext(ctx).Model(&ledger.StockExport{}), filter), filter.Filter, StockExportSortFields, "export_date")

	if err := query.Preload("Details").Find(&exports).Error; err != nil {
		return nil, err
	}
	return exports, nil
}

// Count counts stock exports matching the filter
func (r *GormStockExportRepository) Count(ctx context.Context, filter ledger.ExportFilter) (int64, error) {
	var count int64
	if err := r.applyFilters(r.db.WithContext(ctx).Model(&ledger.StockExport{}), filter).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the header and the current detail set. Detail rows
// removed from the aggregate are deleted from storage.
func (r *GormStockExportRepository) Save(ctx context.Context, exp *ledger.StockExport) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Omit("Details").Save(exp).Error; err != nil {
		return err
	}

	keepIDs := make([]uuid.UUID, len(exp.Details))
	for i := range exp.Details {
		keepIDs[i] = exp.Details[i].ID
	}

	if len(keepIDs) > 0 {
		if err := tx.Where("stock_export_id = ? AND id NOT IN ?", exp.ID, keepIDs).
			Delete(&ledger.StockExportDetail{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("stock_export_id = ?", exp.ID).
			Delete(&ledger.StockExportDetail{}).Error; err != nil {
			return err
		}
	}

	for i := range exp.Details {
		exp.Details[i].StockExportID = exp.ID
		if err := tx.Save(&exp.Details[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a stock export and its detail rows
func (r *GormStockExportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("stock_export_id = ?", id).
		Delete(&ledger.StockExportDetail{}).Error; err != nil {
		return err
	}

	result := tx.Delete(&ledger.StockExport{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilters maps the export filter onto the query
func (r *GormStockExportRepository) applyFilters(query *gorm.DB, filter ledger.ExportFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("export_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("export_date <= ?", *filter.DateTo)
	}
	if filter.IngredientID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&ledger.StockExportDetail{}).
				Select("stock_export_id").
				Where("ingredient_id = ?", *filter.IngredientID),
		)
	}
	return query
}

// Ensure GormStockExportRepository implements StockExportRepository
var _ ledger.StockExportRepository = (*GormStockExportRepository)(nil)
