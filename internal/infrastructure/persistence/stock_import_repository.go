package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockImportRepository implements ledger.StockImportRepository using GORM
type GormStockImportRepository struct {
	db *gorm.DB
}

// NewGormStockImportRepository creates a new GormStockImportRepository
func NewGormStockImportRepository(db *gorm.DB) *GormStockImportRepository {
	return &GormStockImportRepository{db: db}
}

// FindByID finds a stock import with its detail rows
func (r *GormStockImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockImport, error) {
	var imp ledger.StockImport
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&imp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &imp, nil
}

// FindAll finds stock imports with filtering and pagination
func (r *GormStockImportRepository) FindAll(ctx context.Context, filter ledger.ImportFilter) ([]ledger.StockImport, error) {
	var imports []ledger.StockImport
	query := applyListOptions(r.applyFilters(r.db.WithContext(ctx).Model(&ledger.StockImport{}), filter), filter.Filter, StockImportSortFields, "import_date")

	if err := query.Preload("Details").Find(&imports).Error; err != nil {
		return nil, err
	}
	return imports, nil
}

// Count counts stock imports matching the filter
func (r *GormStockImportRepository) Count(ctx context.Context, filter ledger.ImportFilter) (int64, error) {
	var count int64
	if err := r.applyFilters(r.db.WithContext(ctx).Model(&ledger.StockImport{}), filter).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the header and the current detail set. Detail rows
// removed from the aggregate are deleted from storage.
func (r *GormStockImportRepository) Save(ctx context.Context, imp *ledger.StockImport) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Omit("Details").Save(imp).Error; err != nil {
		return err
	}

	keepIDs := make([]uuid.UUID, len(imp.Details))
	for i := range imp.Details {
		keepIDs[i] = imp.Details[i].ID
	}

	if len(keepIDs) > 0 {
		if err := tx.Where("stock_import_id = ? AND id NOT IN ?", imp.ID, keepIDs).
			Delete(&ledger.StockImportDetail{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("stock_import_id = ?", imp.ID).
			Delete(&ledger.StockImportDetail{}).Error; err != nil {
			return err
		}
	}

	for i := range imp.Details {
		imp.Details[i].StockImportID = imp.ID
		if err := tx.Save(&imp.Details[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a stock import and its detail rows
func (r *GormStockImportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("stock_import_id = ?", id).
		Delete(&ledger.StockImportDetail{}).Error; err != nil {
		return err
	}

	result := tx.Delete(&ledger.StockImport{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilters maps the import filter onto the query
func (r *GormStockImportRepository) applyFilters(query *gorm.DB, filter ledger.ImportFilter) *gorm.DB {
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.DateFrom != nil {
		query = query.Where("import_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("import_date <= ?", *filter.DateTo)
	}
	if filter.IngredientID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&ledger.StockImportDetail{}).
				Select("stock_import_id").
				Where("ingredient_id = ?", *filter.IngredientID),
		)
	}
	return query
}

// Ensure GormStockImportRepository implements StockImportRepository
var _ ledger.StockImportRepository = (*GormStockImportRepository)(nil)
