package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
)

// ImportFilter narrows stock import queries
type ImportFilter struct {
	shared.Filter
	SupplierID   *uuid.UUID
	IngredientID *uuid.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
}

// ExportFilter narrows stock export queries
type ExportFilter struct {
	shared.Filter
	Status       *ExportStatus
	IngredientID *uuid.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
}

// LossFilter narrows stock loss queries
type LossFilter struct {
	shared.Filter
	IngredientID *uuid.UUID
	EmployeeID   *uuid.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
}

// StockImportRepository defines persistence operations for stock imports.
// FindByID loads the document with its detail rows. Save persists the
// header and the current detail set; detail rows removed from the
// aggregate are deleted.
type StockImportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockImport, error)
	FindAll(ctx context.Context, filter ImportFilter) ([]StockImport, error)
	Count(ctx context.Context, filter ImportFilter) (int64, error)
	Save(ctx context.Context, imp *StockImport) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockExportRepository defines persistence operations for stock exports
type StockExportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockExport, error)
	FindAll(ctx context.Context, filter ExportFilter) ([]StockExport, error)
	Count(ctx context.Context, filter ExportFilter) (int64, error)
	Save(ctx context.Context, exp *StockExport) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockLossRepository defines persistence operations for stock losses
type StockLossRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockLoss, error)
	FindAll(ctx context.Context, filter LossFilter) ([]StockLoss, error)
	Count(ctx context.Context, filter LossFilter) (int64, error)
	Save(ctx context.Context, loss *StockLoss) error
	Delete(ctx context.Context, id uuid.UUID) error
}
