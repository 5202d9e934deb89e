package ingredient

import (
	"context"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for the Ingredient aggregate.
//
// AdjustStock is the only way CurrentStock changes. Implementations MUST
// execute it as a single atomic in-database increment
// (UPDATE ... SET current_stock = current_stock + delta) so that
// concurrent ledger operations on the same ingredient never lose
// updates. Read-modify-write in application code is not an acceptable
// implementation.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Ingredient, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Ingredient, error)
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]Ingredient, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, ing *Ingredient) error
	SaveWithLock(ctx context.Context, ing *Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock atomically adds delta (which may be negative) to the
	// ingredient's current_stock. Returns shared.ErrNotFound when no row
	// matches.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

// CategoryRepository defines persistence operations for ingredient categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
