package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockIngredientRepository is a mock implementation of ingredient.Repository
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIngredientRepository) Save(ctx context.Context, ing *ingredient.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

func (m *MockIngredientRepository) SaveWithLock(ctx context.Context, ing *ingredient.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIngredientRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockStockImportRepository is a mock implementation of ledger.StockImportRepository
type MockStockImportRepository struct {
	mock.Mock
}

func (m *MockStockImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockImport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.StockImport), args.Error(1)
}

func (m *MockStockImportRepository) FindAll(ctx context.Context, filter ledger.ImportFilter) ([]ledger.StockImport, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.StockImport), args.Error(1)
}

func (m *MockStockImportRepository) Count(ctx context.Context, filter ledger.ImportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockImportRepository) Save(ctx context.Context, imp *ledger.StockImport) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}

func (m *MockStockImportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockExportRepository is a mock implementation of ledger.StockExportRepository
type MockStockExportRepository struct {
	mock.Mock
}

func (m *MockStockExportRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockExport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.StockExport), args.Error(1)
}

func (m *MockStockExportRepository) FindAll(ctx context.Context, filter ledger.ExportFilter) ([]ledger.StockExport, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.StockExport), args.Error(1)
}

func (m *MockStockExportRepository) Count(ctx context.Context, filter ledger.ExportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockExportRepository) Save(ctx context.Context, exp *ledger.StockExport) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

func (m *MockStockExportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockLossRepository is a mock implementation of ledger.StockLossRepository
type MockStockLossRepository struct {
	mock.Mock
}

func (m *MockStockLossRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockLoss, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.StockLoss), args.Error(1)
}

func (m *MockStockLossRepository) FindAll(ctx context.Context, filter ledger.LossFilter) ([]ledger.StockLoss, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.StockLoss), args.Error(1)
}

func (m *MockStockLossRepository) Count(ctx context.Context, filter ledger.LossFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockLossRepository) Save(ctx context.Context, loss *ledger.StockLoss) error {
	args := m.Called(ctx, loss)
	return args.Error(0)
}

func (m *MockStockLossRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// deltaEquals matches a decimal argument by value rather than representation
func deltaEquals(expected int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(expected))
	})
}

// testScope bundles the mocks behind a NoOpTransactionScope
type testScope struct {
	ingredients *MockIngredientRepository
	imports     *MockStockImportRepository
	exports     *MockStockExportRepository
	losses      *MockStockLossRepository
	scope       *NoOpTransactionScope
}

func newTestScope() *testScope {
	s := &testScope{
		ingredients: new(MockIngredientRepository),
		imports:     new(MockStockImportRepository),
		exports:     new(MockStockExportRepository),
		losses:      new(MockStockLossRepository),
	}
	s.scope = NewNoOpTransactionScope(s.ingredients, s.imports, s.exports, s.losses)
	return s
}
