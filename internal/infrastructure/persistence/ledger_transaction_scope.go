package persistence

import (
	"context"

	appledger "github.com/restoerp/backend/internal/application/ledger"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Ingredients returns the ingredient repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Ingredients() ingredient.Repository {
	return NewGormIngredientRepository(r.tx)
}

// Imports returns the stock import repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Imports() ledger.StockImportRepository {
	return NewGormStockImportRepository(r.tx)
}

// Exports returns the stock export repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Exports() ledger.StockExportRepository {
	return NewGormStockExportRepository(r.tx)
}

// Losses returns the stock loss repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Losses() ledger.StockLossRepository {
	return NewGormStockLossRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appledger.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
