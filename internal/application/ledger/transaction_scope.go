package ledger

import (
	"context"

	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// Every ledger mutation runs inside exactly one Execute call so document
// rows and ingredient stock adjustments commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Ingredients returns the ingredient repository scoped to the current transaction
	Ingredients() ingredient.Repository
	// Imports returns the stock import repository scoped to the current transaction
	Imports() ledger.StockImportRepository
	// Exports returns the stock export repository scoped to the current transaction
	Exports() ledger.StockExportRepository
	// Losses returns the stock loss repository scoped to the current transaction
	Losses() ledger.StockLossRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support
// is not required.
type NoOpTransactionScope struct {
	ingredientRepo ingredient.Repository
	importRepo     ledger.StockImportRepository
	exportRepo     ledger.StockExportRepository
	lossRepo       ledger.StockLossRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	ingredientRepo ingredient.Repository,
	importRepo ledger.StockImportRepository,
	exportRepo ledger.StockExportRepository,
	lossRepo ledger.StockLossRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ingredientRepo: ingredientRepo,
		importRepo:     importRepo,
		exportRepo:     exportRepo,
		lossRepo:       lossRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ingredients returns the ingredient repository.
func (s *NoOpTransactionScope) Ingredients() ingredient.Repository {
	return s.ingredientRepo
}

// Imports returns the stock import repository.
func (s *NoOpTransactionScope) Imports() ledger.StockImportRepository {
	return s.importRepo
}

// Exports returns the stock export repository.
func (s *NoOpTransactionScope) Exports() ledger.StockExportRepository {
	return s.exportRepo
}

// Losses returns the stock loss repository.
func (s *NoOpTransactionScope) Losses() ledger.StockLossRepository {
	return s.lossRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
