package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
)

// LossService handles stock loss operations. A loss decrements its
// ingredient unconditionally on creation and the effect follows the row
// through updates and deletes. There is no sufficiency check, so stock
// may go negative.
type LossService struct {
	txScope  TransactionScope
	lossRepo ledger.StockLossRepository
}

// NewLossService creates a new LossService
func NewLossService(txScope TransactionScope, lossRepo ledger.StockLossRepository) *LossService {
	return &LossService{
		txScope:  txScope,
		lossRepo: lossRepo,
	}
}

// GetByID retrieves a loss record
func (s *LossService) GetByID(ctx context.Context, id uuid.UUID) (*LossResponse, error) {
	loss, err := s.lossRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLossResponse(loss)
	return &response, nil
}

// List retrieves loss records with filtering and pagination
func (s *LossService) List(ctx context.Context, filter LossListFilter) (*shared.Paginated[LossResponse], error) {
	domainFilter := filter.toDomain()

	losses, err := s.lossRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.lossRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]LossResponse, 0, len(losses))
	for idx := range losses {
		items = append(items, ToLossResponse(&losses[idx]))
	}
	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Create records shrinkage and decrements the ingredient's stock
func (s *LossService) Create(ctx context.Context, req CreateLossRequest) (*LossResponse, error) {
	loss, err := ledger.NewStockLoss(req.IngredientID, req.Quantity, req.Reason, req.LossDate, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	loss.MarkCreated(ctx)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requireIngredients(ctx, repos.Ingredients(), []uuid.UUID{req.IngredientID}); err != nil {
			return err
		}
		if err := repos.Losses().Save(ctx, loss); err != nil {
			return err
		}
		return repos.Ingredients().AdjustStock(ctx, loss.IngredientID, loss.Quantity.Neg())
	})
	if err != nil {
		return nil, err
	}

	response := ToLossResponse(loss)
	return &response, nil
}

// Update replaces the editable fields of a loss. The old quantity is
// given back to the old ingredient before the new quantity is taken
// from the new one, so changing the ingredient reference nets out
// correctly.
func (s *LossService) Update(ctx context.Context, id uuid.UUID, req UpdateLossRequest) (*LossResponse, error) {
	var loss *ledger.StockLoss

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		loss, err = repos.Losses().FindByID(ctx, id)
		if err != nil {
			return err
		}

		oldIngredient := loss.IngredientID
		oldQuantity := loss.Quantity

		newIngredient := oldIngredient
		if req.IngredientID != nil {
			newIngredient = *req.IngredientID
		}
		newQuantity := oldQuantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}
		newReason := loss.Reason
		if req.Reason != nil {
			newReason = *req.Reason
		}
		newDate := loss.LossDate
		if req.LossDate != nil {
			newDate = *req.LossDate
		}
		newEmployee := loss.EmployeeID
		if req.EmployeeID != nil {
			newEmployee = req.EmployeeID
		}

		if newIngredient != oldIngredient {
			if err := requireIngredients(ctx, repos.Ingredients(), []uuid.UUID{newIngredient}); err != nil {
				return err
			}
		}

		if err := repos.Ingredients().AdjustStock(ctx, oldIngredient, oldQuantity); err != nil {
			return err
		}

		if err := loss.Revise(newIngredient, newQuantity, newReason, newDate, newEmployee); err != nil {
			return err
		}
		loss.MarkUpdated(ctx)
		if err := repos.Losses().Save(ctx, loss); err != nil {
			return err
		}

		return repos.Ingredients().AdjustStock(ctx, loss.IngredientID, loss.Quantity.Neg())
	})
	if err != nil {
		return nil, err
	}

	response := ToLossResponse(loss)
	return &response, nil
}

// Delete removes a loss record and gives the quantity back
func (s *LossService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		loss, err := repos.Losses().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := repos.Losses().Delete(ctx, loss.ID); err != nil {
			return err
		}
		return repos.Ingredients().AdjustStock(ctx, loss.IngredientID, loss.Quantity)
	})
}
