package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
)

// ImportService handles stock import operations. Every mutation runs in
// one transaction that writes the document rows and adjusts ingredient
// stock together.
type ImportService struct {
	txScope    TransactionScope
	importRepo ledger.StockImportRepository
}

// NewImportService creates a new ImportService
func NewImportService(txScope TransactionScope, importRepo ledger.StockImportRepository) *ImportService {
	return &ImportService{
		txScope:    txScope,
		importRepo: importRepo,
	}
}

// GetByID retrieves an import document with its lines
func (s *ImportService) GetByID(ctx context.Context, id uuid.UUID) (*ImportResponse, error) {
	imp, err := s.importRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToImportResponse(imp)
	return &response, nil
}

// List retrieves import documents with filtering and pagination
func (s *ImportService) List(ctx context.Context, filter ImportListFilter) (*shared.Paginated[ImportResponse], error) {
	domainFilter := filter.toDomain()

	imports, err := s.importRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.importRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ImportResponse, 0, len(imports))
	for idx := range imports {
		items = append(items, ToImportResponse(&imports[idx]))
	}
	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Create records a goods receipt. Each line increases its ingredient's
// stock by the received quantity; a line referencing a missing
// ingredient fails the whole request.
func (s *ImportService) Create(ctx context.Context, req CreateImportRequest) (*ImportResponse, error) {
	imp, err := ledger.NewStockImport(req.ImportDate, req.SupplierID)
	if err != nil {
		return nil, err
	}
	imp.SetRemark(req.Remark)
	imp.MarkCreated(ctx)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requireIngredients(ctx, repos.Ingredients(), importLineIngredients(req.Lines)); err != nil {
			return err
		}

		deltas := make([]ledger.StockDelta, 0, len(req.Lines))
		for _, line := range req.Lines {
			detail, err := imp.AddDetail(line.IngredientID, line.OrderedQuantity, line.ReceivedQuantity, line.UnitPrice)
			if err != nil {
				return err
			}
			state := detail.LineState()
			deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionInbound, nil, &state)...)
		}

		if err := repos.Imports().Save(ctx, imp); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Ingredients(), deltas)
	})
	if err != nil {
		return nil, err
	}

	response := ToImportResponse(imp)
	return &response, nil
}

// Update applies header changes and an optional set of line edits.
// Lines not mentioned in the request keep their previous stock effect.
func (s *ImportService) Update(ctx context.Context, id uuid.UUID, req UpdateImportRequest) (*ImportResponse, error) {
	var imp *ledger.StockImport

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		imp, err = repos.Imports().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.ImportDate != nil {
			if err := imp.SetImportDate(*req.ImportDate); err != nil {
				return err
			}
		}
		if req.SupplierID != nil {
			if err := imp.SetSupplier(req.SupplierID); err != nil {
				return err
			}
		}
		if req.Remark != nil {
			imp.SetRemark(*req.Remark)
		}

		deltas := make([]ledger.StockDelta, 0, len(req.Lines))
		if req.Lines != nil {
			if err := requireIngredients(ctx, repos.Ingredients(), importLineIngredients(req.Lines)); err != nil {
				return err
			}

			for _, line := range req.Lines {
				edit := line.toLineEdit()
				if err := edit.Validate(); err != nil {
					return err
				}

				switch edit.Kind {
				case ledger.EditCreate:
					detail, err := imp.AddDetail(edit.IngredientID, edit.OrderedQuantity, edit.Quantity, edit.UnitPrice)
					if err != nil {
						return err
					}
					state := detail.LineState()
					deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionInbound, nil, &state)...)

				case ledger.EditUpdate:
					detail := imp.GetDetail(edit.LineID)
					if detail == nil {
						return shared.NewDomainError("DETAIL_NOT_FOUND", "Import detail not found")
					}
					oldState := detail.LineState()
					if err := imp.ReviseDetail(edit.LineID, edit.IngredientID, edit.OrderedQuantity, edit.Quantity, edit.UnitPrice); err != nil {
						return err
					}
					newState := imp.GetDetail(edit.LineID).LineState()
					deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionInbound, &oldState, &newState)...)

				case ledger.EditDelete:
					detail := imp.GetDetail(edit.LineID)
					if detail == nil {
						return shared.NewDomainError("DETAIL_NOT_FOUND", "Import detail not found")
					}
					oldState := detail.LineState()
					if err := imp.RemoveDetail(edit.LineID); err != nil {
						return err
					}
					deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionInbound, &oldState, nil)...)
				}
			}
		}

		imp.MarkUpdated(ctx)
		if err := repos.Imports().Save(ctx, imp); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Ingredients(), deltas)
	})
	if err != nil {
		return nil, err
	}

	response := ToImportResponse(imp)
	return &response, nil
}

// Delete removes an import and rolls back the stock effect of every
// remaining line.
func (s *ImportService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		imp, err := repos.Imports().FindByID(ctx, id)
		if err != nil {
			return err
		}

		deltas := ledger.PlanDocumentDelta(ledger.DirectionInbound, importLineStates(imp), false)

		if err := repos.Imports().Delete(ctx, imp.ID); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Ingredients(), deltas)
	})
}

// importLineStates extracts the stock-relevant state of every line
func importLineStates(imp *ledger.StockImport) []ledger.LineState {
	states := make([]ledger.LineState, 0, len(imp.Details))
	for idx := range imp.Details {
		states = append(states, imp.Details[idx].LineState())
	}
	return states
}

// importLineIngredients collects the ingredient IDs referenced by
// non-delete edits
func importLineIngredients(lines []ImportLineRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if !line.Delete {
			ids = append(ids, line.IngredientID)
		}
	}
	return ids
}

// requireIngredients verifies every referenced ingredient exists before
// any mutation is attempted
func requireIngredients(ctx context.Context, repo ingredient.Repository, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	found, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return err
	}
	existing := make(map[uuid.UUID]struct{}, len(found))
	for idx := range found {
		existing[found[idx].ID] = struct{}{}
	}
	for _, id := range unique {
		if _, ok := existing[id]; !ok {
			return shared.NewDomainError("INGREDIENT_NOT_FOUND", fmt.Sprintf("Ingredient %s does not exist", id))
		}
	}
	return nil
}

// applyDeltas pushes the planned stock adjustments through the atomic
// increment path
func applyDeltas(ctx context.Context, repo ingredient.Repository, deltas []ledger.StockDelta) error {
	for _, delta := range deltas {
		if delta.Delta.IsZero() {
			continue
		}
		if err := repo.AdjustStock(ctx, delta.IngredientID, delta.Delta); err != nil {
			return err
		}
	}
	return nil
}
