package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
)

// ExportService handles stock export operations. An export's lines only
// count against ingredient stock while the document is Completed, so
// status transitions drive stock deltas alongside line edits.
type ExportService struct {
	txScope    TransactionScope
	exportRepo ledger.StockExportRepository
}

// NewExportService creates a new ExportService
func NewExportService(txScope TransactionScope, exportRepo ledger.StockExportRepository) *ExportService {
	return &ExportService{
		txScope:    txScope,
		exportRepo: exportRepo,
	}
}

// GetByID retrieves an export document with its lines
func (s *ExportService) GetByID(ctx context.Context, id uuid.UUID) (*ExportResponse, error) {
	exp, err := s.exportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExportResponse(exp)
	return &response, nil
}

// List retrieves export documents with filtering and pagination
func (s *ExportService) List(ctx context.Context, filter ExportListFilter) (*shared.Paginated[ExportResponse], error) {
	domainFilter := filter.toDomain()

	exports, err := s.exportRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.exportRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ExportResponse, 0, len(exports))
	for idx := range exports {
		items = append(items, ToExportResponse(&exports[idx]))
	}
	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Create records a goods issuance. Stock is only decremented when the
// document is created directly in Completed status; there is no
// sufficiency check at creation time.
func (s *ExportService) Create(ctx context.Context, req CreateExportRequest) (*ExportResponse, error) {
	status := ledger.ExportStatusDraft
	if req.Status != "" {
		parsed, ok := ledger.ParseExportStatus(req.Status)
		if !ok {
			return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown export status %q", req.Status))
		}
		status = parsed
	}

	exp, err := ledger.NewStockExport(req.ExportDate, req.Purpose, status)
	if err != nil {
		return nil, err
	}
	exp.MarkCreated(ctx)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requireIngredients(ctx, repos.Ingredients(), exportLineIngredients(req.Lines)); err != nil {
			return err
		}

		for _, line := range req.Lines {
			if _, err := exp.AddDetail(line.IngredientID, line.Quantity); err != nil {
				return err
			}
		}

		if err := repos.Exports().Save(ctx, exp); err != nil {
			return err
		}

		if exp.Status.AffectsStock() {
			deltas := ledger.PlanDocumentDelta(ledger.DirectionOutbound, exportLineStates(exp), true)
			return applyDeltas(ctx, repos.Ingredients(), deltas)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToExportResponse(exp)
	return &response, nil
}

// UpdateStatus moves an export to a new status and applies the stock
// effect of the transition. Entering Completed decrements every line's
// ingredient after a sufficiency check; leaving Completed restores every
// line in full.
func (s *ExportService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateExportStatusRequest) (*ExportResponse, error) {
	target, ok := ledger.ParseExportStatus(req.Status)
	if !ok {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown export status %q", req.Status))
	}

	var exp *ledger.StockExport
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		exp, err = repos.Exports().FindByID(ctx, id)
		if err != nil {
			return err
		}

		deltas, err := s.transition(ctx, repos.Ingredients(), exp, target)
		if err != nil {
			return err
		}

		exp.MarkUpdated(ctx)
		if err := repos.Exports().Save(ctx, exp); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Ingredients(), deltas)
	})
	if err != nil {
		return nil, err
	}

	response := ToExportResponse(exp)
	return &response, nil
}

// Update applies header changes, an optional status transition, and an
// optional set of line edits in one transaction. Transition effects are
// computed against the line set as it stood before this call; line
// edits then reconcile stock only if the resulting status is Completed.
func (s *ExportService) Update(ctx context.Context, id uuid.UUID, req UpdateExportRequest) (*ExportResponse, error) {
	var exp *ledger.StockExport

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		exp, err = repos.Exports().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.ExportDate != nil {
			if err := exp.SetExportDate(*req.ExportDate); err != nil {
				return err
			}
		}
		if req.Purpose != nil {
			exp.SetPurpose(*req.Purpose)
		}

		deltas := make([]ledger.StockDelta, 0)
		if req.Status != nil {
			target, ok := ledger.ParseExportStatus(*req.Status)
			if !ok {
				return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown export status %q", *req.Status))
			}
			transitionDeltas, err := s.transition(ctx, repos.Ingredients(), exp, target)
			if err != nil {
				return err
			}
			deltas = append(deltas, transitionDeltas...)
		}

		affectsStock := exp.Status.AffectsStock()

		if req.Lines != nil {
			if err := requireIngredients(ctx, repos.Ingredients(), exportLineIngredients(req.Lines)); err != nil {
				return err
			}

			for _, line := range req.Lines {
				edit := line.toLineEdit()
				if err := edit.Validate(); err != nil {
					return err
				}

				switch edit.Kind {
				case ledger.EditCreate:
					detail, err := exp.AddDetail(edit.IngredientID, edit.Quantity)
					if err != nil {
						return err
					}
					if affectsStock {
						state := detail.LineState()
						deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionOutbound, nil, &state)...)
					}

				case ledger.EditUpdate:
					detail := exp.GetDetail(edit.LineID)
					if detail == nil {
						return shared.NewDomainError("DETAIL_NOT_FOUND", "Export detail not found")
					}
					oldState := detail.LineState()
					if err := exp.ReviseDetail(edit.LineID, edit.IngredientID, edit.Quantity); err != nil {
						return err
					}
					if affectsStock {
						newState := exp.GetDetail(edit.LineID).LineState()
						deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionOutbound, &oldState, &newState)...)
					}

				case ledger.EditDelete:
					detail := exp.GetDetail(edit.LineID)
					if detail == nil {
						return shared.NewDomainError("DETAIL_NOT_FOUND", "Export detail not found")
					}
					oldState := detail.LineState()
					if err := exp.RemoveDetail(edit.LineID); err != nil {
						return err
					}
					if affectsStock {
						deltas = append(deltas, ledger.PlanLineDelta(ledger.DirectionOutbound, &oldState, nil)...)
					}
				}
			}
		}

		exp.MarkUpdated(ctx)
		if err := repos.Exports().Save(ctx, exp); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Ingredients(), deltas)
	})
	if err != nil {
		return nil, err
	}

	response := ToExportResponse(exp)
	return &response, nil
}

// Delete removes an export. A Completed export first gives back every
// line's quantity; other statuses never touched stock.
func (s *ExportService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exp, err := repos.Exports().FindByID(ctx, id)
		if err != nil {
			return err
		}

		var deltas []ledger.StockDelta
		if exp.Status.AffectsStock() {
			deltas = ledger.PlanDocumentDelta(ledger.DirectionOutbound, exportLineStates(exp), false)
		}

		if err := repos.Exports().Delete(ctx, exp.ID); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Ingredients(), deltas)
	})
}

// transition records the status change on the aggregate and returns the
// stock deltas it implies for the current line set. A target equal to
// the current status yields no change and no deltas.
func (s *ExportService) transition(ctx context.Context, repo ingredient.Repository, exp *ledger.StockExport, target ledger.ExportStatus) ([]ledger.StockDelta, error) {
	from := exp.Status
	if target == from {
		return nil, nil
	}

	if !from.AffectsStock() && target.AffectsStock() {
		if err := checkSufficiency(ctx, repo, exp.Details); err != nil {
			return nil, err
		}
	}

	if err := exp.ChangeStatus(target); err != nil {
		return nil, err
	}

	switch {
	case !from.AffectsStock() && target.AffectsStock():
		return ledger.PlanDocumentDelta(ledger.DirectionOutbound, exportLineStates(exp), true), nil
	case from.AffectsStock() && !target.AffectsStock():
		return ledger.PlanDocumentDelta(ledger.DirectionOutbound, exportLineStates(exp), false), nil
	default:
		return nil, nil
	}
}

// checkSufficiency verifies every line can be covered by its
// ingredient's current stock. The whole document fails on the first
// short line, before any decrement is applied.
func checkSufficiency(ctx context.Context, repo ingredient.Repository, details []ledger.StockExportDetail) error {
	if len(details) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(details))
	for idx := range details {
		ids = append(ids, details[idx].IngredientID)
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*ingredient.Ingredient, len(found))
	for idx := range found {
		byID[found[idx].ID] = &found[idx]
	}

	for idx := range details {
		ing, ok := byID[details[idx].IngredientID]
		if !ok {
			return shared.NewDomainError("INGREDIENT_NOT_FOUND", fmt.Sprintf("Ingredient %s does not exist", details[idx].IngredientID))
		}
		if !ing.CanFulfill(details[idx].Quantity) {
			return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf(
				"Insufficient stock for %s: required %s %s, available %s",
				ing.Name, details[idx].Quantity, ing.Unit, ing.CurrentStock))
		}
	}
	return nil
}

// exportLineStates extracts the stock-relevant state of every line
func exportLineStates(exp *ledger.StockExport) []ledger.LineState {
	states := make([]ledger.LineState, 0, len(exp.Details))
	for idx := range exp.Details {
		states = append(states, exp.Details[idx].LineState())
	}
	return states
}

// exportLineIngredients collects the ingredient IDs referenced by
// non-delete edits
func exportLineIngredients(lines []ExportLineRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if !line.Delete {
			ids = append(ids, line.IngredientID)
		}
	}
	return ids
}
