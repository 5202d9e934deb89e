package ledger

import (
	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Direction is the sign a document's lines apply to ingredient stock.
// Import lines add stock, export lines remove it.
type Direction int

const (
	DirectionInbound  Direction = 1
	DirectionOutbound Direction = -1
)

// sign returns the direction as a decimal multiplier
func (d Direction) sign() decimal.Decimal {
	return decimal.NewFromInt(int64(d))
}

// EditKind discriminates the three forms a line edit can take
type EditKind int

const (
	EditCreate EditKind = iota
	EditUpdate
	EditDelete
)

// LineEdit is one instruction in a document update: create a new line,
// revise an existing one, or delete it. LineID is required for update
// and delete, ignored for create. The payload fields carry the new line
// values and are ignored for delete.
type LineEdit struct {
	Kind            EditKind
	LineID          uuid.UUID
	IngredientID    uuid.UUID
	Quantity        decimal.Decimal
	OrderedQuantity decimal.Decimal
	UnitPrice       decimal.Decimal
}

// Validate checks the structural requirements of the edit
func (e LineEdit) Validate() error {
	switch e.Kind {
	case EditCreate:
		if e.IngredientID == uuid.Nil {
			return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
		}
	case EditUpdate:
		if e.LineID == uuid.Nil {
			return shared.NewDomainError("INVALID_LINE", "Line ID is required for an update")
		}
		if e.IngredientID == uuid.Nil {
			return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
		}
	case EditDelete:
		if e.LineID == uuid.Nil {
			return shared.NewDomainError("INVALID_LINE", "Line ID is required for a delete")
		}
	default:
		return shared.NewDomainError("INVALID_EDIT", "Unknown line edit kind")
	}
	return nil
}

// LineState is the stock-relevant portion of a document line: which
// ingredient it points at and how much of it the line moves.
type LineState struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// StockDelta is one pending adjustment to an ingredient's stock
type StockDelta struct {
	IngredientID uuid.UUID
	Delta        decimal.Decimal
}

// PlanLineDelta computes the stock adjustments needed to move a single
// line from its old committed state to its new state. Either state may
// be nil: old nil means the line is being created, new nil means it is
// being deleted.
//
// When both states reference the same ingredient, a single net delta is
// emitted, so growing a line from 10 to 15 moves stock by exactly 5.
// When the ingredient changes, the old quantity is fully reversed on
// the old ingredient and the new quantity applied to the new one.
func PlanLineDelta(dir Direction, oldState, newState *LineState) []StockDelta {
	sign := dir.sign()

	switch {
	case oldState == nil && newState == nil:
		return nil
	case oldState == nil:
		return []StockDelta{{IngredientID: newState.IngredientID, Delta: newState.Quantity.Mul(sign)}}
	case newState == nil:
		return []StockDelta{{IngredientID: oldState.IngredientID, Delta: oldState.Quantity.Neg().Mul(sign)}}
	case oldState.IngredientID == newState.IngredientID:
		net := newState.Quantity.Sub(oldState.Quantity)
		if net.IsZero() {
			return nil
		}
		return []StockDelta{{IngredientID: oldState.IngredientID, Delta: net.Mul(sign)}}
	default:
		return []StockDelta{
			{IngredientID: oldState.IngredientID, Delta: oldState.Quantity.Neg().Mul(sign)},
			{IngredientID: newState.IngredientID, Delta: newState.Quantity.Mul(sign)},
		}
	}
}

// PlanDocumentDelta computes the stock adjustments for applying or
// reversing a whole set of lines at once, as happens when an export
// enters or leaves Completed status or a document is deleted. apply
// true means the lines take effect, false means they are reversed.
func PlanDocumentDelta(dir Direction, lines []LineState, apply bool) []StockDelta {
	sign := dir.sign()
	if !apply {
		sign = sign.Neg()
	}

	deltas := make([]StockDelta, 0, len(lines))
	for _, line := range lines {
		deltas = append(deltas, StockDelta{IngredientID: line.IngredientID, Delta: line.Quantity.Mul(sign)})
	}
	return deltas
}
