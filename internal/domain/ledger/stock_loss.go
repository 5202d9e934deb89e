package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLoss records shrinkage or waste of a single ingredient.
// A loss row always affects stock for as long as it exists; there is no
// sufficiency check, so stock may go negative.
type StockLoss struct {
	shared.AuditedAggregateRoot
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason       string          `gorm:"type:varchar(500)"`
	LossDate     time.Time       `gorm:"not null;index"`
	EmployeeID   *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StockLoss) TableName() string {
	return "stock_losses"
}

// NewStockLoss creates a loss record
func NewStockLoss(ingredientID uuid.UUID, quantity decimal.Decimal, reason string, lossDate time.Time, employeeID *uuid.UUID) (*StockLoss, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if lossDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Loss date cannot be empty")
	}
	if employeeID != nil && *employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}

	return &StockLoss{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		IngredientID:         ingredientID,
		Quantity:             quantity,
		Reason:               reason,
		LossDate:             lossDate,
		EmployeeID:           employeeID,
	}, nil
}

// Revise replaces the loss values. The caller must reverse the old
// quantity against the old ingredient before applying the new one.
func (l *StockLoss) Revise(ingredientID uuid.UUID, quantity decimal.Decimal, reason string, lossDate time.Time, employeeID *uuid.UUID) error {
	if ingredientID == uuid.Nil {
		return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if lossDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Loss date cannot be empty")
	}
	if employeeID != nil && *employeeID == uuid.Nil {
		return shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}

	l.IngredientID = ingredientID
	l.Quantity = quantity
	l.Reason = reason
	l.LossDate = lossDate
	l.EmployeeID = employeeID
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// LineState returns the stock-relevant portion of the loss
func (l *StockLoss) LineState() LineState {
	return LineState{IngredientID: l.IngredientID, Quantity: l.Quantity}
}
