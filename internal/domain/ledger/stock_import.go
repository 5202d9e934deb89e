package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockImportDetail represents one received line in a stock import.
// ReceivedQuantity is the quantity that has been counted into the
// referenced ingredient's stock for as long as this row exists.
type StockImportDetail struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	StockImportID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"` // ReceivedQuantity * UnitPrice
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockImportDetail) TableName() string {
	return "stock_import_details"
}

// NewStockImportDetail creates a new import line
func NewStockImportDetail(importID, ingredientID uuid.UUID, orderedQuantity, receivedQuantity, unitPrice decimal.Decimal) (*StockImportDetail, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if receivedQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if orderedQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &StockImportDetail{
		ID:               uuid.New(),
		StockImportID:    importID,
		IngredientID:     ingredientID,
		OrderedQuantity:  orderedQuantity,
		ReceivedQuantity: receivedQuantity,
		UnitPrice:        unitPrice,
		TotalPrice:       receivedQuantity.Mul(unitPrice),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Revise replaces the line values and recalculates the line total
func (d *StockImportDetail) Revise(ingredientID uuid.UUID, orderedQuantity, receivedQuantity, unitPrice decimal.Decimal) error {
	if ingredientID == uuid.Nil {
		return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if receivedQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if orderedQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	d.IngredientID = ingredientID
	d.OrderedQuantity = orderedQuantity
	d.ReceivedQuantity = receivedQuantity
	d.UnitPrice = unitPrice
	d.TotalPrice = receivedQuantity.Mul(unitPrice)
	d.UpdatedAt = time.Now()

	return nil
}

// LineState returns the stock-relevant portion of the line
func (d *StockImportDetail) LineState() LineState {
	return LineState{IngredientID: d.IngredientID, Quantity: d.ReceivedQuantity}
}

// StockImport represents a goods receipt document.
// Its lines affect stock for as long as they exist; there is no draft
// state for imports.
type StockImport struct {
	shared.AuditedAggregateRoot
	ImportDate  time.Time           `gorm:"not null;index"`
	SupplierID  *uuid.UUID          `gorm:"type:uuid;index"`
	Remark      string              `gorm:"type:varchar(500)"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"` // Sum of line totals
	Details     []StockImportDetail `gorm:"foreignKey:StockImportID;references:ID"`
}

// TableName returns the table name for GORM
func (StockImport) TableName() string {
	return "stock_imports"
}

// NewStockImport creates an empty import document
func NewStockImport(importDate time.Time, supplierID *uuid.UUID) (*StockImport, error) {
	if importDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Import date cannot be empty")
	}
	if supplierID != nil && *supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	return &StockImport{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ImportDate:           importDate,
		SupplierID:           supplierID,
		TotalAmount:          decimal.Zero,
		Details:              make([]StockImportDetail, 0),
	}, nil
}

// SetImportDate updates the document date
func (s *StockImport) SetImportDate(importDate time.Time) error {
	if importDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Import date cannot be empty")
	}
	s.ImportDate = importDate
	s.UpdatedAt = time.Now()
	return nil
}

// SetSupplier updates the supplier reference; nil clears it
func (s *StockImport) SetSupplier(supplierID *uuid.UUID) error {
	if supplierID != nil && *supplierID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	s.SupplierID = supplierID
	s.UpdatedAt = time.Now()
	return nil
}

// SetRemark sets the document remark
func (s *StockImport) SetRemark(remark string) {
	s.Remark = remark
	s.UpdatedAt = time.Now()
}

// AddDetail adds a new line and recalculates the document total
func (s *StockImport) AddDetail(ingredientID uuid.UUID, orderedQuantity, receivedQuantity, unitPrice decimal.Decimal) (*StockImportDetail, error) {
	detail, err := NewStockImportDetail(s.ID, ingredientID, orderedQuantity, receivedQuantity, unitPrice)
	if err != nil {
		return nil, err
	}

	s.Details = append(s.Details, *detail)
	s.recalculateTotal()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return detail, nil
}

// ReviseDetail replaces an existing line's values and recalculates the total
func (s *StockImport) ReviseDetail(detailID, ingredientID uuid.UUID, orderedQuantity, receivedQuantity, unitPrice decimal.Decimal) error {
	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			if err := s.Details[idx].Revise(ingredientID, orderedQuantity, receivedQuantity, unitPrice); err != nil {
				return err
			}
			s.recalculateTotal()
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Import detail not found")
}

// RemoveDetail removes a line and recalculates the total
func (s *StockImport) RemoveDetail(detailID uuid.UUID) error {
	for idx, detail := range s.Details {
		if detail.ID == detailID {
			s.Details = append(s.Details[:idx], s.Details[idx+1:]...)
			s.recalculateTotal()
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Import detail not found")
}

// GetDetail returns a line by its ID
func (s *StockImport) GetDetail(detailID uuid.UUID) *StockImportDetail {
	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			return &s.Details[idx]
		}
	}
	return nil
}

// DetailCount returns the number of lines in the document
func (s *StockImport) DetailCount() int {
	return len(s.Details)
}

// recalculateTotal recomputes TotalAmount from the full surviving line set
func (s *StockImport) recalculateTotal() {
	total := decimal.Zero
	for _, detail := range s.Details {
		total = total.Add(detail.TotalPrice)
	}
	s.TotalAmount = total
}
