package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockExportDetail represents one issued line in a stock export.
// The line has been counted against the ingredient's stock iff the
// parent document's current status is Completed.
type StockExportDetail struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	StockExportID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockExportDetail) TableName() string {
	return "stock_export_details"
}

// NewStockExportDetail creates a new export line
func NewStockExportDetail(exportID, ingredientID uuid.UUID, quantity decimal.Decimal) (*StockExportDetail, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &StockExportDetail{
		ID:            uuid.New(),
		StockExportID: exportID,
		IngredientID:  ingredientID,
		Quantity:      quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Revise replaces the line's ingredient and quantity
func (d *StockExportDetail) Revise(ingredientID uuid.UUID, quantity decimal.Decimal) error {
	if ingredientID == uuid.Nil {
		return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	d.IngredientID = ingredientID
	d.Quantity = quantity
	d.UpdatedAt = time.Now()

	return nil
}

// LineState returns the stock-relevant portion of the line
func (d *StockExportDetail) LineState() LineState {
	return LineState{IngredientID: d.IngredientID, Quantity: d.Quantity}
}

// StockExport represents a goods issuance document.
// Status is the sole switch controlling whether its lines currently
// affect stock: only a Completed export has taken its quantities out of
// the ledger.
type StockExport struct {
	shared.AuditedAggregateRoot
	ExportDate time.Time           `gorm:"not null;index"`
	Purpose    string              `gorm:"type:varchar(500)"`
	Status     ExportStatus        `gorm:"type:smallint;not null;default:0;index"`
	Details    []StockExportDetail `gorm:"foreignKey:StockExportID;references:ID"`
}

// TableName returns the table name for GORM
func (StockExport) TableName() string {
	return "stock_exports"
}

// NewStockExport creates an export document in the given status
func NewStockExport(exportDate time.Time, purpose string, status ExportStatus) (*StockExport, error) {
	if exportDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Export date cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown export status %d", status))
	}

	return &StockExport{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ExportDate:           exportDate,
		Purpose:              purpose,
		Status:               status,
		Details:              make([]StockExportDetail, 0),
	}, nil
}

// SetExportDate updates the document date
func (s *StockExport) SetExportDate(exportDate time.Time) error {
	if exportDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Export date cannot be empty")
	}
	s.ExportDate = exportDate
	s.UpdatedAt = time.Now()
	return nil
}

// SetPurpose sets the free-text purpose
func (s *StockExport) SetPurpose(purpose string) {
	s.Purpose = purpose
	s.UpdatedAt = time.Now()
}

// ChangeStatus moves the document to the target status. Changing to the
// current status is a no-op. The stock effect of the transition is the
// caller's responsibility; this only records the new status.
func (s *StockExport) ChangeStatus(target ExportStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown export status %d", target))
	}
	if target == s.Status {
		return nil
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move export from %s to %s", s.Status, target))
	}

	s.Status = target
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsCompleted returns true if the export is in Completed status
func (s *StockExport) IsCompleted() bool {
	return s.Status == ExportStatusCompleted
}

// AddDetail adds a new line to the document
func (s *StockExport) AddDetail(ingredientID uuid.UUID, quantity decimal.Decimal) (*StockExportDetail, error) {
	detail, err := NewStockExportDetail(s.ID, ingredientID, quantity)
	if err != nil {
		return nil, err
	}

	s.Details = append(s.Details, *detail)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return detail, nil
}

// ReviseDetail replaces an existing line's ingredient and quantity
func (s *StockExport) ReviseDetail(detailID, ingredientID uuid.UUID, quantity decimal.Decimal) error {
	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			if err := s.Details[idx].Revise(ingredientID, quantity); err != nil {
				return err
			}
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Export detail not found")
}

// RemoveDetail removes a line from the document
func (s *StockExport) RemoveDetail(detailID uuid.UUID) error {
	for idx, detail := range s.Details {
		if detail.ID == detailID {
			s.Details = append(s.Details[:idx], s.Details[idx+1:]...)
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Export detail not found")
}

// GetDetail returns a line by its ID
func (s *StockExport) GetDetail(detailID uuid.UUID) *StockExportDetail {
	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			return &s.Details[idx]
		}
	}
	return nil
}

// DetailCount returns the number of lines in the document
func (s *StockExport) DetailCount() int {
	return len(s.Details)
}

// TotalQuantity returns the sum of all line quantities
func (s *StockExport) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, detail := range s.Details {
		total = total.Add(detail.Quantity)
	}
	return total
}
