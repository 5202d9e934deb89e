package ingredient

import (
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ingredient is the target of every stock ledger operation. CurrentStock
// is the single running counter that imports, exports and losses adjust.
//
// CurrentStock is never written directly by application code: all
// mutations go through Repository.AdjustStock, which performs an atomic
// in-database increment. The field on this struct is a read snapshot.
// MinStock and MaxStock are advisory thresholds; CurrentStock is not
// schema-enforced non-negative.
type Ingredient struct {
	shared.AuditedAggregateRoot
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates a new ingredient with zero stock
func NewIngredient(categoryID uuid.UUID, name, unit string, minStock, maxStock decimal.Decimal) (*Ingredient, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Measurement unit cannot be empty")
	}
	if minStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Minimum stock cannot be negative")
	}
	if maxStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Maximum stock cannot be negative")
	}
	if maxStock.GreaterThan(decimal.Zero) && maxStock.LessThan(minStock) {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Maximum stock cannot be below minimum stock")
	}

	return &Ingredient{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		CategoryID:           categoryID,
		Name:                 name,
		Unit:                 unit,
		CurrentStock:         decimal.Zero,
		MinStock:             minStock,
		MaxStock:             maxStock,
		IsActive:             true,
	}, nil
}

// UpdateDetails updates the catalog fields. Stock is deliberately not
// touched here.
func (i *Ingredient) UpdateDetails(name, unit string, minStock, maxStock decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Measurement unit cannot be empty")
	}
	if minStock.IsNegative() || maxStock.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}

	i.Name = name
	i.Unit = unit
	i.MinStock = minStock
	i.MaxStock = maxStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetCategory moves the ingredient to another category
func (i *Ingredient) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	i.CategoryID = categoryID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Deactivate marks the ingredient inactive. Existing ledger rows keep
// referencing it.
func (i *Ingredient) Deactivate() {
	i.IsActive = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Activate marks the ingredient active
func (i *Ingredient) Activate() {
	i.IsActive = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// CanFulfill returns true if the current stock covers the requested quantity
func (i *Ingredient) CanFulfill(quantity decimal.Decimal) bool {
	return i.CurrentStock.GreaterThanOrEqual(quantity)
}

// IsBelowMinimum returns true if current stock is below the minimum threshold
func (i *Ingredient) IsBelowMinimum() bool {
	return i.MinStock.GreaterThan(decimal.Zero) && i.CurrentStock.LessThan(i.MinStock)
}

// IsAboveMaximum returns true if current stock is above the maximum threshold
func (i *Ingredient) IsAboveMaximum() bool {
	return i.MaxStock.GreaterThan(decimal.Zero) && i.CurrentStock.GreaterThan(i.MaxStock)
}
