package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ImportLineRequest represents one line in an import create or update
// payload. On update, a line with an ID revises or (with Delete set)
// removes the existing line; a line without an ID creates a new one.
type ImportLineRequest struct {
	ID               *uuid.UUID      `json:"id"`
	IngredientID     uuid.UUID       `json:"ingredient_id"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Delete           bool            `json:"delete"`
}

// toLineEdit converts the wire form into the tagged edit variant
func (r ImportLineRequest) toLineEdit() ledger.LineEdit {
	edit := ledger.LineEdit{
		Kind:            ledger.EditCreate,
		IngredientID:    r.IngredientID,
		Quantity:        r.ReceivedQuantity,
		OrderedQuantity: r.OrderedQuantity,
		UnitPrice:       r.UnitPrice,
	}
	if r.ID != nil {
		edit.LineID = *r.ID
		edit.Kind = ledger.EditUpdate
		if r.Delete {
			edit.Kind = ledger.EditDelete
		}
	}
	return edit
}

// CreateImportRequest represents a request to record a goods receipt
type CreateImportRequest struct {
	ImportDate time.Time           `json:"import_date" binding:"required"`
	SupplierID *uuid.UUID          `json:"supplier_id"`
	Remark     string              `json:"remark"`
	Lines      []ImportLineRequest `json:"lines"`
}

// UpdateImportRequest represents a partial update of an import document.
// Nil fields are left unchanged; a nil Lines slice leaves the line set
// untouched.
type UpdateImportRequest struct {
	ImportDate *time.Time          `json:"import_date"`
	SupplierID *uuid.UUID          `json:"supplier_id"`
	Remark     *string             `json:"remark"`
	Lines      []ImportLineRequest `json:"lines"`
}

// ImportListFilter represents filter options for the import list
type ImportListFilter struct {
	SupplierID   *uuid.UUID `form:"supplier_id"`
	IngredientID *uuid.UUID `form:"ingredient_id"`
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ImportListFilter) toDomain() ledger.ImportFilter {
	return ledger.ImportFilter{
		Filter:       buildFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, "import_date"),
		SupplierID:   f.SupplierID,
		IngredientID: f.IngredientID,
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
}

// ImportDetailResponse represents an import line in API responses
type ImportDetailResponse struct {
	ID               uuid.UUID       `json:"id"`
	IngredientID     uuid.UUID       `json:"ingredient_id"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

// ImportResponse represents an import document in API responses
type ImportResponse struct {
	ID          uuid.UUID              `json:"id"`
	ImportDate  time.Time              `json:"import_date"`
	SupplierID  *uuid.UUID             `json:"supplier_id"`
	Remark      string                 `json:"remark"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Details     []ImportDetailResponse `json:"details"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Version     int                    `json:"version"`
}

// ToImportResponse converts a stock import aggregate to its response form
func ToImportResponse(imp *ledger.StockImport) ImportResponse {
	details := make([]ImportDetailResponse, 0, len(imp.Details))
	for _, d := range imp.Details {
		details = append(details, ImportDetailResponse{
			ID:               d.ID,
			IngredientID:     d.IngredientID,
			OrderedQuantity:  d.OrderedQuantity,
			ReceivedQuantity: d.ReceivedQuantity,
			UnitPrice:        d.UnitPrice,
			TotalPrice:       d.TotalPrice,
		})
	}
	return ImportResponse{
		ID:          imp.ID,
		ImportDate:  imp.ImportDate,
		SupplierID:  imp.SupplierID,
		Remark:      imp.Remark,
		TotalAmount: imp.TotalAmount,
		Details:     details,
		CreatedAt:   imp.CreatedAt,
		UpdatedAt:   imp.UpdatedAt,
		Version:     imp.GetVersion(),
	}
}

// ExportLineRequest represents one line in an export create or update payload
type ExportLineRequest struct {
	ID           *uuid.UUID      `json:"id"`
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Delete       bool            `json:"delete"`
}

func (r ExportLineRequest) toLineEdit() ledger.LineEdit {
	edit := ledger.LineEdit{
		Kind:         ledger.EditCreate,
		IngredientID: r.IngredientID,
		Quantity:     r.Quantity,
	}
	if r.ID != nil {
		edit.LineID = *r.ID
		edit.Kind = ledger.EditUpdate
		if r.Delete {
			edit.Kind = ledger.EditDelete
		}
	}
	return edit
}

// CreateExportRequest represents a request to record a goods issuance.
// Status defaults to draft when empty.
type CreateExportRequest struct {
	ExportDate time.Time           `json:"export_date" binding:"required"`
	Purpose    string              `json:"purpose"`
	Status     string              `json:"status" binding:"omitempty,oneof=draft approved completed"`
	Lines      []ExportLineRequest `json:"lines"`
}

// UpdateExportRequest represents a partial update of an export document
type UpdateExportRequest struct {
	ExportDate *time.Time          `json:"export_date"`
	Purpose    *string             `json:"purpose"`
	Status     *string             `json:"status" binding:"omitempty,oneof=draft approved completed"`
	Lines      []ExportLineRequest `json:"lines"`
}

// UpdateExportStatusRequest represents a dedicated status transition request
type UpdateExportStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft approved completed"`
}

// ExportListFilter represents filter options for the export list
type ExportListFilter struct {
	Status       *string    `form:"status" binding:"omitempty,oneof=draft approved completed"`
	IngredientID *uuid.UUID `form:"ingredient_id"`
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ExportListFilter) toDomain() ledger.ExportFilter {
	filter := ledger.ExportFilter{
		Filter:       buildFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, "export_date"),
		IngredientID: f.IngredientID,
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
	if f.Status != nil {
		if status, ok := ledger.ParseExportStatus(*f.Status); ok {
			filter.Status = &status
		}
	}
	return filter
}

// ExportDetailResponse represents an export line in API responses
type ExportDetailResponse struct {
	ID           uuid.UUID       `json:"id"`
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ExportResponse represents an export document in API responses
type ExportResponse struct {
	ID         uuid.UUID              `json:"id"`
	ExportDate time.Time              `json:"export_date"`
	Purpose    string                 `json:"purpose"`
	Status     string                 `json:"status"`
	Details    []ExportDetailResponse `json:"details"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	Version    int                    `json:"version"`
}

// ToExportResponse converts a stock export aggregate to its response form
func ToExportResponse(exp *ledger.StockExport) ExportResponse {
	details := make([]ExportDetailResponse, 0, len(exp.Details))
	for _, d := range exp.Details {
		details = append(details, ExportDetailResponse{
			ID:           d.ID,
			IngredientID: d.IngredientID,
			Quantity:     d.Quantity,
		})
	}
	return ExportResponse{
		ID:         exp.ID,
		ExportDate: exp.ExportDate,
		Purpose:    exp.Purpose,
		Status:     exp.Status.String(),
		Details:    details,
		CreatedAt:  exp.CreatedAt,
		UpdatedAt:  exp.UpdatedAt,
		Version:    exp.GetVersion(),
	}
}

// CreateLossRequest represents a request to record shrinkage
type CreateLossRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Reason       string          `json:"reason"`
	LossDate     time.Time       `json:"loss_date" binding:"required"`
	EmployeeID   *uuid.UUID      `json:"employee_id"`
}

// UpdateLossRequest represents a partial update of a loss record
type UpdateLossRequest struct {
	IngredientID *uuid.UUID       `json:"ingredient_id"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Reason       *string          `json:"reason"`
	LossDate     *time.Time       `json:"loss_date"`
	EmployeeID   *uuid.UUID       `json:"employee_id"`
}

// LossListFilter represents filter options for the loss list
type LossListFilter struct {
	IngredientID *uuid.UUID `form:"ingredient_id"`
	EmployeeID   *uuid.UUID `form:"employee_id"`
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f LossListFilter) toDomain() ledger.LossFilter {
	return ledger.LossFilter{
		Filter:       buildFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, "loss_date"),
		IngredientID: f.IngredientID,
		EmployeeID:   f.EmployeeID,
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
}

// LossResponse represents a loss record in API responses
type LossResponse struct {
	ID           uuid.UUID       `json:"id"`
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
	LossDate     time.Time       `json:"loss_date"`
	EmployeeID   *uuid.UUID      `json:"employee_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToLossResponse converts a stock loss aggregate to its response form
func ToLossResponse(loss *ledger.StockLoss) LossResponse {
	return LossResponse{
		ID:           loss.ID,
		IngredientID: loss.IngredientID,
		Quantity:     loss.Quantity,
		Reason:       loss.Reason,
		LossDate:     loss.LossDate,
		EmployeeID:   loss.EmployeeID,
		CreatedAt:    loss.CreatedAt,
		UpdatedAt:    loss.UpdatedAt,
		Version:      loss.GetVersion(),
	}
}

// buildFilter applies list defaults shared by every document filter
func buildFilter(page, pageSize int, orderBy, orderDir, defaultOrder string) shared.Filter {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if orderBy == "" {
		orderBy = defaultOrder
	}
	if orderDir == "" {
		orderDir = "desc"
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Filters:  make(map[string]interface{}),
	}
}
