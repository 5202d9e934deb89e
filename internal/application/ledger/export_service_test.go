package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/ledger"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func buildExport(t *testing.T, status ledger.ExportStatus, ingredientID uuid.UUID, quantity int64) (*ledger.StockExport, uuid.UUID) {
	exp, err := ledger.NewStockExport(time.Now(), "kitchen issue", status)
	require.NoError(t, err)
	detail, err := exp.AddDetail(ingredientID, decimal.NewFromInt(quantity))
	require.NoError(t, err)
	return exp, detail.ID
}

func TestExportService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("draft creation leaves stock alone", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 50)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)
		ts.exports.On("Save", ctx, mock.AnythingOfType("*ledger.StockExport")).Return(nil)

		resp, err := svc.Create(ctx, CreateExportRequest{
			ExportDate: time.Now(),
			Lines:      []ExportLineRequest{{IngredientID: flour.ID, Quantity: decimal.NewFromInt(20)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		ts.ingredients.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completed creation decrements immediately without sufficiency check", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 5)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)
		ts.exports.On("Save", ctx, mock.AnythingOfType("*ledger.StockExport")).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(-20)).Return(nil)

		resp, err := svc.Create(ctx, CreateExportRequest{
			ExportDate: time.Now(),
			Status:     "completed",
			Lines:      []ExportLineRequest{{IngredientID: flour.ID, Quantity: decimal.NewFromInt(20)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		ts.ingredients.AssertExpectations(t)
	})
}

func TestExportService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completing decrements every line", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 50)
		exp, _ := buildExport(t, ledger.ExportStatusDraft, flour.ID, 20)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(-20)).Return(nil)

		resp, err := svc.UpdateStatus(ctx, exp.ID, UpdateExportStatusRequest{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		ts.ingredients.AssertExpectations(t)
	})

	t.Run("insufficient stock aborts the transition", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 5)
		exp, _ := buildExport(t, ledger.ExportStatusDraft, flour.ID, 10)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)

		_, err := svc.UpdateStatus(ctx, exp.ID, UpdateExportStatusRequest{Status: "completed"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Flour")
		ts.exports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		ts.ingredients.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reopening a completed export restores stock without checks", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 30)
		exp, _ := buildExport(t, ledger.ExportStatusCompleted, flour.ID, 20)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(20)).Return(nil)

		resp, err := svc.UpdateStatus(ctx, exp.ID, UpdateExportStatusRequest{Status: "draft"})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		ts.ingredients.AssertExpectations(t)
	})

	t.Run("transition between non-completed statuses touches no stock", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 30)
		exp, _ := buildExport(t, ledger.ExportStatusDraft, flour.ID, 20)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)

		resp, err := svc.UpdateStatus(ctx, exp.ID, UpdateExportStatusRequest{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		ts.ingredients.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 30)
		exp, _ := buildExport(t, ledger.ExportStatusDraft, flour.ID, 20)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)

		resp, err := svc.UpdateStatus(ctx, exp.ID, UpdateExportStatusRequest{Status: "draft"})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		ts.ingredients.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExportService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("growing a completed line moves only the difference", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 40)
		exp, detailID := buildExport(t, ledger.ExportStatusCompleted, flour.ID, 10)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(-5)).Return(nil)

		_, err := svc.Update(ctx, exp.ID, UpdateExportRequest{
			Lines: []ExportLineRequest{{ID: &detailID, IngredientID: flour.ID, Quantity: decimal.NewFromInt(15)}},
		})
		require.NoError(t, err)
		ts.ingredients.AssertExpectations(t)
	})

	t.Run("switching the ingredient restores the old and charges the new", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 40)
		sugar := testIngredient(t, "Sugar", 40)
		exp, detailID := buildExport(t, ledger.ExportStatusCompleted, flour.ID, 10)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{sugar.ID}).Return([]ingredient.Ingredient{*sugar}, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(10)).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, sugar.ID, deltaEquals(-15)).Return(nil)

		_, err := svc.Update(ctx, exp.ID, UpdateExportRequest{
			Lines: []ExportLineRequest{{ID: &detailID, IngredientID: sugar.ID, Quantity: decimal.NewFromInt(15)}},
		})
		require.NoError(t, err)
		ts.ingredients.AssertExpectations(t)
	})

	t.Run("line edits on a draft never touch stock", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 40)
		exp, detailID := buildExport(t, ledger.ExportStatusDraft, flour.ID, 10)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)

		_, err := svc.Update(ctx, exp.ID, UpdateExportRequest{
			Lines: []ExportLineRequest{{ID: &detailID, IngredientID: flour.ID, Quantity: decimal.NewFromInt(99)}},
		})
		require.NoError(t, err)
		ts.ingredients.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status transition uses the pre-call line set as baseline", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		// Completing with 10 on the books, then growing the line to 15
		// in the same call: the transition charges 10, the edit charges 5.
		flour := testIngredient(t, "Flour", 40)
		exp, detailID := buildExport(t, ledger.ExportStatusDraft, flour.ID, 10)

		status := "completed"
		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.ingredients.On("FindByIDs", ctx, []uuid.UUID{flour.ID}).Return([]ingredient.Ingredient{*flour}, nil)
		ts.exports.On("Save", ctx, exp).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(-10)).Return(nil).Once()
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(-5)).Return(nil).Once()

		_, err := svc.Update(ctx, exp.ID, UpdateExportRequest{
			Status: &status,
			Lines:  []ExportLineRequest{{ID: &detailID, IngredientID: flour.ID, Quantity: decimal.NewFromInt(15)}},
		})
		require.NoError(t, err)
		ts.ingredients.AssertExpectations(t)
	})
}

func TestExportService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a completed export restores stock", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 30)
		exp, _ := buildExport(t, ledger.ExportStatusCompleted, flour.ID, 20)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.exports.On("Delete", ctx, exp.ID).Return(nil)
		ts.ingredients.On("AdjustStock", ctx, flour.ID, deltaEquals(20)).Return(nil)

		require.NoError(t, svc.Delete(ctx, exp.ID))
		ts.ingredients.AssertExpectations(t)
	})

	t.Run("deleting a draft export touches no stock", func(t *testing.T) {
		ts := newTestScope()
		svc := NewExportService(ts.scope, ts.exports)

		flour := testIngredient(t, "Flour", 30)
		exp, _ := buildExport(t, ledger.ExportStatusDraft, flour.ID, 20)

		ts.exports.On("FindByID", ctx, exp.ID).Return(exp, nil)
		ts.exports.On("Delete", ctx, exp.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, exp.ID))
		ts.ingredients.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})
}
