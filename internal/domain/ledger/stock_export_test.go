package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestExport(t *testing.T, status ExportStatus) *StockExport {
	exp, err := NewStockExport(time.Now(), "kitchen issue", status)
	require.NoError(t, err)
	return exp
}

func TestNewStockExport(t *testing.T) {
	t.Run("defaults are preserved", func(t *testing.T) {
		exp := createTestExport(t, ExportStatusDraft)
		assert.Equal(t, ExportStatusDraft, exp.Status)
		assert.False(t, exp.IsCompleted())
		assert.Empty(t, exp.Details)
	})

	t.Run("may be created directly in completed status", func(t *testing.T) {
		exp := createTestExport(t, ExportStatusCompleted)
		assert.True(t, exp.IsCompleted())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewStockExport(time.Now(), "", ExportStatus(9))
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewStockExport(time.Time{}, "", ExportStatusDraft)
		assert.Error(t, err)
	})
}

func TestStockExport_ChangeStatus(t *testing.T) {
	t.Run("records any valid transition", func(t *testing.T) {
		exp := createTestExport(t, ExportStatusDraft)

		require.NoError(t, exp.ChangeStatus(ExportStatusCompleted))
		assert.True(t, exp.IsCompleted())

		require.NoError(t, exp.ChangeStatus(ExportStatusDraft))
		assert.Equal(t, ExportStatusDraft, exp.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		exp := createTestExport(t, ExportStatusApproved)
		version := exp.GetVersion()
		require.NoError(t, exp.ChangeStatus(ExportStatusApproved))
		assert.Equal(t, version, exp.GetVersion())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		exp := createTestExport(t, ExportStatusDraft)
		assert.Error(t, exp.ChangeStatus(ExportStatus(9)))
	})
}

func TestStockExport_Details(t *testing.T) {
	exp := createTestExport(t, ExportStatusDraft)

	detail, err := exp.AddDetail(uuid.New(), decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, 1, exp.DetailCount())

	t.Run("revise changes quantity", func(t *testing.T) {
		err := exp.ReviseDetail(detail.ID, detail.IngredientID, decimal.NewFromInt(25))
		require.NoError(t, err)
		assert.True(t, exp.GetDetail(detail.ID).Quantity.Equal(decimal.NewFromInt(25)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := exp.AddDetail(uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("total quantity sums lines", func(t *testing.T) {
		_, err := exp.AddDetail(uuid.New(), decimal.NewFromInt(5))
		require.NoError(t, err)
		assert.True(t, exp.TotalQuantity().Equal(decimal.NewFromInt(30)))
	})

	t.Run("remove drops the line", func(t *testing.T) {
		require.NoError(t, exp.RemoveDetail(detail.ID))
		assert.Nil(t, exp.GetDetail(detail.ID))
	})

	t.Run("unknown line fails", func(t *testing.T) {
		assert.Error(t, exp.RemoveDetail(uuid.New()))
		assert.Error(t, exp.ReviseDetail(uuid.New(), uuid.New(), decimal.NewFromInt(1)))
	})
}
