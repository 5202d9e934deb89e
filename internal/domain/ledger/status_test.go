package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  ExportStatus
		isValid bool
	}{
		{ExportStatusDraft, true},
		{ExportStatusApproved, true},
		{ExportStatusCompleted, true},
		{ExportStatus(3), false},
		{ExportStatus(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestExportStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     ExportStatus
		to       ExportStatus
		canTrans bool
	}{
		// Every distinct pair is allowed, including skipping approval
		// and reopening a completed export.
		{ExportStatusDraft, ExportStatusApproved, true},
		{ExportStatusDraft, ExportStatusCompleted, true},
		{ExportStatusApproved, ExportStatusCompleted, true},
		{ExportStatusApproved, ExportStatusDraft, true},
		{ExportStatusCompleted, ExportStatusApproved, true},
		{ExportStatusCompleted, ExportStatusDraft, true},
		// Self transitions and invalid targets are not.
		{ExportStatusDraft, ExportStatusDraft, false},
		{ExportStatusCompleted, ExportStatusCompleted, false},
		{ExportStatusDraft, ExportStatus(7), false},
		{ExportStatus(7), ExportStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestExportStatus_AffectsStock(t *testing.T) {
	assert.False(t, ExportStatusDraft.AffectsStock())
	assert.False(t, ExportStatusApproved.AffectsStock())
	assert.True(t, ExportStatusCompleted.AffectsStock())
}

func TestParseExportStatus(t *testing.T) {
	tests := []struct {
		name   string
		want   ExportStatus
		wantOK bool
	}{
		{"draft", ExportStatusDraft, true},
		{"Approved", ExportStatusApproved, true},
		{"COMPLETED", ExportStatusCompleted, true},
		{"cancelled", ExportStatusDraft, false},
		{"", ExportStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseExportStatus(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
