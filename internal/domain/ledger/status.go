package ledger

import "strings"

// ExportStatus represents the lifecycle status of a stock export.
// Only Completed exports have taken their quantities out of stock.
// Stored as an integer column.
type ExportStatus int

const (
	ExportStatusDraft     ExportStatus = 0
	ExportStatusApproved  ExportStatus = 1
	ExportStatusCompleted ExportStatus = 2
)

// IsValid checks if the status is a valid ExportStatus
func (s ExportStatus) IsValid() bool {
	switch s {
	case ExportStatusDraft, ExportStatusApproved, ExportStatusCompleted:
		return true
	}
	return false
}

// String returns the lowercase name of the status
func (s ExportStatus) String() string {
	switch s {
	case ExportStatusDraft:
		return "draft"
	case ExportStatusApproved:
		return "approved"
	case ExportStatusCompleted:
		return "completed"
	}
	return "unknown"
}

// AffectsStock returns true if lines of an export in this status are
// counted against ingredient stock
func (s ExportStatus) AffectsStock() bool {
	return s == ExportStatusCompleted
}

// CanTransitionTo checks whether the status may move to the target
// status. Every status may reach every other status: a completed export
// can be reopened and a draft may be completed directly, skipping
// approval.
func (s ExportStatus) CanTransitionTo(target ExportStatus) bool {
	return s.IsValid() && target.IsValid() && s != target
}

// ParseExportStatus parses a status name ("draft", "approved",
// "completed") into an ExportStatus
func ParseExportStatus(name string) (ExportStatus, bool) {
	switch strings.ToLower(name) {
	case "draft":
		return ExportStatusDraft, true
	case "approved":
		return ExportStatusApproved, true
	case "completed":
		return ExportStatusCompleted, true
	}
	return ExportStatusDraft, false
}
