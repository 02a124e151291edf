package repository

import (
	"context"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// TaskRepository is the interface for task read access. Implementations
// normalize raw provider records into model.Task; records failing
// validation are dropped and reported, never propagated half-formed.
type TaskRepository interface {
	// ListTasks returns all schedulable tasks plus the IDs of records
	// that were skipped because required fields were missing or
	// malformed.
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, []SkippedRecord, error)
}

// ListTasksOptions filters the task fetch.
type ListTasksOptions struct {
	ProjectID string // optional provider-side project filter
}

// SkippedRecord describes a raw record rejected at the normalization
// boundary.
type SkippedRecord struct {
	ID     string
	Reason string
}
