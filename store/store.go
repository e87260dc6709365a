// Package store holds task persistence behind a backend-agnostic
// interface. Handlers never touch pgx directly.
package store

import (
	"context"
	"errors"

	"taskboard/models"
)

// ErrNotFound covers both a missing id and an id owned by someone else.
// Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("task not found")

// ValidationError marks input the caller can fix.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// TaskStore is the contract the task service runs against. ownerID is
// the identity resolved by the auth gate; every operation is scoped to
// it.
type TaskStore interface {
	// List returns the owner's tasks, newest-created first. Unbounded.
	List(ctx context.Context, ownerID string) ([]models.Task, error)

	// Create persists a new task for the owner and returns it with its
	// store-assigned id and creation time.
	Create(ctx context.Context, ownerID string, draft models.TaskDraft) (models.Task, error)

	// Update first confirms a task with this id belongs to the owner
	// (ErrNotFound otherwise), then applies the non-nil patch fields and
	// returns the updated record.
	Update(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (models.Task, error)

	// Delete confirms existence and ownership (ErrNotFound otherwise),
	// then removes the record permanently.
	Delete(ctx context.Context, ownerID, taskID string) error
}
