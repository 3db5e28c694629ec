package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every mutating call is durably committed before it returns.
type TaskStore interface {
	// Add inserts a new task and returns it unchanged.
	// Returns ErrDuplicate if a task with the same ID already exists.
	Add(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetAll returns every task ordered by creation time, oldest first.
	// Tasks created at the same instant are returned in insertion order.
	// Returns an empty slice if the store is empty.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update overwrites an existing task matched by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error
}
