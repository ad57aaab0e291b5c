package service

import (
	"context"

	"dateTracker/internal/models/task"
)

// TaskRepository is implemented by every task store. Reads never return
// soft-deleted rows; missing rows are reported as repository.ErrNotFound.
type TaskRepository interface {
	HealthCheck(context.Context) error
	List(context.Context) ([]*task.Task, error)
	GetByID(context.Context, int64) (*task.Task, error)
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	DeleteSoft(context.Context, *task.Task) error
}
