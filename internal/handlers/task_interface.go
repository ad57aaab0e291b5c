package handlers

import (
	"context"

	"dateTracker/internal/models/task"
)

type TaskService interface {
	HealthCheck(context.Context) error
	ListTasks(context.Context) ([]*task.Task, error)
	GetTask(context.Context, int64) (*task.Task, error)
	CreateTask(ctx context.Context, name string, description *string, isCompleted bool) (*task.Task, error)
	UpdateTask(context.Context, int64, ...task.TaskOption) (*task.Task, error)
	DeleteTask(context.Context, int64) error
}

// TaskRecorder counts successful task mutations.
type TaskRecorder interface {
	TaskOperation(operation string)
}

// DateRecorder counts calculate-date outcomes.
type DateRecorder interface {
	DateCalculated(outcome string)
}
