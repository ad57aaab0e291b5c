package service

import (
	"context"
	"errors"
	"fmt"

	"dateTracker/internal/logger"
	"dateTracker/internal/models/task"
	rep "dateTracker/internal/repository"

	"go.uber.org/zap"
)

// TaskService holds the task rules; persistence failures are returned wrapped
// and are not BusinessErrors.
type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("task store health check: %w", err)
	}
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: task not found", zap.Int64("target_id", id))
			return nil, NewNotFound("Task", id, err)
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *TaskService) CreateTask(ctx context.Context, name string, description *string, isCompleted bool) (*task.Task, error) {
	if problem := task.NameProblem(name); problem != "" {
		return nil, NewValidationError("name", problem)
	}

	t := &task.Task{
		Name:        name,
		Description: description,
		IsCompleted: isCompleted,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.Info("Service: task created", zap.Int64("task_id", t.ID))
	return t, nil
}

// UpdateTask applies only the given options; fields without an option keep
// their stored value.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Apply(options...)
	if problem := task.NameProblem(t.Name); problem != "" {
		return nil, NewValidationError("name", problem)
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			// deleted between the read and the write
			return nil, NewNotFound("Task", id, err)
		}
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteSoft(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("Task", id, err)
		}
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	logger.Info("Service: task soft-deleted", zap.Int64("task_id", id))
	return nil
}
