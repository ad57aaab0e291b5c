// Package seed fills an empty task table with sample rows for local runs and
// load tests.
package seed

import (
	"context"
	"fmt"

	"dateTracker/internal/logger"
	"dateTracker/internal/models/task"
	"dateTracker/internal/service"

	"go.uber.org/zap"
)

type sample struct {
	name        string
	description string
	completed   bool
}

var samples = []sample{
	{"Complete Project Setup", "Set up the initial project structure and dependencies", true},
	{"Database Configuration", "Configure the PostgreSQL connection", true},
	{"Create Task Model", "Implement the Task model with proper schema", true},
	{"API Endpoints", "Create CRUD endpoints for tasks", false},
	{"Load Testing", "Implement load testing scenarios with k6", false},
	{"Documentation", "Write comprehensive API documentation", false},
	{"Error Handling", "Implement proper error handling and validation", false},
	{"Testing", "Write unit and integration tests", false},
	{"Deployment", "Prepare for production deployment", false},
	{"Performance Optimization", "Optimize database queries and API performance", false},
}

// Tasks inserts the sample tasks unless live tasks already exist and returns
// how many rows were written.
func Tasks(ctx context.Context, repo service.TaskRepository) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("count existing tasks: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Seed: tasks table is not empty, skipping", zap.Int("existing", len(existing)))
		return 0, nil
	}

	for i, s := range samples {
		description := s.description
		t := &task.Task{Name: s.name, Description: &description, IsCompleted: s.completed}
		if err := repo.Create(ctx, t); err != nil {
			return i, fmt.Errorf("insert sample %q: %w", s.name, err)
		}
	}

	logger.Info("Seed: sample tasks created", zap.Int("count", len(samples)))
	return len(samples), nil
}
