package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dateTracker/internal/logger"
	"dateTracker/internal/models/task"
	repo "dateTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slowQuery = 100 * time.Millisecond

const taskColumns = `id, name, description, is_completed, created_at, updated_at, deleted_at`

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string, poolCfg PoolConfig) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: failed to parse pool config", err)
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if poolCfg.MaxConns > 0 {
		config.MaxConns = poolCfg.MaxConns
	}
	config.MinConns = poolCfg.MinConns
	if poolCfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = poolCfg.MaxConnIdleTime
	}
	if poolCfg.ConnectTimeout > 0 {
		config.ConnConfig.ConnectTimeout = poolCfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL", zap.Int32("max_conns", config.MaxConns))
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks (name, description, is_completed)
				VALUES ($1, $2, $3)
				RETURNING id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.Name,
		taskToCreate.Description,
		taskToCreate.IsCompleted,
	).Scan(&taskToCreate.ID, &taskToCreate.CreatedAt, &taskToCreate.UpdatedAt)
	if err != nil {
		logger.Error("Repository: failed to insert task", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("insert task: %w", err)
	}
	taskToCreate.DeletedAt = nil

	warnIfSlow(start, "insert")
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET name = $1,
				description = $2,
				is_completed = $3,
				updated_at = NOW()
			WHERE id = $4 AND deleted_at IS NULL
			RETURNING ` + taskColumns

	row := s.pool.QueryRow(ctx, query,
		taskToUpdate.Name,
		taskToUpdate.Description,
		taskToUpdate.IsCompleted,
		taskToUpdate.ID,
	)
	if err := scanTask(row, taskToUpdate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: failed to update task", err, zap.Int64("id", taskToUpdate.ID))
		return fmt.Errorf("update task: %w", err)
	}

	warnIfSlow(start, "update")
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1 AND deleted_at IS NULL`

	t := &task.Task{}
	if err := scanTask(s.pool.QueryRow(ctx, query, id), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: failed to get task", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("get task: %w", err)
	}

	warnIfSlow(start, "get")
	return t, nil
}

// DeleteSoft stamps deleted_at; the row stays in the table.
func (s *Storage) DeleteSoft(ctx context.Context, taskToDelete *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
				SET deleted_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING deleted_at`

	err := s.pool.QueryRow(ctx, query, taskToDelete.ID).Scan(&taskToDelete.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: failed to soft delete task", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("soft delete: %w", err)
	}

	warnIfSlow(start, "soft delete")
	return nil
}

// List returns live tasks, newest first.
func (s *Storage) List(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE deleted_at IS NULL
				ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: failed to list tasks", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}
		if err := scanTask(rows, t); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	warnIfSlow(start, "list", zap.Int("rows", len(tasks)))
	return tasks, nil
}

// Count reports every row, soft-deleted ones included.
func (s *Storage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func scanTask(row pgx.Row, t *task.Task) error {
	return row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.IsCompleted,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
}

func warnIfSlow(start time.Time, op string, fields ...zap.Field) {
	elapsed := time.Since(start)
	if elapsed > slowQuery {
		fields = append(fields, zap.String("op", op), zap.Duration("ms", elapsed))
		logger.Warn("Repository: slow query", fields...)
	}
}
