// Package sqlite is a single-file task store for local runs without
// PostgreSQL. The schema is managed by gorm's AutoMigrate.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "dateTracker/internal/logger"
	"dateTracker/internal/models/task"
	repo "dateTracker/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type taskRow struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	IsCompleted bool    `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (taskRow) TableName() string { return "tasks" }

type Storage struct {
	db *gorm.DB
}

// New opens (or creates) the database file at dsn and migrates the schema.
func New(dsn string) (*Storage, error) {
	if dsn == "" {
		dsn = "tasks.db"
	}
	if err := ensureDir(dsn); err != nil {
		return nil, err
	}

	dbLogger := gormlogger.New(
		zap.NewStdLog(applog.Logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		applog.Error("Repository: failed to open sqlite database", err)
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&taskRow{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	applog.Info("Repository: connected to SQLite", zap.String("dsn", dsn))
	return &Storage{db: db}, nil
}

func (s *Storage) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		applog.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	row := toRow(taskToCreate)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		applog.Error("Repository: failed to insert task", err)
		return fmt.Errorf("create task: %w", err)
	}
	*taskToCreate = *row.toTask()
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	res := s.db.WithContext(ctx).
		Model(&taskRow{}).
		Where("id = ?", taskToUpdate.ID).
		Updates(map[string]any{
			"name":         taskToUpdate.Name,
			"description":  taskToUpdate.Description,
			"is_completed": taskToUpdate.IsCompleted,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		applog.Error("Repository: failed to update task", res.Error, zap.Int64("id", taskToUpdate.ID))
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	updated, err := s.GetByID(ctx, taskToUpdate.ID)
	if err != nil {
		return err
	}
	*taskToUpdate = *updated
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	var row taskRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return row.toTask(), nil
}

// DeleteSoft relies on gorm.DeletedAt: Delete only stamps deleted_at.
func (s *Storage) DeleteSoft(ctx context.Context, taskToDelete *task.Task) error {
	res := s.db.WithContext(ctx).Delete(&taskRow{}, taskToDelete.ID)
	if res.Error != nil {
		applog.Error("Repository: failed to soft delete task", res.Error, zap.Int64("id", taskToDelete.ID))
		return fmt.Errorf("soft delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	var row taskRow
	if err := s.db.WithContext(ctx).Unscoped().First(&row, taskToDelete.ID).Error; err != nil {
		return fmt.Errorf("reload deleted task: %w", err)
	}
	*taskToDelete = *row.toTask()
	return nil
}

func (s *Storage) List(ctx context.Context) ([]*task.Task, error) {
	var rows []taskRow
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*task.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rows[i].toTask())
	}
	return tasks, nil
}

// Count reports every row, soft-deleted ones included.
func (s *Storage) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Unscoped().Model(&taskRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return int(n), nil
}

func toRow(t *task.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
	}
}

func (r *taskRow) toTask() *task.Task {
	t := &task.Task{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.DeletedAt.Valid {
		deletedAt := r.DeletedAt.Time
		t.DeletedAt = &deletedAt
	}
	return t
}

func ensureDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
