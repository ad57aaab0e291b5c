package app

import (
	"context"
	"fmt"

	"dateTracker/internal/config"
	"dateTracker/internal/logger"
	"dateTracker/internal/migrations"
	"dateTracker/internal/repository/task/inmemory"
	"dateTracker/internal/repository/task/postgres"
	"dateTracker/internal/repository/task/sqlite"
	"dateTracker/internal/service"

	"go.uber.org/zap"
)

// OpenStore builds the configured task store and brings its schema up to
// date. The returned func releases the store.
func OpenStore(ctx context.Context, cfg *config.Config) (service.TaskRepository, func(), error) {
	logger.Info("App: opening task store", zap.String("type", cfg.Repository.Type))

	switch cfg.Repository.Type {
	case config.RepositoryInMemory:
		return inmemory.NewTaskStorage(), func() {}, nil

	case config.RepositorySQLite:
		storage, err := sqlite.New(cfg.Repository.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return storage, storage.Close, nil

	case config.RepositoryPostgres:
		db := cfg.Database
		var storage *postgres.Storage
		err := retryConstant(ctx, db.ConnectAttempts, db.ConnectRetryDelay, func() error {
			var err error
			storage, err = postgres.New(ctx, db.DatabaseURL(), postgres.PoolConfig{
				MaxConns:        db.MaxConnections,
				MinConns:        db.MinConnections,
				MaxConnIdleTime: db.IdleTimeout,
				ConnectTimeout:  db.AcquireTimeout,
			})
			return err
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database after %d attempts: %w", db.ConnectAttempts, err)
		}

		if err := migrations.Up(db.DatabaseURL()); err != nil {
			storage.Close()
			return nil, nil, err
		}
		logger.Info("App: database schema is up to date")
		return storage, storage.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown repository type %q", cfg.Repository.Type)
	}
}
