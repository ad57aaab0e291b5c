package postgres_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"dateTracker/internal/migrations"
	"dateTracker/internal/models/task"
	repo "dateTracker/internal/repository"
	"dateTracker/internal/repository/task/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite runs the store against a disposable PostgreSQL container.
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	connString string
	ctx        context.Context
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5432")
	s.Require().NoError(err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s.Require().NoError(migrations.Up(s.connString))

	s.storage, err = postgres.New(s.ctx, s.connString, postgres.PoolConfig{
		MaxConns:        5,
		MaxConnIdleTime: 10 * time.Second,
		ConnectTimeout:  30 * time.Second,
	})
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	s.Require().NoError(err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx, "TRUNCATE tasks RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) create(name string) *task.Task {
	t := &task.Task{Name: name}
	s.Require().NoError(s.storage.Create(s.ctx, t))
	return t
}

func (s *PostgresTestSuite) TestHealthCheck() {
	s.NoError(s.storage.HealthCheck(s.ctx))
}

func (s *PostgresTestSuite) TestCreate() {
	desc := "Test Description"
	created := &task.Task{Name: "Test Task", Description: &desc}

	require.NoError(s.T(), s.storage.Create(s.ctx, created))
	assert.Equal(s.T(), int64(1), created.ID)
	assert.False(s.T(), created.CreatedAt.IsZero())
	assert.False(s.T(), created.UpdatedAt.IsZero())

	retrieved, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Test Task", retrieved.Name)
	require.NotNil(s.T(), retrieved.Description)
	assert.Equal(s.T(), desc, *retrieved.Description)
	assert.False(s.T(), retrieved.IsCompleted)
	assert.Nil(s.T(), retrieved.DeletedAt)
}

func (s *PostgresTestSuite) TestGetByID_NotFound() {
	_, err := s.storage.GetByID(s.ctx, 404)
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestUpdate() {
	created := s.create("Original")

	created.Name = "Updated"
	created.IsCompleted = true
	require.NoError(s.T(), s.storage.Update(s.ctx, created))

	retrieved, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Updated", retrieved.Name)
	assert.True(s.T(), retrieved.IsCompleted)
	assert.Nil(s.T(), retrieved.Description)
	assert.False(s.T(), retrieved.UpdatedAt.Before(retrieved.CreatedAt))
}

func (s *PostgresTestSuite) TestUpdate_NotFound() {
	err := s.storage.Update(s.ctx, &task.Task{ID: 77, Name: "ghost"})
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestUpdate_ClearsDescription() {
	desc := "to be cleared"
	created := &task.Task{Name: "Described", Description: &desc}
	s.Require().NoError(s.storage.Create(s.ctx, created))

	created.Description = nil
	s.Require().NoError(s.storage.Update(s.ctx, created))

	retrieved, err := s.storage.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(retrieved.Description)
}

func (s *PostgresTestSuite) TestIDsBeyondInt32() {
	var big int64 = math.MaxInt32 + 1

	_, err := s.storage.GetByID(s.ctx, big)
	s.ErrorIs(err, repo.ErrNotFound)
	s.ErrorIs(s.storage.Update(s.ctx, &task.Task{ID: big, Name: "ghost"}), repo.ErrNotFound)
	s.ErrorIs(s.storage.DeleteSoft(s.ctx, &task.Task{ID: big}), repo.ErrNotFound)

	conn, err := pgx.Connect(s.ctx, s.connString)
	s.Require().NoError(err)
	defer conn.Close(s.ctx)
	_, err = conn.Exec(s.ctx, "ALTER SEQUENCE tasks_id_seq RESTART WITH 3000000000")
	s.Require().NoError(err)

	created := s.create("Large id")
	s.Equal(int64(3000000000), created.ID)

	retrieved, err := s.storage.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Large id", retrieved.Name)
}

func (s *PostgresTestSuite) TestSchemaRejectsBlankNames() {
	for _, name := range []string{"", "   ", "\t\n"} {
		err := s.storage.Create(s.ctx, &task.Task{Name: name})
		s.Error(err, "%q", name)
	}

	count, err := s.storage.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *PostgresTestSuite) TestDeleteSoft() {
	created := s.create("Task to delete")

	require.NoError(s.T(), s.storage.DeleteSoft(s.ctx, created))
	assert.NotNil(s.T(), created.DeletedAt)

	_, err := s.storage.GetByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)

	assert.ErrorIs(s.T(), s.storage.DeleteSoft(s.ctx, created), repo.ErrNotFound)
	assert.ErrorIs(s.T(), s.storage.Update(s.ctx, created), repo.ErrNotFound)

	count, err := s.storage.Count(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, count)
}

func (s *PostgresTestSuite) TestList() {
	for i := 1; i <= 3; i++ {
		s.create(fmt.Sprintf("Task %d", i))
	}
	deleted := s.create("Deleted Task")
	require.NoError(s.T(), s.storage.DeleteSoft(s.ctx, deleted))

	tasks, err := s.storage.List(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), tasks, 3)
	assert.Equal(s.T(), "Task 3", tasks[0].Name)
	assert.Equal(s.T(), "Task 1", tasks[2].Name)
}

func (s *PostgresTestSuite) TestList_Empty() {
	tasks, err := s.storage.List(s.ctx)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), tasks)
	assert.Empty(s.T(), tasks)
}

func (s *PostgresTestSuite) TestMigrationsAreRepeatable() {
	assert.NoError(s.T(), migrations.Up(s.connString))
}
