package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"dateTracker/internal/logger"
	"dateTracker/internal/models/task"
	repo "dateTracker/internal/repository"
)

// TaskStorage keeps tasks in process memory. Soft-deleted tasks stay in the
// map and are filtered out on read. Callers always get copies.
type TaskStorage struct {
	storage map[int64]*task.Task
	mtx     *sync.RWMutex
	nextID  int64
	now     func() time.Time
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*task.Task),
		mtx:     &sync.RWMutex{},
		nextID:  1,
		now:     time.Now,
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: in-memory store is always available")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := s.now()
	taskToCreate.ID = s.nextID
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now
	taskToCreate.DeletedAt = nil
	s.nextID++

	s.storage[taskToCreate.ID] = clone(taskToCreate)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok || existing.IsDeleted() {
		return repo.ErrNotFound
	}

	existing.Name = taskToUpdate.Name
	existing.Description = cloneString(taskToUpdate.Description)
	existing.IsCompleted = taskToUpdate.IsCompleted
	existing.UpdatedAt = s.now()

	*taskToUpdate = *clone(existing)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok || taskToGet.IsDeleted() {
		return nil, repo.ErrNotFound
	}
	return clone(taskToGet), nil
}

// DeleteSoft keeps the row and stamps DeletedAt.
func (s *TaskStorage) DeleteSoft(ctx context.Context, taskToDelete *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToDelete.ID]
	if !ok || existing.IsDeleted() {
		return repo.ErrNotFound
	}

	now := s.now()
	existing.DeletedAt = &now
	taskToDelete.DeletedAt = &now
	return nil
}

// List returns live tasks, newest first.
func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.storage))
	for _, t := range s.storage {
		if t.IsDeleted() {
			continue
		}
		res = append(res, clone(t))
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

// Len counts stored rows including soft-deleted ones.
func (s *TaskStorage) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.storage)
}

func clone(t *task.Task) *task.Task {
	c := *t
	c.Description = cloneString(t.Description)
	if t.DeletedAt != nil {
		d := *t.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
