package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/models"
)

// MemoryTaskStore is an in-memory TaskStore. It backs the test suites
// and keeps the same observable semantics as the Postgres store:
// newest-created first, owner-scoped everything, two-step updates.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks []models.Task // newest first

	// Error injection for testing store failures.
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{}
}

func (s *MemoryTaskStore) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Task{}
	for _, t := range s.tasks {
		if t.UserID.String() == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryTaskStore) Create(ctx context.Context, ownerID string, draft models.TaskDraft) (models.Task, error) {
	if s.CreateErr != nil {
		return models.Task{}, s.CreateErr
	}
	task, err := normalizeDraft(draft)
	if err != nil {
		return models.Task{}, err
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return models.Task{}, err
	}
	task.ID = uuid.New()
	task.UserID = owner
	task.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]models.Task{task}, s.tasks...)
	return task, nil
}

func (s *MemoryTaskStore) Update(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (models.Task, error) {
	if s.UpdateErr != nil {
		return models.Task{}, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(ownerID, taskID)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	task := s.tasks[i]
	if err := applyPatch(&task, patch); err != nil {
		return models.Task{}, err
	}
	s.tasks[i] = task
	return task, nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, ownerID, taskID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(ownerID, taskID)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *MemoryTaskStore) indexOf(ownerID, taskID string) int {
	for i, t := range s.tasks {
		if t.ID.String() == taskID && t.UserID.String() == ownerID {
			return i
		}
	}
	return -1
}
