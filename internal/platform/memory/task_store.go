package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

type entry struct {
	seq  uint64
	task *domain.Task
}

// TaskStore implements store.TaskStore in memory.
type TaskStore struct {
	mu      sync.RWMutex
	tasks   map[uuid.UUID]*entry
	nextSeq uint64
	logger  *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore.
// If logger is nil, the default logger is used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[uuid.UUID]*entry),
		logger: logger.With(slog.String("component", "task_store_memory")),
	}
}

// Add implements store.TaskStore.Add
func (s *TaskStore) Add(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "add", "context done", err)
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID()]; ok {
		log.Debug("duplicate task id", slog.String("task_id", task.ID().String()))
		return nil, store.NewStoreError("task", "add", "task id already exists", store.ErrDuplicate)
	}

	s.nextSeq++
	s.tasks[task.ID()] = &entry{seq: s.nextSeq, task: task.Clone()}

	log.Debug("task added", slog.String("task_id", task.ID().String()))
	return task.Clone(), nil
}

// GetAll implements store.TaskStore.GetAll
func (s *TaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "get_all", "context done", err)
	}

	s.mu.RLock()
	entries := make([]*entry, 0, len(s.tasks))
	for _, e := range s.tasks {
		entries = append(entries, &entry{seq: e.seq, task: e.task.Clone()})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedUtc().Equal(b.task.CreatedUtc()) {
			return a.task.CreatedUtc().Before(b.task.CreatedUtc())
		}
		return a.seq < b.seq
	})

	tasks := make([]*domain.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, e.task)
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "get_by_id", "context done", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return e.task.Clone(), nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return store.NewStoreError("task", "update", "context done", err)
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[task.ID()]
	if !ok {
		return store.ErrTaskNotFound
	}
	e.task = task.Clone()

	log.Debug("task updated",
		slog.String("task_id", task.ID().String()),
		slog.String("status", task.Status().String()))
	return nil
}
