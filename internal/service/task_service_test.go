package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newMemoryService(t *testing.T) TaskService {
	t.Helper()
	l, _ := logger.NewTestLogger()
	svc, err := NewTaskService(memory.NewTaskStore(l), l)
	require.NoError(t, err)
	return svc
}

func TestNewTaskService(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		svc, err := NewTaskService(nil, nil)
		assert.Nil(t, svc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "taskStore")
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		svc, err := NewTaskService(&MockTaskStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending task", func(t *testing.T) {
		svc := newMemoryService(t)
		before := time.Now().UTC().Add(-time.Second)

		dto, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       "  Buy milk  ",
			Description: strPtr(" 2 litres "),
		})
		require.NoError(t, err)
		require.NotNil(t, dto)

		assert.NotEqual(t, uuid.Nil, dto.ID)
		assert.Equal(t, "Buy milk", dto.Title)
		assert.Equal(t, strPtr("2 litres"), dto.Description)
		assert.Equal(t, domain.TaskStatusPending, dto.Status)
		assert.True(t, dto.CreatedUtc.After(before))
		assert.Equal(t, time.UTC, dto.CreatedUtc.Location())
		assert.Nil(t, dto.CompletedUtc)

		all, err := svc.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, dto.ID, all[0].ID)
	})

	t.Run("blank description is absent", func(t *testing.T) {
		svc := newMemoryService(t)

		dto, err := svc.CreateTask(ctx, CreateTaskInput{Title: "t", Description: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, dto.Description)
	})

	tests := []struct {
		name     string
		input    CreateTaskInput
		messages []string
	}{
		{
			name:     "empty title",
			input:    CreateTaskInput{Title: ""},
			messages: []string{"'title' must not be empty"},
		},
		{
			name:     "whitespace title",
			input:    CreateTaskInput{Title: "   "},
			messages: []string{"'title' must not be empty"},
		},
		{
			name:     "title too long",
			input:    CreateTaskInput{Title: strings.Repeat("a", 201)},
			messages: []string{"The length of 'title' must be 200 characters or fewer"},
		},
		{
			name: "description too long",
			input: CreateTaskInput{
				Title:       "ok",
				Description: strPtr(strings.Repeat("d", 1001)),
			},
			messages: []string{"The length of 'description' must be 1000 characters or fewer"},
		},
		{
			name: "all violations reported",
			input: CreateTaskInput{
				Title:       "",
				Description: strPtr(strings.Repeat("d", 1001)),
			},
			messages: []string{
				"'title' must not be empty",
				"The length of 'description' must be 1000 characters or fewer",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newMemoryService(t)

			dto, err := svc.CreateTask(ctx, tc.input)
			assert.Nil(t, dto)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.messages, verr.Messages())

			all, err := svc.ListTasks(ctx)
			require.NoError(t, err)
			assert.Empty(t, all, "rejected input must not be stored")
		})
	}

	t.Run("boundary lengths accepted", func(t *testing.T) {
		svc := newMemoryService(t)

		dto, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       strings.Repeat("a", 200),
			Description: strPtr(strings.Repeat("d", 1000)),
		})
		require.NoError(t, err)
		assert.Len(t, dto.Title, 200)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		ms := &MockTaskStore{}
		boom := errors.New("disk full")
		ms.On("Add", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(nil, boom)

		svc, err := NewTaskService(ms, nil)
		require.NoError(t, err)

		dto, err := svc.CreateTask(ctx, CreateTaskInput{Title: "t"})
		assert.Nil(t, dto)
		assert.ErrorIs(t, err, boom)

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
		ms.AssertExpectations(t)
	})

	t.Run("id collision is logged as warning", func(t *testing.T) {
		ms := &MockTaskStore{}
		dup := store.NewStoreError("task", "add", "insert failed", store.ErrDuplicate)
		ms.On("Add", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(nil, dup)

		l, buf := logger.NewTestLogger()
		svc, err := NewTaskService(ms, l)
		require.NoError(t, err)

		dto, err := svc.CreateTask(ctx, CreateTaskInput{Title: "t"})
		assert.Nil(t, dto)
		assert.ErrorIs(t, err, store.ErrDuplicate)

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		last := entries[len(entries)-1]
		assert.Equal(t, "WARN", last["level"])
		assert.Equal(t, "generated task id already stored", last["msg"])
		ms.AssertExpectations(t)
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		svc := newMemoryService(t)

		tasks, err := svc.ListTasks(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("creation order", func(t *testing.T) {
		svc := newMemoryService(t)

		var ids []uuid.UUID
		for _, title := range []string{"A", "B", "C"} {
			dto, err := svc.CreateTask(ctx, CreateTaskInput{Title: title})
			require.NoError(t, err)
			ids = append(ids, dto.ID)
		}

		tasks, err := svc.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		for i, task := range tasks {
			assert.Equal(t, ids[i], task.ID)
		}
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		ms := &MockTaskStore{}
		ms.On("GetAll", mock.Anything).Return(nil, context.DeadlineExceeded)

		svc, err := NewTaskService(ms, nil)
		require.NoError(t, err)

		tasks, err := svc.ListTasks(ctx)
		assert.Nil(t, tasks)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		ms.AssertExpectations(t)
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("complete then reopen", func(t *testing.T) {
		svc := newMemoryService(t)
		created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "t"})
		require.NoError(t, err)

		done, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     created.ID.String(),
			Status: "COMPLETED",
		})
		require.NoError(t, err)
		require.NotNil(t, done)
		assert.Equal(t, domain.TaskStatusCompleted, done.Status)
		require.NotNil(t, done.CompletedUtc)
		assert.False(t, done.CompletedUtc.Before(created.CreatedUtc))
		assert.Equal(t, created.CreatedUtc, done.CreatedUtc)

		reopened, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     created.ID.String(),
			Status: "PENDING",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, reopened.Status)
		assert.Nil(t, reopened.CompletedUtc)

		tasks, err := svc.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.TaskStatusPending, tasks[0].Status)
	})

	t.Run("uppercase id is accepted", func(t *testing.T) {
		svc := newMemoryService(t)
		created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "shout"})
		require.NoError(t, err)

		dto, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     strings.ToUpper(created.ID.String()),
			Status: "COMPLETED",
		})
		require.NoError(t, err)
		require.NotNil(t, dto)
		assert.Equal(t, created.ID, dto.ID)
		assert.Equal(t, domain.TaskStatusCompleted, dto.Status)
	})

	t.Run("unknown id yields nil result", func(t *testing.T) {
		svc := newMemoryService(t)

		dto, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     uuid.NewString(),
			Status: "COMPLETED",
		})
		assert.NoError(t, err)
		assert.Nil(t, dto)
	})

	tests := []struct {
		name     string
		input    UpdateTaskStatusInput
		messages []string
	}{
		{
			name:     "missing id",
			input:    UpdateTaskStatusInput{Status: "COMPLETED"},
			messages: []string{"'id' must not be empty"},
		},
		{
			name:     "malformed id",
			input:    UpdateTaskStatusInput{ID: "not-a-uuid", Status: "COMPLETED"},
			messages: []string{"'id' must be a valid UUID"},
		},
		{
			name:     "unknown status",
			input:    UpdateTaskStatusInput{ID: uuid.NewString(), Status: "DONE"},
			messages: []string{"'status' must be one of: PENDING, COMPLETED"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newMemoryService(t)

			dto, err := svc.UpdateTaskStatus(ctx, tc.input)
			assert.Nil(t, dto)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.messages, verr.Messages())
		})
	}

	t.Run("load failure is wrapped", func(t *testing.T) {
		ms := &MockTaskStore{}
		boom := errors.New("connection reset")
		ms.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, boom)

		svc, err := NewTaskService(ms, nil)
		require.NoError(t, err)

		dto, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     uuid.NewString(),
			Status: "COMPLETED",
		})
		assert.Nil(t, dto)
		assert.ErrorIs(t, err, boom)
		ms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("save failure is wrapped", func(t *testing.T) {
		task, err := domain.NewTask("t", nil)
		require.NoError(t, err)

		ms := &MockTaskStore{}
		ms.On("GetByID", mock.Anything, task.ID()).Return(task, nil)
		ms.On("Update", mock.Anything, mock.AnythingOfType("*domain.Task")).
			Return(store.NewStoreError("task", "update", "write failed", errors.New("locked")))

		svc, err := NewTaskService(ms, nil)
		require.NoError(t, err)

		dto, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     task.ID().String(),
			Status: "COMPLETED",
		})
		assert.Nil(t, dto)

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "update_task_status", svcErr.Operation)
		ms.AssertExpectations(t)
	})

	t.Run("lowercase status rejected", func(t *testing.T) {
		svc := newMemoryService(t)

		_, err := svc.UpdateTaskStatus(ctx, UpdateTaskStatusInput{
			ID:     uuid.NewString(),
			Status: "completed",
		})
		assert.True(t, validation.IsValidationError(err))
	})
}
