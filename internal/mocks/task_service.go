package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, input service.CreateTaskInput) (*service.TaskDTO, error)
	ListTasksFn        func(ctx context.Context) ([]service.TaskDTO, error)
	UpdateTaskStatusFn func(ctx context.Context, input service.UpdateTaskStatusInput) (*service.TaskDTO, error)

	// Default return values
	Task         *service.TaskDTO
	Tasks        []service.TaskDTO
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, input service.CreateTaskInput) (*service.TaskDTO, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]service.TaskDTO, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// UpdateTaskStatus implements the TaskService.UpdateTaskStatus method
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	input service.UpdateTaskStatusInput,
) (*service.TaskDTO, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, input)
	}
	return m.Task, m.DefaultError
}
