package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/validation"
)

// CreateTaskInput is the request to create a task.
type CreateTaskInput struct {
	Title       string  `json:"title"       validate:"notblank,trimmedmax=200"`
	Description *string `json:"description" validate:"omitempty,trimmedmax=1000"`
}

// UpdateTaskStatusInput is the request to move a task to another status.
type UpdateTaskStatusInput struct {
	ID     string `json:"id"     validate:"required,uuidany"`
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

// TaskDTO is the API-facing representation of a task.
type TaskDTO struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	Status       domain.TaskStatus `json:"status"`
	CreatedUtc   time.Time         `json:"createdUtc"`
	CompletedUtc *time.Time        `json:"completedUtc,omitempty"`
}

// TaskService provides the task lifecycle use cases.
type TaskService interface {
	// CreateTask validates input, creates a pending task and persists it.
	CreateTask(ctx context.Context, input CreateTaskInput) (*TaskDTO, error)

	// ListTasks returns all tasks ordered by creation time.
	ListTasks(ctx context.Context) ([]TaskDTO, error)

	// UpdateTaskStatus changes a task's status and returns the updated task.
	// It returns (nil, nil) when no task has the given ID.
	UpdateTaskStatus(ctx context.Context, input UpdateTaskStatusInput) (*TaskDTO, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if taskStore is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  taskStore,
		logger: logger.With("component", "task_service"),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskDTO, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validation.Struct(input); err != nil {
		log.Debug("create task request failed validation", "error", err)
		return nil, NewTaskServiceError("create_task", "invalid input", err)
	}

	task, err := domain.NewTask(input.Title, input.Description)
	if err != nil {
		log.Debug("task construction rejected", "error", err)
		return nil, NewTaskServiceError("create_task", "failed to create task object", err)
	}

	created, err := s.tasks.Add(ctx, task)
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Warn("generated task id already stored",
				"error", err,
				"task_id", task.ID())
			return nil, NewTaskServiceError("create_task", "failed to save task", err)
		}
		log.Error("failed to save task",
			"error", err,
			"task_id", task.ID())
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", "task_id", created.ID())
	return toDTO(created), nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]TaskDTO, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		return nil, NewTaskServiceError("list_tasks", "failed to load tasks", err)
	}

	out := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, *toDTO(task))
	}

	log.Debug("tasks listed", "count", len(out))
	return out, nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	input UpdateTaskStatusInput,
) (*TaskDTO, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validation.Struct(input); err != nil {
		log.Debug("update task status request failed validation", "error", err)
		return nil, NewTaskServiceError("update_task_status", "invalid input", err)
	}

	// Both parse steps are covered by validation above.
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, NewTaskServiceError("update_task_status", "invalid task id",
			domain.NewArgumentError("id", err.Error()))
	}
	status, err := domain.ParseTaskStatus(input.Status)
	if err != nil {
		return nil, NewTaskServiceError("update_task_status", "invalid status",
			domain.NewArgumentError("status", err.Error()))
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for status update", "task_id", id)
			return nil, nil
		}
		log.Error("failed to load task", "error", err, "task_id", id)
		return nil, NewTaskServiceError("update_task_status", "failed to load task", err)
	}

	task.UpdateStatus(status)

	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to save task status",
			"error", err,
			"task_id", id,
			"status", status)
		return nil, NewTaskServiceError("update_task_status", "failed to save task", err)
	}

	log.Info("task status updated", "task_id", id, "status", status)
	return toDTO(task), nil
}

// toDTO converts a domain.Task to its API representation.
func toDTO(task *domain.Task) *TaskDTO {
	return &TaskDTO{
		ID:           task.ID(),
		Title:        task.Title(),
		Description:  task.Description(),
		Status:       task.Status(),
		CreatedUtc:   task.CreatedUtc(),
		CompletedUtc: task.CompletedUtc(),
	}
}
