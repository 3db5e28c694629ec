package api

import (
	"context"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/service"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	tasks  service.TaskService
	logger *slog.Logger
}

type createTaskArgs struct {
	Input struct {
		Title       string
		Description *string
	}
}

type updateTaskStatusArgs struct {
	Input struct {
		ID     UUID
		Status string
	}
}

// GetAllTasks resolves Query.getAllTasks.
func (r *Resolver) GetAllTasks(ctx context.Context) ([]*taskResolver, error) {
	tasks, err := r.tasks.ListTasks(ctx)
	if err != nil {
		return nil, presentAndLog(ctx, r.logger, "getAllTasks", err)
	}

	out := make([]*taskResolver, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, &taskResolver{task: task})
	}
	return out, nil
}

// CreateTask resolves Mutation.createTask.
func (r *Resolver) CreateTask(ctx context.Context, args createTaskArgs) (*taskResolver, error) {
	task, err := r.tasks.CreateTask(ctx, service.CreateTaskInput{
		Title:       args.Input.Title,
		Description: args.Input.Description,
	})
	if err != nil {
		return nil, presentAndLog(ctx, r.logger, "createTask", err)
	}
	return &taskResolver{task: *task}, nil
}

// UpdateTaskStatus resolves Mutation.updateTaskStatus. A missing task
// resolves to null without an error.
func (r *Resolver) UpdateTaskStatus(ctx context.Context, args updateTaskStatusArgs) (*taskResolver, error) {
	task, err := r.tasks.UpdateTaskStatus(ctx, service.UpdateTaskStatusInput{
		ID:     string(args.Input.ID),
		Status: args.Input.Status,
	})
	if err != nil {
		return nil, presentAndLog(ctx, r.logger, "updateTaskStatus", err)
	}
	if task == nil {
		return nil, nil
	}
	return &taskResolver{task: *task}, nil
}

type taskResolver struct {
	task service.TaskDTO
}

func (t *taskResolver) ID() UUID {
	return UUID(t.task.ID.String())
}

func (t *taskResolver) Title() string {
	return t.task.Title
}

func (t *taskResolver) Description() *string {
	return t.task.Description
}

func (t *taskResolver) Status() string {
	return string(t.task.Status)
}

func (t *taskResolver) CreatedUtc() DateTime {
	return DateTime{t.task.CreatedUtc}
}

func (t *taskResolver) CompletedUtc() *DateTime {
	if t.task.CompletedUtc == nil {
		return nil
	}
	return &DateTime{*t.task.CompletedUtc}
}
