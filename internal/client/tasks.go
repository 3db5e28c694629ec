package client

import "context"

const taskFields = `id title description status createdUtc completedUtc`

const (
	listTasksQuery = `query TaskListQuery { getAllTasks { ` + taskFields + ` } }`

	createTaskMutation = `mutation AddTaskMutation($input: CreateTaskInput!) {
  createTask(input: $input) { ` + taskFields + ` }
}`

	updateTaskStatusMutation = `mutation UpdateTaskStatusMutation($input: UpdateTaskStatusInput!) {
  updateTaskStatus(input: $input) { ` + taskFields + ` }
}`
)

// Task statuses accepted by UpdateTaskStatus.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// ListTasks returns every task in creation order.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var data struct {
		GetAllTasks []Task `json:"getAllTasks"`
	}
	if err := c.Do(ctx, "TaskListQuery", listTasksQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.GetAllTasks == nil {
		return []Task{}, nil
	}
	return data.GetAllTasks, nil
}

// CreateTask creates a pending task. A nil description is omitted.
func (c *Client) CreateTask(ctx context.Context, title string, description *string) (*Task, error) {
	input := map[string]interface{}{"title": title}
	if description != nil {
		input["description"] = *description
	}

	var data struct {
		CreateTask *Task `json:"createTask"`
	}
	if err := c.Do(ctx, "AddTaskMutation", createTaskMutation,
		map[string]interface{}{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.CreateTask, nil
}

// UpdateTaskStatus moves a task to status. It returns (nil, nil) when the
// server has no task with that id.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) (*Task, error) {
	var data struct {
		UpdateTaskStatus *Task `json:"updateTaskStatus"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{"id": id, "status": status},
	}
	if err := c.Do(ctx, "UpdateTaskStatusMutation", updateTaskStatusMutation, vars, &data); err != nil {
		return nil, err
	}
	return data.UpdateTaskStatus, nil
}
