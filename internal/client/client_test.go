package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/client"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *client.Client {
	t.Helper()
	l, _ := logger.NewTestLogger()

	svc, err := service.NewTaskService(memory.NewTaskStore(l), l)
	require.NoError(t, err)
	h, err := api.NewGraphQLHandler(svc, l)
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }

func TestNew_RequiresURL(t *testing.T) {
	_, err := client.New("  ")
	assert.ErrorIs(t, err, client.ErrEmptyURL)
}

func TestTaskLifecycle(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	first, err := c.CreateTask(ctx, "Buy milk", nil)
	require.NoError(t, err)
	assert.Equal(t, client.StatusPending, first.Status)
	assert.Nil(t, first.Description)
	assert.Nil(t, first.CompletedUtc)
	assert.False(t, first.CreatedUtc.IsZero())

	second, err := c.CreateTask(ctx, "Write report", strPtr("quarterly"))
	require.NoError(t, err)
	require.NotNil(t, second.Description)
	assert.Equal(t, "quarterly", *second.Description)

	done, err := c.UpdateTaskStatus(ctx, first.ID, client.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, client.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedUtc)

	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, client.StatusCompleted, tasks[0].Status)
	assert.Equal(t, second.ID, tasks[1].ID)

	reopened, err := c.UpdateTaskStatus(ctx, first.ID, client.StatusPending)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedUtc)
}

func TestUpdateTaskStatus_NotFound(t *testing.T) {
	c := newTestServer(t)

	task, err := c.UpdateTaskStatus(context.Background(), uuid.NewString(), client.StatusCompleted)
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func TestServerErrors(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, err := c.CreateTask(ctx, " ", nil)
	var respErr *client.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "Validation failed: 'title' must not be empty", respErr.Error())
	assert.Equal(t, api.CodeValidationFailed, respErr.Code())

	_, err = c.UpdateTaskStatus(ctx, "nope", client.StatusCompleted)
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "Validation failed: 'id' must be a valid UUID", respErr.Error())
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())
	var statusErr *client.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "graphql request: http 502: upstream unavailable", err.Error())
}

func TestContextCanceled(t *testing.T) {
	c := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
