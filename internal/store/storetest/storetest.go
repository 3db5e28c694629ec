// Package storetest provides a behavioural test suite that every
// store.TaskStore implementation must pass.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Factory returns an empty TaskStore for a single subtest.
// Any cleanup must be registered with t.Cleanup.
type Factory func(t *testing.T) store.TaskStore

var baseTime = time.Date(2026, time.January, 10, 8, 0, 0, 123456000, time.UTC)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// NewTaskAt builds a task with a fixed creation time.
func NewTaskAt(title string, created time.Time) *domain.Task {
	return domain.RestoreTask(uuid.New(), title, nil, domain.TaskStatusPending, created, nil)
}

// AssertTaskEqual compares two tasks field by field, treating timestamps by instant.
func AssertTaskEqual(t *testing.T, want, got *domain.Task) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID(), got.ID(), "id")
	assert.Equal(t, want.Title(), got.Title(), "title")
	assert.Equal(t, want.Description(), got.Description(), "description")
	assert.Equal(t, want.Status(), got.Status(), "status")
	assert.True(t, want.CreatedUtc().Equal(got.CreatedUtc()),
		"createdUtc: want %s, got %s", want.CreatedUtc(), got.CreatedUtc())
	if want.CompletedUtc() == nil {
		assert.Nil(t, got.CompletedUtc(), "completedUtc")
	} else {
		require.NotNil(t, got.CompletedUtc(), "completedUtc")
		assert.True(t, want.CompletedUtc().Equal(*got.CompletedUtc()),
			"completedUtc: want %s, got %s", *want.CompletedUtc(), *got.CompletedUtc())
	}
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title())
	}
	return out
}

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("add_and_get_by_id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := domain.RestoreTask(uuid.New(), "Write spec", strPtr("first draft"),
			domain.TaskStatusPending, baseTime, nil)

		added, err := s.Add(ctx, task)
		require.NoError(t, err)
		AssertTaskEqual(t, task, added)

		got, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		AssertTaskEqual(t, task, got)
	})

	t.Run("get_by_id_missing", func(t *testing.T) {
		s := newStore(t)

		got, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.True(t, store.IsNotFoundError(err))
		assert.Nil(t, got)
	})

	t.Run("add_duplicate_id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := NewTaskAt("original", baseTime)
		_, err := s.Add(ctx, task)
		require.NoError(t, err)

		dup := domain.RestoreTask(task.ID(), "copy", nil, domain.TaskStatusPending, baseTime, nil)
		_, err = s.Add(ctx, dup)
		assert.ErrorIs(t, err, store.ErrDuplicate)

		got, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		assert.Equal(t, "original", got.Title())
	})

	t.Run("get_all_empty", func(t *testing.T) {
		s := newStore(t)

		tasks, err := s.GetAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("get_all_orders_by_creation_then_insertion", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		later := NewTaskAt("later", baseTime.Add(time.Minute))
		first := NewTaskAt("first", baseTime)
		sameInstant := NewTaskAt("same instant", baseTime)
		earliest := NewTaskAt("earliest", baseTime.Add(-time.Minute))

		for _, task := range []*domain.Task{later, first, sameInstant, earliest} {
			_, err := s.Add(ctx, task)
			require.NoError(t, err)
		}

		for i := 0; i < 3; i++ {
			tasks, err := s.GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"earliest", "first", "same instant", "later"}, titles(tasks))
		}
	})

	t.Run("update_overwrites_record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := NewTaskAt("title", baseTime)
		_, err := s.Add(ctx, task)
		require.NoError(t, err)

		completed := domain.RestoreTask(task.ID(), "renamed", strPtr("now described"),
			domain.TaskStatusCompleted, baseTime, timePtr(baseTime.Add(time.Hour)))
		require.NoError(t, s.Update(ctx, completed))

		got, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		AssertTaskEqual(t, completed, got)

		reopened := domain.RestoreTask(task.ID(), "renamed", nil,
			domain.TaskStatusPending, baseTime, nil)
		require.NoError(t, s.Update(ctx, reopened))

		got, err = s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		AssertTaskEqual(t, reopened, got)
	})

	t.Run("update_missing", func(t *testing.T) {
		s := newStore(t)

		err := s.Update(context.Background(), NewTaskAt("ghost", baseTime))
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("update_keeps_order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := NewTaskAt("A", baseTime)
		b := NewTaskAt("B", baseTime.Add(time.Second))
		c := NewTaskAt("C", baseTime.Add(2*time.Second))
		for _, task := range []*domain.Task{a, b, c} {
			_, err := s.Add(ctx, task)
			require.NoError(t, err)
		}

		updated := a.Clone()
		updated.UpdateStatus(domain.TaskStatusCompleted)
		require.NoError(t, s.Update(ctx, updated))

		tasks, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, titles(tasks))
	})

	t.Run("returned_tasks_are_detached", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := NewTaskAt("title", baseTime)
		_, err := s.Add(ctx, task)
		require.NoError(t, err)

		got, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		got.UpdateStatus(domain.TaskStatusCompleted)

		again, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, again.Status())
	})

	t.Run("canceled_context", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Add(ctx, NewTaskAt("title", baseTime))
		assert.ErrorIs(t, err, context.Canceled)

		_, err = s.GetAll(ctx)
		assert.ErrorIs(t, err, context.Canceled)

		_, err = s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, context.Canceled)

		err = s.Update(ctx, NewTaskAt("title", baseTime))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("concurrent_add_and_update", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const workers = 20
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				task := NewTaskAt(fmt.Sprintf("task %d", i), baseTime.Add(time.Duration(i)*time.Second))
				if _, err := s.Add(gctx, task); err != nil {
					return err
				}
				task.UpdateStatus(domain.TaskStatusCompleted)
				return s.Update(gctx, task)
			})
		}
		require.NoError(t, g.Wait())

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, workers)
		for i, task := range all {
			assert.Equal(t, fmt.Sprintf("task %d", i), task.Title())
			assert.Equal(t, domain.TaskStatusCompleted, task.Status())
			assert.NotNil(t, task.CompletedUtc())
		}

		shared := NewTaskAt("shared", baseTime)
		_, err = s.Add(ctx, shared)
		require.NoError(t, err)

		g, gctx = errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				update := shared.Clone()
				if i%2 == 0 {
					update.UpdateStatus(domain.TaskStatusCompleted)
				} else {
					update.UpdateStatus(domain.TaskStatusPending)
				}
				return s.Update(gctx, update)
			})
		}
		require.NoError(t, g.Wait())

		// Last writer wins; the record must still be one of the written states.
		got, err := s.GetByID(ctx, shared.ID())
		require.NoError(t, err)
		switch got.Status() {
		case domain.TaskStatusCompleted:
			assert.NotNil(t, got.CompletedUtc())
		case domain.TaskStatusPending:
			assert.Nil(t, got.CompletedUtc())
		default:
			t.Fatalf("unexpected status %q", got.Status())
		}
	})
}
