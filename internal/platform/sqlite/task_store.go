package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// timeLayout is RFC 3339 with a fixed six-digit fraction.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// SQLiteTaskStore implements the store.TaskStore interface using SQLite.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a new SQLite implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*SQLiteTaskStore)(nil)

const selectTaskColumns = `SELECT id, title, description, status, created_utc, completed_utc FROM tasks`

// Add implements store.TaskStore.Add
func (s *SQLiteTaskStore) Add(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO tasks (id, title, description, status, created_utc, completed_utc)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID().String(),
		task.Title(),
		nullString(task.Description()),
		string(task.Status()),
		formatTime(task.CreatedUtc()),
		formatTimePtr(task.CompletedUtc()),
	)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID().String()))
		return nil, store.NewStoreError("task", "add", "insert failed", MapError(err))
	}

	log.Debug("task inserted", slog.String("task_id", task.ID().String()))
	return task.Clone(), nil
}

// GetAll implements store.TaskStore.GetAll
func (s *SQLiteTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectTaskColumns+` ORDER BY created_utc ASC, seq ASC`)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get_all", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "get_all", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "get_all", "row iteration failed", MapError(err))
	}

	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, selectTaskColumns+` WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "get_by_id", "query failed", MapError(err))
	}

	return task, nil
}

// Update implements store.TaskStore.Update
func (s *SQLiteTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, status = ?, completed_utc = ?
		 WHERE id = ?`,
		task.Title(),
		nullString(task.Description()),
		string(task.Status()),
		formatTimePtr(task.CompletedUtc()),
		task.ID().String(),
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID().String()))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "update", "rows affected unavailable", err)
	}
	if affected == 0 {
		log.Debug("task not found for update", slog.String("task_id", task.ID().String()))
		return store.ErrTaskNotFound
	}

	log.Debug("task updated",
		slog.String("task_id", task.ID().String()),
		slog.String("status", task.Status().String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		rawID       string
		title       string
		description sql.NullString
		status      string
		createdRaw  string
		completed   sql.NullString
	)

	if err := row.Scan(&rawID, &title, &description, &status, &createdRaw, &completed); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse task id %q: %w", rawID, err)
	}
	createdUtc, err := parseTime(createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_utc: %w", err)
	}

	var desc *string
	if description.Valid {
		desc = &description.String
	}
	var completedUtc *time.Time
	if completed.Valid {
		t, err := parseTime(completed.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_utc: %w", err)
		}
		completedUtc = &t
	}

	return domain.RestoreTask(id, title, desc, domain.TaskStatus(status), createdUtc, completedUtc), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, err
		}
	}
	return t.UTC(), nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
