package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task sits in its lifecycle.
type TaskStatus string

// Possible task status values. The string form is also the wire form.
const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Field limits shared by validation and storage.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// now returns the current time at the precision every storage backend keeps.
// Tests in this package replace it to get deterministic timestamps.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// IsValid reports whether s is a recognized status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a wire value into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return status, nil
}

// Task is a unit of work tracked by the system.
//
// Fields are unexported: a Task is created with NewTask (or RestoreTask when
// loading from storage) and changed only through its Update methods, which
// keep the invariants below.
//
//   - id and createdUtc never change after creation
//   - completedUtc is set exactly when status is TaskStatusCompleted
//   - title is never blank
type Task struct {
	id           uuid.UUID
	title        string
	description  *string
	status       TaskStatus
	createdUtc   time.Time
	completedUtc *time.Time
}

// NewTask creates a pending task with a fresh identity.
// The title is trimmed and must not be blank; a blank description is stored as absent.
func NewTask(title string, description *string) (*Task, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrTaskTitleRequired
	}

	return &Task{
		id:          uuid.New(),
		title:       trimmed,
		description: normalizeDescription(description),
		status:      TaskStatusPending,
		createdUtc:  now(),
	}, nil
}

// RestoreTask rebuilds a task from persisted state without re-running
// construction rules. It is intended for storage backends only.
func RestoreTask(
	id uuid.UUID,
	title string,
	description *string,
	status TaskStatus,
	createdUtc time.Time,
	completedUtc *time.Time,
) *Task {
	return &Task{
		id:           id,
		title:        title,
		description:  copyString(description),
		status:       status,
		createdUtc:   createdUtc,
		completedUtc: copyTime(completedUtc),
	}
}

// ID returns the task identity.
func (t *Task) ID() uuid.UUID { return t.id }

// Title returns the trimmed title.
func (t *Task) Title() string { return t.title }

// Description returns the description, or nil when absent.
func (t *Task) Description() *string { return copyString(t.description) }

// Status returns the current status.
func (t *Task) Status() TaskStatus { return t.status }

// CreatedUtc returns the creation timestamp.
func (t *Task) CreatedUtc() time.Time { return t.createdUtc }

// CompletedUtc returns the completion timestamp, or nil unless the task is completed.
func (t *Task) CompletedUtc() *time.Time { return copyTime(t.completedUtc) }

// UpdateTitle replaces the title. It fails if the new title is blank.
func (t *Task) UpdateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTaskTitleRequired
	}
	t.title = trimmed
	return nil
}

// UpdateDescription replaces the description. Blank input clears it.
func (t *Task) UpdateDescription(description *string) {
	t.description = normalizeDescription(description)
}

// UpdateStatus sets the status. Moving to completed always stamps a new
// completion time, even if the task was already completed; moving to
// pending clears it.
func (t *Task) UpdateStatus(status TaskStatus) {
	t.status = status
	if status == TaskStatusCompleted {
		completed := now()
		t.completedUtc = &completed
		return
	}
	t.completedUtc = nil
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	return RestoreTask(t.id, t.title, t.description, t.status, t.createdUtc, t.completedUtc)
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
