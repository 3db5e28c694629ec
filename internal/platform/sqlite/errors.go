package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/todo-api/internal/store"
)

// SQLite result codes, see https://sqlite.org/rescode.html
const (
	sqliteConstraintCode           = 19
	sqliteConstraintPrimaryKeyCode = 1555
	sqliteConstraintUniqueCode     = 2067
)

func resultCode(err error) (int, bool) {
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		return coder.Code(), true
	}
	return 0, false
}

// MapError maps a driver error to an appropriate store error.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	code, ok := resultCode(err)
	msg := err.Error()

	switch {
	case ok && (code == sqliteConstraintUniqueCode || code == sqliteConstraintPrimaryKeyCode),
		strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case ok && code&0xff == sqliteConstraintCode,
		strings.Contains(msg, "constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return err
}
