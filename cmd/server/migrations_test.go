package main

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogGooseLogger(t *testing.T) {
	l, buf := logger.NewTestLogger()
	gl := &slogGooseLogger{logger: l}

	gl.Printf("OK   %s (%d ms)\n", "00001_create_tasks.sql", 3)
	gl.Fatalf("failed to apply %s", "00002")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "OK   00001_create_tasks.sql (3 ms)", entries[0]["msg"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "failed to apply 00002", entries[1]["msg"])
}

func TestRunMigrations_PropagatesFailure(t *testing.T) {
	l, buf := logger.NewTestLogger()
	boom := errors.New("boom")

	err := runMigrations(context.Background(), nil, func(context.Context, *sql.DB) error {
		return boom
	}, l)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), `"component":"migrations"`)
}
