package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

// migrateFunc applies a backend's embedded migrations.
type migrateFunc func(ctx context.Context, db *sql.DB) error

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger. It does not exit; the failure is
// returned by goose and handled by the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// runMigrations applies migrate to db with goose output routed to logger.
func runMigrations(ctx context.Context, db *sql.DB, migrate migrateFunc, logger *slog.Logger) error {
	migrationLogger := logger.With("component", "migrations")
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	defer goose.SetLogger(goose.NopLogger())

	migrationLogger.Info("Applying database migrations")
	if err := migrate(ctx, db); err != nil {
		migrationLogger.Error("Migration failed", "error", err)
		return fmt.Errorf("migrations failed: %w", err)
	}
	migrationLogger.Info("Database schema is up to date")
	return nil
}
