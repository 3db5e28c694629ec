package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// setupTaskStore opens the configured backend and brings its schema up to
// date. The returned *sql.DB is nil for the memory driver.
func setupTaskStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (store.TaskStore, *sql.DB, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory task storage; tasks are lost on restart")
		return memory.NewTaskStore(logger), nil, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(ctx, db, sqlite.Migrate, logger); err != nil {
			closeQuietly(db, logger)
			return nil, nil, err
		}
		logger.Info("Database connection established", "driver", cfg.Driver, "path", cfg.URL)
		return sqlite.NewSQLiteTaskStore(db, logger), db, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to %s: %w", redact.DSN(cfg.URL), err)
		}
		if err := runMigrations(ctx, db, postgres.Migrate, logger); err != nil {
			closeQuietly(db, logger)
			return nil, nil, err
		}
		logger.Info("Database connection established",
			"driver", cfg.Driver,
			"url", redact.DSN(cfg.URL))
		return postgres.NewPostgresTaskStore(db, logger), db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("Error closing database connection", "error", err)
	}
}
