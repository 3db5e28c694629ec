// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles opening the pgx-backed database/sql pool, applying the embedded
// goose migrations, and mapping between domain tasks and table rows.
package postgres
