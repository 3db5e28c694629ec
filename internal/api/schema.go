package api

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth bounds selection nesting; the schema itself is two levels deep.
const maxQueryDepth = 8

// NewSchema parses the embedded schema and binds it to tasks.
func NewSchema(tasks service.TaskService, log *slog.Logger) (*graphql.Schema, error) {
	if tasks == nil {
		return nil, fmt.Errorf("tasks service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "graphql"))

	schema, err := graphql.ParseSchema(
		schemaSDL,
		&Resolver{tasks: tasks, logger: log},
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(&panicLogger{logger: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics recovered by graphql-go into slog.
type panicLogger struct {
	logger *slog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.FromContextOrDefault(ctx, l.logger).Error("graphql resolver panic",
		slog.String("panic", fmt.Sprint(value)),
		slog.String("stack", string(debug.Stack())))
}
