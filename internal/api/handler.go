package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// GraphQLHandler serves POST /graphql.
type GraphQLHandler struct {
	schema *graphql.Schema
	logger *slog.Logger
}

// NewGraphQLHandler creates a new GraphQLHandler backed by tasks.
func NewGraphQLHandler(tasks service.TaskService, log *slog.Logger) (*GraphQLHandler, error) {
	if log == nil {
		log = slog.Default()
	}

	schema, err := NewSchema(tasks, log)
	if err != nil {
		return nil, err
	}

	return &GraphQLHandler{
		schema: schema,
		logger: log.With(slog.String("component", "graphql")),
	}, nil
}

type graphQLRequest struct {
	Query         string                 `json:"query"         validate:"notblank"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data       json.RawMessage         `json:"data,omitempty"`
	Errors     []*gqlerrors.QueryError `json:"errors,omitempty"`
	Extensions map[string]interface{}  `json:"extensions,omitempty"`
}

// ServeHTTP executes one GraphQL operation. Transport failures get a 4xx
// status; anything the executor reports, including resolver errors, is a
// 200 with an "errors" member.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req graphQLRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, PresentError(err).Message, err)
		return
	}

	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	for _, qe := range resp.Errors {
		if qe.ResolverError == nil {
			log.Debug("graphql request rejected",
				slog.String("operation", req.OperationName),
				slog.String("error", qe.Message))
		}
	}

	data := resp.Data
	if len(data) > 0 {
		stripped, err := StripNestedNulls(data)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to encode response", err)
			return
		}
		data = stripped
	}

	shared.RespondWithJSON(w, r, http.StatusOK, graphQLResponse{
		Data:       data,
		Errors:     resp.Errors,
		Extensions: resp.Extensions,
	})
}
