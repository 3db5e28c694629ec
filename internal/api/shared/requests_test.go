package shared

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/todo-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Query string `json:"query"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     error
		errContains string
		want        string
	}{
		{
			name:        "valid json",
			requestBody: `{"query": "{ getAllTasks { id } }"}`,
			want:        "{ getAllTasks { id } }",
		},
		{
			name:        "invalid json",
			requestBody: `{"query": "x",}`,
			errContains: "invalid JSON body",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     ErrEmptyBody,
		},
		{
			name:        "oversized body",
			requestBody: `{"query": "` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`,
			errContains: "too large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(tc.requestBody))
			rec := httptest.NewRecorder()

			var got payload
			err := DecodeJSON(rec, req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got.Query)
			}
		})
	}
}

type selfValidating struct{ err error }

func (s selfValidating) Validate() error { return s.err }

func TestValidateRequest(t *testing.T) {
	type request struct {
		Query string `json:"query" validate:"notblank"`
	}

	assert.NoError(t, ValidateRequest(request{Query: "{ getAllTasks { id } }"}))

	err := ValidateRequest(request{Query: "  "})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"'query' must not be empty"}, verr.Messages())

	boom := errors.New("custom")
	assert.ErrorIs(t, ValidateRequest(selfValidating{err: boom}), boom)
}
