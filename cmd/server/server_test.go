package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, url string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               8080,
			LogLevel:           "debug",
			RequestTimeout:     5 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Driver:       driver,
			URL:          url,
			MaxOpenConns: 2,
		},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	l, _ := logger.NewTestLogger()

	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	router, err := newTestApplication(t, cfg).setupRouter()
	require.NoError(t, err)
	return router
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, testConfig(config.DriverMemory, ""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.TraceIDHeader))
}

func TestGraphQLRoute(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			url := ""
			if driver == config.DriverSQLite {
				url = filepath.Join(t.TempDir(), "todo.db")
			}
			router := newTestRouter(t, testConfig(driver, url))

			post := func(body string) *httptest.ResponseRecorder {
				req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)
				return rec
			}

			rec := post(`{"query":"mutation { createTask(input: {title: \"Buy milk\"}) { id status } }"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			var created struct {
				Data struct {
					CreateTask struct {
						ID     string `json:"id"`
						Status string `json:"status"`
					} `json:"createTask"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
			assert.Equal(t, "PENDING", created.Data.CreateTask.Status)

			rec = post(`{"query":"{ getAllTasks { id title } }"}`)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t,
				fmt.Sprintf(`{"data":{"getAllTasks":[{"id":%q,"title":"Buy milk"}]}}`, created.Data.CreateTask.ID),
				rec.Body.String())
		})
	}
}

func TestGraphQLRoute_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, testConfig(config.DriverMemory, ""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assertJSONError(t, rec, "Method not allowed")
}

func TestUnknownRoute_NotFound(t *testing.T) {
	router := newTestRouter(t, testConfig(config.DriverMemory, ""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assertJSONError(t, rec, "Not found")
}

func assertJSONError(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, want, body.Error)
	assert.NotEmpty(t, body.TraceID)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, testConfig(config.DriverMemory, ""))

	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	app := newTestApplication(t, testConfig(config.DriverMemory, ""))
	router, err := app.setupRouter()
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, router) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
