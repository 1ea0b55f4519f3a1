package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"travel-assistant-core/internal/orchestrator"
	"travel-assistant-core/pkg/response"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, args ...any)  {}

type fakeCore struct {
	outcome orchestrator.ExecutionOutcome
	err     error
}

func (f *fakeCore) ProcessRequest(ctx context.Context, userID, text string, updates map[string]string) (orchestrator.ExecutionOutcome, error) {
	return f.outcome, f.err
}

func (f *fakeCore) HealthMetrics(ctx context.Context) orchestrator.Metrics {
	return orchestrator.Metrics{
		ActiveRequests:       0,
		TotalUsers:           3,
		AverageExecutionTime: 25 * time.Millisecond,
		OptimizationScore:    0.52,
	}
}

func testServer(t *testing.T, core Core) *HTTPServer {
	t.Helper()
	srv, err := New(&mockLogger{}, Config{
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		Core:        core,
	})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return srv
}

func TestHTTPServer_Health(t *testing.T) {
	srv := testServer(t, &fakeCore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.gin.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHTTPServer_ProcessMessage(t *testing.T) {
	core := &fakeCore{outcome: orchestrator.ExecutionOutcome{
		RequestID:  "req-1",
		WorkflowID: "wf-1",
		Primary:    "book_flight",
		Success:    true,
	}}
	srv := testServer(t, core)

	body := `{"user_id":"user-1","text":"fly to Tokyo"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.gin.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ErrorCode != 0 {
		t.Errorf("expected ErrorCode 0, got %d", resp.ErrorCode)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["primary_intent"] != "book_flight" {
		t.Errorf("unexpected payload: %v", resp.Data)
	}
}

func TestHTTPServer_ProcessMessage_BadRequest(t *testing.T) {
	srv := testServer(t, &fakeCore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.gin.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHTTPServer_ProcessMessage_ShuttingDown(t *testing.T) {
	srv := testServer(t, &fakeCore{err: orchestrator.ErrShuttingDown})

	body := `{"user_id":"user-1","text":"fly to Tokyo"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.gin.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestHTTPServer_Metrics(t *testing.T) {
	srv := testServer(t, &fakeCore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/metrics", nil)
	srv.gin.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["total_users"] != float64(3) {
		t.Errorf("unexpected payload: %v", resp.Data)
	}
	stamp, ok := data["generated_at"].(string)
	if !ok {
		t.Fatalf("expected generated_at string, got %T", data["generated_at"])
	}
	if _, err := time.ParseInLocation(response.DateTimeFormat, stamp, time.Local); err != nil {
		t.Errorf("generated_at %q not in %q format: %v", stamp, response.DateTimeFormat, err)
	}
}
