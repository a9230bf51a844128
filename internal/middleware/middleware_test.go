package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetwise/pkg/logging"
)

// captureLogs routes the default logger into a buffer for one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, slog.LevelDebug))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/budgetwise.v1.LedgerService/GetState", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the next handler")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}

func TestCORS_PassThrough(t *testing.T) {
	h := HTTPLogging(CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("missing Access-Control-Allow-Methods")
	}
}

func TestLoggingInterceptor_Levels(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    string
		notWant string
		msg     string
	}{
		{"client error logs warn", connect.NewError(connect.CodeNotFound, errors.New("friend 9")), "WRN", "ERR", "RPC error"},
		{"precondition logs warn", connect.NewError(connect.CodeFailedPrecondition, errors.New("form closed")), "WRN", "ERR", "RPC error"},
		{"internal logs error", connect.NewError(connect.CodeInternal, errors.New("disk full")), "ERR", "WRN", "RPC error"},
		{"plain error logs error", errors.New("boom"), "ERR", "WRN", "RPC error"},
		{"success logs info", nil, "INF", "ERR", "RPC ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := LoggingInterceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return connect.NewResponse(&struct{}{}), nil
			})

			_, err := handler(context.Background(), connect.NewRequest(&struct{}{}))
			if !errors.Is(err, tt.err) {
				t.Errorf("interceptor changed the error: %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %s in %q", tt.want, out)
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("unexpected %s in %q", tt.notWant, out)
			}
			if !strings.Contains(out, tt.msg) {
				t.Errorf("expected %q in %q", tt.msg, out)
			}
		})
	}
}

func TestHTTPLogging(t *testing.T) {
	buf := captureLogs(t)
	h := HTTPLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	out := buf.String()
	for _, want := range []string{"DBG", "Request completed", "/healthz", "GET"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
