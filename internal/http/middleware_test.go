package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLoggerAttachesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawLogger bool
	handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	if !sawLogger {
		t.Error("expected a request-scoped logger in the context")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected the wrapped handler to run, got %d", rec.Code)
	}

	logged := buf.String()
	if !strings.Contains(logged, "request started") || !strings.Contains(logged, "request completed") {
		t.Errorf("expected start and completion entries, got %q", logged)
	}
	if !strings.Contains(logged, "request_id") {
		t.Errorf("expected a request id in the log output, got %q", logged)
	}
}
