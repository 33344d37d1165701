package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mpetersen/taskhive/internal/logging"
)

func TestRequestLogger_LogsMethodPathAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New().SetOutput(&buf).SetLevel(logging.LevelDebug)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	})

	rr := httptest.NewRecorder()
	NewRequestLogger(logger).Apply(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/tasks", nil))

	var entry struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parsing log output: %v", err)
	}
	if entry.Fields["method"] != "POST" || entry.Fields["path"] != "/api/tasks" {
		t.Errorf("unexpected request fields: %v", entry.Fields)
	}
	if entry.Fields["status"] != float64(http.StatusCreated) {
		t.Errorf("expected status 201, got %v", entry.Fields["status"])
	}
	if entry.Fields["size"] != float64(4) {
		t.Errorf("expected size 4, got %v", entry.Fields["size"])
	}
}

func TestRequestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New().SetOutput(&buf).SetLevel(logging.LevelError)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	NewRequestLogger(logger).Apply(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if buf.Len() == 0 {
		t.Fatal("expected a 500 to be logged even at error level")
	}
}
