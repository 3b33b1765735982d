package errors_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// serve runs fn, tolerating a panic from template rendering when no
// engine is booted in tests, and returns the recorded status.
func serve(fn func(w http.ResponseWriter, r *http.Request), r *http.Request) int {
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		fn(rec, r)
	}()
	return rec.Code
}

func TestRenderHelpers_SetStatus(t *testing.T) {
	tests := []struct {
		name string
		fn   func(w http.ResponseWriter, r *http.Request)
		want int
	}{
		{"forbidden", func(w http.ResponseWriter, r *http.Request) {
			uierrors.RenderForbidden(w, r, "no", "")
		}, http.StatusForbidden},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			uierrors.RenderNotFound(w, r, "gone", "/")
		}, http.StatusNotFound},
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			uierrors.RenderBadRequest(w, r, "bad", "/")
		}, http.StatusBadRequest},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			uierrors.RenderServerError(w, r, "oops", "/")
		}, http.StatusInternalServerError},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			uierrors.RenderUnauthorized(w, r, "")
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serve(tt.fn, httptest.NewRequest("GET", "/x", nil)); got != tt.want {
				t.Errorf("status: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandler_Pages(t *testing.T) {
	h := uierrors.NewHandler()
	if got := serve(h.Forbidden, httptest.NewRequest("GET", "/forbidden", nil)); got != http.StatusForbidden {
		t.Errorf("Forbidden: got %d", got)
	}
	if got := serve(h.NotFound, httptest.NewRequest("GET", "/nope", nil)); got != http.StatusNotFound {
		t.Errorf("NotFound: got %d", got)
	}
}

func TestErrorLogger_LogsAndRenders(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	req := httptest.NewRequest("POST", "/admin/projects", nil)
	code := serve(func(w http.ResponseWriter, r *http.Request) {
		el.LogServerError(w, r, "insert project failed", stderrors.New("disk full"), "Could not save.", "/admin/projects")
	}, req)

	if code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", code)
	}
	entries := logs.FilterMessage("insert project failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Errorf("level: got %v, want error", entries[0].Level)
	}
	if entries[0].ContextMap()["path"] != "/admin/projects" {
		t.Errorf("path field: got %v", entries[0].ContextMap()["path"])
	}
}
