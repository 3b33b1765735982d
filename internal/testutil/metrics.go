package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/ngohub/internal/app/system/metrics"
)

// MetricsText scrapes m and returns the exposition text.
func MetricsText(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}
