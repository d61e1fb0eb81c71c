package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SetCatalog(10, 1)
	m.ObserveView("apply", 3)
	m.ObserveRequest("GET", "200", 0.1)
	if m.Registry() != nil {
		t.Error("nil Metrics should have nil registry")
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSetCatalog(t *testing.T) {
	m := New()
	m.SetCatalog(1200, 7)

	if got := testutil.ToFloat64(m.catalogRecords); got != 1200 {
		t.Errorf("catalog_records = %v, want 1200", got)
	}
	if got := testutil.ToFloat64(m.coercedFields); got != 7 {
		t.Errorf("catalog_coerced_fields = %v, want 7", got)
	}
}

func TestObserveView(t *testing.T) {
	m := New()
	m.ObserveView("apply", 3)
	m.ObserveView("apply", 0)
	m.ObserveView("more", 3)

	if got := testutil.ToFloat64(m.viewActions.WithLabelValues("apply")); got != 2 {
		t.Errorf("apply = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.viewActions.WithLabelValues("more")); got != 1 {
		t.Errorf("more = %v, want 1", got)
	}
}

func TestHandlerExposition(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "200", 0.01)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	for _, want := range []string{"stampcat_http_request_duration_seconds", "go_goroutines"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
