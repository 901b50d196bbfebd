package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gobudget/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/v1/sources/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"A1", "B2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sources/"+id, nil))
	}

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/sources/{id}", "418")
	if got := testutil.ToFloat64(counter); got != 2 {
		t.Fatalf("expected counter to be 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPInFlight); got != 0 {
		t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
	}
}

func TestMetricsMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/123", nil))

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected unmatched counter to be 1, got %v", got)
	}
}
