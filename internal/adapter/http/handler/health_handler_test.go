package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	NewHealthHandler(map[string]Pinger{"postgres": ok, "redis": nil}).
		Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"postgres":"ok"`) {
		t.Fatalf("unexpected ready response %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "redis") {
		t.Fatalf("expected nil check to be skipped, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	NewHealthHandler(map[string]Pinger{"postgres": ok, "redis": down}).
		Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "redis_unhealthy") {
		t.Fatalf("unexpected unready response %d %s", rec.Code, rec.Body.String())
	}
}
