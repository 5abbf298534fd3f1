package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	logpkg "github.com/kailas-cloud/plantdex/internal/logger"
	chiTransport "github.com/kailas-cloud/plantdex/internal/transport/chi"
)

func TestJSONRecoverer(t *testing.T) {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(zap.NewNop()))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/boom", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp chiTransport.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != chiTransport.ErrorCodeInternalError {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	var ctxLogger *zap.Logger
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Get("/api/plants", func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logpkg.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/plants?name=rose", http.NoBody))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if ctxLogger == nil {
		t.Fatal("expected a request logger in context")
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one canonical log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status field = %v", fields["status"])
	}
	if fields["query"] != "name=rose" {
		t.Errorf("query field = %v", fields["query"])
	}
	if fields["request_id"] == "" {
		t.Error("expected request_id field")
	}
}

func TestPlantLabel(t *testing.T) {
	if got := plantLabel(domplant.Plant{UniqueName: "Lavandula angustifolia"}); got != "Lavandula angustifolia" {
		t.Errorf("got %q", got)
	}
	p := domplant.Plant{UniqueName: "Rosa rugosa", CommonNameEN: []string{"Japanese rose", "Ramanas rose"}}
	if got := plantLabel(p); got != "Rosa rugosa - Japanese rose, Ramanas rose" {
		t.Errorf("got %q", got)
	}
}
