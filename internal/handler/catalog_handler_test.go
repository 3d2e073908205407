package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	"github.com/unclebandit/tailorbook-backend/internal/handler"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
)

type MockDB struct{ err error }

func (m *MockDB) PingContext(ctx context.Context) error { return m.err }

func TestGetCatalogHandler(t *testing.T) {
	h := handler.NewCatalogHandler(catalog.Default(), nil, logging.Discard())

	w := httptest.NewRecorder()
	h.GetCatalogHandler(w, httptest.NewRequest("GET", "/api/catalog", nil))

	var got catalog.Catalog
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(got.ClothingTypes) != 3 || len(got.MeasurementTypes) != 3 {
		t.Errorf("unexpected catalog: %+v", got)
	}
}

func TestHealthHandler(t *testing.T) {
	h := handler.NewCatalogHandler(catalog.Default(), &MockDB{}, logging.Discard())
	w := httptest.NewRecorder()
	h.HealthHandler(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	h.DB = &MockDB{err: errors.New("connection refused")}
	w = httptest.NewRecorder()
	h.HealthHandler(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
