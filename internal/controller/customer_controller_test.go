package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	"github.com/unclebandit/tailorbook-backend/internal/controller"
	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

// --- Mock Repositories ---

type MockCustomerRepo struct {
	customers map[string]*model.Customer
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	c.ID = "new-id"
	m.customers[c.ID] = c
	return nil
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, appErrors.NewCustomerNotFound(id)
	}
	return c, nil
}

func (m *MockCustomerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	out := []model.Customer{}
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MockCustomerRepo) SetMeasurement(ctx context.Context, id, typeName string, values model.MeasurementSet) (*model.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, appErrors.NewCustomerNotFound(id)
	}
	c.Measurements[typeName] = values
	return c, nil
}

type MockBillRepo struct{}

func (m *MockBillRepo) Create(ctx context.Context, b *model.Bill) error {
	b.ID = "bill-1"
	return nil
}
func (m *MockBillRepo) SetPDFURL(ctx context.Context, id, url string) error { return nil }
func (m *MockBillRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.Bill, error) {
	return nil, nil
}

func newRouter() (*chi.Mux, *MockCustomerRepo) {
	repo := &MockCustomerRepo{customers: map[string]*model.Customer{
		"c1": {ID: "c1", Name: "Asha", Phone: "9876543210", Measurements: model.Measurements{"Top": {"chest": "34"}}},
	}}
	customers := &service.CustomerService{CustomerRepo: repo, Catalog: catalog.Default()}
	bills := &service.BillService{BillRepo: &MockBillRepo{}, CustomerRepo: repo, Catalog: catalog.Default()}
	ctrl := &controller.CustomerController{CustomerService: customers, BillService: bills}

	r := chi.NewRouter()
	r.Post("/api/customers", ctrl.CreateCustomer)
	r.Get("/api/customers", ctrl.SearchCustomers)
	r.Get("/api/customers/{id}", ctrl.GetCustomer)
	r.Get("/api/customers/{id}/measurement-types", ctrl.MeasurementTypes)
	r.Put("/api/customers/{id}/measurements/{type}", ctrl.EditMeasurement)
	r.Get("/api/customers/{id}/bills", ctrl.ListBills)
	return r, repo
}

func TestCreateCustomerHandler(t *testing.T) {
	r, repo := newRouter()

	body, _ := json.Marshal(map[string]any{
		"name":            "Meena",
		"phone":           "9123456780",
		"measurementType": "salwar",
		"measurements":    map[string]any{"length": 40, "bottomRound": "14", "kneeRound": 16, "kneeLength": 22, "thigh": 24.5},
	})
	req := httptest.NewRequest("POST", "/api/customers", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	stored := repo.customers["new-id"]
	if stored == nil || stored.Measurements["Salwar"]["thigh"] != "24.5" {
		t.Errorf("expected Salwar measurements stored as strings, got %+v", stored)
	}
}

func TestCreateCustomerHandlerRejectsShortPhone(t *testing.T) {
	r, _ := newRouter()

	body, _ := json.Marshal(map[string]any{"name": "Meena", "phone": "12345", "measurementType": "top"})
	req := httptest.NewRequest("POST", "/api/customers", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetCustomerHandlerNotFound(t *testing.T) {
	r, _ := newRouter()

	req := httptest.NewRequest("GET", "/api/customers/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMeasurementTypesHandler(t *testing.T) {
	r, _ := newRouter()

	req := httptest.NewRequest("GET", "/api/customers/c1/measurement-types", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var opts []struct {
		Value       string `json:"value"`
		Disabled    bool   `json:"disabled"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(w.Body).Decode(&opts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	for _, o := range opts {
		if o.Value == "top" && (!o.Disabled || o.Description != "Already exists") {
			t.Errorf("top should be disabled, got %+v", o)
		}
		if o.Value != "top" && o.Disabled {
			t.Errorf("%s should be enabled", o.Value)
		}
	}
}

func TestEditMeasurementHandlerCleansValues(t *testing.T) {
	r, repo := newRouter()

	body, _ := json.Marshal(map[string]any{"measurements": map[string]any{"chest": "3..5a"}})
	req := httptest.NewRequest("PUT", "/api/customers/c1/measurements/Top", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := repo.customers["c1"].Measurements["Top"]["chest"]; got != "3.5" {
		t.Errorf("expected cleaned value 3.5, got %s", got)
	}
}

func TestSearchCustomersHandler(t *testing.T) {
	r, _ := newRouter()

	req := httptest.NewRequest("GET", "/api/customers?q=987", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp struct {
		Customers []model.Customer `json:"customers"`
		Total     int              `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Customers) != 1 {
		t.Errorf("expected one match, got %+v", resp)
	}
}

func TestListBillsHandlerEmpty(t *testing.T) {
	r, _ := newRouter()

	req := httptest.NewRequest("GET", "/api/customers/c1/bills", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "{\"data\":[]}\n" {
		t.Errorf("unexpected body %q", got)
	}
}
