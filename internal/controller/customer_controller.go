// internal/controller/customer_controller.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/tailorbook-backend/internal/forms"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

type CustomerController struct {
	CustomerService *service.CustomerService
	BillService     *service.BillService
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body forms.NewCustomer
	if err := decodeBody(r, &body); err != nil {
		writeBadBody(w, err)
		return
	}

	customer, err := c.CustomerService.Create(r.Context(), body)
	if err != nil {
		writeError(w, err, "failed to create customer")
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// SearchCustomers filters by ?q= on name or phone.
func (c *CustomerController) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	res, err := c.CustomerService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err, "failed to fetch customers")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := c.CustomerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "failed to fetch customer")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) MeasurementTypes(w http.ResponseWriter, r *http.Request) {
	opts, err := c.CustomerService.MeasurementTypeOptions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "failed to fetch measurement types")
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (c *CustomerController) AddMeasurement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MeasurementType string               `json:"measurementType"`
		Measurements    model.MeasurementSet `json:"measurements"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeBadBody(w, err)
		return
	}

	customer, err := c.CustomerService.AddMeasurement(r.Context(), chi.URLParam(r, "id"), body.MeasurementType, body.Measurements)
	if err != nil {
		writeError(w, err, "failed to add measurement")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) EditMeasurement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Measurements model.MeasurementSet `json:"measurements"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeBadBody(w, err)
		return
	}

	customer, err := c.CustomerService.EditMeasurement(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "type"), body.Measurements)
	if err != nil {
		writeError(w, err, "failed to update measurement")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// ListBills returns the bills stored for one customer, newest first.
func (c *CustomerController) ListBills(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := c.CustomerService.Get(r.Context(), id); err != nil {
		writeError(w, err, "failed to fetch customer")
		return
	}
	bills, err := c.BillService.ListByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err, "failed to fetch bills")
		return
	}
	if bills == nil {
		bills = []model.Bill{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": bills})
}
