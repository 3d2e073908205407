// internal/service/customer_service.go
package service

import (
	"context"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/forms"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Catalog      *catalog.Catalog
}

// SearchResult is the search screen's list plus the unfiltered total.
type SearchResult struct {
	Customers []model.Customer `json:"customers"`
	Total     int              `json:"total"`
}

// Create stores a new customer together with their first measurement type.
func (s *CustomerService) Create(ctx context.Context, form forms.NewCustomer) (*model.Customer, error) {
	if err := form.Validate(s.Catalog); err != nil {
		return nil, err
	}
	c := &model.Customer{
		Name:  form.Name,
		Phone: form.Phone,
		Measurements: model.Measurements{
			forms.CapitalizeType(form.MeasurementType): form.Measurements,
		},
	}
	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	return s.CustomerRepo.GetByID(ctx, id)
}

func (s *CustomerService) Search(ctx context.Context, query string) (*SearchResult, error) {
	all, err := s.CustomerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Customers: forms.FilterCustomers(all, query), Total: len(all)}, nil
}

// MeasurementTypeOptions is the add-measurement selector for one customer.
func (s *CustomerService) MeasurementTypeOptions(ctx context.Context, id string) ([]forms.TypeOption, error) {
	c, err := s.CustomerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return forms.MeasurementTypeOptions(s.Catalog, c), nil
}

// AddMeasurement records a measurement type for an existing customer. An
// existing entry of the same type is overwritten; only the selector guards
// against that.
func (s *CustomerService) AddMeasurement(ctx context.Context, id, measurementType string, values model.MeasurementSet) (*model.Customer, error) {
	mt, ok := s.Catalog.MeasurementType(measurementType)
	if !ok {
		return nil, appErrors.NewValidationError(map[string]string{"measurementType": "Please select a measurement type"})
	}
	if err := forms.ValidateMeasurements(mt, values); err != nil {
		return nil, err
	}
	return s.CustomerRepo.SetMeasurement(ctx, id, forms.CapitalizeType(mt.Value), values)
}

// EditMeasurement updates fields of a type the customer already has. Submitted
// values are cleaned to digits and one decimal point and laid over the stored
// ones, then every field of the result must be a number.
func (s *CustomerService) EditMeasurement(ctx context.Context, id, typeName string, values model.MeasurementSet) (*model.Customer, error) {
	c, err := s.CustomerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := forms.CapitalizeType(typeName)
	if !c.HasMeasurementType(key) {
		return nil, appErrors.NewValidationError(map[string]string{"measurementType": "No " + key + " measurements to edit"})
	}

	merged := model.MeasurementSet{}
	for k, v := range c.Measurements[key] {
		merged[k] = v
	}
	for k, v := range forms.CleanMeasurementSet(values) {
		merged[k] = v
	}
	if err := forms.ValidateEditedMeasurements(merged); err != nil {
		return nil, err
	}
	return s.CustomerRepo.SetMeasurement(ctx, id, key, merged)
}
