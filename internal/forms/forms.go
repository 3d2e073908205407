// Package forms holds the validation the shop's entry screens run before
// writing to the store.
package forms

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/model"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// ValidatePhone accepts exactly ten ASCII digits.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// CapitalizeType turns a selector value ("top") into a measurements key ("Top").
func CapitalizeType(t string) string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(t[:1]) + t[1:]
}

// CleanMeasurementInput drops every character that is not a digit or '.',
// and keeps only the first decimal point: "3..5a" -> "3.5".
func CleanMeasurementInput(in string) string {
	var b strings.Builder
	seenDot := false
	for _, r := range in {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if !seenDot {
				b.WriteRune(r)
				seenDot = true
			}
		}
	}
	return b.String()
}

// IsNumber accepts plain decimal text only. NaN, Inf and hex floats are
// rejected even though strconv would parse them.
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ValidateMeasurements checks that every field of the type is present and numeric.
func ValidateMeasurements(mt catalog.MeasurementType, values model.MeasurementSet) error {
	fields := map[string]string{}
	for _, f := range mt.Fields {
		v, ok := values[f.ID]
		switch {
		case !ok || strings.TrimSpace(string(v)) == "":
			fields[f.ID] = "This field is required"
		case !IsNumber(string(v)):
			fields[f.ID] = "Please enter a valid number"
		}
	}
	return appErrors.NewValidationError(fields)
}

// ValidateEditedMeasurements is the edit screen's check: every submitted value
// must be a non-empty number. The field list is whatever was stored.
func ValidateEditedMeasurements(values model.MeasurementSet) error {
	fields := map[string]string{}
	for k, v := range values {
		if !IsNumber(string(v)) {
			fields[k] = "Please ensure all measurements are valid numbers"
		}
	}
	return appErrors.NewValidationError(fields)
}

// CleanMeasurementSet applies CleanMeasurementInput to every value.
func CleanMeasurementSet(values model.MeasurementSet) model.MeasurementSet {
	out := make(model.MeasurementSet, len(values))
	for k, v := range values {
		out[k] = model.Measure(CleanMeasurementInput(string(v)))
	}
	return out
}

// NewCustomer is the add-customer form.
type NewCustomer struct {
	Name            string               `json:"name"`
	Phone           string               `json:"phone"`
	MeasurementType string               `json:"measurementType"`
	Measurements    model.MeasurementSet `json:"measurements"`
}

// Validate runs the first step (identity + type) and then the measurement step.
func (f NewCustomer) Validate(c *catalog.Catalog) error {
	fields := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = "Name is required"
	}
	if f.Phone == "" {
		fields["phone"] = "Phone number is required"
	} else if !ValidatePhone(f.Phone) {
		fields["phone"] = "Phone number must be 10 digits"
	}
	mt, ok := c.MeasurementType(f.MeasurementType)
	if !ok {
		fields["measurementType"] = "Please select a measurement type"
	}
	if err := appErrors.NewValidationError(fields); err != nil {
		return err
	}
	return ValidateMeasurements(mt, f.Measurements)
}

// TypeOption is one entry of the measurement-type selector.
type TypeOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Disabled    bool   `json:"disabled"`
	Description string `json:"description,omitempty"`
}

// MeasurementTypeOptions disables the types a customer already has, so the
// selector cannot submit a duplicate. The store itself does not enforce this.
func MeasurementTypeOptions(c *catalog.Catalog, customer *model.Customer) []TypeOption {
	opts := make([]TypeOption, 0, len(c.MeasurementTypes))
	for _, mt := range c.MeasurementTypes {
		opt := TypeOption{Value: mt.Value, Label: mt.Label}
		if customer != nil && customer.HasMeasurementType(mt.Label) {
			opt.Disabled = true
			opt.Description = "Already exists"
		}
		opts = append(opts, opt)
	}
	return opts
}

// BillForm is the generate-bill screen.
type BillForm struct {
	CustomerID    string `json:"customerId"`
	ClothingType  string `json:"clothingType"`
	SubType       string `json:"subType"`
	OtherClothing string `json:"otherClothing"`
	Quantity      int    `json:"quantity"`
	Amount        string `json:"amount"`
	amount        float64
}

// Validate checks the form and parses the amount. Quantity is clamped to 1.
func (f *BillForm) Validate(c *catalog.Catalog) error {
	fields := map[string]string{}
	if f.CustomerID == "" {
		fields["customerId"] = "Please select a customer first."
	}
	ct, ok := c.ClothingType(f.ClothingType)
	switch {
	case f.ClothingType == "":
		fields["clothingType"] = "Please select a clothing type."
	case !ok:
		fields["clothingType"] = "Unknown clothing type."
	case f.ClothingType == model.OtherClothingType:
		if strings.TrimSpace(f.OtherClothing) == "" {
			fields["otherClothing"] = "Please describe the clothing."
		}
	case f.SubType == "" || !ct.HasSubType(f.SubType):
		fields["subType"] = "Please select a sub type."
	}

	amount := strings.TrimSpace(f.Amount)
	if amount == "" {
		fields["amount"] = "Please enter the amount."
	} else if v, err := strconv.ParseFloat(amount, 64); err != nil || !IsNumber(amount) || v < 0 {
		fields["amount"] = "Please enter a valid amount."
	} else {
		f.amount = v
	}
	f.Quantity = ClampQuantity(f.Quantity)
	return appErrors.NewValidationError(fields)
}

// ParsedAmount is valid after Validate succeeds.
func (f *BillForm) ParsedAmount() float64 {
	return f.amount
}

// InvoiceBody is the generate-invoice JSON body. Amount is a pointer so a
// missing amount can be told apart from zero.
type InvoiceBody struct {
	model.InvoiceRequest
	Amount *float64 `json:"amount"`
}

// Request returns the body as an invoice request.
func (b InvoiceBody) Request() model.InvoiceRequest {
	r := b.InvoiceRequest
	if b.Amount != nil {
		r.Amount = *b.Amount
	}
	return r
}

// Validate is ValidateInvoiceRequest plus the amount presence check.
func (b InvoiceBody) Validate() error {
	fields := invoiceRequestFields(b.Request())
	if b.Amount == nil {
		fields["amount"] = "required"
	}
	return appErrors.NewValidationError(fields)
}

// ValidateInvoiceRequest enforces the generate-invoice input contract: every
// field is required, except otherClothing which is required only for "other".
func ValidateInvoiceRequest(r model.InvoiceRequest) error {
	return appErrors.NewValidationError(invoiceRequestFields(r))
}

func invoiceRequestFields(r model.InvoiceRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.CustomerName) == "" {
		fields["customerName"] = "required"
	}
	if strings.TrimSpace(r.CustomerPhone) == "" {
		fields["customerPhone"] = "required"
	}
	if r.ClothingType == "" {
		fields["clothingType"] = "required"
	}
	if r.ClothingType == model.OtherClothingType {
		if strings.TrimSpace(r.OtherClothing) == "" {
			fields["otherClothing"] = "required when clothingType is other"
		}
	} else if r.SubType == "" {
		fields["subType"] = "required"
	}
	if r.Quantity < 1 {
		fields["quantity"] = "must be at least 1"
	}
	if r.Amount < 0 {
		fields["amount"] = "must not be negative"
	}
	return fields
}

// ClampQuantity keeps quantity at 1 or more.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// FilterCustomers matches a case-insensitive name substring or a phone substring.
func FilterCustomers(customers []model.Customer, query string) []model.Customer {
	q := strings.ToLower(query)
	out := []model.Customer{}
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Phone, q) {
			out = append(out, c)
		}
	}
	return out
}
