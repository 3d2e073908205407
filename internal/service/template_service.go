// internal/service/template_service.go
package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/unclebandit/tailorbook-backend/internal/model"
)

// Replacement is one case-sensitive, replace-all substitution.
type Replacement struct {
	Placeholder string
	Value       string
}

// InvoiceDateLayout matches the shop's M/D/YYYY invoices.
const InvoiceDateLayout = "1/2/2006"

// BuildReplacements returns the fixed invoice placeholder set, in template order.
func BuildReplacements(req model.InvoiceRequest, now time.Time) []Replacement {
	return []Replacement{
		{Placeholder: "{{Date}}", Value: now.Format(InvoiceDateLayout)},
		{Placeholder: "{{CustomerName}}", Value: req.CustomerName},
		{Placeholder: "{{CustomerNumber}}", Value: req.CustomerPhone},
		{Placeholder: "{{Item}}", Value: req.ItemText()},
		{Placeholder: "{{Quantity}}", Value: strconv.Itoa(req.Quantity)},
		{Placeholder: "{{Amount}}", Value: FormatNumber(req.Amount)},
	}
}

// PreviewTemplate is a plain-text rendition of the invoice document.
const PreviewTemplate = "Date: {{Date}}\nCustomer: {{CustomerName}} ({{CustomerNumber}})\nItem: {{Item}}\nQuantity: {{Quantity}}\nAmount: {{Amount}}"

// RenderTemplate applies replacements to plain text the same way the document
// service does: every occurrence, case-sensitive.
func RenderTemplate(template string, replacements []Replacement) string {
	result := template
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.Placeholder, r.Value)
	}
	return result
}

// RenderPreview shows what the invoice will say without calling the document service.
func RenderPreview(req model.InvoiceRequest, now time.Time) string {
	return RenderTemplate(PreviewTemplate, BuildReplacements(req, now))
}
