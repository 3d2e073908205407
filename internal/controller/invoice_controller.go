// internal/controller/invoice_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/unclebandit/tailorbook-backend/internal/forms"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

type InvoiceController struct {
	Invoices service.InvoiceGenerator
	Now      func() time.Time
}

// GenerateInvoice handles POST /api/generate-invoice.
func (c *InvoiceController) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var body forms.InvoiceBody
	if err := decodeBody(r, &body); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := body.Validate(); err != nil {
		writeError(w, err, "")
		return
	}
	req := body.Request()

	inv, err := c.Invoices.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to generate invoice")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"pdfUrl": inv.PDFURL})
}

// PreviewInvoice renders the invoice text for a request body, with no remote calls.
func (c *InvoiceController) PreviewInvoice(w http.ResponseWriter, r *http.Request) {
	var body forms.InvoiceBody
	if err := decodeBody(r, &body); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := body.Validate(); err != nil {
		writeError(w, err, "")
		return
	}
	req := body.Request()

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"rendered_message": service.RenderPreview(req, now),
		"item":             req.ItemText(),
	})
}
