// internal/controller/bill_controller.go
package controller

import (
	"net/http"

	"github.com/unclebandit/tailorbook-backend/internal/forms"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

type BillController struct {
	BillService *service.BillService
}

// CreateBill stores the bill and returns its invoice and WhatsApp links.
func (c *BillController) CreateBill(w http.ResponseWriter, r *http.Request) {
	var body forms.BillForm
	if err := decodeBody(r, &body); err != nil {
		writeBadBody(w, err)
		return
	}

	res, err := c.BillService.CreateAndSend(r.Context(), body)
	if err != nil {
		writeError(w, err, "Failed to generate invoice")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
