// internal/model/invoice.go
package model

// OtherClothingType marks a bill whose item is described by free text.
const OtherClothingType = "other"

// InvoiceRequest is the body of POST /api/generate-invoice.
type InvoiceRequest struct {
	CustomerID    string  `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	ClothingType  string  `json:"clothingType"`
	SubType       string  `json:"subType"`
	OtherClothing string  `json:"otherClothing,omitempty"`
	Quantity      int     `json:"quantity"`
	Amount        float64 `json:"amount"`
}

// ItemText is "<type> (<subType>)", or the free text for "other".
func (r InvoiceRequest) ItemText() string {
	if r.ClothingType == OtherClothingType {
		return r.OtherClothing
	}
	return r.ClothingType + " (" + r.SubType + ")"
}

// Invoice is the generated, publicly readable PDF.
type Invoice struct {
	FileID string `json:"fileId"`
	PDFURL string `json:"pdfUrl"`
}

// InvoiceGenerated is published after a bill's invoice has been shared.
type InvoiceGenerated struct {
	BillID        string `json:"bill_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	PDFURL        string `json:"pdf_url"`
	WhatsAppURL   string `json:"whatsapp_url"`
}
