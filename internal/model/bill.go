// internal/model/bill.go
package model

import "time"

// Bill is a single invoice request. Its content never changes after creation;
// only PDFURL is filled in once the invoice exists.
type Bill struct {
	ID            string    `db:"id" json:"id"`
	CustomerID    string    `db:"customer_id" json:"customerId"`
	CustomerName  string    `db:"customer_name" json:"customerName"`
	CustomerPhone string    `db:"customer_phone" json:"customerPhone"`
	ClothingType  string    `db:"clothing_type" json:"clothingType"`
	SubType       string    `db:"sub_type" json:"subType"`
	OtherClothing string    `db:"other_clothing" json:"otherClothing,omitempty"`
	Quantity      int       `db:"quantity" json:"quantity"`
	Amount        float64   `db:"amount" json:"amount"`
	PDFURL        string    `db:"pdf_url" json:"pdfUrl,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// InvoiceRequest returns the fields the invoice generator needs.
func (b *Bill) InvoiceRequest() InvoiceRequest {
	return InvoiceRequest{
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		ClothingType:  b.ClothingType,
		SubType:       b.SubType,
		OtherClothing: b.OtherClothing,
		Quantity:      b.Quantity,
		Amount:        b.Amount,
	}
}
