// Package notify builds the customer-facing WhatsApp message for an invoice.
package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultCountryCode is prefixed to numbers that do not carry one.
const DefaultCountryCode = "+91"

// WhatsAppNumber removes spaces and dashes and adds the country code when missing.
func WhatsAppNumber(phone string) string {
	n := strings.NewReplacer(" ", "", "-", "", "\t", "").Replace(phone)
	if !strings.HasPrefix(n, "+") {
		n = DefaultCountryCode + n
	}
	return n
}

// InvoiceMessage is the pre-filled chat text.
func InvoiceMessage(customerName, pdfURL, shopName string) string {
	return fmt.Sprintf(
		"Hello %s,\n\nThank you for your purchase!\nYour invoice is ready:\n%s\n\nBest regards,\n%s",
		customerName, pdfURL, shopName,
	)
}

// WhatsAppLink returns a wa.me deep link that opens a chat with the message filled in.
func WhatsAppLink(phone, customerName, pdfURL, shopName string) string {
	return "https://wa.me/" + WhatsAppNumber(phone) + "?text=" + url.QueryEscape(InvoiceMessage(customerName, pdfURL, shopName))
}
