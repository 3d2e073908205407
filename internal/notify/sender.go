package notify

import (
	CharmLog "github.com/charmbracelet/log"

	"github.com/unclebandit/tailorbook-backend/internal/model"
)

// LogSender stands in for a WhatsApp gateway: the shop opens the logged
// link by hand.
func LogSender(logger *CharmLog.Logger) func(ev model.InvoiceGenerated) error {
	return func(ev model.InvoiceGenerated) error {
		logger.Info("💬 WhatsApp invoice link ready",
			"bill_id", ev.BillID,
			"customer", ev.CustomerName,
			"link", ev.WhatsAppURL,
		)
		return nil
	}
}
