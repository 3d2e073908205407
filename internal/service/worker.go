package service

import (
	"sync/atomic"

	CharmLog "github.com/charmbracelet/log"

	"github.com/unclebandit/tailorbook-backend/internal/model"
)

// Worker delivers invoice notifications taken from a channel
type Worker struct {
	Jobs     <-chan model.InvoiceGenerated
	SendFunc func(ev model.InvoiceGenerated) error
	Logger   *CharmLog.Logger

	// Counters are read while Start runs.
	Sent   atomic.Int64
	Failed atomic.Int64
}

// Constructor
func NewWorker(jobs <-chan model.InvoiceGenerated, sendFunc func(ev model.InvoiceGenerated) error, logger *CharmLog.Logger) *Worker {
	return &Worker{
		Jobs:     jobs,
		SendFunc: sendFunc,
		Logger:   logger,
	}
}

// Start processes jobs until the channel is closed
func (w *Worker) Start() {
	for ev := range w.Jobs {
		if err := w.SendFunc(ev); err != nil {
			w.Failed.Add(1)
			w.Logger.Warn("⚠️ Failed to send invoice notification", "bill_id", ev.BillID, "err", err)
			continue
		}
		w.Sent.Add(1)
		w.Logger.Info("✅ Invoice notification sent", "bill_id", ev.BillID)
	}
}
