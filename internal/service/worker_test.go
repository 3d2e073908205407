package service_test

import (
	"errors"
	"testing"

	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

func TestWorker(t *testing.T) {
	jobs := make(chan model.InvoiceGenerated, 2)
	jobs <- model.InvoiceGenerated{BillID: "b1"}
	jobs <- model.InvoiceGenerated{BillID: "b2"}
	close(jobs)

	var sent []string
	worker := service.NewWorker(jobs, func(ev model.InvoiceGenerated) error {
		if ev.BillID == "b2" {
			return errors.New("gateway down")
		}
		sent = append(sent, ev.BillID)
		return nil
	}, logging.Discard())

	worker.Start()

	if len(sent) != 1 || sent[0] != "b1" {
		t.Errorf("expected b1 sent, got %v", sent)
	}
	if worker.Sent.Load() != 1 || worker.Failed.Load() != 1 {
		t.Errorf("expected 1 sent and 1 failed, got %d/%d", worker.Sent.Load(), worker.Failed.Load())
	}
}

func TestWorkerCountersReadableWhileRunning(t *testing.T) {
	jobs := make(chan model.InvoiceGenerated)
	worker := service.NewWorker(jobs, func(ev model.InvoiceGenerated) error { return nil }, logging.Discard())

	done := make(chan struct{})
	go func() {
		worker.Start()
		close(done)
	}()

	for i := 0; i < 50; i++ {
		jobs <- model.InvoiceGenerated{BillID: "b"}
		_ = worker.Sent.Load() + worker.Failed.Load()
	}
	close(jobs)
	<-done

	if worker.Sent.Load() != 50 {
		t.Errorf("expected 50 sent, got %d", worker.Sent.Load())
	}
}
