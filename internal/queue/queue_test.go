package queue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"

	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/model"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := NewInMemoryQueue(nil)
	if err := q.Publish(InvoiceNotificationsTopic, model.InvoiceGenerated{}); err == nil {
		t.Fatal("expected error when nobody subscribed")
	}
}

func TestInvoiceNotificationSubscriberRetries(t *testing.T) {
	q := NewInMemoryQueue(nil)
	q.Backoff = time.Millisecond

	var mu sync.Mutex
	attempts := 0
	send := func(ev model.InvoiceGenerated) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return errors.New("gateway busy")
		}
		if ev.BillID != "b1" {
			t.Errorf("unexpected bill id %q", ev.BillID)
		}
		return nil
	}

	if err := StartInvoiceNotificationSubscriber(q, send, logging.Discard()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := q.Publish(InvoiceNotificationsTopic, model.InvoiceGenerated{BillID: "b1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	q.Wait()

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestInvoiceNotificationSubscriberGivesUp(t *testing.T) {
	q := NewInMemoryQueue(nil)
	q.Backoff = time.Millisecond
	q.MaxRetries = 2

	attempts := 0
	StartInvoiceNotificationSubscriber(q, func(model.InvoiceGenerated) error {
		attempts++
		return errors.New("down")
	}, logging.Discard())

	q.Publish(InvoiceNotificationsTopic, &model.InvoiceGenerated{BillID: "b2"})
	q.Wait()

	if attempts != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d", attempts)
	}
}

func TestDecodeInvoiceGenerated(t *testing.T) {
	ev, err := DecodeInvoiceGenerated([]byte(`{"bill_id":"b3","pdf_url":"https://x"}`))
	if err != nil || ev.BillID != "b3" || ev.PDFURL != "https://x" {
		t.Errorf("json payload: got %+v, %v", ev, err)
	}
	if _, err := DecodeInvoiceGenerated(42); err == nil {
		t.Errorf("expected error for int payload")
	}
}

func TestRetryCount(t *testing.T) {
	if got := RetryCount(amqp.Table{retryHeader: int32(2)}); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := RetryCount(amqp.Table{}); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
