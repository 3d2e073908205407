package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	CharmLog "github.com/charmbracelet/log"

	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/model"
)

// InvoiceNotificationsTopic carries model.InvoiceGenerated events.
const InvoiceNotificationsTopic = "invoice_notifications"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers to in-process subscribers with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	wg       sync.WaitGroup

	MaxRetries int
	Backoff    time.Duration
	Logger     *CharmLog.Logger
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger *CharmLog.Logger) *InMemoryQueue {
	if logger == nil {
		logger = logging.Discard()
	}
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		Logger:     logger,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{Payload: payload, MaxRetries: q.MaxRetries}
		q.wg.Add(1)
		go q.processJob(handler, job)
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	defer q.wg.Done()
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.Logger.Error("❌ Job permanently failed", "attempts", job.RetryCount, "err", err)
			return
		}
		q.Logger.Warn("⚠️ Job failed, retrying", "attempt", job.RetryCount, "max", job.MaxRetries, "err", err)

		// linear backoff before retry
		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every published job has finished or given up.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// DecodeInvoiceGenerated accepts the event itself (in-memory delivery) or
// its JSON encoding (broker delivery).
func DecodeInvoiceGenerated(payload any) (model.InvoiceGenerated, error) {
	switch v := payload.(type) {
	case model.InvoiceGenerated:
		return v, nil
	case *model.InvoiceGenerated:
		if v == nil {
			return model.InvoiceGenerated{}, fmt.Errorf("nil invoice event")
		}
		return *v, nil
	case []byte:
		var ev model.InvoiceGenerated
		if err := json.Unmarshal(v, &ev); err != nil {
			return model.InvoiceGenerated{}, fmt.Errorf("invalid invoice event: %w", err)
		}
		return ev, nil
	default:
		return model.InvoiceGenerated{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}

// StartInvoiceNotificationSubscriber hands every invoice event to send.
// Undecodable payloads are dropped; send errors are retried by the queue.
func StartInvoiceNotificationSubscriber(q Queue, send func(model.InvoiceGenerated) error, logger *CharmLog.Logger) error {
	return q.Subscribe(InvoiceNotificationsTopic, func(payload any) error {
		ev, err := DecodeInvoiceGenerated(payload)
		if err != nil {
			logger.Warn("⚠️ Dropping invoice notification", "err", err)
			return nil
		}

		logger.Info("📩 Processing invoice notification", "bill_id", ev.BillID)
		if err := send(ev); err != nil {
			return err
		}
		logger.Info("✅ Invoice notification sent", "bill_id", ev.BillID)
		return nil
	})
}
