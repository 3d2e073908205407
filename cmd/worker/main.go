// cmd/worker/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/tailorbook-backend/internal/config"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/model"
	"github.com/unclebandit/tailorbook-backend/internal/notify"
	"github.com/unclebandit/tailorbook-backend/internal/queue"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

func main() {
	logger := logging.New("worker")

	cfg, _, err := config.Load()
	if err != nil {
		logger.Fatal("❌ Invalid configuration", "err", err)
	}
	if cfg.AMQPURL == "" {
		logger.Fatal("❌ AMQP_URL is required for the worker")
	}

	// Connect to RabbitMQ
	q, err := queue.DialAMQP(cfg.AMQPURL, logging.New("amqp"))
	if err != nil {
		logger.Fatal("❌ Failed to connect to RabbitMQ", "err", err)
	}
	defer q.Close()

	jobs := make(chan model.InvoiceGenerated, 16)
	worker := service.NewWorker(jobs, notify.LogSender(logging.New("whatsapp")), logger)

	err = q.Subscribe(queue.InvoiceNotificationsTopic, func(payload any) error {
		ev, err := queue.DecodeInvoiceGenerated(payload)
		if err != nil {
			logger.Warn("⚠️ Invalid job", "err", err)
			return nil
		}
		jobs <- ev
		return nil
	})
	if err != nil {
		logger.Fatal("❌ Failed to register consumer", "err", err)
	}

	go worker.Start()

	logger.Info("👷 Worker running, waiting for invoice notifications...")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("🛑 Stopping worker", "sent", worker.Sent.Load(), "failed", worker.Failed.Load())
}
