// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	CharmLog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
	"github.com/unclebandit/tailorbook-backend/internal/config"
	"github.com/unclebandit/tailorbook-backend/internal/controller"
	"github.com/unclebandit/tailorbook-backend/internal/db"
	"github.com/unclebandit/tailorbook-backend/internal/gdocs"
	"github.com/unclebandit/tailorbook-backend/internal/handler"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
	"github.com/unclebandit/tailorbook-backend/internal/metrics"
	"github.com/unclebandit/tailorbook-backend/internal/middleware"
	"github.com/unclebandit/tailorbook-backend/internal/notify"
	"github.com/unclebandit/tailorbook-backend/internal/queue"
	"github.com/unclebandit/tailorbook-backend/internal/repository"
	"github.com/unclebandit/tailorbook-backend/internal/service"
	"github.com/unclebandit/tailorbook-backend/internal/storage/sftpstore"
)

func main() {
	logger := logging.New("server")

	cfg, envFound, err := config.Load()
	if err != nil {
		logger.Fatal("❌ Invalid configuration", "err", err)
	}
	if !envFound {
		logger.Warn("⚠️ No .env file found, relying on OS environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.Open(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", "err", err)
	}
	defer database.Close()

	version, err := db.Migrate(database.DB)
	if err != nil {
		logger.Fatal("❌ Failed to run migrations", "err", err)
	}
	logger.Info("✅ Database schema ready", "version", version)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("❌ Failed to load catalog", "err", err)
	}

	var customerRepo repository.CustomerRepositoryInterface = &repository.CustomerRepository{DB: database}
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		defer rdb.Close()
		customerRepo = &repository.CachedCustomerRepository{
			Next:   customerRepo,
			Redis:  rdb,
			TTL:    cfg.CacheTTL,
			Logger: logging.New("cache"),
		}
		logger.Info("🗄️ Customer list cached in Redis", "addr", cfg.RedisURL)
	}
	billRepo := &repository.BillRepository{DB: database}

	invoiceService := &service.InvoiceService{
		Google:  cfg.Google,
		Timeout: cfg.InvoiceTimeout,
		Logger:  logging.New("invoice"),
	}
	closeStorage := wireInvoiceBackends(ctx, cfg, invoiceService, logger)
	defer closeStorage()

	q, closeQueue := openQueue(cfg, logger)
	defer closeQueue()

	customerService := &service.CustomerService{CustomerRepo: customerRepo, Catalog: cat}
	billService := &service.BillService{
		BillRepo:     billRepo,
		CustomerRepo: customerRepo,
		Invoices:     invoiceService,
		Queue:        q,
		Catalog:      cat,
		ShopName:     cfg.ShopName,
		Logger:       logging.New("bills"),
	}

	invoiceController := &controller.InvoiceController{Invoices: invoiceService}
	customerController := &controller.CustomerController{
		CustomerService: customerService,
		BillService:     billService,
	}
	billController := &controller.BillController{BillService: billService}
	catalogHandler := handler.NewCatalogHandler(cat, database, logger)

	limiter := middleware.NewRateLimiter(cfg.InvoiceRate, cfg.InvoiceBurst, logger)
	limiter.StartCleanup(10*time.Minute, ctx.Done())

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Get("/healthz", catalogHandler.HealthHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.GetCatalogHandler)

		// Invoice routes
		r.With(limiter.Handler).Post("/generate-invoice", invoiceController.GenerateInvoice)
		r.With(limiter.Handler).Post("/bills", billController.CreateBill)
		r.Post("/invoice-preview", invoiceController.PreviewInvoice)

		// Customer routes
		r.Post("/customers", customerController.CreateCustomer)
		r.Get("/customers", customerController.SearchCustomers)
		r.Get("/customers/{id}", customerController.GetCustomer)
		r.Get("/customers/{id}/bills", customerController.ListBills)
		r.Get("/customers/{id}/measurement-types", customerController.MeasurementTypes)
		r.Post("/customers/{id}/measurements", customerController.AddMeasurement)
		r.Put("/customers/{id}/measurements/{type}", customerController.EditMeasurement)
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 Server running", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ Server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Graceful shutdown failed", "err", err)
	}
}

// wireInvoiceBackends leaves a client nil when it cannot be built; the
// invoice service then answers each request with a configuration error.
// The returned func releases the storage connection.
func wireInvoiceBackends(ctx context.Context, cfg *config.Config, svc *service.InvoiceService, logger *CharmLog.Logger) func() {
	var drive *gdocs.Client
	if cfg.Google.CredentialsFile != "" {
		client, err := gdocs.New(ctx, cfg.Google.CredentialsFile)
		if err != nil {
			logger.Error("❌ Failed to create Google client", "err", err)
		} else {
			drive = client
			svc.Documents = client
		}
	} else {
		logger.Warn("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, invoices are disabled")
	}

	switch cfg.Storage.Driver {
	case "sftp":
		store, err := sftpstore.Dial(cfg.Storage, logging.New("sftp"))
		if err != nil {
			logger.Error("❌ Failed to connect SFTP storage", "err", err)
			return func() {}
		}
		svc.Storage = store
		return func() {
			if err := store.Close(); err != nil {
				logger.Warn("⚠️ Failed to close SFTP storage", "err", err)
			}
		}
	default:
		if drive != nil {
			svc.Storage = drive
		}
	}
	return func() {}
}

// openQueue uses RabbitMQ when AMQP_URL is set. Otherwise notifications are
// delivered in-process to the log sender.
func openQueue(cfg *config.Config, logger *CharmLog.Logger) (queue.Queue, func()) {
	if cfg.AMQPURL != "" {
		aq, err := queue.DialAMQP(cfg.AMQPURL, logging.New("amqp"))
		if err == nil {
			logger.Info("🐇 Publishing invoice notifications to RabbitMQ")
			return aq, func() { aq.Close() }
		}
		logger.Error("❌ RabbitMQ unavailable, falling back to in-memory queue", "err", err)
	}

	q := queue.NewInMemoryQueue(logging.New("queue"))
	if err := queue.StartInvoiceNotificationSubscriber(q, notify.LogSender(logging.New("whatsapp")), logger); err != nil {
		logger.Error("❌ Failed to subscribe to invoice notifications", "err", err)
	}
	return q, q.Wait
}
