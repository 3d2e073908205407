package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tailorbook",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tailorbook",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "route"},
	)

	invoices = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tailorbook",
			Subsystem: "invoice",
			Name:      "generated_total",
			Help:      "Invoice generation attempts by outcome.",
		},
		[]string{"success"},
	)

	invoiceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tailorbook",
			Subsystem: "invoice",
			Name:      "duration_seconds",
			Help:      "Duration of the full invoice call chain.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
	)

	invoiceStepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tailorbook",
			Subsystem: "invoice",
			Name:      "step_failures_total",
			Help:      "Invoice chain failures by step.",
		},
		[]string{"step"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, invoices, invoiceDuration, invoiceStepFailures)
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler records count and duration per chi route pattern.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordInvoice tracks one run of the invoice chain.
func RecordInvoice(success bool, d time.Duration) {
	invoices.WithLabelValues(strconv.FormatBool(success)).Inc()
	invoiceDuration.Observe(d.Seconds())
}

func RecordInvoiceStepFailure(step string) {
	invoiceStepFailures.WithLabelValues(step).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
