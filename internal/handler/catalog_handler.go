// internal/handler/catalog_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	CharmLog "github.com/charmbracelet/log"

	"github.com/unclebandit/tailorbook-backend/internal/catalog"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CatalogHandler serves the static lookup data and the health probe
type CatalogHandler struct {
	Catalog *catalog.Catalog
	DB      Pinger
	Logger  *CharmLog.Logger
}

// NewCatalogHandler creates a new CatalogHandler with the given catalog
func NewCatalogHandler(c *catalog.Catalog, db Pinger, logger *CharmLog.Logger) *CatalogHandler {
	return &CatalogHandler{
		Catalog: c,
		DB:      db,
		Logger:  logger,
	}
}

// GetCatalogHandler returns clothing types, their sub types and the measurement fields
func (h *CatalogHandler) GetCatalogHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Catalog); err != nil {
		h.Logger.Error("❌ Error writing catalog", "err", err)
	}
}

// HealthHandler reports whether the database answers within two seconds
func (h *CatalogHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			h.Logger.Warn("⚠️ Health check failed", "err", err)
			status = map[string]string{"status": "unavailable", "database": err.Error()}
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
