// internal/controller/response.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/unclebandit/tailorbook-backend/internal/errors"
	"github.com/unclebandit/tailorbook-backend/internal/logging"
)

var logger = logging.New("http")

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("❌ failed to write JSON response", "err", err)
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeError maps the typed errors to a status code. fallback is the error
// text used for anything that is not a validation, not-found or config error.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var vErr *appErrors.ValidationError
	var nf *appErrors.ErrCustomerNotFound
	var cfgErr *appErrors.ConfigError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: vErr.Error(), Fields: vErr.Fields})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "customer not found", Details: nf.Error()})
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Server configuration error", Details: cfgErr.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fallback, Details: err.Error()})
	}
}

func writeBadBody(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
}
