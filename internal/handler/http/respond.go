package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
)

// writeJSON serialises v into the response body with the given status code.
// Encoding failures are logged; the status line has already been written by
// then, so the client sees a truncated body rather than a different code.
func writeJSON(w http.ResponseWriter, r *http.Request, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to encode response body")
	}
}
