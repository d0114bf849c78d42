package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

func (h *Handler) applyOperation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ApplyOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.applyOperation").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.EntityType == "" || req.EntityID == "" || req.OpType == "" {
		log.Error().Str("func", "*Handler.applyOperation").Msg("missing required operation fields")
		http.Error(w, "entity_type, entity_id and op_type are required", http.StatusBadRequest)
		return
	}

	resp, err := h.services.Entities.ApplyOperation(ctx, req)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.applyOperation").
			Str("operation_id", req.OperationID).
			Str("entity_id", req.EntityID).
			Msg("error applying operation")
		http.Error(w, "error applying operation", statusFromError(err))
		return
	}

	writeJSON(w, r, resp, http.StatusOK)
}
