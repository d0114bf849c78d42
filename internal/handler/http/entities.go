package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")

	entity, err := h.services.Entities.GetEntity(ctx, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.getEntity").
			Str("entity_id", entityID).
			Msg("error getting entity")
		http.Error(w, "error getting entity", statusFromError(err))
		return
	}

	writeJSON(w, r, entity, http.StatusOK)
}

func (h *Handler) pushEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")

	var req models.PushEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.pushEntity").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	entity, err := h.services.Entities.PushEntity(ctx, entityType, entityID, req)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.pushEntity").
			Str("entity_id", entityID).
			Msg("error pushing entity fields")
		http.Error(w, "error pushing entity fields", statusFromError(err))
		return
	}

	writeJSON(w, r, models.PushEntityResponse{
		Version:   entity.Version,
		UpdatedAt: entity.UpdatedAt,
	}, http.StatusOK)
}
