package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sync-ledger/internal/config"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type httpServerAdapter struct {
	client   *resty.Client
	fieldMap *FieldMap
	logger   *logger.Logger
}

// NewHTTPServerAdapter constructs the resty-backed [ServerAdapter]. The item
// field map is validated against the entity's full field set at construction;
// any unmapped field is logged so it cannot silently vanish from pushes.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) ServerAdapter {
	baseURL := cfg.HTTPAddress
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	fieldMap := NewItemFieldMap()
	if unmapped := fieldMap.Validate(ItemFields); len(unmapped) > 0 {
		log.Warn().
			Strs("fields", unmapped).
			Msg("item fields missing from the field map will never reach the server")
	}

	return &httpServerAdapter{client: cli, fieldMap: fieldMap, logger: log}
}

func (h *httpServerAdapter) ApplyOperation(ctx context.Context, op models.Operation, baseVersion int64) (models.ApplyOperationResponse, error) {
	encoded, dropped := h.fieldMap.Encode(op.Payload)
	if len(dropped) > 0 {
		h.logger.Warn().
			Str("operation_id", op.ID).
			Strs("fields", dropped).
			Msg("dropping unmapped payload fields")
	}

	req := models.ApplyOperationRequest{
		OperationID: op.ID,
		AccountID:   op.AccountID,
		EntityType:  op.EntityType,
		EntityID:    op.EntityID,
		OpType:      op.OpType,
		Fields:      encoded,
		BaseVersion: baseVersion,
	}

	var result models.ApplyOperationResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/operations/")
	if err != nil {
		return models.ApplyOperationResponse{}, fmt.Errorf("%w: apply operation: %w", ErrWaitingForNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ApplyOperationResponse{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) FetchEntity(ctx context.Context, entityType, entityID string) (models.ServerEntity, error) {
	var result models.EntityResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/entities/%s/%s", entityType, entityID))
	if err != nil {
		return models.ServerEntity{}, fmt.Errorf("%w: fetch entity: %w", ErrWaitingForNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ServerEntity{}, err
	}

	decoded, dropped := h.fieldMap.Decode(result.Fields)
	if len(dropped) > 0 {
		h.logger.Warn().
			Str("entity_id", entityID).
			Strs("fields", dropped).
			Msg("dropping unknown server fields")
	}

	return models.ServerEntity{
		EntityType: result.EntityType,
		EntityID:   result.EntityID,
		Fields:     decoded,
		Version:    result.Version,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

func (h *httpServerAdapter) PushFields(ctx context.Context, entityType, entityID string, accountID int64, fields map[string]any, baseVersion int64) (models.PushEntityResponse, error) {
	encoded, dropped := h.fieldMap.Encode(fields)
	if len(dropped) > 0 {
		h.logger.Warn().
			Str("entity_id", entityID).
			Strs("fields", dropped).
			Msg("dropping unmapped fields from push")
	}

	req := models.PushEntityRequest{
		AccountID:   accountID,
		Fields:      encoded,
		BaseVersion: baseVersion,
	}

	var result models.PushEntityResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Put(fmt.Sprintf("/api/entities/%s/%s", entityType, entityID))
	if err != nil {
		return models.PushEntityResponse{}, fmt.Errorf("%w: push fields: %w", ErrWaitingForNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushEntityResponse{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWaitingForNetwork, err)
	}

	return mapHTTPError(resp)
}
