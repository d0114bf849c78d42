// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-ledger/internal/store"
	"github.com/MKhiriev/go-sync-ledger/models"
)

// EntityService is the server-side apply path: version-checked writes against
// the authoritative entity store.
type EntityService interface {
	// ApplyOperation applies one client operation. Returns
	// [store.ErrEntityVersionConflict] when the operation's base version no
	// longer matches the stored row.
	ApplyOperation(ctx context.Context, req models.ApplyOperationRequest) (models.ApplyOperationResponse, error)

	// GetEntity returns the current server row for one entity.
	GetEntity(ctx context.Context, entityType, entityID string) (models.EntityResponse, error)

	// PushEntity writes a full field set with an optimistic version check.
	PushEntity(ctx context.Context, entityType, entityID string, req models.PushEntityRequest) (models.EntityResponse, error)
}

// Services aggregates the server-side services.
type Services struct {
	Entities EntityService
}

// NewServices wires the server service layer over the authoritative stores.
func NewServices(storages *store.Storages) *Services {
	return &Services{
		Entities: &entityService{entities: storages.Entities},
	}
}

type entityService struct {
	entities store.EntityRepository
}

func (s *entityService) ApplyOperation(ctx context.Context, req models.ApplyOperationRequest) (models.ApplyOperationResponse, error) {
	switch req.OpType {
	case models.OpCreate, models.OpUpdate:
		entity, err := s.entities.Upsert(ctx, req.EntityType, req.EntityID, req.AccountID, req.Fields, req.BaseVersion)
		if err != nil {
			return models.ApplyOperationResponse{}, err
		}
		return models.ApplyOperationResponse{Version: entity.Version, UpdatedAt: entity.UpdatedAt}, nil

	case models.OpDelete:
		entity, err := s.entities.Delete(ctx, req.EntityType, req.EntityID, req.BaseVersion)
		if err != nil {
			if errors.Is(err, store.ErrEntityVersionConflict) {
				// A delete of a row that no longer exists already holds:
				// report success so replayed deletes stay idempotent.
				if _, getErr := s.entities.Get(ctx, req.EntityType, req.EntityID); errors.Is(getErr, store.ErrEntityNotFound) {
					return models.ApplyOperationResponse{Version: req.BaseVersion}, nil
				}
			}
			return models.ApplyOperationResponse{}, err
		}
		return models.ApplyOperationResponse{Version: entity.Version, UpdatedAt: entity.UpdatedAt}, nil

	default:
		return models.ApplyOperationResponse{}, fmt.Errorf("%w: %q", ErrUnknownOperationType, req.OpType)
	}
}

func (s *entityService) GetEntity(ctx context.Context, entityType, entityID string) (models.EntityResponse, error) {
	return s.entities.Get(ctx, entityType, entityID)
}

func (s *entityService) PushEntity(ctx context.Context, entityType, entityID string, req models.PushEntityRequest) (models.EntityResponse, error) {
	return s.entities.Upsert(ctx, entityType, entityID, req.AccountID, req.Fields, req.BaseVersion)
}
