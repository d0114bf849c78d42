package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

const (
	getEntity = `
		SELECT entity_type, entity_id, account_id, fields, version, updated_at
		FROM entities
		WHERE entity_type = $1 AND entity_id = $2 AND deleted = FALSE;`

	upsertEntity = `
		INSERT INTO entities (entity_type, entity_id, account_id, fields, version, updated_at)
		VALUES ($1, $2, $3, $4, 1, now())
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			fields     = entities.fields || excluded.fields,
			version    = entities.version + 1,
			updated_at = now(),
			deleted    = FALSE
		WHERE entities.version = $5
		RETURNING entity_type, entity_id, account_id, fields, version, updated_at;`

	softDeleteEntity = `
		UPDATE entities SET
			deleted    = TRUE,
			version    = version + 1,
			updated_at = now()
		WHERE entity_type = $1 AND entity_id = $2 AND version = $3
		RETURNING entity_type, entity_id, account_id, fields, version, updated_at;`
)

type entityRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) Get(ctx context.Context, entityType, entityID string) (models.EntityResponse, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getEntity, entityType, entityID)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityResponse{}, ErrEntityNotFound
		}
		log.Err(err).
			Str("func", "entityRepository.Get").
			Str("entity_id", entityID).
			Str("pg_code", postgresError(err)).
			Msg("failed to scan entity row")
		return models.EntityResponse{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entity, nil
}

func (r *entityRepository) Upsert(ctx context.Context, entityType, entityID string, accountID int64, fields map[string]any, baseVersion int64) (models.EntityResponse, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(fields)
	if err != nil {
		return models.EntityResponse{}, fmt.Errorf("encode entity fields: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, upsertEntity, entityType, entityID, accountID, string(payload), baseVersion)
	entity, err := scanEntity(row)
	if err != nil {
		// The RETURNING clause produces no row when the version guard on
		// the conflict branch rejected the write.
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityResponse{}, ErrEntityVersionConflict
		}
		log.Err(err).
			Str("func", "entityRepository.Upsert").
			Str("entity_id", entityID).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert entity")
		return models.EntityResponse{}, fmt.Errorf("%w: upsert entity (entity_id=%s): %w", ErrExecutingStatement, entityID, err)
	}

	return entity, nil
}

func (r *entityRepository) Delete(ctx context.Context, entityType, entityID string, baseVersion int64) (models.EntityResponse, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, softDeleteEntity, entityType, entityID, baseVersion)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityResponse{}, ErrEntityVersionConflict
		}
		log.Err(err).
			Str("func", "entityRepository.Delete").
			Str("entity_id", entityID).
			Str("pg_code", postgresError(err)).
			Msg("failed to soft-delete entity")
		return models.EntityResponse{}, fmt.Errorf("%w: delete entity (entity_id=%s): %w", ErrExecutingStatement, entityID, err)
	}

	return entity, nil
}

func scanEntity(s scanner) (models.EntityResponse, error) {
	var (
		entity models.EntityResponse
		fields string
	)

	err := s.Scan(
		&entity.EntityType,
		&entity.EntityID,
		&entity.AccountID,
		&fields,
		&entity.Version,
		&entity.UpdatedAt,
	)
	if err != nil {
		return models.EntityResponse{}, err
	}

	if err = json.Unmarshal([]byte(fields), &entity.Fields); err != nil {
		return models.EntityResponse{}, fmt.Errorf("decode entity fields: %w", err)
	}

	return entity, nil
}
