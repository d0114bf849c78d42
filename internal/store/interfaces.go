package store

import (
	"context"

	"github.com/MKhiriev/go-sync-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// EntityRepository is the server-side authoritative entity store.
type EntityRepository interface {
	// Get returns the current row for one entity.
	// Returns ErrEntityNotFound if the entity does not exist.
	Get(ctx context.Context, entityType, entityID string) (models.EntityResponse, error)

	// Upsert writes fields for an entity with an optimistic version check:
	// the write succeeds only if the stored version equals baseVersion (or
	// the row does not exist yet and baseVersion is zero). On success the
	// stored version becomes baseVersion+1 and the new row is returned.
	// Returns ErrEntityVersionConflict if the check fails.
	Upsert(ctx context.Context, entityType, entityID string, accountID int64, fields map[string]any, baseVersion int64) (models.EntityResponse, error)

	// Delete soft-deletes an entity with the same version check as Upsert.
	Delete(ctx context.Context, entityType, entityID string, baseVersion int64) (models.EntityResponse, error)
}
