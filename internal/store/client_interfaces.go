package store

import (
	"context"

	"github.com/MKhiriev/go-sync-ledger/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SnapshotRepository is the local store of last-known-good entity snapshots.
// All writes are version-checked: a save whose version is lower than the
// stored one fails with ErrVersionCheckFailed instead of clobbering a
// concurrent edit from another instance.
type SnapshotRepository interface {
	// Save upserts a snapshot. The stored version never decreases.
	Save(ctx context.Context, snap models.EntitySnapshot) error

	// Get returns one snapshot, or ErrSnapshotNotFound.
	Get(ctx context.Context, entityType, entityID string) (models.EntitySnapshot, error)

	// GetByAccount returns all snapshots owned by accountID.
	GetByAccount(ctx context.Context, accountID int64) ([]models.EntitySnapshot, error)

	// Delete removes a snapshot. Used by the write path to roll back an
	// optimistic write whose enqueue failed. Idempotent.
	Delete(ctx context.Context, entityType, entityID string) error

	// MarkSynced records a successful server confirmation: sets version,
	// lastSyncedAt, and clears the stale flag.
	MarkSynced(ctx context.Context, entityType, entityID string, version int64) error

	// MarkStale flags a snapshot as having local edits not yet applied to
	// the server.
	MarkStale(ctx context.Context, entityType, entityID string) error
}

// OperationRepository is the durable append-only log of pending operations.
type OperationRepository interface {
	// Append durably adds one operation to the log.
	Append(ctx context.Context, op models.Operation) error

	// ListPending returns all pending operations for an account in
	// insertion order.
	ListPending(ctx context.Context, accountID int64) ([]models.Operation, error)

	// IncrementAttempts bumps the attempt counter of one operation.
	IncrementAttempts(ctx context.Context, id string) error

	// SetStatus updates one operation's status.
	SetStatus(ctx context.Context, id, status string) error

	// Remove deletes one operation. Removing a non-existent id is not an
	// error.
	Remove(ctx context.Context, id string) error

	// CountPending returns the number of pending operations for an account.
	CountPending(ctx context.Context, accountID int64) (int, error)
}

// ConflictRepository persists conflict records between syncs.
type ConflictRepository interface {
	// Save upserts one conflict record.
	Save(ctx context.Context, c models.Conflict) error

	// ListByAccount returns an account's conflicts, optionally filtered to
	// unresolved ones.
	ListByAccount(ctx context.Context, accountID int64, unresolvedOnly bool) ([]models.Conflict, error)

	// ListByEntity returns all conflicts recorded for one entity.
	ListByEntity(ctx context.Context, entityID string) ([]models.Conflict, error)

	// MarkResolved records the applied strategy and resolution time on one
	// conflict.
	MarkResolved(ctx context.Context, id, resolution string) error

	// DeleteByEntity removes every conflict record for one entity in a
	// single statement. Resolution cleanup is all-or-nothing per entity.
	DeleteByEntity(ctx context.Context, entityID string) error
}
