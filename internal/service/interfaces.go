package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// OperationQueue owns the durable log of pending mutations: enqueue, drain,
// and ack semantics. Operations against the same entity apply in the order
// they were created; operations against different entities may drain
// concurrently.
type OperationQueue interface {
	// Add durably appends an operation and returns its id. It must only be
	// called after the corresponding local store write has succeeded. A
	// failed append surfaces as a durable-write error; the caller must
	// then roll back the optimistic local write it just made.
	Add(ctx context.Context, op models.Operation) (string, error)

	// ProcessQueue drains all pending operations and returns the number
	// still pending afterwards. Connectivity loss is reported via the
	// offline sentinel and leaves operations queued.
	ProcessQueue(ctx context.Context) (int, error)

	// RemoveOperation deletes one operation. Idempotent: removing a
	// non-existent id is not an error.
	RemoveOperation(ctx context.Context, id string) error

	// Subscribe registers a callback invoked with the current pending
	// count on every queue mutation.
	Subscribe(fn func(pending int))

	// PendingCount returns the current number of pending operations.
	PendingCount(ctx context.Context) (int, error)
}

// ClientItemService is the write path for items: optimistic local write
// first, then enqueue, with rollback on enqueue failure.
type ClientItemService interface {
	// Create writes the item snapshot locally and enqueues a create
	// operation. If the enqueue fails the snapshot write is rolled back.
	Create(ctx context.Context, item models.Item) error

	// Update applies field changes to the local snapshot and enqueues an
	// update operation carrying only the changed fields. If the enqueue
	// fails the previous snapshot is restored.
	Update(ctx context.Context, entityID string, fields map[string]any) error

	// Delete removes the local snapshot and enqueues a delete operation.
	// If the enqueue fails the snapshot is restored.
	Delete(ctx context.Context, entityID string) error

	// Get returns one item snapshot.
	Get(ctx context.Context, entityID string) (models.EntitySnapshot, error)

	// GetAll returns all item snapshots for the account.
	GetAll(ctx context.Context) ([]models.EntitySnapshot, error)
}

// ConflictDetector compares a local snapshot against the server's current
// row and emits typed conflict records, one per field both sides changed
// independently since the last synced state.
type ConflictDetector interface {
	Detect(local models.EntitySnapshot, server models.ServerEntity) []models.Conflict
}

// ConflictResolver maps conflicts to resolution strategies and applies them.
type ConflictResolver interface {
	// Strategy is the pure decision function
	// (type, field, localTimestamp, serverTimestamp) -> strategy.
	Strategy(conflictType, field string, localTS, serverTS time.Time) string

	// ApplyResolution applies a strategy to one conflict: pushes or pulls
	// data, bumps the entity version past both sides, and deletes every
	// conflict record for the entity as one cleanup step. A failed push or
	// store write propagates and leaves the conflict records intact so
	// the resolution can be retried. Idempotent per entity.
	// userChoice is consulted only for the manual strategy and must be
	// "local" or "server".
	ApplyResolution(ctx context.Context, conflict models.Conflict, strategy, userChoice string) error
}

// SyncScheduler opportunistically drains the operation queue while a
// foreground instance is alive and the network is reachable.
type SyncScheduler interface {
	// Start launches the periodic drain loop. Any previously running loop
	// is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and blocks until it has exited.
	Stop()

	// RunNow performs one drain immediately, tagging broadcast status
	// events with source.
	RunNow(ctx context.Context, source string) error

	// Snapshot returns the scheduler's current ephemeral state.
	Snapshot() models.SchedulerSnapshot
}
