// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-ledger/internal/adapter"
	"github.com/MKhiriev/go-sync-ledger/internal/store"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type operationQueue struct {
	accountID  int64
	operations store.OperationRepository
	snapshots  store.SnapshotRepository
	conflicts  store.ConflictRepository
	adapter    adapter.ServerAdapter
	detector   ConflictDetector

	mu          sync.Mutex
	subscribers []func(pending int)

	// inflight guards against concurrent duplicate drains of the same
	// entity within this execution context. It does not protect against
	// the same race across two client processes; that de-duplication would
	// have to live in the durable store.
	inflight map[string]struct{}
}

// NewOperationQueue constructs the durable operation queue for one account.
func NewOperationQueue(
	accountID int64,
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	detector ConflictDetector,
) OperationQueue {
	return &operationQueue{
		accountID:  accountID,
		operations: storages.Operations,
		snapshots:  storages.Snapshots,
		conflicts:  storages.Conflicts,
		adapter:    serverAdapter,
		detector:   detector,
		inflight:   make(map[string]struct{}),
	}
}

func (q *operationQueue) Add(ctx context.Context, op models.Operation) (string, error) {
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now().UTC()
	}
	op.AccountID = q.accountID
	op.Status = models.OpStatusPending

	if err := q.operations.Append(ctx, op); err != nil {
		return "", fmt.Errorf("enqueue operation: %w", err)
	}

	q.notify(ctx)
	return op.ID, nil
}

func (q *operationQueue) RemoveOperation(ctx context.Context, id string) error {
	if err := q.operations.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove operation: %w", err)
	}

	q.notify(ctx)
	return nil
}

func (q *operationQueue) Subscribe(fn func(pending int)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subscribers = append(q.subscribers, fn)
}

func (q *operationQueue) PendingCount(ctx context.Context) (int, error) {
	return q.operations.CountPending(ctx, q.accountID)
}

// ProcessQueue drains pending operations. Operations are grouped by entity:
// within one entity the insertion order is preserved, while distinct entities
// drain concurrently. A version-conflict response stops the entity's group
// and records conflicts; connectivity loss stops the whole drain and leaves
// everything queued.
func (q *operationQueue) ProcessQueue(ctx context.Context) (int, error) {
	ops, err := q.operations.ListPending(ctx, q.accountID)
	if err != nil {
		return 0, fmt.Errorf("list pending operations: %w", err)
	}
	if len(ops) == 0 {
		return 0, nil
	}

	groups := groupByEntity(ops)

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)

	for key, group := range groups {
		if !q.acquire(key) {
			// Another drain in this context is already working this
			// entity.
			continue
		}

		wg.Add(1)
		go func(key string, group []models.Operation) {
			defer wg.Done()
			defer q.release(key)

			if err := q.drainEntity(ctx, group); err != nil {
				errMu.Lock()
				if firstErr == nil || (adapter.IsOffline(firstErr) && !adapter.IsOffline(err)) {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(key, group)
	}
	wg.Wait()

	pending := q.notify(ctx)
	return pending, firstErr
}

// errConflictRecorded stops an entity's group after a version conflict was
// turned into conflict records. It never escapes ProcessQueue.
var errConflictRecorded = errors.New("conflict recorded")

// drainEntity applies one entity's operations in order. The first failure
// stops the group: later operations would apply on top of the failed one.
func (q *operationQueue) drainEntity(ctx context.Context, group []models.Operation) error {
	for _, op := range group {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := q.applyOperation(ctx, op); err != nil {
			if errors.Is(err, errConflictRecorded) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (q *operationQueue) applyOperation(ctx context.Context, op models.Operation) error {
	if err := q.operations.SetStatus(ctx, op.ID, models.OpStatusProcessing); err != nil {
		return err
	}
	if err := q.operations.IncrementAttempts(ctx, op.ID); err != nil {
		return err
	}

	baseVersion := int64(0)
	snap, snapErr := q.snapshots.Get(ctx, op.EntityType, op.EntityID)
	if snapErr == nil {
		baseVersion = snap.Version
	} else if !errors.Is(snapErr, store.ErrSnapshotNotFound) {
		return snapErr
	}

	resp, err := q.adapter.ApplyOperation(ctx, op, baseVersion)
	switch {
	case err == nil:
		if op.OpType != models.OpDelete && snapErr == nil {
			if err = q.snapshots.MarkSynced(ctx, op.EntityType, op.EntityID, resp.Version); err != nil {
				return err
			}
		}
		return q.operations.Remove(ctx, op.ID)

	case errors.Is(err, adapter.ErrVersionConflict):
		return q.recordConflicts(ctx, op, snap, snapErr == nil)

	case adapter.IsOffline(err):
		// Leave the operation queued; the scheduler or coordinator will
		// retry once the network returns.
		if stErr := q.operations.SetStatus(ctx, op.ID, models.OpStatusPending); stErr != nil {
			return stErr
		}
		return err

	default:
		if stErr := q.operations.SetStatus(ctx, op.ID, models.OpStatusPending); stErr != nil {
			return stErr
		}
		return fmt.Errorf("apply operation %s: %w", op.ID, err)
	}
}

// recordConflicts turns a version-conflict response into persisted conflict
// records and parks the operation as failed so it stops blocking the drain.
func (q *operationQueue) recordConflicts(ctx context.Context, op models.Operation, snap models.EntitySnapshot, haveSnap bool) error {
	serverEntity, err := q.adapter.FetchEntity(ctx, op.EntityType, op.EntityID)
	if err != nil {
		// Could not inspect the server side; keep the operation pending
		// and let the next drain retry.
		if stErr := q.operations.SetStatus(ctx, op.ID, models.OpStatusPending); stErr != nil {
			return stErr
		}
		return err
	}

	if haveSnap {
		for _, c := range q.detector.Detect(snap, serverEntity) {
			if err = q.conflicts.Save(ctx, c); err != nil {
				return err
			}
		}
	}

	if err = q.operations.SetStatus(ctx, op.ID, models.OpStatusFailed); err != nil {
		return err
	}
	return errConflictRecorded
}

func (q *operationQueue) acquire(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, busy := q.inflight[key]; busy {
		return false
	}
	q.inflight[key] = struct{}{}
	return true
}

func (q *operationQueue) release(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.inflight, key)
}

// notify reports the current pending count to every subscriber and returns
// it. Count failures are swallowed: badge updates are best-effort.
func (q *operationQueue) notify(ctx context.Context) int {
	pending, err := q.operations.CountPending(ctx, q.accountID)
	if err != nil {
		return 0
	}

	q.mu.Lock()
	subs := make([]func(int), len(q.subscribers))
	copy(subs, q.subscribers)
	q.mu.Unlock()

	for _, fn := range subs {
		fn(pending)
	}
	return pending
}

func groupByEntity(ops []models.Operation) map[string][]models.Operation {
	groups := make(map[string][]models.Operation)
	for _, op := range ops {
		key := op.EntityType + "/" + op.EntityID
		groups[key] = append(groups[key], op)
	}
	return groups
}
