// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-ledger/internal/adapter"
	"github.com/MKhiriev/go-sync-ledger/internal/store"
	"github.com/MKhiriev/go-sync-ledger/models"
)

// serverNewerThreshold is how much newer the server's write must be before a
// timestamp conflict auto-resolves in the server's favour. Below it the skew
// could be clock drift, so the user decides.
const serverNewerThreshold = 5 * time.Minute

// nonCriticalFields auto-resolve content conflicts in the local side's
// favour: losing a local edit to one of these is worse than overwriting a
// concurrent server edit.
var nonCriticalFields = map[string]struct{}{
	"description": {},
}

type conflictResolver struct {
	snapshots store.SnapshotRepository
	conflicts store.ConflictRepository
	adapter   adapter.ServerAdapter
}

// NewConflictResolver wires the policy engine that picks and applies
// resolution strategies for recorded conflicts.
func NewConflictResolver(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter) ConflictResolver {
	return &conflictResolver{
		snapshots: storages.Snapshots,
		conflicts: storages.Conflicts,
		adapter:   serverAdapter,
	}
}

// Strategy returns the resolution strategy for one conflict according to the
// policy table:
//
//	version   conflicts always defer to the server, whose counter is the
//	          source of truth;
//	timestamp conflicts defer to the server only when its write is clearly
//	          newer (more than serverNewerThreshold);
//	content   conflicts keep the local side for non-critical fields.
//
// Everything else requires a manual choice.
func (r *conflictResolver) Strategy(conflictType, field string, localTS, serverTS time.Time) string {
	switch conflictType {
	case models.ConflictVersion:
		return models.StrategyKeepServer
	case models.ConflictTimestamp:
		if serverTS.Sub(localTS) > serverNewerThreshold {
			return models.StrategyKeepServer
		}
		return models.StrategyManual
	case models.ConflictContent:
		if _, ok := nonCriticalFields[field]; ok {
			return models.StrategyKeepLocal
		}
		return models.StrategyManual
	default:
		return models.StrategyManual
	}
}

// ApplyResolution applies a strategy to every conflict recorded for the
// entity named by c. The apply is idempotent: when no conflicts remain for
// the entity it succeeds without touching anything, so double-clicks and
// replayed requests are harmless. Conflict records are removed only after
// both sides reflect the resolution.
func (r *conflictResolver) ApplyResolution(ctx context.Context, c models.Conflict, strategy, userChoice string) error {
	pending, err := r.conflicts.ListByEntity(ctx, c.EntityID)
	if err != nil {
		return fmt.Errorf("list conflicts: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	effective := strategy
	if strategy == models.StrategyManual {
		switch userChoice {
		case "":
			return ErrManualResolutionRequired
		case "local":
			effective = models.StrategyKeepLocal
		case "server":
			effective = models.StrategyKeepServer
		default:
			return fmt.Errorf("%w: %q", ErrInvalidUserChoice, userChoice)
		}
	}

	switch effective {
	case models.StrategyKeepServer:
		err = r.applyKeepServer(ctx, c)
	case models.StrategyKeepLocal:
		err = r.applyKeepLocal(ctx, c)
	case models.StrategyMerge:
		err = r.applyMerge(ctx, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return err
	}

	return r.conflicts.DeleteByEntity(ctx, c.EntityID)
}

// applyKeepServer overwrites the local snapshot with the server's current
// state and adopts the server's version.
func (r *conflictResolver) applyKeepServer(ctx context.Context, c models.Conflict) error {
	serverEntity, err := r.adapter.FetchEntity(ctx, c.EntityType, c.EntityID)
	if err != nil {
		return fmt.Errorf("fetch server entity: %w", err)
	}

	snap := models.EntitySnapshot{
		EntityType:   c.EntityType,
		EntityID:     c.EntityID,
		AccountID:    c.AccountID,
		ProjectID:    c.ProjectID,
		Fields:       serverEntity.Fields,
		SyncedFields: serverEntity.Fields,
		Version:      serverEntity.Version,
		LastUpdated:  serverEntity.UpdatedAt,
	}
	if err = r.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save resolved snapshot: %w", err)
	}
	return r.snapshots.MarkSynced(ctx, c.EntityType, c.EntityID, serverEntity.Version)
}

// applyKeepLocal pushes the local snapshot to the server on top of the
// server's current version and adopts the version the server hands back.
func (r *conflictResolver) applyKeepLocal(ctx context.Context, c models.Conflict) error {
	snap, err := r.snapshots.Get(ctx, c.EntityType, c.EntityID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			// The entity was deleted locally after the conflict was
			// recorded; nothing to push.
			return nil
		}
		return err
	}

	serverEntity, err := r.adapter.FetchEntity(ctx, c.EntityType, c.EntityID)
	if err != nil {
		return fmt.Errorf("fetch server entity: %w", err)
	}

	resp, err := r.adapter.PushFields(ctx, c.EntityType, c.EntityID, c.AccountID, snap.Fields, serverEntity.Version)
	if err != nil {
		return fmt.Errorf("push local fields: %w", err)
	}
	return r.snapshots.MarkSynced(ctx, c.EntityType, c.EntityID, resp.Version)
}

// applyMerge builds a hybrid with the server's fields as the base, carries
// over non-critical local fields the server has no value for, and pushes it
// the same way a local win is pushed. Both sides then adopt the hybrid.
func (r *conflictResolver) applyMerge(ctx context.Context, c models.Conflict) error {
	snap, err := r.snapshots.Get(ctx, c.EntityType, c.EntityID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			// The entity was deleted locally after the conflict was
			// recorded; there is nothing local left to merge in.
			return nil
		}
		return err
	}

	serverEntity, err := r.adapter.FetchEntity(ctx, c.EntityType, c.EntityID)
	if err != nil {
		return fmt.Errorf("fetch server entity: %w", err)
	}

	merged := make(map[string]any, len(serverEntity.Fields)+len(nonCriticalFields))
	for name, value := range serverEntity.Fields {
		merged[name] = value
	}
	for name := range nonCriticalFields {
		if existing, ok := merged[name]; ok && existing != nil {
			continue
		}
		if value, ok := snap.Fields[name]; ok {
			merged[name] = value
		}
	}

	resp, err := r.adapter.PushFields(ctx, c.EntityType, c.EntityID, c.AccountID, merged, serverEntity.Version)
	if err != nil {
		return fmt.Errorf("push merged fields: %w", err)
	}

	snap.Fields = merged
	snap.SyncedFields = merged
	snap.Version = resp.Version
	if err = r.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save merged snapshot: %w", err)
	}
	return r.snapshots.MarkSynced(ctx, c.EntityType, c.EntityID, resp.Version)
}
