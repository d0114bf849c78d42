// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Conflict types describing why local and server state diverged on a field.
const (
	// ConflictVersion means the optimistic-concurrency counters disagree.
	ConflictVersion = "version"

	// ConflictTimestamp means both sides modified the same field at
	// different times with no version conflict.
	ConflictTimestamp = "timestamp"

	// ConflictContent means the field values themselves differ in a way
	// not explained by version or timestamp metadata.
	ConflictContent = "content"
)

// Resolution strategies a conflict can collapse into.
const (
	StrategyKeepLocal  = "keep_local"
	StrategyKeepServer = "keep_server"
	StrategyMerge      = "merge"
	StrategyManual     = "manual"
)

// ConflictSide captures one side's (local or server) view of a disputed field.
type ConflictSide struct {
	// Data is the field value as that side last saw it.
	Data any `json:"data"`

	// Timestamp is when that side last modified the field.
	Timestamp time.Time `json:"timestamp"`

	// Version is that side's optimistic-concurrency counter.
	Version int64 `json:"version"`
}

// Conflict is a persisted record of divergence between local and server state
// for one entity field. Conflicts are never raised as errors: they are
// first-class data awaiting either automatic policy resolution or an explicit
// user decision. All conflict records for one entity are deleted together once
// a resolution has been applied to both the local store and the server.
type Conflict struct {
	// ID is the conflict record's UUID.
	ID string `json:"id"`

	// EntityID identifies the disputed entity.
	EntityID string `json:"entity_id"`

	// AccountID is the owning account.
	AccountID int64 `json:"account_id"`

	// ProjectID is the optional project scope.
	ProjectID *string `json:"project_id,omitempty"`

	// EntityType names the kind of entity.
	EntityType string `json:"entity_type"`

	// Field is the local (camelCase) name of the disputed field.
	Field string `json:"field"`

	// Type is one of ConflictVersion, ConflictTimestamp, ConflictContent.
	Type string `json:"type"`

	// Local is the client's view of the disputed field.
	Local ConflictSide `json:"local"`

	// Server is the server's view of the disputed field.
	Server ConflictSide `json:"server"`

	// Resolution records the applied strategy once the conflict has been
	// resolved; nil while unresolved.
	Resolution *string `json:"resolution,omitempty"`

	// ResolvedAt is when the resolution was applied; nil while unresolved.
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
