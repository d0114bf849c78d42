// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntitySnapshot is the local store's last-known-good record of one entity.
// A snapshot is either consistent with the server as of LastSyncedAt, or
// explicitly marked stale while a queued operation is pending for it.
type EntitySnapshot struct {
	// EntityType names the kind of entity (e.g. "item", "project").
	EntityType string `json:"entity_type"`

	// EntityID is the entity's client-assigned UUID.
	EntityID string `json:"entity_id"`

	// AccountID is the owning account.
	AccountID int64 `json:"account_id"`

	// ProjectID is the optional project the entity belongs to.
	ProjectID *string `json:"project_id,omitempty"`

	// Fields holds the entity's last-known-good field values keyed by
	// local (camelCase) field name.
	Fields map[string]any `json:"fields"`

	// SyncedFields is the field set as of LastSyncedAt. It is the baseline
	// the conflict detector uses to tell local edits apart from clean
	// server-side changes. Nil if the entity has never been synced.
	SyncedFields map[string]any `json:"synced_fields,omitempty"`

	// Version is the optimistic-concurrency counter. It never decreases.
	Version int64 `json:"version"`

	// LastUpdated is when the entity was last modified locally.
	LastUpdated time.Time `json:"last_updated"`

	// LastSyncedAt is when the snapshot was last confirmed against the
	// server. Zero if the entity has never been synced.
	LastSyncedAt time.Time `json:"last_synced_at"`

	// Stale marks a snapshot that has local edits not yet applied to the
	// server.
	Stale bool `json:"stale"`
}

// ServerEntity is the server's authoritative view of one entity as returned
// by the adapter, decoded back into local field names.
type ServerEntity struct {
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Fields     map[string]any `json:"fields"`
	Version    int64          `json:"version"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
