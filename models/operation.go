// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Operation types describing the kind of mutation a queued operation carries.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Operation statuses maintained by the drain loop.
const (
	OpStatusPending    = "pending"
	OpStatusProcessing = "processing"
	OpStatusFailed     = "failed"
)

// Operation is a durably queued intent to mutate one entity. It is created by
// the write path before any network attempt and owned exclusively by the
// operation queue: only the queue mutates Attempts and Status, and only the
// queue removes it on success or explicit cancellation.
type Operation struct {
	// ID is the queue-assigned UUID of the operation.
	ID string `json:"id"`

	// AccountID scopes the operation to one account's log.
	AccountID int64 `json:"account_id"`

	// EntityType names the kind of entity the operation targets
	// (e.g. "item", "project").
	EntityType string `json:"entity_type"`

	// EntityID identifies the targeted entity. Operations sharing an
	// EntityID apply strictly in creation order.
	EntityID string `json:"entity_id"`

	// OpType is one of OpCreate, OpUpdate, OpDelete.
	OpType string `json:"op_type"`

	// Payload carries the mutated fields, keyed by local (camelCase)
	// field name.
	Payload map[string]any `json:"payload"`

	// CreatedAt orders operations within one entity's sub-log.
	CreatedAt time.Time `json:"created_at"`

	// Attempts counts how many times the drain loop has tried to apply
	// this operation against the server.
	Attempts int `json:"attempts"`

	// Status is one of OpStatusPending, OpStatusProcessing, OpStatusFailed.
	Status string `json:"status"`
}
