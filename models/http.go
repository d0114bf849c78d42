// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntityResponse is the server's wire representation of one entity. Fields
// are keyed by server (snake_case) column name; the adapter's field map
// decodes them back into local names.
type EntityResponse struct {
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	AccountID  int64          `json:"account_id"`
	Fields     map[string]any `json:"fields"`
	Version    int64          `json:"version"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PushEntityRequest carries a version-checked field write to the server.
// Fields are keyed by server (snake_case) column name.
type PushEntityRequest struct {
	AccountID   int64          `json:"account_id"`
	Fields      map[string]any `json:"fields"`
	BaseVersion int64          `json:"base_version"`
}

// PushEntityResponse reports the version the server assigned to the write.
type PushEntityResponse struct {
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyOperationRequest carries one queued operation to the server's apply
// endpoint during a queue drain.
type ApplyOperationRequest struct {
	OperationID string         `json:"operation_id"`
	AccountID   int64          `json:"account_id"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	OpType      string         `json:"op_type"`
	Fields      map[string]any `json:"fields"`
	BaseVersion int64          `json:"base_version"`
}

// ApplyOperationResponse reports the outcome of applying one operation.
type ApplyOperationResponse struct {
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
