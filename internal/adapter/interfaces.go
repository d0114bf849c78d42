// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrVersionConflict] for 409). Connectivity loss maps
// to [ErrWaitingForNetwork], which is an informational sentinel rather than a
// failure: the engine's retry policy absorbs it.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, field-name
// translation via the declared field map, and mapping transport-level errors
// to the sentinel values defined in this package.
type ServerAdapter interface {
	// ApplyOperation pushes one queued operation to the server. Payload
	// fields are encoded through the field map; unmapped fields are
	// dropped and logged. Returns [ErrVersionConflict] (wrapped) if the
	// server rejects the base version, or [ErrWaitingForNetwork] if the
	// server is unreachable.
	ApplyOperation(ctx context.Context, op models.Operation, baseVersion int64) (models.ApplyOperationResponse, error)

	// FetchEntity retrieves the server's current row for one entity, with
	// fields decoded back into local names.
	FetchEntity(ctx context.Context, entityType, entityID string) (models.ServerEntity, error)

	// PushFields writes a field set to the server with an optimistic
	// version check. Used by the conflict resolver's keep_local and merge
	// apply paths.
	PushFields(ctx context.Context, entityType, entityID string, accountID int64, fields map[string]any, baseVersion int64) (models.PushEntityResponse, error)

	// Ping reports server reachability. Returns [ErrWaitingForNetwork]
	// when the server cannot be reached.
	Ping(ctx context.Context) error
}

// NetworkMonitor reports whether the network is currently believed reachable.
// The background coordinator consults it before any registration attempt.
type NetworkMonitor interface {
	Online(ctx context.Context) bool
}
