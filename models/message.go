// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Status event types relayed to every open client instance.
const (
	StatusProgress = "PROGRESS"
	StatusComplete = "COMPLETE"
	StatusError    = "ERROR"
)

// Sources identifying which context originated a status event.
const (
	SourceBackgroundSync = "background-sync"
	SourceManual         = "manual"
	SourceForeground     = "foreground"
)

// SyncTag is the fixed tag identifying the background-sync trigger and its
// re-registrations.
const SyncTag = "sync-operations"

// StatusPayload is the body of a status event.
type StatusPayload struct {
	// Timestamp is when the originating context produced the event.
	Timestamp time.Time `json:"timestamp"`

	// Source is one of SourceBackgroundSync, SourceManual, SourceForeground.
	Source string `json:"source"`

	// PendingOperations is the number of operations still queued after the
	// reported action, when known.
	PendingOperations *int `json:"pending_operations,omitempty"`

	// Error carries a human-readable failure description for StatusError
	// events.
	Error string `json:"error,omitempty"`
}

// StatusEvent is broadcast to all registered instances so that every open
// tab or window shows a consistent sync status.
type StatusEvent struct {
	Type    string        `json:"type"`
	Payload StatusPayload `json:"payload"`
}

// DrainRequest asks a foreground instance to process the operation queue.
// The correlation ID ties the eventual reply back to the request.
type DrainRequest struct {
	// CorrelationID is the UUID assigned by the caller for this exchange.
	CorrelationID string `json:"correlation_id"`

	// Tag identifies the request kind; always SyncTag for queue drains.
	Tag string `json:"tag"`
}

// DrainResult is a foreground instance's reply to a DrainRequest.
type DrainResult struct {
	// Success reports whether the drain ran to completion.
	Success bool `json:"success"`

	// PendingOperations is the instance's count of operations still queued
	// after the drain, when the drain succeeded.
	PendingOperations *int `json:"pending_operations,omitempty"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`
}
