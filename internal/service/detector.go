// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-ledger/models"
)

// auditFields never produce conflicts on their own: they move on every write
// and carry no user intent.
var auditFields = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
	"version":   {},
}

type conflictDetector struct{}

// NewConflictDetector returns the field-level conflict detector.
func NewConflictDetector() ConflictDetector {
	return conflictDetector{}
}

// Detect compares a local snapshot with the server's current state and emits
// one conflict per field both sides changed independently since the last
// confirmed sync. A field only the server moved is a clean pull, not a
// conflict. The conflict type classifies the cause: a version mismatch
// outranks a timestamp skew, which outranks a plain content difference.
func (conflictDetector) Detect(local models.EntitySnapshot, server models.ServerEntity) []models.Conflict {
	fields := diffFields(local, server.Fields)
	if len(fields) == 0 {
		return nil
	}

	conflictType := models.ConflictContent
	switch {
	case local.Version != server.Version:
		conflictType = models.ConflictVersion
	case !local.LastUpdated.Equal(server.UpdatedAt):
		conflictType = models.ConflictTimestamp
	}

	conflicts := make([]models.Conflict, 0, len(fields))
	for _, field := range fields {
		conflicts = append(conflicts, models.Conflict{
			ID:         uuid.NewString(),
			EntityID:   local.EntityID,
			AccountID:  local.AccountID,
			ProjectID:  local.ProjectID,
			EntityType: local.EntityType,
			Field:      field,
			Type:       conflictType,
			Local: models.ConflictSide{
				Data:      local.Fields[field],
				Timestamp: local.LastUpdated,
				Version:   local.Version,
			},
			Server: models.ConflictSide{
				Data:      server.Fields[field],
				Timestamp: server.UpdatedAt,
				Version:   server.Version,
			},
		})
	}
	return conflicts
}

// diffFields returns the sorted field names whose values differ between the
// two sides and were edited locally since the last confirmed sync, audit
// fields excluded. Without a synced baseline every local field counts as a
// local edit.
func diffFields(local models.EntitySnapshot, server map[string]any) []string {
	names := make(map[string]struct{}, len(local.Fields)+len(server))
	for name := range local.Fields {
		names[name] = struct{}{}
	}
	for name := range server {
		names[name] = struct{}{}
	}

	var diff []string
	for name := range names {
		if _, skip := auditFields[name]; skip {
			continue
		}
		if reflect.DeepEqual(local.Fields[name], server[name]) {
			continue
		}
		if local.SyncedFields != nil && reflect.DeepEqual(local.Fields[name], local.SyncedFields[name]) {
			// The local side still holds the synced value, so only the
			// server moved this field.
			continue
		}
		diff = append(diff, name)
	}
	sort.Strings(diff)
	return diff
}
