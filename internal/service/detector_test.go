// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-ledger/models"
)

func TestConflictDetector_NoDivergence(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"name": "milk", "price": int64(100)},
		Version:     3,
		LastUpdated: now,
	}
	server := models.ServerEntity{
		EntityType: models.EntityItem,
		EntityID:   "item-1",
		Fields:     map[string]any{"name": "milk", "price": int64(100)},
		Version:    3,
		UpdatedAt:  now,
	}

	assert.Empty(t, d.Detect(local, server))
}

func TestConflictDetector_VersionMismatchOutranksEverything(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		AccountID:   9,
		Fields:      map[string]any{"price": int64(100)},
		Version:     2,
		LastUpdated: now.Add(-time.Hour),
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"price": int64(200)},
		Version:   5,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 1)

	c := conflicts[0]
	assert.Equal(t, models.ConflictVersion, c.Type)
	assert.Equal(t, "price", c.Field)
	assert.Equal(t, "item-1", c.EntityID)
	assert.Equal(t, int64(9), c.AccountID)
	assert.Equal(t, int64(100), c.Local.Data)
	assert.Equal(t, int64(200), c.Server.Data)
	assert.NotEmpty(t, c.ID)
}

func TestConflictDetector_TimestampSkew(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"purchased": false},
		Version:     4,
		LastUpdated: now.Add(-10 * time.Minute),
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"purchased": true},
		Version:   4,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTimestamp, conflicts[0].Type)
}

func TestConflictDetector_ContentOnly(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"description": "2 liters", "name": "milk"},
		Version:     4,
		LastUpdated: now,
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"description": "1 liter", "name": "milk"},
		Version:   4,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictContent, conflicts[0].Type)
	assert.Equal(t, "description", conflicts[0].Field)
}

func TestConflictDetector_OneConflictPerField_Sorted(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"name": "milk", "price": int64(1), "quantity": int64(2)},
		Version:     1,
		LastUpdated: now,
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"name": "oat milk", "price": int64(3), "quantity": int64(2)},
		Version:   2,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "name", conflicts[0].Field)
	assert.Equal(t, "price", conflicts[1].Field)
}

func TestConflictDetector_IgnoresAuditFields(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"name": "milk", "updatedAt": "2026-01-01T00:00:00Z", "version": int64(3)},
		Version:     3,
		LastUpdated: now,
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"name": "milk", "updatedAt": "2026-02-02T00:00:00Z", "version": int64(4)},
		Version:   3,
		UpdatedAt: now,
	}

	assert.Empty(t, d.Detect(local, server))
}

func TestConflictDetector_FieldMissingOnOneSide(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"name": "milk", "parentItemId": "item-0"},
		Version:     2,
		LastUpdated: now,
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"name": "milk"},
		Version:   2,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "parentItemId", conflicts[0].Field)
	assert.Equal(t, "item-0", conflicts[0].Local.Data)
	assert.Nil(t, conflicts[0].Server.Data)
}

func TestConflictDetector_ServerOnlyChangeIsACleanPull(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	// The local side still holds the synced value for every field, so the
	// server's edit carries no competing local intent.
	local := models.EntitySnapshot{
		EntityType:   models.EntityItem,
		EntityID:     "item-1",
		Fields:       map[string]any{"name": "milk", "price": int64(100)},
		SyncedFields: map[string]any{"name": "milk", "price": int64(100)},
		Version:      3,
		LastUpdated:  now.Add(-time.Hour),
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"name": "milk", "price": int64(250)},
		Version:   4,
		UpdatedAt: now,
	}

	assert.Empty(t, d.Detect(local, server))
}

func TestConflictDetector_BaselineSeparatesLocalEditsFromServerEdits(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	// Since the last sync the local side edited price, the server edited
	// both price and name. Only price was changed on both sides.
	local := models.EntitySnapshot{
		EntityType:   models.EntityItem,
		EntityID:     "item-1",
		Fields:       map[string]any{"name": "milk", "price": int64(150)},
		SyncedFields: map[string]any{"name": "milk", "price": int64(100)},
		Version:      3,
		LastUpdated:  now,
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"name": "oat milk", "price": int64(250)},
		Version:   4,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "price", conflicts[0].Field)
	assert.Equal(t, int64(150), conflicts[0].Local.Data)
	assert.Equal(t, int64(250), conflicts[0].Server.Data)
}

func TestConflictDetector_NoBaselineTreatsEveryLocalFieldAsEdited(t *testing.T) {
	d := NewConflictDetector()
	now := time.Now().UTC()

	local := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		Fields:      map[string]any{"price": int64(100)},
		Version:     3,
		LastUpdated: now,
	}
	server := models.ServerEntity{
		Fields:    map[string]any{"price": int64(250)},
		Version:   4,
		UpdatedAt: now,
	}

	conflicts := d.Detect(local, server)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "price", conflicts[0].Field)
}
