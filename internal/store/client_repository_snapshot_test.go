// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

var snapshotColumns = []string{
	"entity_type", "entity_id", "account_id", "project_id",
	"fields", "synced_fields", "version", "last_updated", "last_synced_at", "stale",
}

func TestSnapshotRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	snap := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    "item-1",
		AccountID:   7,
		Fields:      map[string]any{"name": "plywood"},
		Version:     2,
		LastUpdated: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Stale:       true,
	}

	mock.ExpectExec(regexp.QuoteMeta(saveSnapshot)).
		WithArgs(snap.EntityType, snap.EntityID, snap.AccountID, nil,
			`{"name":"plywood"}`, nil, snap.Version, snap.LastUpdated, nil, snap.Stale).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), snap)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Save_PersistsSyncedBaseline(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	snap := models.EntitySnapshot{
		EntityType:   models.EntityItem,
		EntityID:     "item-1",
		AccountID:    7,
		Fields:       map[string]any{"name": "plywood"},
		SyncedFields: map[string]any{"name": "pine"},
		Version:      3,
		LastUpdated:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(regexp.QuoteMeta(saveSnapshot)).
		WithArgs(snap.EntityType, snap.EntityID, snap.AccountID, nil,
			`{"name":"plywood"}`, `{"name":"pine"}`, snap.Version, snap.LastUpdated, nil, snap.Stale).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), snap)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Save_RefusesToGoBackwards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	// Zero affected rows: a concurrent writer already stored a newer version.
	mock.ExpectExec(regexp.QuoteMeta(saveSnapshot)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), models.EntitySnapshot{EntityID: "item-1", Version: 1})

	assert.ErrorIs(t, err, ErrVersionCheckFailed)
}

func TestSnapshotRepository_Save_WriteFailureIsDurableWriteError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(saveSnapshot)).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Save(context.Background(), models.EntitySnapshot{EntityID: "item-1"})

	assert.ErrorIs(t, err, ErrDurableWrite)
}

func TestSnapshotRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	lastUpdated := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	syncedAt := lastUpdated.Add(time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(getSnapshot)).
		WithArgs(models.EntityItem, "item-1").
		WillReturnRows(sqlmock.NewRows(snapshotColumns).
			AddRow(models.EntityItem, "item-1", int64(7), nil,
				`{"name":"plywood","price":12.5}`, `{"name":"plywood","price":10.0}`,
				int64(3), lastUpdated, syncedAt, false))

	snap, err := repo.Get(context.Background(), models.EntityItem, "item-1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Version)
	assert.Equal(t, syncedAt, snap.LastSyncedAt)
	assert.Equal(t, map[string]any{"name": "plywood", "price": 12.5}, snap.Fields)
	assert.Equal(t, map[string]any{"name": "plywood", "price": 10.0}, snap.SyncedFields)
	assert.False(t, snap.Stale)
}

func TestSnapshotRepository_Get_NeverSyncedHasZeroSyncTime(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getSnapshot)).
		WillReturnRows(sqlmock.NewRows(snapshotColumns).
			AddRow(models.EntityItem, "item-1", int64(7), nil,
				`{}`, nil, int64(1), time.Now(), nil, true))

	snap, err := repo.Get(context.Background(), models.EntityItem, "item-1")

	require.NoError(t, err)
	assert.True(t, snap.LastSyncedAt.IsZero())
	assert.Nil(t, snap.SyncedFields, "an unsynced snapshot has no baseline")
	assert.True(t, snap.Stale)
}

func TestSnapshotRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getSnapshot)).
		WillReturnRows(sqlmock.NewRows(snapshotColumns))

	_, err := repo.Get(context.Background(), models.EntityItem, "missing")

	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotRepository_GetByAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(getSnapshotsByAccount)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(snapshotColumns).
			AddRow(models.EntityItem, "item-1", int64(7), nil, `{}`, nil, int64(1), now, nil, false).
			AddRow(models.EntityItem, "item-2", int64(7), nil, `{}`, `{}`, int64(4), now, now, true))

	snaps, err := repo.GetByAccount(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "item-1", snaps[0].EntityID)
	assert.Equal(t, int64(4), snaps[1].Version)
}

func TestSnapshotRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteSnapshot)).
		WithArgs(models.EntityItem, "item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), models.EntityItem, "item-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_MarkSynced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(markSnapshotSynced)).
		WithArgs(int64(5), sqlmock.AnyArg(), models.EntityItem, "item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSynced(context.Background(), models.EntityItem, "item-1", 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_MarkSynced_MissingSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(markSnapshotSynced)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkSynced(context.Background(), models.EntityItem, "missing", 5)

	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotRepository_MarkStale(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(markSnapshotStale)).
		WithArgs(models.EntityItem, "item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkStale(context.Background(), models.EntityItem, "item-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
