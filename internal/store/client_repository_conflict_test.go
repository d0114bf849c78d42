// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

func conflictRows() *sqlmock.Rows {
	return sqlmock.NewRows(conflictColumns)
}

func TestConflictRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	c := models.Conflict{
		ID:         "c-1",
		EntityID:   "item-1",
		AccountID:  7,
		EntityType: models.EntityItem,
		Field:      "price",
		Type:       models.ConflictVersion,
		Local:      models.ConflictSide{Data: 12.5, Version: 2},
		Server:     models.ConflictSide{Data: 14.0, Version: 3},
	}

	mock.ExpectExec("INSERT INTO conflicts").
		WithArgs(c.ID, c.EntityID, c.AccountID, nil, c.EntityType, c.Field, c.Type,
			"12.5", c.Local.Timestamp, c.Local.Version,
			"14", c.Server.Timestamp, c.Server.Version,
			nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), c)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictRepository_ListByEntity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	localAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	serverAt := localAt.Add(10 * time.Minute)
	mock.ExpectQuery("FROM conflicts WHERE entity_id =").
		WithArgs("item-1").
		WillReturnRows(conflictRows().
			AddRow("c-1", "item-1", int64(7), nil, models.EntityItem, "price", models.ConflictVersion,
				`12.5`, localAt, int64(2), `14`, serverAt, int64(3), nil, nil))

	conflicts, err := repo.ListByEntity(context.Background(), "item-1")

	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	c := conflicts[0]
	assert.Equal(t, "price", c.Field)
	assert.Equal(t, 12.5, c.Local.Data)
	assert.Equal(t, 14.0, c.Server.Data)
	assert.Equal(t, int64(3), c.Server.Version)
	assert.Nil(t, c.Resolution)
	assert.Nil(t, c.ResolvedAt)
}

func TestConflictRepository_ListByAccount_UnresolvedOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	mock.ExpectQuery(`FROM conflicts WHERE account_id = \$1 AND resolution IS NULL`).
		WithArgs(int64(7)).
		WillReturnRows(conflictRows())

	conflicts, err := repo.ListByAccount(context.Background(), 7, true)

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictRepository_ListByAccount_IncludesResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	resolvedAt := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM conflicts WHERE account_id = \$1 ORDER BY`).
		WithArgs(int64(7)).
		WillReturnRows(conflictRows().
			AddRow("c-2", "item-2", int64(7), nil, models.EntityItem, "name", models.ConflictContent,
				`"ply"`, resolvedAt, int64(1), `"plywood"`, resolvedAt, int64(1),
				models.StrategyKeepServer, resolvedAt))

	conflicts, err := repo.ListByAccount(context.Background(), 7, false)

	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.NotNil(t, conflicts[0].Resolution)
	assert.Equal(t, models.StrategyKeepServer, *conflicts[0].Resolution)
	require.NotNil(t, conflicts[0].ResolvedAt)
	assert.Equal(t, resolvedAt, *conflicts[0].ResolvedAt)
}

func TestConflictRepository_MarkResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE conflicts SET").
		WithArgs(models.StrategyKeepLocal, sqlmock.AnyArg(), "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkResolved(context.Background(), "c-1", models.StrategyKeepLocal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictRepository_MarkResolved_UnknownConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE conflicts SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkResolved(context.Background(), "missing", models.StrategyKeepLocal)

	assert.ErrorIs(t, err, ErrConflictNotFound)
}

func TestConflictRepository_DeleteByEntity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConflictRepository(db, logger.Nop())

	// All the entity's conflict rows go in one statement.
	mock.ExpectExec(`DELETE FROM conflicts WHERE entity_id = \$1`).
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteByEntity(context.Background(), "item-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
