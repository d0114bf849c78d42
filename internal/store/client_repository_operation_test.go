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

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &DB{DB: sqlDB, logger: logger.Nop()}, mock
}

var operationColumns = []string{
	"id", "account_id", "entity_type", "entity_id", "op_type",
	"payload", "created_at", "attempts", "status",
}

func TestOperationRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	op := models.Operation{
		ID:         "op-1",
		AccountID:  7,
		EntityType: models.EntityItem,
		EntityID:   "item-1",
		OpType:     models.OpCreate,
		Payload:    map[string]any{"name": "plywood"},
		CreatedAt:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Status:     models.OpStatusPending,
	}

	mock.ExpectExec(regexp.QuoteMeta(appendOperation)).
		WithArgs(op.ID, op.AccountID, op.EntityType, op.EntityID, op.OpType,
			`{"name":"plywood"}`, op.CreatedAt, op.Attempts, op.Status).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), op)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_Append_WriteFailureIsDurableWriteError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(appendOperation)).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Append(context.Background(), models.Operation{ID: "op-1"})

	assert.ErrorIs(t, err, ErrDurableWrite)
}

func TestOperationRepository_ListPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	createdAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(listPendingOperations)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(operationColumns).
			AddRow("op-1", int64(7), models.EntityItem, "item-1", models.OpCreate,
				`{"name":"plywood"}`, createdAt, 0, models.OpStatusPending).
			AddRow("op-2", int64(7), models.EntityItem, "item-1", models.OpUpdate,
				`{"price":12.5}`, createdAt.Add(time.Second), 1, models.OpStatusPending))

	ops, err := repo.ListPending(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "op-1", ops[0].ID)
	assert.Equal(t, map[string]any{"name": "plywood"}, ops[0].Payload)
	assert.Equal(t, map[string]any{"price": 12.5}, ops[1].Payload)
	assert.Equal(t, 1, ops[1].Attempts)
}

func TestOperationRepository_ListPending_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listPendingOperations)).
		WillReturnError(errors.New("database is locked"))

	_, err := repo.ListPending(context.Background(), 7)

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestOperationRepository_IncrementAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(incrementOperationAttempts)).
		WithArgs("op-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementAttempts(context.Background(), "op-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_SetStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(setOperationStatus)).
		WithArgs(models.OpStatusFailed, "op-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(context.Background(), "op-1", models.OpStatusFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_Remove_MissingRowSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(removeOperation)).
		WithArgs("op-gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Remove(context.Background(), "op-gone"))
}

func TestOperationRepository_CountPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOperationRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(countPendingOperations)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountPending(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
