// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-ledger/internal/mock"
	"github.com/MKhiriev/go-sync-ledger/internal/store"
	"github.com/MKhiriev/go-sync-ledger/models"
)

// stubQueue is a hand-rolled OperationQueue for write-path tests: it records
// added operations and can be told to reject the enqueue.
type stubQueue struct {
	added  []models.Operation
	addErr error
}

func (s *stubQueue) Add(_ context.Context, op models.Operation) (string, error) {
	if s.addErr != nil {
		return "", s.addErr
	}
	s.added = append(s.added, op)
	return "op-id", nil
}

func (s *stubQueue) ProcessQueue(context.Context) (int, error)    { return 0, nil }
func (s *stubQueue) RemoveOperation(context.Context, string) error { return nil }
func (s *stubQueue) Subscribe(func(int))                           {}
func (s *stubQueue) PendingCount(context.Context) (int, error)     { return len(s.added), nil }

func newTestItemService(t *testing.T, ctrl *gomock.Controller, queue OperationQueue) (*clientItemService, *mock.MockSnapshotRepository) {
	t.Helper()
	mockSnaps := mock.NewMockSnapshotRepository(ctrl)
	storages := &store.ClientStorages{Snapshots: mockSnaps}
	svc := NewClientItemService(testAccountID, storages, queue).(*clientItemService)
	return svc, mockSnaps
}

func TestClientItemService_Create_WritesLocallyThenEnqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := &stubQueue{}
	svc, mockSnaps := newTestItemService(t, ctrl, queue)
	ctx := context.Background()

	var saved models.EntitySnapshot
	mockSnaps.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, snap models.EntitySnapshot) error {
			saved = snap
			return nil
		},
	)

	err := svc.Create(ctx, models.Item{Name: "milk", Price: 100, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, models.EntityItem, saved.EntityType)
	assert.NotEmpty(t, saved.EntityID)
	assert.True(t, saved.Stale)
	assert.Equal(t, "milk", saved.Fields["name"])

	require.Len(t, queue.added, 1)
	assert.Equal(t, models.OpCreate, queue.added[0].OpType)
	assert.Equal(t, saved.EntityID, queue.added[0].EntityID)
}

func TestClientItemService_Create_RollsBackOnEnqueueFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := &stubQueue{addErr: store.ErrDurableWrite}
	svc, mockSnaps := newTestItemService(t, ctrl, queue)
	ctx := context.Background()

	var savedID string
	mockSnaps.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, snap models.EntitySnapshot) error {
			savedID = snap.EntityID
			return nil
		},
	)
	mockSnaps.EXPECT().Delete(ctx, models.EntityItem, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, entityID string) error {
			assert.Equal(t, savedID, entityID)
			return nil
		},
	)

	err := svc.Create(ctx, models.Item{Name: "milk"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDurableWrite)
	assert.Empty(t, queue.added)
}

func TestClientItemService_Update_MergesChangedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := &stubQueue{}
	svc, mockSnaps := newTestItemService(t, ctrl, queue)
	ctx := context.Background()

	prev := models.EntitySnapshot{
		EntityType: models.EntityItem,
		EntityID:   "item-1",
		AccountID:  testAccountID,
		Fields:     map[string]any{"name": "milk", "price": int64(100), "purchased": false},
		Version:    3,
	}
	mockSnaps.EXPECT().Get(ctx, models.EntityItem, "item-1").Return(prev, nil)

	var saved models.EntitySnapshot
	mockSnaps.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, snap models.EntitySnapshot) error {
			saved = snap
			return nil
		},
	)

	err := svc.Update(ctx, "item-1", map[string]any{"purchased": true})
	require.NoError(t, err)

	assert.Equal(t, true, saved.Fields["purchased"])
	assert.Equal(t, "milk", saved.Fields["name"])
	assert.Equal(t, int64(3), saved.Version)
	assert.True(t, saved.Stale)

	// The queued operation carries only the changed field.
	require.Len(t, queue.added, 1)
	assert.Equal(t, map[string]any{"purchased": true}, queue.added[0].Payload)
}

func TestClientItemService_Update_RestoresPreviousSnapshotOnEnqueueFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := &stubQueue{addErr: errors.New("queue full")}
	svc, mockSnaps := newTestItemService(t, ctrl, queue)
	ctx := context.Background()

	prev := models.EntitySnapshot{
		EntityType: models.EntityItem,
		EntityID:   "item-1",
		Fields:     map[string]any{"name": "milk"},
		Version:    3,
	}

	gomock.InOrder(
		mockSnaps.EXPECT().Get(ctx, models.EntityItem, "item-1").Return(prev, nil),
		mockSnaps.EXPECT().Save(ctx, gomock.Any()).Return(nil),
		mockSnaps.EXPECT().Save(ctx, prev).Return(nil),
	)

	err := svc.Update(ctx, "item-1", map[string]any{"name": "oat milk"})
	require.Error(t, err)
}

func TestClientItemService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSnaps := newTestItemService(t, ctrl, &stubQueue{})
	ctx := context.Background()

	mockSnaps.EXPECT().Get(ctx, models.EntityItem, "ghost").
		Return(models.EntitySnapshot{}, store.ErrSnapshotNotFound)

	err := svc.Update(ctx, "ghost", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestClientItemService_Delete_RestoresSnapshotOnEnqueueFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := &stubQueue{addErr: errors.New("queue full")}
	svc, mockSnaps := newTestItemService(t, ctrl, queue)
	ctx := context.Background()

	prev := models.EntitySnapshot{
		EntityType: models.EntityItem,
		EntityID:   "item-1",
		Fields:     map[string]any{"name": "milk"},
	}

	gomock.InOrder(
		mockSnaps.EXPECT().Get(ctx, models.EntityItem, "item-1").Return(prev, nil),
		mockSnaps.EXPECT().Delete(ctx, models.EntityItem, "item-1").Return(nil),
		mockSnaps.EXPECT().Save(ctx, prev).Return(nil),
	)

	err := svc.Delete(ctx, "item-1")
	require.Error(t, err)
}

func TestClientItemService_GetAll_FiltersOtherEntityTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSnaps := newTestItemService(t, ctrl, &stubQueue{})
	ctx := context.Background()

	mockSnaps.EXPECT().GetByAccount(ctx, testAccountID).Return([]models.EntitySnapshot{
		{EntityType: models.EntityItem, EntityID: "item-1"},
		{EntityType: models.EntityProject, EntityID: "proj-1"},
		{EntityType: models.EntityItem, EntityID: "item-2"},
	}, nil)

	items, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].EntityID)
	assert.Equal(t, "item-2", items[1].EntityID)
}
