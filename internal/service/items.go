// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-ledger/internal/store"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type clientItemService struct {
	accountID int64
	snapshots store.SnapshotRepository
	queue     OperationQueue
}

// NewClientItemService wires the item write path: every mutation lands in
// the local snapshot store first and is enqueued for the server afterwards.
func NewClientItemService(accountID int64, storages *store.ClientStorages, queue OperationQueue) ClientItemService {
	return &clientItemService{
		accountID: accountID,
		snapshots: storages.Snapshots,
		queue:     queue,
	}
}

func (s *clientItemService) Create(ctx context.Context, item models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.AccountID = s.accountID
	item.CreatedAt = now
	item.UpdatedAt = now

	snap := models.EntitySnapshot{
		EntityType:  models.EntityItem,
		EntityID:    item.ID,
		AccountID:   s.accountID,
		ProjectID:   item.ProjectID,
		Fields:      item.Fields(),
		LastUpdated: now,
		Stale:       true,
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save item snapshot: %w", err)
	}

	if err := s.enqueue(ctx, models.OpCreate, item.ID, snap.Fields, now); err != nil {
		// The local write must not outlive a failed enqueue, otherwise the
		// entity would exist locally with no path to the server.
		if delErr := s.snapshots.Delete(ctx, models.EntityItem, item.ID); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return nil
}

func (s *clientItemService) Update(ctx context.Context, entityID string, fields map[string]any) error {
	prev, err := s.snapshots.Get(ctx, models.EntityItem, entityID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	now := time.Now().UTC()
	next := prev
	next.Fields = make(map[string]any, len(prev.Fields)+len(fields))
	for name, value := range prev.Fields {
		next.Fields[name] = value
	}
	for name, value := range fields {
		next.Fields[name] = value
	}
	next.Fields["updatedAt"] = now.Format(time.RFC3339Nano)
	next.LastUpdated = now
	next.Stale = true

	if err = s.snapshots.Save(ctx, next); err != nil {
		return fmt.Errorf("save item snapshot: %w", err)
	}

	// The operation carries only the changed fields so concurrent edits to
	// other fields survive on the server.
	if err = s.enqueue(ctx, models.OpUpdate, entityID, fields, now); err != nil {
		if rbErr := s.snapshots.Save(ctx, prev); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return nil
}

func (s *clientItemService) Delete(ctx context.Context, entityID string) error {
	prev, err := s.snapshots.Get(ctx, models.EntityItem, entityID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if err = s.snapshots.Delete(ctx, models.EntityItem, entityID); err != nil {
		return fmt.Errorf("delete item snapshot: %w", err)
	}

	if err = s.enqueue(ctx, models.OpDelete, entityID, nil, time.Now().UTC()); err != nil {
		if rbErr := s.snapshots.Save(ctx, prev); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return nil
}

func (s *clientItemService) Get(ctx context.Context, entityID string) (models.EntitySnapshot, error) {
	snap, err := s.snapshots.Get(ctx, models.EntityItem, entityID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return models.EntitySnapshot{}, ErrItemNotFound
		}
		return models.EntitySnapshot{}, err
	}
	return snap, nil
}

func (s *clientItemService) GetAll(ctx context.Context) ([]models.EntitySnapshot, error) {
	snaps, err := s.snapshots.GetByAccount(ctx, s.accountID)
	if err != nil {
		return nil, err
	}

	items := snaps[:0:0]
	for _, snap := range snaps {
		if snap.EntityType == models.EntityItem {
			items = append(items, snap)
		}
	}
	return items, nil
}

func (s *clientItemService) enqueue(ctx context.Context, opType, entityID string, payload map[string]any, at time.Time) error {
	op := models.Operation{
		EntityType: models.EntityItem,
		EntityID:   entityID,
		OpType:     opType,
		Payload:    payload,
		CreatedAt:  at,
	}
	_, err := s.queue.Add(ctx, op)
	return err
}
