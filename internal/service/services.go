// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client-side sync engine: the durable
// operation queue, the optimistic write path, conflict detection and
// resolution, and the periodic drain scheduler.
package service

import (
	"github.com/MKhiriev/go-sync-ledger/internal/adapter"
	"github.com/MKhiriev/go-sync-ledger/internal/bus"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/internal/store"
)

// ClientServices aggregates every client-side service behind one constructor
// so the application layer wires a single value.
type ClientServices struct {
	Queue     OperationQueue
	Items     ClientItemService
	Detector  ConflictDetector
	Resolver  ConflictResolver
	Scheduler SyncScheduler
}

// NewClientServices wires the full client service graph on top of the local
// storages, the server adapter, and the instance bus.
func NewClientServices(
	accountID int64,
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	b *bus.Bus,
	log *logger.Logger,
) *ClientServices {
	detector := NewConflictDetector()
	queue := NewOperationQueue(accountID, storages, serverAdapter, detector)

	return &ClientServices{
		Queue:     queue,
		Items:     NewClientItemService(accountID, storages, queue),
		Detector:  detector,
		Resolver:  NewConflictResolver(storages, serverAdapter),
		Scheduler: NewSyncScheduler(queue, b, log),
	}
}
