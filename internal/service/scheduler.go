// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-ledger/internal/adapter"
	"github.com/MKhiriev/go-sync-ledger/internal/bus"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type syncScheduler struct {
	queue OperationQueue
	bus   *bus.Bus
	log   *logger.Logger

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
	lastErr  error
	nextRun  time.Time
	draining bool

	// now is swappable in tests.
	now func() time.Time
}

// NewSyncScheduler builds the periodic drain loop for one client process.
func NewSyncScheduler(queue OperationQueue, b *bus.Bus, log *logger.Logger) SyncScheduler {
	return &syncScheduler{
		queue: queue,
		bus:   b,
		log:   log,
		now:   time.Now,
	}
}

func (s *syncScheduler) Start(ctx context.Context, interval time.Duration) {
	s.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.running = true
	s.cancel = cancel
	s.done = done
	s.nextRun = s.now().Add(interval)
	s.mu.Unlock()

	go s.loop(loopCtx, interval, done)
}

func (s *syncScheduler) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			s.nextRun = s.now().Add(interval)
			s.mu.Unlock()

			if err := s.RunNow(ctx, models.SourceForeground); err != nil && !adapter.IsOffline(err) {
				s.log.Warn().Err(err).Msg("periodic drain failed")
			}
		}
	}
}

func (s *syncScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// RunNow performs one full drain, broadcasting progress and completion to
// every registered instance. Concurrent invocations collapse: a drain already
// in flight makes RunNow return immediately without error, since the running
// drain will pick up everything this call would have.
func (s *syncScheduler) RunNow(ctx context.Context, source string) error {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return nil
	}
	s.draining = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.draining = false
		s.mu.Unlock()
	}()

	s.broadcast(models.StatusEvent{
		Type: models.StatusProgress,
		Payload: models.StatusPayload{
			Timestamp: s.now().UTC(),
			Source:    source,
		},
	})

	pending, err := s.queue.ProcessQueue(ctx)

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	switch {
	case err == nil:
		s.broadcast(models.StatusEvent{
			Type: models.StatusComplete,
			Payload: models.StatusPayload{
				Timestamp:         s.now().UTC(),
				Source:            source,
				PendingOperations: &pending,
			},
		})
		return nil

	case adapter.IsOffline(err):
		// Connectivity loss is an expected condition, not a failure. The
		// queue stays intact and the completion event reports what is left.
		s.log.Debug().Str("source", source).Msg("drain paused: waiting for network connectivity")
		s.broadcast(models.StatusEvent{
			Type: models.StatusComplete,
			Payload: models.StatusPayload{
				Timestamp:         s.now().UTC(),
				Source:            source,
				PendingOperations: &pending,
			},
		})
		return err

	default:
		s.broadcast(models.StatusEvent{
			Type: models.StatusError,
			Payload: models.StatusPayload{
				Timestamp:         s.now().UTC(),
				Source:            source,
				PendingOperations: &pending,
				Error:             err.Error(),
			},
		})
		return err
	}
}

func (s *syncScheduler) Snapshot() models.SchedulerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.SchedulerSnapshot{
		IsRunning: s.running,
		NextRunAt: s.nextRun,
	}
	// Waiting for connectivity is an informational state, not a failure, so
	// it never surfaces as the last error.
	if s.lastErr != nil && !adapter.IsOffline(s.lastErr) {
		snap.LastError = s.lastErr.Error()
	}
	return snap
}

func (s *syncScheduler) broadcast(ev models.StatusEvent) {
	if s.bus != nil {
		s.bus.Broadcast(ev)
	}
}
