// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
)

// intervalRegistrar is the in-process stand-in for a platform background-sync
// registration: it fires the trigger callback once after the requested delay.
// One timer per tag; re-registering a tag replaces its timer.
type intervalRegistrar struct {
	log  *logger.Logger
	fire func(tag string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewIntervalRegistrar returns a Registrar that invokes fire(tag) after each
// registered delay elapses.
func NewIntervalRegistrar(fire func(tag string), log *logger.Logger) Registrar {
	return &intervalRegistrar{
		log:    log,
		fire:   fire,
		timers: make(map[string]*time.Timer),
	}
}

func (r *intervalRegistrar) Register(ctx context.Context, tag string, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.timers[tag]; ok {
		prev.Stop()
	}

	r.log.Debug().Str("tag", tag).Dur("delay", delay).Msg("background sync registered")
	r.timers[tag] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.timers, tag)
		r.mu.Unlock()
		r.fire(tag)
	})
	return nil
}

// StopAll cancels every outstanding registration. Used on shutdown.
func (r *intervalRegistrar) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tag, timer := range r.timers {
		timer.Stop()
		delete(r.timers, tag)
	}
}
