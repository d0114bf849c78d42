// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/MKhiriev/go-sync-ledger/internal/adapter"
	"github.com/MKhiriev/go-sync-ledger/internal/bus"
	"github.com/MKhiriev/go-sync-ledger/internal/config"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/internal/service"
	"github.com/MKhiriev/go-sync-ledger/internal/store"
	"github.com/MKhiriev/go-sync-ledger/internal/workers"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type App struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	bus      *bus.Bus
	monitor  adapter.NetworkMonitor
	services *service.ClientServices
}

func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewClientLogger("client", os.Getenv("SYNC_CLIENT_LOG"))

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	serverAdapter := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	b := bus.New()

	return &App{
		cfg:      cfg,
		log:      log,
		bus:      b,
		monitor:  adapter.NewPingMonitor(serverAdapter),
		services: service.NewClientServices(accountID(), storages, serverAdapter, b, log),
	}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instance := a.bus.Register(true)
	defer a.bus.Unregister(instance.ID)

	go a.serveDrainRequests(ctx, instance)
	go a.logStatuses(ctx, instance)

	var coord *workers.Coordinator
	registrar := workers.NewIntervalRegistrar(func(tag string) {
		coord.HandleTrigger(ctx, tag)
	}, a.log)
	coord = workers.NewCoordinator(ctx, a.bus, a.monitor, registrar, a.services.Queue, a.cfg.Sync, a.log)

	a.services.Scheduler.Start(ctx, a.cfg.Sync.Interval)
	defer a.services.Scheduler.Stop()

	workers.NewWorkers(coord).Run()

	// Opportunistic startup drain; connectivity loss just leaves the queue
	// for the scheduler.
	if err := a.services.Scheduler.RunNow(ctx, models.SourceForeground); err != nil && !adapter.IsOffline(err) {
		a.log.Warn().Err(err).Msg("startup drain failed")
	}

	a.log.Info().Msg("client running")
	<-ctx.Done()
	a.log.Info().Msg("client shutting down")
	return nil
}

// serveDrainRequests answers delegation requests from the background
// coordinator by draining the queue in this process.
func (a *App) serveDrainRequests(ctx context.Context, instance *bus.Instance) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-instance.Requests():
			if !ok {
				return
			}

			a.log.Debug().
				Str("correlation_id", req.Request.CorrelationID).
				Msg("drain request received")

			err := a.services.Scheduler.RunNow(ctx, models.SourceBackgroundSync)
			pending, countErr := a.services.Queue.PendingCount(ctx)

			res := models.DrainResult{Success: err == nil}
			if err != nil {
				res.Error = err.Error()
			}
			if countErr == nil {
				res.PendingOperations = &pending
			}
			req.Reply(res)
		}
	}
}

// logStatuses consumes broadcast status events. A UI would render these; the
// headless runtime records them.
func (a *App) logStatuses(ctx context.Context, instance *bus.Instance) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-instance.Statuses():
			if !ok {
				return
			}

			entry := a.log.Info().
				Str("type", ev.Type).
				Str("source", ev.Payload.Source)
			if ev.Payload.PendingOperations != nil {
				entry = entry.Int("pending", *ev.Payload.PendingOperations)
			}
			if ev.Payload.Error != "" {
				entry = entry.Str("error", ev.Payload.Error)
			}
			entry.Msg("sync status")
		}
	}
}

func accountID() int64 {
	if v := os.Getenv("SYNC_ACCOUNT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return 1
}
