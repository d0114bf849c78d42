// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-ledger/internal/adapter"
	"github.com/MKhiriev/go-sync-ledger/internal/bus"
	"github.com/MKhiriev/go-sync-ledger/internal/config"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

// State is the coordinator's explicit retry state. It is a plain value so it
// can be inspected and asserted on as a whole.
type State struct {
	// ReRegistrationAttempts counts consecutive re-registrations since the
	// last successful delegation. Drives the exponential backoff.
	ReRegistrationAttempts int

	// LastReRegistrationAt is when the latest trigger was scheduled.
	LastReRegistrationAt time.Time

	// LastSuccessfulSyncAt is when a delegation last succeeded. Triggers
	// arriving within the cooldown of this moment are deferred.
	LastSuccessfulSyncAt time.Time

	// LastPendingCount is the queue depth reported by the last successful
	// delegation.
	LastPendingCount int

	// ConsecutiveSameCountSyncs counts successful syncs in a row whose
	// pending count did not move. Reaching the configured maximum means
	// the queue is stuck and retrying would loop forever.
	ConsecutiveSameCountSyncs int
}

// Coordinator is the background retry engine. It reacts to sync triggers by
// delegating queue drains to a live client instance over the bus, backing
// off exponentially between attempts, and stopping outright when repeated
// syncs make no progress.
type Coordinator struct {
	bus       *bus.Bus
	monitor   adapter.NetworkMonitor
	registrar Registrar
	counter   PendingCounter
	cfg       config.ClientSync
	log       *logger.Logger

	ctx context.Context

	mu    sync.Mutex
	busy  bool
	state State

	// Swappable in tests.
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	random func() float64
}

// NewCoordinator wires the background coordinator. ctx bounds the lifetime of
// everything the coordinator does after Run.
func NewCoordinator(
	ctx context.Context,
	b *bus.Bus,
	monitor adapter.NetworkMonitor,
	registrar Registrar,
	counter PendingCounter,
	cfg config.ClientSync,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		bus:       b,
		monitor:   monitor,
		registrar: registrar,
		counter:   counter,
		cfg:       cfg,
		log:       log,
		ctx:       ctx,
		now:       time.Now,
		sleep:     sleepCtx,
		random:    rand.Float64,
	}
}

// Run starts the control loop and schedules an initial trigger if operations
// are already queued from a previous session. It spawns internally and
// returns immediately.
func (c *Coordinator) Run() {
	if pending, err := c.counter.PendingCount(c.ctx); err == nil && pending > 0 {
		if err = c.registrar.Register(c.ctx, models.SyncTag, c.cfg.BackoffBase); err != nil {
			c.log.Warn().Err(err).Msg("initial sync registration failed")
		}
	}

	go c.controlLoop()
}

func (c *Coordinator) controlLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case msg := <-c.bus.Controls():
			switch msg.Kind {
			case bus.ControlTriggerSync:
				c.handle(c.ctx, models.SyncTag, false)
			case bus.ControlSkipWaiting:
				c.handle(c.ctx, models.SyncTag, true)
			}
		}
	}
}

// HandleTrigger processes one background-sync trigger for tag. Unknown tags
// are ignored. Concurrent triggers collapse: while one is being handled,
// later ones return immediately.
func (c *Coordinator) HandleTrigger(ctx context.Context, tag string) {
	c.handle(ctx, tag, false)
}

// State returns a copy of the coordinator's current retry state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) handle(ctx context.Context, tag string, skipWaiting bool) {
	if tag != models.SyncTag {
		c.log.Debug().Str("tag", tag).Msg("ignoring trigger for unknown tag")
		return
	}
	if !c.begin() {
		return
	}
	defer c.end()

	if !c.monitor.Online(ctx) {
		// No registration here: retrying on a dead network only burns the
		// backoff budget. The next trigger comes from connectivity
		// returning or from a manual sync.
		c.log.Info().Msg("sync trigger while offline: waiting for network connectivity")
		c.broadcastError(adapter.ErrWaitingForNetwork.Error())
		return
	}

	now := c.now()
	st := c.State()

	if !skipWaiting && !st.LastSuccessfulSyncAt.IsZero() {
		if since := now.Sub(st.LastSuccessfulSyncAt); since < c.cfg.Cooldown {
			remaining := c.cfg.Cooldown - since
			c.log.Debug().Dur("remaining", remaining).Msg("trigger within cooldown, deferring")
			if err := c.registrar.Register(ctx, tag, remaining); err != nil {
				c.log.Warn().Err(err).Msg("cooldown re-registration failed")
			}
			return
		}
	}

	c.broadcastProgress()

	pending, err := c.delegateWithRetries(ctx)
	if err != nil {
		c.onDelegationFailed(ctx, tag, err)
		return
	}
	c.onDelegationSucceeded(ctx, tag, pending, now)
}

// delegateWithRetries runs up to MaxClientRetries delegation rounds,
// sleeping a short exponential backoff between rounds. An empty bus stops
// the rounds early: instances do not appear because we retried harder.
func (c *Coordinator) delegateWithRetries(ctx context.Context) (int, error) {
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxClientRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, delegationBackoff(attempt-1, c.cfg.BackoffBase)); err != nil {
				return 0, err
			}
		}

		pending, err := c.delegate(ctx)
		if err == nil {
			return pending, nil
		}
		lastErr = err
		if errors.Is(err, ErrNoActiveClients) {
			break
		}
	}
	return 0, lastErr
}

// delegate fans one drain request out to every registered instance,
// backgrounded ones included, and aggregates the replies. The queue is
// shared, so when several instances drain concurrently the smallest reported
// pending count is the truth.
func (c *Coordinator) delegate(ctx context.Context) (int, error) {
	instances := c.bus.Instances()
	if len(instances) == 0 {
		return 0, ErrNoActiveClients
	}

	results := make([]bus.CallResult, len(instances))
	var wg sync.WaitGroup
	for i, inst := range instances {
		wg.Add(1)
		go func(i int, inst *bus.Instance) {
			defer wg.Done()
			results[i] = c.bus.Call(ctx, inst, c.cfg.ReplyTimeout)
		}(i, inst)
	}
	wg.Wait()

	succeeded := false
	minPending := -1
	for _, res := range results {
		if res.State != bus.CallSucceeded {
			continue
		}
		succeeded = true
		if res.Reply.PendingOperations != nil {
			if minPending < 0 || *res.Reply.PendingOperations < minPending {
				minPending = *res.Reply.PendingOperations
			}
		}
	}
	if !succeeded {
		return 0, ErrNoAcknowledgement
	}

	if minPending < 0 {
		// No replier reported a count; ask the local store.
		n, err := c.counter.PendingCount(ctx)
		if err != nil {
			return 0, nil
		}
		minPending = n
	}
	return minPending, nil
}

func (c *Coordinator) onDelegationSucceeded(ctx context.Context, tag string, pending int, startedAt time.Time) {
	c.mu.Lock()
	c.state.LastSuccessfulSyncAt = startedAt
	c.state.ReRegistrationAttempts = 0
	if pending > 0 && pending == c.state.LastPendingCount {
		c.state.ConsecutiveSameCountSyncs++
	} else {
		c.state.ConsecutiveSameCountSyncs = 0
	}
	c.state.LastPendingCount = pending
	stuck := c.state.ConsecutiveSameCountSyncs >= c.cfg.MaxSameCount
	if stuck {
		c.state.ConsecutiveSameCountSyncs = 0
	}
	c.mu.Unlock()

	if pending == 0 {
		c.log.Info().Msg("operation queue drained")
		return
	}

	if stuck {
		// The same operations survive sync after sync. Scheduling another
		// trigger would loop forever on the same poison operation.
		c.log.Warn().Int("pending", pending).Msg("pending count unchanged across consecutive syncs, stopping retries")
		c.broadcastError("sync is not making progress")
		return
	}

	c.log.Debug().Int("pending", pending).Msg("operations still pending, scheduling follow-up sync")
	if err := c.registrar.Register(ctx, tag, withJitter(c.cfg.BackoffBase, c.random())); err != nil {
		c.log.Warn().Err(err).Msg("follow-up sync registration failed")
	}
}

func (c *Coordinator) onDelegationFailed(ctx context.Context, tag string, cause error) {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return
	}

	c.mu.Lock()
	c.state.ReRegistrationAttempts++
	c.state.LastReRegistrationAt = c.now()
	attempt := c.state.ReRegistrationAttempts
	c.mu.Unlock()

	delay := withJitter(registrationDelay(attempt, c.cfg.BackoffBase, c.cfg.BackoffCap), c.random())
	c.log.Info().
		Err(cause).
		Int("attempt", attempt).
		Dur("delay", delay).
		Msg("delegation failed, re-registering sync")
	c.broadcastError(cause.Error())

	if err := c.registrar.Register(ctx, tag, delay); err != nil {
		c.log.Warn().Err(err).Msg("sync re-registration failed")
	}
}

func (c *Coordinator) broadcastProgress() {
	c.bus.Broadcast(models.StatusEvent{
		Type: models.StatusProgress,
		Payload: models.StatusPayload{
			Timestamp: c.now().UTC(),
			Source:    models.SourceBackgroundSync,
		},
	})
}

func (c *Coordinator) broadcastError(msg string) {
	c.bus.Broadcast(models.StatusEvent{
		Type: models.StatusError,
		Payload: models.StatusPayload{
			Timestamp: c.now().UTC(),
			Source:    models.SourceBackgroundSync,
			Error:     msg,
		},
	})
}

func (c *Coordinator) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Coordinator) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
