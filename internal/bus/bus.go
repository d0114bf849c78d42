// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bus implements the cross-context messaging used between client
// instances and the background sync coordinator.
//
// Every open client instance registers with the shared Bus; the coordinator
// enumerates registered instances to delegate queue drains it cannot perform
// itself, and broadcasts status events so all instances present a consistent
// sync state. Requests are typed, carry a correlation id, and resolve to an
// explicit tri-state outcome (succeeded, failed, timed out) rather than
// collapsing timeouts into failures.
package bus

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-ledger/models"
)

// ControlKind identifies a control message consumed by the coordinator.
type ControlKind int

const (
	// ControlSkipWaiting asks the coordinator to stop waiting out its
	// current backoff or cooldown and act immediately.
	ControlSkipWaiting ControlKind = iota

	// ControlTriggerSync requests a manually-initiated full queue drain.
	ControlTriggerSync
)

// ControlMessage is a control-plane message addressed to the coordinator.
type ControlMessage struct {
	Kind ControlKind
}

// IncomingRequest is a delegation request as seen by a client instance.
// Reply must be called exactly once; it never blocks the caller.
type IncomingRequest struct {
	Request models.DrainRequest
	reply   chan models.DrainResult
}

// Reply delivers the instance's result back to the requester. A second call
// is a no-op: the reply channel is buffered for exactly one result.
func (r IncomingRequest) Reply(res models.DrainResult) {
	select {
	case r.reply <- res:
	default:
	}
}

// Instance is one registered client instance's endpoint on the bus.
type Instance struct {
	// ID is the instance's UUID, assigned at registration.
	ID string

	// Visible reports whether the instance is currently in the
	// foreground. Invisible instances still receive delegation requests.
	Visible bool

	requests chan IncomingRequest
	statuses chan models.StatusEvent
}

// Requests returns the channel of delegation requests addressed to this
// instance.
func (i *Instance) Requests() <-chan IncomingRequest {
	return i.requests
}

// Statuses returns the channel of broadcast status events.
func (i *Instance) Statuses() <-chan models.StatusEvent {
	return i.statuses
}

// Bus is the shared in-process message hub. The zero value is not usable;
// construct with New.
type Bus struct {
	mu        sync.RWMutex
	instances map[string]*Instance
	controls  chan ControlMessage
}

// New constructs an empty Bus.
func New() *Bus {
	return &Bus{
		instances: make(map[string]*Instance),
		controls:  make(chan ControlMessage, 16),
	}
}

// Register adds a new client instance to the bus and returns its endpoint.
func (b *Bus) Register(visible bool) *Instance {
	inst := &Instance{
		ID:       uuid.NewString(),
		Visible:  visible,
		requests: make(chan IncomingRequest, 16),
		statuses: make(chan models.StatusEvent, 64),
	}

	b.mu.Lock()
	b.instances[inst.ID] = inst
	b.mu.Unlock()

	return inst
}

// Unregister removes an instance. Safe to call with an unknown id.
func (b *Bus) Unregister(id string) {
	b.mu.Lock()
	delete(b.instances, id)
	b.mu.Unlock()
}

// Instances returns all currently registered instances, including ones that
// are not visible.
func (b *Bus) Instances() []*Instance {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Instance, 0, len(b.instances))
	for _, inst := range b.instances {
		out = append(out, inst)
	}
	return out
}

// Broadcast delivers a status event to every registered instance. Slow
// consumers never block the sender: an instance with a full status buffer
// misses the event.
func (b *Bus) Broadcast(ev models.StatusEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, inst := range b.instances {
		select {
		case inst.statuses <- ev:
		default:
		}
	}
}

// SendControl queues a control message for the coordinator.
func (b *Bus) SendControl(msg ControlMessage) {
	select {
	case b.controls <- msg:
	default:
	}
}

// Controls returns the coordinator's control-message channel.
func (b *Bus) Controls() <-chan ControlMessage {
	return b.controls
}
