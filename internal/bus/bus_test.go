// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-ledger/models"
)

func TestBus_RegisterAndUnregister(t *testing.T) {
	b := New()

	front := b.Register(true)
	back := b.Register(false)
	require.NotEqual(t, front.ID, back.ID)
	assert.True(t, front.Visible)
	assert.False(t, back.Visible)

	assert.Len(t, b.Instances(), 2)

	b.Unregister(front.ID)
	insts := b.Instances()
	require.Len(t, insts, 1)
	assert.Equal(t, back.ID, insts[0].ID)

	// Unknown ids are ignored.
	b.Unregister("no-such-instance")
	assert.Len(t, b.Instances(), 1)
}

func TestBus_BroadcastReachesEveryInstance(t *testing.T) {
	b := New()
	front := b.Register(true)
	back := b.Register(false)

	ev := models.StatusEvent{
		Type: models.StatusComplete,
		Payload: models.StatusPayload{
			Timestamp: time.Now().UTC(),
			Source:    models.SourceBackgroundSync,
		},
	}
	b.Broadcast(ev)

	for _, inst := range []*Instance{front, back} {
		select {
		case got := <-inst.Statuses():
			assert.Equal(t, ev, got)
		default:
			t.Fatalf("instance %s missed the broadcast", inst.ID)
		}
	}
}

func TestBus_BroadcastNeverBlocksOnSlowConsumers(t *testing.T) {
	b := New()
	inst := b.Register(true)

	// Fill the status buffer well past its capacity. The sender must keep
	// returning instead of blocking on the stalled consumer.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			b.Broadcast(models.StatusEvent{Type: models.StatusProgress})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full status buffer")
	}

	assert.NotEmpty(t, inst.Statuses())
}

func TestBus_SendControlQueuesForCoordinator(t *testing.T) {
	b := New()

	b.SendControl(ControlMessage{Kind: ControlTriggerSync})
	b.SendControl(ControlMessage{Kind: ControlSkipWaiting})

	assert.Equal(t, ControlMessage{Kind: ControlTriggerSync}, <-b.Controls())
	assert.Equal(t, ControlMessage{Kind: ControlSkipWaiting}, <-b.Controls())
}

func TestBus_SendControlDropsWhenFull(t *testing.T) {
	b := New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			b.SendControl(ControlMessage{Kind: ControlTriggerSync})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send blocked on a full control buffer")
	}
}

func TestIncomingRequest_SecondReplyIsNoOp(t *testing.T) {
	req := IncomingRequest{
		Request: models.DrainRequest{CorrelationID: "abc", Tag: models.SyncTag},
		reply:   make(chan models.DrainResult, 1),
	}

	req.Reply(models.DrainResult{Success: true})
	req.Reply(models.DrainResult{Success: false, Error: "late duplicate"})

	got := <-req.reply
	assert.True(t, got.Success)
	assert.Empty(t, req.reply)
}
