package bus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-ledger/models"
)

func TestCall_SucceededReplyCarriesResult(t *testing.T) {
	b := New()
	inst := b.Register(true)

	go func() {
		req := <-inst.Requests()
		assert.Equal(t, models.SyncTag, req.Request.Tag)
		assert.NotEmpty(t, req.Request.CorrelationID)

		pending := 3
		req.Reply(models.DrainResult{Success: true, PendingOperations: &pending})
	}()

	res := b.Call(context.Background(), inst, time.Second)

	assert.Equal(t, CallSucceeded, res.State)
	require.NotNil(t, res.Reply.PendingOperations)
	assert.Equal(t, 3, *res.Reply.PendingOperations)
}

func TestCall_FailureReplyIsNotATimeout(t *testing.T) {
	b := New()
	inst := b.Register(true)

	go func() {
		req := <-inst.Requests()
		req.Reply(models.DrainResult{Success: false, Error: "drain aborted"})
	}()

	res := b.Call(context.Background(), inst, time.Second)

	assert.Equal(t, CallFailed, res.State)
	assert.Equal(t, "drain aborted", res.Reply.Error)
}

func TestCall_TimesOutWithoutReply(t *testing.T) {
	b := New()
	inst := b.Register(true)

	res := b.Call(context.Background(), inst, 10*time.Millisecond)

	assert.Equal(t, CallTimedOut, res.State)
}

func TestCall_CancelledContextFails(t *testing.T) {
	b := New()
	inst := b.Register(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The request is delivered into the buffered channel, then the reply
	// wait observes the cancelled context.
	res := b.Call(ctx, inst, time.Second)

	assert.Equal(t, CallFailed, res.State)
	assert.Equal(t, context.Canceled.Error(), res.Reply.Error)
}

func TestCall_EachExchangeGetsFreshCorrelationID(t *testing.T) {
	b := New()
	inst := b.Register(true)

	ids := make(chan string, 2)
	go func() {
		for i := 0; i < 2; i++ {
			req := <-inst.Requests()
			ids <- req.Request.CorrelationID
			req.Reply(models.DrainResult{Success: true})
		}
	}()

	b.Call(context.Background(), inst, time.Second)
	b.Call(context.Background(), inst, time.Second)

	assert.NotEqual(t, <-ids, <-ids)
}
