package bus

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-ledger/models"
)

// CallState is the tri-state outcome of a delegation call.
type CallState int

const (
	// CallSucceeded means the instance replied with a successful result.
	CallSucceeded CallState = iota

	// CallFailed means the instance replied with a failure, or the request
	// could not be delivered at all.
	CallFailed

	// CallTimedOut means the instance produced no reply within the
	// timeout. A timeout is "no result", not an error: it never aborts
	// other instances' attempts.
	CallTimedOut
)

// CallResult carries the outcome of one delegation call and, when a reply
// arrived, the reply itself.
type CallResult struct {
	State CallState
	Reply models.DrainResult
}

// Call sends a queue-drain request to one instance over a dedicated reply
// channel and races the reply against the timeout. The request carries a
// fresh correlation id tying the reply to this exchange.
func (b *Bus) Call(ctx context.Context, inst *Instance, timeout time.Duration) CallResult {
	req := IncomingRequest{
		Request: models.DrainRequest{
			CorrelationID: uuid.NewString(),
			Tag:           models.SyncTag,
		},
		reply: make(chan models.DrainResult, 1),
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case inst.requests <- req:
	case <-timer.C:
		return CallResult{State: CallTimedOut}
	case <-ctx.Done():
		return CallResult{State: CallFailed, Reply: models.DrainResult{Error: ctx.Err().Error()}}
	}

	select {
	case res := <-req.reply:
		if res.Success {
			return CallResult{State: CallSucceeded, Reply: res}
		}
		return CallResult{State: CallFailed, Reply: res}
	case <-timer.C:
		return CallResult{State: CallTimedOut}
	case <-ctx.Done():
		return CallResult{State: CallFailed, Reply: models.DrainResult{Error: ctx.Err().Error()}}
	}
}
