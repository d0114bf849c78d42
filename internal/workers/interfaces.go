// Package workers runs the client's background machinery: the retry
// coordinator that reacts to background-sync triggers, and the registrar
// that schedules those triggers.
//
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block for the duration of their work
// or spawn goroutines internally.
type Worker interface {
	Run()
}

// Registrar schedules a background-sync trigger. Registering a tag that is
// already scheduled replaces the earlier registration, so at most one
// trigger per tag is ever outstanding.
type Registrar interface {
	Register(ctx context.Context, tag string, delay time.Duration) error
}

// PendingCounter reports how many operations are still queued. Satisfied by
// the operation queue.
type PendingCounter interface {
	PendingCount(ctx context.Context) (int, error)
}
