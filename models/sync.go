package models

import "time"

// SchedulerSnapshot is the foreground scheduler's ephemeral state, rebuilt on
// each scheduling decision. It is process-local and never persisted.
type SchedulerSnapshot struct {
	// IsRunning reports whether a drain is currently executing.
	IsRunning bool `json:"is_running"`

	// LastError is the most recent drain failure, if any. The offline
	// sentinel is never stored here: waiting for connectivity is not a
	// failure.
	LastError string `json:"last_error,omitempty"`

	// NextRunAt is when the scheduler will next attempt a drain.
	NextRunAt time.Time `json:"next_run_at"`
}
