package adapter

import "context"

// pingMonitor reports connectivity by probing the server's health endpoint.
type pingMonitor struct {
	adapter ServerAdapter
}

// NewPingMonitor returns a [NetworkMonitor] backed by the adapter's health
// probe.
func NewPingMonitor(adapter ServerAdapter) NetworkMonitor {
	return &pingMonitor{adapter: adapter}
}

func (m *pingMonitor) Online(ctx context.Context) bool {
	return m.adapter.Ping(ctx) == nil
}
