// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the lifecycle contract for the headless sync runtime.
type Client interface {
	// Run wires the runtime together and blocks until shutdown.
	Run() error
}
