// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires local storage, the sync engine, and the background coordinator
// into a single process lifecycle: the process registers itself as a
// foreground instance on the bus, serves delegated drain requests, and runs
// the periodic scheduler until interrupted.
package client
