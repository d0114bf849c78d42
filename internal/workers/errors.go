// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "errors"

// Delegation outcomes understood by the coordinator's retry policy. The
// message texts are part of the client protocol and surface verbatim in
// status events.
var (
	// ErrNoActiveClients means no visible instance was registered on the
	// bus when delegation was attempted.
	ErrNoActiveClients = errors.New("No active clients")

	// ErrNoAcknowledgement means visible instances existed but none
	// replied with a successful drain within the reply timeout.
	ErrNoAcknowledgement = errors.New("No clients acknowledged the sync request")
)
