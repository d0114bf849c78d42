// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "time"

// delegationBackoffCap bounds the pause between delegation rounds. Delegation
// retries stay short: the foreground instance either exists or it does not,
// and waiting longer than this buys nothing.
const delegationBackoffCap = 15 * time.Second

// maxJitterFraction is the upper bound of the random spread added to the
// re-registration delay so that many clients do not wake simultaneously.
const maxJitterFraction = 0.25

// registrationDelay returns the exponential re-registration delay before
// jitter: base doubled per prior attempt, capped at ceil. attempt counts
// from 1.
func registrationDelay(attempt int, base, ceil time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= ceil {
			return ceil
		}
	}
	if delay > ceil {
		return ceil
	}
	return delay
}

// withJitter spreads a delay by up to maxJitterFraction of itself. random
// must be in [0, 1).
func withJitter(delay time.Duration, random float64) time.Duration {
	return delay + time.Duration(random*maxJitterFraction*float64(delay))
}

// delegationBackoff returns the pause before delegation round attempt.
// attempt counts from 0, so the first retry waits base, the second 2*base,
// and so on up to delegationBackoffCap.
func delegationBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= delegationBackoffCap {
			return delegationBackoffCap
		}
	}
	if delay > delegationBackoffCap {
		return delegationBackoffCap
	}
	return delay
}
