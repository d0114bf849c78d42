// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

func TestIntervalRegistrar_FiresAfterDelay(t *testing.T) {
	var fired atomic.Int32
	r := NewIntervalRegistrar(func(tag string) {
		assert.Equal(t, models.SyncTag, tag)
		fired.Add(1)
	}, logger.Nop())

	err := r.Register(context.Background(), models.SyncTag, time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestIntervalRegistrar_ReRegistrationReplacesTimer(t *testing.T) {
	var fired atomic.Int32
	r := NewIntervalRegistrar(func(string) { fired.Add(1) }, logger.Nop())

	require.NoError(t, r.Register(context.Background(), models.SyncTag, time.Hour))
	require.NoError(t, r.Register(context.Background(), models.SyncTag, time.Millisecond))

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	// The replaced hour-long timer must not fire a second trigger.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestIntervalRegistrar_StopAllCancelsOutstandingTimers(t *testing.T) {
	var fired atomic.Int32
	r := NewIntervalRegistrar(func(string) { fired.Add(1) }, logger.Nop())

	require.NoError(t, r.Register(context.Background(), models.SyncTag, 10*time.Millisecond))
	r.(*intervalRegistrar).StopAll()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestIntervalRegistrar_RejectsCancelledContext(t *testing.T) {
	r := NewIntervalRegistrar(func(string) {}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Register(ctx, models.SyncTag, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}
