// internal/database/gate_test.go
package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(ping, register func(ctx context.Context) error) *Gate {
	g := NewGate(ping, register)
	g.pollInterval = 5 * time.Millisecond
	return g
}

func TestGateSingleInitialization(t *testing.T) {
	var pings, registrations int32

	gate := newTestGate(
		func(ctx context.Context) error {
			atomic.AddInt32(&pings, 1)
			return nil
		},
		func(ctx context.Context) error {
			atomic.AddInt32(&registrations, 1)
			return nil
		},
	)

	require.NoError(t, gate.EnsureReady(context.Background()))
	require.NoError(t, gate.EnsureReady(context.Background()))
	require.NoError(t, gate.EnsureReady(context.Background()))

	assert.Equal(t, int32(1), atomic.LoadInt32(&registrations))
	assert.Equal(t, int32(1), atomic.LoadInt32(&pings))
}

func TestGateConcurrentCallersShareOneAttempt(t *testing.T) {
	var registrations int32
	connected := make(chan struct{})

	gate := newTestGate(
		func(ctx context.Context) error {
			select {
			case <-connected:
				return nil
			default:
				return errors.New("connection not ready")
			}
		},
		func(ctx context.Context) error {
			atomic.AddInt32(&registrations, 1)
			return nil
		},
	)

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = gate.EnsureReady(context.Background())
		}(i)
	}

	// Let every caller pile up behind the pending attempt, then bring the
	// connection up.
	time.Sleep(20 * time.Millisecond)
	close(connected)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&registrations))
}

func TestGateRegistrationFailureSurfacesToAllWaiters(t *testing.T) {
	var attempts int32
	boom := errors.New("index build failed")
	block := make(chan struct{})

	gate := newTestGate(
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			atomic.AddInt32(&attempts, 1)
			<-block
			return boom
		},
	)

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = gate.EnsureReady(context.Background())
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(block)
	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, boom, "caller %d", i)
	}
	// One shared attempt, not one per caller.
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestGateReattemptsAfterFailure(t *testing.T) {
	var attempts int32

	gate := newTestGate(
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return errors.New("transient")
			}
			return nil
		},
	)

	require.Error(t, gate.EnsureReady(context.Background()))
	require.NoError(t, gate.EnsureReady(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestGateWaiterHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	gate := newTestGate(
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			<-block
			return nil
		},
	)

	go gate.EnsureReady(context.Background()) //nolint:errcheck

	time.Sleep(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := gate.EnsureReady(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGateWaitsForConnection(t *testing.T) {
	var up atomic.Bool
	gate := newTestGate(
		func(ctx context.Context) error {
			if up.Load() {
				return nil
			}
			return errors.New("server selection error")
		},
		func(ctx context.Context) error { return nil },
	)

	go func() {
		time.Sleep(25 * time.Millisecond)
		up.Store(true)
	}()

	start := time.Now()
	require.NoError(t, gate.EnsureReady(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
