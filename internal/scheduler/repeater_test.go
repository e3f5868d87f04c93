package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, r *Repeater, within time.Duration) bool {
	t.Helper()
	select {
	case <-r.C():
		return true
	case <-time.After(within):
		return false
	}
}

func TestRepeaterTicks(t *testing.T) {
	r := New(5 * time.Millisecond)
	r.Start(context.Background())
	defer r.Stop()

	for i := 0; i < 3; i++ {
		require.True(t, receive(t, r, time.Second), "tick %d not delivered", i)
	}
}

func TestRepeaterNotStartedDoesNotTick(t *testing.T) {
	r := New(time.Millisecond)
	assert.False(t, r.Running())
	assert.False(t, receive(t, r, 30*time.Millisecond))
}

func TestRepeaterResetSwapsInterval(t *testing.T) {
	r := New(5 * time.Millisecond)
	r.Start(context.Background())
	defer r.Stop()

	require.True(t, receive(t, r, time.Second))

	// Let a tick of the old interval queue up, then slow down.
	time.Sleep(20 * time.Millisecond)
	r.Reset(time.Hour)

	assert.Equal(t, time.Hour, r.Interval())
	assert.True(t, r.Running())
	assert.False(t, receive(t, r, 50*time.Millisecond), "stale tick from the old interval leaked")

	r.Reset(5 * time.Millisecond)
	assert.True(t, receive(t, r, time.Second))
}

func TestRepeaterResetWhileStopped(t *testing.T) {
	r := New(time.Hour)
	r.Reset(450 * time.Millisecond)

	assert.Equal(t, 450*time.Millisecond, r.Interval())
	assert.False(t, r.Running())
}

func TestRepeaterStop(t *testing.T) {
	r := New(2 * time.Millisecond)
	r.Start(context.Background())
	require.True(t, receive(t, r, time.Second))

	r.Stop()
	r.Stop()

	assert.False(t, r.Running())
	assert.False(t, receive(t, r, 30*time.Millisecond))
}

func TestRepeaterStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(2 * time.Millisecond)
	r.Start(ctx)
	require.True(t, receive(t, r, time.Second))

	cancel()
	time.Sleep(10 * time.Millisecond)
	// Drain a tick that may have raced the cancellation.
	select {
	case <-r.C():
	default:
	}
	assert.False(t, receive(t, r, 30*time.Millisecond))

	r.Stop()
}

func TestRepeaterClampsInterval(t *testing.T) {
	r := New(0)
	assert.Equal(t, time.Millisecond, r.Interval())

	r.Reset(-time.Second)
	assert.Equal(t, time.Millisecond, r.Interval())
}
