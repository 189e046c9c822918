package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalTimerTicks(t *testing.T) {
	var count atomic.Int64
	timer := NewIntervalTimer(5*time.Millisecond, func() {
		count.Add(1)
	})

	assert.False(t, timer.Running())

	timer.Start()
	assert.True(t, timer.Running())

	require.Eventually(t, func() bool {
		return count.Load() >= 3
	}, time.Second, time.Millisecond)

	timer.Stop()
	assert.False(t, timer.Running())

	// Any in-flight tick lands during the first window; the second window
	// proves the stream is fully halted
	time.Sleep(20 * time.Millisecond)
	settled := count.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, count.Load())
}

func TestIntervalTimerRestart(t *testing.T) {
	var count atomic.Int64
	timer := NewIntervalTimer(5*time.Millisecond, func() {
		count.Add(1)
	})

	timer.Start()
	timer.Start()
	assert.True(t, timer.Running())

	require.Eventually(t, func() bool {
		return count.Load() >= 3
	}, time.Second, time.Millisecond)

	timer.Stop()
	time.Sleep(20 * time.Millisecond)
	settled := count.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, count.Load())
}

func TestIntervalTimerStopIdempotent(t *testing.T) {
	timer := NewIntervalTimer(time.Millisecond, func() {})

	// Stop before any start
	timer.Stop()
	assert.False(t, timer.Running())

	timer.Start()
	timer.Stop()
	timer.Stop()
	assert.False(t, timer.Running())
}

func TestIntervalTimerStopFromCallback(t *testing.T) {
	var count atomic.Int64
	var timer *IntervalTimer
	timer = NewIntervalTimer(time.Millisecond, func() {
		count.Add(1)
		timer.Stop()
	})

	timer.Start()

	require.Eventually(t, func() bool {
		return count.Load() >= 1 && !timer.Running()
	}, time.Second, time.Millisecond)

	// At most one racing tick can land after the stop
	time.Sleep(10 * time.Millisecond)
	assert.LessOrEqual(t, count.Load(), int64(2))
}
