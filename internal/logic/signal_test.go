package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestFirstRiseFiresImmediately(t *testing.T) {
	s := NewDebouncedSignal(5 * time.Second)

	edge, ok := s.Sample(true, t0)
	require.True(t, ok)
	assert.Equal(t, EdgeRose, edge)
	assert.True(t, s.Latched())
}

func TestFallIsImmediate(t *testing.T) {
	s := NewDebouncedSignal(5 * time.Second)
	s.Sample(true, t0)

	// A fall fires on the very next false sample, no cooldown gate.
	edge, ok := s.Sample(false, t0.Add(time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, EdgeFell, edge)
	assert.False(t, s.Latched())
}

func TestRepeatedTrueSamplesNeverRefire(t *testing.T) {
	s := NewDebouncedSignal(5 * time.Second)
	s.Sample(true, t0)

	for i := 1; i <= 100; i++ {
		_, ok := s.Sample(true, t0.Add(time.Duration(i)*time.Second))
		assert.False(t, ok, "sample %d re-fired while latched", i)
	}
	assert.True(t, s.Latched())
}

func TestRiseWithinCooldownSuppressed(t *testing.T) {
	// Rise at t=0, fall at t=100ms, rise again at t=200ms: the second
	// rise is inside the 5s cooldown and must not fire. A rise at
	// t=5001ms fires again.
	s := NewDebouncedSignal(5 * time.Second)

	_, ok := s.Sample(true, t0)
	require.True(t, ok)

	edge, ok := s.Sample(false, t0.Add(100*time.Millisecond))
	require.True(t, ok)
	require.Equal(t, EdgeFell, edge)

	_, ok = s.Sample(true, t0.Add(200*time.Millisecond))
	assert.False(t, ok, "rise inside cooldown fired")
	assert.False(t, s.Latched())

	// Still suppressed while raw stays true inside the window.
	_, ok = s.Sample(true, t0.Add(4999*time.Millisecond))
	assert.False(t, ok)

	edge, ok = s.Sample(true, t0.Add(5001*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, EdgeRose, edge)
	assert.True(t, s.Latched())
}

func TestCooldownMeasuredFromRiseNotFall(t *testing.T) {
	s := NewDebouncedSignal(3 * time.Second)

	s.Sample(true, t0)
	s.Sample(false, t0.Add(2900*time.Millisecond))

	// 3s after the rise, not 3s after the fall.
	edge, ok := s.Sample(true, t0.Add(3 * time.Second))
	require.True(t, ok)
	assert.Equal(t, EdgeRose, edge)
}

func TestNoEdgeOnStableStates(t *testing.T) {
	s := NewDebouncedSignal(time.Second)

	_, ok := s.Sample(false, t0)
	assert.False(t, ok, "false sample on inactive signal fired")

	s.Sample(true, t0.Add(time.Second))
	s.Sample(false, t0.Add(2*time.Second))

	_, ok = s.Sample(false, t0.Add(3*time.Second))
	assert.False(t, ok, "repeated false sample fired")
}

func TestRawTracksLastSample(t *testing.T) {
	s := NewDebouncedSignal(5 * time.Second)

	s.Sample(true, t0)
	s.Sample(false, t0.Add(time.Second))
	s.Sample(true, t0.Add(2*time.Second)) // suppressed by cooldown

	assert.True(t, s.Raw())
	assert.False(t, s.Latched())
}
