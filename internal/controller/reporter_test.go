package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlenner/doorbell-controller/internal/logger"
	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/transport"
)

func newReporterFixture(interval time.Duration) (*Reporter, *logic.DeviceMode, *transport.FakeNotifier) {
	mode := &logic.DeviceMode{SystemActive: true, HomeMode: true}
	notifier := transport.NewFakeNotifier()
	rep := NewReporter(notifier, mode, "DOORBELL_001", interval, t0,
		func() int { return -52 }, logger.Nop())
	return rep, mode, notifier
}

func TestReportIntervalGating(t *testing.T) {
	rep, _, notifier := newReporterFixture(30 * time.Second)

	assert.False(t, rep.MaybeReport(t0.Add(29*time.Second), false, false))
	assert.Empty(t, notifier.Statuses)

	assert.True(t, rep.MaybeReport(t0.Add(30*time.Second), true, false))
	require.Len(t, notifier.Statuses, 1)

	s := notifier.Statuses[0]
	assert.Equal(t, "DOORBELL_001", s.DeviceID)
	assert.True(t, s.LinkConnected)
	assert.Equal(t, -52, s.LinkStrength)
	assert.True(t, s.SystemActive)
	assert.True(t, s.HomeMode)
	assert.True(t, s.MotionDetected)
	assert.False(t, s.DoorbellPressed)
	assert.Equal(t, 30*time.Second, s.Uptime)
}

func TestHomeModeOverrideAppliedOnReportCycle(t *testing.T) {
	rep, mode, notifier := newReporterFixture(30 * time.Second)
	off := false
	notifier.StatusResponse = &transport.StatusResponse{HomeMode: &off}

	// Not before the cycle fires.
	rep.MaybeReport(t0.Add(10*time.Second), false, false)
	assert.True(t, mode.HomeMode)

	rep.MaybeReport(t0.Add(30*time.Second), false, false)
	assert.False(t, mode.HomeMode, "override must apply on the report cycle")
}

func TestNoOverrideLeavesModeUnchanged(t *testing.T) {
	rep, mode, notifier := newReporterFixture(time.Second)
	notifier.StatusResponse = &transport.StatusResponse{} // no home_mode field

	rep.MaybeReport(t0.Add(time.Second), false, false)
	assert.True(t, mode.HomeMode)
}

func TestFailedReportAdvancesScheduleAndKeepsMode(t *testing.T) {
	rep, mode, notifier := newReporterFixture(30 * time.Second)
	notifier.StatusError = assert.AnError

	assert.True(t, rep.MaybeReport(t0.Add(30*time.Second), false, false))
	assert.True(t, mode.HomeMode)

	// The failed attempt still advanced the schedule: no retry storm.
	assert.False(t, rep.MaybeReport(t0.Add(31*time.Second), false, false))

	notifier.StatusError = nil
	assert.True(t, rep.MaybeReport(t0.Add(60*time.Second), false, false))
	assert.Len(t, notifier.Statuses, 1)
}
