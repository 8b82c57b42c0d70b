package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlenner/doorbell-controller/internal/actuator"
	"github.com/arlenner/doorbell-controller/internal/controller"
	"github.com/arlenner/doorbell-controller/internal/gpio"
	"github.com/arlenner/doorbell-controller/internal/logger"
	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/status"
	"github.com/arlenner/doorbell-controller/internal/transport"
)

// TestFullVisitorFlow drives the whole stack with fakes: a visitor
// walks up (motion), rings (doorbell), and leaves, with the controller
// ticking every 100ms.
func TestFullVisitorFlow(t *testing.T) {
	samples := []gpio.Sample{
		{},                                // t=0
		{Motion: true},                    // t=100ms: motion rises
		{Motion: true},                    // t=200ms
		{Motion: true, Doorbell: true},    // t=300ms: ring
		{Motion: true, Doorbell: true},    // t=400ms
		{Motion: true},                    // t=500ms: button released
		{Motion: true},                    // t=600ms
		{},                                // t=700ms: visitor gone
		{},                                // t=800ms
	}

	device := gpio.NewFakeDevice(samples)
	notifier := transport.NewFakeNotifier()
	tracker := status.NewTracker(t0(), status.Config{DeviceID: "DOORBELL_001"})
	mode := logic.DeviceMode{SystemActive: true, HomeMode: false}

	acts := actuator.New(device, 200*time.Millisecond, logger.Nop())
	acts.Sleep = func(time.Duration) {} // no real waiting in tests

	ctrl := controller.New(controller.Options{
		Reader:           device,
		Acts:             acts,
		Notifier:         notifier,
		Tracker:          tracker,
		Mode:             &mode,
		DeviceID:         "DOORBELL_001",
		Location:         "front_door",
		MotionCooldown:   5 * time.Second,
		DoorbellCooldown: 3 * time.Second,
		ReportInterval:   30 * time.Second,
		LinkBlink:        500 * time.Millisecond,
		StartTime:        t0(),
		Log:              logger.Nop(),
	})

	for i := range samples {
		ctrl.Tick(t0().Add(time.Duration(i) * 100 * time.Millisecond))
	}

	// Away mode: motion notified and captured, doorbell notified and
	// captured, motion stop silent.
	require.Len(t, notifier.Motions, 1)
	assert.Equal(t, t0().Add(100*time.Millisecond), notifier.Motions[0].Timestamp)
	assert.False(t, notifier.Motions[0].HomeMode)

	require.Len(t, notifier.Doorbells, 1)
	assert.True(t, notifier.Doorbells[0].PhotoCaptured)

	require.Len(t, notifier.Captures, 2)
	assert.Equal(t, logic.TriggerMotion, notifier.Captures[0].TriggerSource)
	assert.Equal(t, logic.TriggerDoorbell, notifier.Captures[1].TriggerSource)

	// Motion LED followed the visitor; camera pulsed twice.
	motionOps := device.OpsFor("motion-led")
	require.Len(t, motionOps, 2)
	assert.True(t, motionOps[0].On)
	assert.False(t, motionOps[1].On)
	assert.Len(t, device.OpsFor("camera-trigger"), 4)

	snap := tracker.Snapshot()
	assert.Equal(t, logic.EventCounts{
		MotionStarted:   1,
		MotionStopped:   1,
		DoorbellPressed: 1,
		Captures:        2,
	}, snap.Counts)
	assert.False(t, snap.MotionLatched)
	assert.True(t, snap.LinkUp)
}

// TestLinkOutageAndRecovery verifies that an outage suppresses sends
// without losing local behavior, and that reporting resumes after the
// link returns.
func TestLinkOutageAndRecovery(t *testing.T) {
	device := gpio.NewFakeDevice([]gpio.Sample{{Motion: true}})
	notifier := transport.NewFakeNotifier()
	notifier.ConnectedState = false
	mode := logic.DefaultMode()

	acts := actuator.New(device, 200*time.Millisecond, logger.Nop())
	acts.Sleep = func(time.Duration) {}

	ctrl := controller.New(controller.Options{
		Reader:           device,
		Acts:             acts,
		Notifier:         notifier,
		Mode:             &mode,
		DeviceID:         "DOORBELL_001",
		Location:         "front_door",
		MotionCooldown:   5 * time.Second,
		DoorbellCooldown: 3 * time.Second,
		ReportInterval:   30 * time.Second,
		LinkBlink:        500 * time.Millisecond,
		StartTime:        t0(),
		Log:              logger.Nop(),
	})

	// Motion fires during the outage: LED on, nothing sent.
	ctrl.Tick(t0())
	assert.Empty(t, notifier.Motions)
	require.Len(t, device.OpsFor("motion-led"), 1)

	// Link returns past the report interval: the overdue report goes
	// out on the first linked tick.
	notifier.ConnectedState = true
	ctrl.Tick(t0().Add(31 * time.Second))
	require.Len(t, notifier.Statuses, 1)
	assert.True(t, notifier.Statuses[0].MotionDetected)
}

func t0() time.Time {
	return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}
