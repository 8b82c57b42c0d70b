// Package controller orchestrates the doorbell's tick loop: sampling
// the debounced sensors, dispatching side effects for each edge, and
// pushing periodic status reports.
package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/transport"
)

// Actuation is the local feedback surface the controller drives.
// Implemented by actuator.Set; calls are fire-and-forget.
type Actuation interface {
	StatusLED(on bool)
	MotionLED(on bool)
	PlayChime()
	TriggerCamera()
}

// Identifiers carried in outbound event payloads.
const (
	sensorID = "PIR_001"
	buttonID = "BTN_001"
)

// Dispatcher owns the two debounced signals and turns their edges into
// ordered side effects: local actuation first, then notification.
// Mutated only from the controller tick.
type Dispatcher struct {
	motion   *logic.DebouncedSignal
	doorbell *logic.DebouncedSignal
	mode     *logic.DeviceMode
	acts     Actuation
	notifier transport.Notifier
	location string
	counts   logic.EventCounts
	log      *zap.SugaredLogger
}

// NewDispatcher creates a Dispatcher reading mode through the shared
// pointer owned by the controller loop.
func NewDispatcher(mode *logic.DeviceMode, acts Actuation, notifier transport.Notifier, location string, motionCooldown, doorbellCooldown time.Duration, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		motion:   logic.NewDebouncedSignal(motionCooldown),
		doorbell: logic.NewDebouncedSignal(doorbellCooldown),
		mode:     mode,
		acts:     acts,
		notifier: notifier,
		location: location,
		log:      log,
	}
}

// OnTick samples both sensors and runs the side effects for any edges.
// Motion is evaluated before doorbell. When linkUp is false every
// transport call is suppressed; actuation and latching proceed.
func (d *Dispatcher) OnTick(motionRaw, doorbellRaw bool, now time.Time, linkUp bool) {
	if edge, ok := d.motion.Sample(motionRaw, now); ok {
		switch edge {
		case logic.EdgeRose:
			d.onMotionStarted(now, linkUp)
		case logic.EdgeFell:
			d.onMotionStopped()
		}
	}

	if edge, ok := d.doorbell.Sample(doorbellRaw, now); ok && edge == logic.EdgeRose {
		d.onDoorbellPressed(now, linkUp)
	}
	// Doorbell fall is debounce-only: no externally visible effect.
}

// Latches returns the debounced sensor states.
func (d *Dispatcher) Latches() (motion, doorbell bool) {
	return d.motion.Latched(), d.doorbell.Latched()
}

// Counts returns the event counts since startup.
func (d *Dispatcher) Counts() logic.EventCounts {
	return d.counts
}

func (d *Dispatcher) onMotionStarted(now time.Time, linkUp bool) {
	ev := logic.Event{Timestamp: now, Type: logic.EventMotionStarted, HomeMode: d.mode.HomeMode}
	d.counts.MotionStarted++
	d.log.Infow("event", "type", ev.Type, "home_mode", ev.HomeMode)

	d.acts.MotionLED(true)

	if !d.armed() {
		return
	}

	if linkUp {
		if err := d.notifier.MotionDetected(transport.MotionNotification{
			Timestamp: now,
			SensorID:  sensorID,
			Location:  d.location,
			HomeMode:  ev.HomeMode,
		}); err != nil {
			d.log.Warnw("motion notification failed", "error", err)
		}
	}

	// The camera only cares about motion when nobody is home.
	if !d.mode.HomeMode {
		d.capture(now, linkUp)
	}
}

func (d *Dispatcher) onMotionStopped() {
	// Local-only: the episode end is never notified.
	d.counts.MotionStopped++
	d.log.Infow("event", "type", logic.EventMotionStopped)
	d.acts.MotionLED(false)
}

func (d *Dispatcher) onDoorbellPressed(now time.Time, linkUp bool) {
	ev := logic.Event{Timestamp: now, Type: logic.EventDoorbellPressed, HomeMode: d.mode.HomeMode}
	d.counts.DoorbellPressed++
	d.log.Infow("event", "type", ev.Type, "home_mode", ev.HomeMode)

	// Chime first: the visitor hears feedback before anything else.
	d.acts.PlayChime()

	if !d.armed() {
		return
	}

	// Doorbell always captures, home or away.
	d.capture(now, linkUp)

	if linkUp {
		if err := d.notifier.DoorbellPressed(transport.DoorbellNotification{
			Timestamp:     now,
			ButtonID:      buttonID,
			Location:      d.location,
			HomeMode:      ev.HomeMode,
			PhotoCaptured: true,
		}); err != nil {
			d.log.Warnw("doorbell notification failed", "error", err)
		}
	}
}

// capture pulses the camera trigger, then announces the request with
// the source derived from the latched signals. Doorbell wins when both
// are latched.
func (d *Dispatcher) capture(now time.Time, linkUp bool) {
	d.counts.Captures++
	d.acts.TriggerCamera()

	source := logic.TriggerMotion
	if d.doorbell.Latched() {
		source = logic.TriggerDoorbell
	}

	if !linkUp {
		return
	}
	if err := d.notifier.CaptureRequested(transport.CaptureNotification{
		Timestamp:     now,
		TriggerSource: source,
		Location:      d.location,
	}); err != nil {
		d.log.Warnw("capture notification failed", "error", err)
	}
}

// armed reports whether remote notification and capture are enabled.
func (d *Dispatcher) armed() bool {
	return d.mode.SystemActive
}
