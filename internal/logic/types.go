// Package logic contains the pure event-detection core: debounced
// signals, edge events, and device mode. This package has NO external
// dependencies (no GPIO, network, OS, or time.Sleep). Time is always
// injectable via time.Time parameters.
package logic

import "time"

// Edge is a latched-state transition observed on a sampled signal.
type Edge string

const (
	EdgeRose Edge = "ROSE"
	EdgeFell Edge = "FELL"
)

// EventType identifies a dispatched doorbell event.
type EventType string

const (
	EventMotionStarted   EventType = "MOTION_STARTED"
	EventMotionStopped   EventType = "MOTION_STOPPED"
	EventDoorbellPressed EventType = "DOORBELL_PRESSED"
)

// Event is a detected, debounced occurrence. Ephemeral: constructed,
// dispatched, discarded within a single tick.
type Event struct {
	Timestamp time.Time
	Type      EventType
	HomeMode  bool
}

// DeviceMode is the process-wide arming state. Owned by the controller
// loop; the dispatcher reads it and the reporter may overwrite HomeMode
// from a server push.
type DeviceMode struct {
	// SystemActive gates all remote notification and camera capture.
	SystemActive bool
	// HomeMode true means occupants are home; motion does not
	// trigger the camera.
	HomeMode bool
}

// DefaultMode is the startup state: armed, occupants home.
func DefaultMode() DeviceMode {
	return DeviceMode{SystemActive: true, HomeMode: true}
}

// EventCounts tracks the number of each event since startup.
type EventCounts struct {
	MotionStarted   int
	MotionStopped   int
	DoorbellPressed int
	Captures        int
}

// TriggerSource labels which latched signal requested a camera capture.
type TriggerSource string

const (
	TriggerDoorbell TriggerSource = "doorbell"
	TriggerMotion   TriggerSource = "motion"
)
