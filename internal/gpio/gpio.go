// Package gpio provides the hardware abstraction for the doorbell's
// sensor inputs and actuator outputs. The real implementation uses the
// Linux GPIO character device; the fake allows testing without hardware.
package gpio

// Reader reads the two sensor inputs.
type Reader interface {
	// Read returns the raw states of the PIR motion sensor and the
	// doorbell button (true = active).
	Read() (motion, doorbell bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// Outputs drives the actuator lines. Calls set the line level directly;
// timing (pulses, tone playback) is layered on top by internal/actuator.
type Outputs interface {
	SetStatusLED(on bool) error
	SetMotionLED(on bool) error
	SetBuzzer(on bool) error
	SetCameraTrigger(on bool) error

	// Close drives every output low and releases GPIO resources.
	Close() error
}

// Device is a full doorbell pin set.
type Device interface {
	Reader
	Outputs
}

// Pins assigns BCM pin numbers for a device.
type Pins struct {
	Motion        int
	Doorbell      int
	StatusLED     int
	MotionLED     int
	Buzzer        int
	CameraTrigger int
}
