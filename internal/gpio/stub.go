//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealDevice is not available on non-Linux platforms.
type RealDevice struct{}

// NewRealDevice returns an error on non-Linux platforms.
func NewRealDevice(Pins) (*RealDevice, error) {
	return nil, errUnsupported
}

func (d *RealDevice) Read() (bool, bool, error) {
	return false, false, errUnsupported
}

func (d *RealDevice) SetStatusLED(bool) error     { return errUnsupported }
func (d *RealDevice) SetMotionLED(bool) error     { return errUnsupported }
func (d *RealDevice) SetBuzzer(bool) error        { return errUnsupported }
func (d *RealDevice) SetCameraTrigger(bool) error { return errUnsupported }

func (d *RealDevice) Close() error { return nil }
