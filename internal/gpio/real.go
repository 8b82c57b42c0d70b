//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealDevice drives actual hardware through the Linux GPIO character
// device. It implements Device.
type RealDevice struct {
	chip     *gpiocdev.Chip
	motion   *gpiocdev.Line
	doorbell *gpiocdev.Line
	outputs  map[string]*gpiocdev.Line
}

// output line names, used for error messages and the outputs map.
const (
	lineStatusLED     = "status-led"
	lineMotionLED     = "motion-led"
	lineBuzzer        = "buzzer"
	lineCameraTrigger = "camera-trigger"
)

// NewRealDevice opens gpiochip0 and requests the sensor lines as inputs
// with pull-down and the actuator lines as outputs driven low.
func NewRealDevice(pins Pins) (*RealDevice, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	d := &RealDevice{chip: chip, outputs: make(map[string]*gpiocdev.Line)}

	// Pull-down matches both the PIR module's idle-low output and the
	// button wiring (pressed = high).
	d.motion, err = chip.RequestLine(pins.Motion, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("request motion pin %d: %w", pins.Motion, err)
	}

	d.doorbell, err = chip.RequestLine(pins.Doorbell, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("request doorbell pin %d: %w", pins.Doorbell, err)
	}

	for _, out := range []struct {
		name string
		pin  int
	}{
		{lineStatusLED, pins.StatusLED},
		{lineMotionLED, pins.MotionLED},
		{lineBuzzer, pins.Buzzer},
		{lineCameraTrigger, pins.CameraTrigger},
	} {
		line, err := chip.RequestLine(out.pin, gpiocdev.AsOutput(0))
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", out.name, out.pin, err)
		}
		d.outputs[out.name] = line
	}

	return d, nil
}

// Read returns the raw sensor states (active high).
func (d *RealDevice) Read() (bool, bool, error) {
	motionRaw, err := d.motion.Value()
	if err != nil {
		return false, false, fmt.Errorf("read motion pin: %w", err)
	}

	doorbellRaw, err := d.doorbell.Value()
	if err != nil {
		return false, false, fmt.Errorf("read doorbell pin: %w", err)
	}

	return motionRaw != 0, doorbellRaw != 0, nil
}

func (d *RealDevice) SetStatusLED(on bool) error     { return d.set(lineStatusLED, on) }
func (d *RealDevice) SetMotionLED(on bool) error     { return d.set(lineMotionLED, on) }
func (d *RealDevice) SetBuzzer(on bool) error        { return d.set(lineBuzzer, on) }
func (d *RealDevice) SetCameraTrigger(on bool) error { return d.set(lineCameraTrigger, on) }

func (d *RealDevice) set(name string, on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := d.outputs[name].SetValue(v); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// Close drives every output low, reconfigures the inputs to boot
// defaults (input with pull-down), and releases all lines.
func (d *RealDevice) Close() error {
	var errs []error

	for name, line := range d.outputs {
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", name, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	for name, line := range map[string]*gpiocdev.Line{"motion": d.motion, "doorbell": d.doorbell} {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s: %w", name, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
