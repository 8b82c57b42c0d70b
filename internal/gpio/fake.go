package gpio

import "errors"

// Sample is a single scripted sensor reading.
type Sample struct {
	Motion   bool
	Doorbell bool
}

// LineOp records one output line change, in call order.
type LineOp struct {
	Line string // "status-led", "motion-led", "buzzer", "camera-trigger"
	On   bool
}

// FakeDevice is a test double: scripted sensor samples in, recorded
// output line changes out.
type FakeDevice struct {
	// Samples are consumed one per Read call; the last sample repeats
	// once the script is exhausted.
	Samples []Sample
	index   int

	// Ops records every output line change.
	Ops []LineOp

	// ReadError, if set, is returned by Read.
	ReadError error

	// SetError, if set, is returned by every Set call.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDevice creates a FakeDevice with the given sample script.
func NewFakeDevice(samples []Sample) *FakeDevice {
	return &FakeDevice{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeDevice) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return s.Motion, s.Doorbell, nil
}

func (f *FakeDevice) SetStatusLED(on bool) error     { return f.record("status-led", on) }
func (f *FakeDevice) SetMotionLED(on bool) error     { return f.record("motion-led", on) }
func (f *FakeDevice) SetBuzzer(on bool) error        { return f.record("buzzer", on) }
func (f *FakeDevice) SetCameraTrigger(on bool) error { return f.record("camera-trigger", on) }

func (f *FakeDevice) record(line string, on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Ops = append(f.Ops, LineOp{Line: line, On: on})
	return nil
}

// OpsFor returns the recorded changes for a single line.
func (f *FakeDevice) OpsFor(line string) []LineOp {
	var ops []LineOp
	for _, op := range f.Ops {
		if op.Line == line {
			ops = append(ops, op)
		}
	}
	return ops
}

// Close marks the device as closed.
func (f *FakeDevice) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the sample script and clears recorded state.
func (f *FakeDevice) Reset() {
	f.index = 0
	f.Ops = nil
	f.Closed = false
	f.ReadError = nil
	f.SetError = nil
}
