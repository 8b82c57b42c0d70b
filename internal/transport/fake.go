package transport

// FakeNotifier records outbound calls for test assertions.
type FakeNotifier struct {
	Motions   []MotionNotification
	Doorbells []DoorbellNotification
	Captures  []CaptureNotification
	Statuses  []StatusSnapshot

	// SendError, if set, is returned by every event send.
	SendError error

	// StatusError, if set, is returned by ReportStatus.
	StatusError error

	// StatusResponse is returned by a successful ReportStatus.
	StatusResponse *StatusResponse

	// ConnectedState controls Connected.
	ConnectedState bool

	// Closed tracks if Close was called.
	Closed bool

	// OnCall, if set, is invoked with the method name before each
	// send. Tests use it to journal call ordering across fakes.
	OnCall func(name string)
}

// NewFakeNotifier creates a connected FakeNotifier.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{ConnectedState: true}
}

func (f *FakeNotifier) MotionDetected(n MotionNotification) error {
	f.call("motion")
	if f.SendError != nil {
		return f.SendError
	}
	f.Motions = append(f.Motions, n)
	return nil
}

func (f *FakeNotifier) DoorbellPressed(n DoorbellNotification) error {
	f.call("doorbell")
	if f.SendError != nil {
		return f.SendError
	}
	f.Doorbells = append(f.Doorbells, n)
	return nil
}

func (f *FakeNotifier) CaptureRequested(n CaptureNotification) error {
	f.call("capture")
	if f.SendError != nil {
		return f.SendError
	}
	f.Captures = append(f.Captures, n)
	return nil
}

func (f *FakeNotifier) ReportStatus(s StatusSnapshot) (*StatusResponse, error) {
	f.call("status")
	if f.StatusError != nil {
		return nil, f.StatusError
	}
	f.Statuses = append(f.Statuses, s)
	if f.StatusResponse != nil {
		return f.StatusResponse, nil
	}
	return &StatusResponse{}, nil
}

func (f *FakeNotifier) Connected() bool {
	return f.ConnectedState
}

func (f *FakeNotifier) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded calls and errors.
func (f *FakeNotifier) Reset() {
	f.Motions = nil
	f.Doorbells = nil
	f.Captures = nil
	f.Statuses = nil
	f.SendError = nil
	f.StatusError = nil
	f.StatusResponse = nil
	f.Closed = false
	f.ConnectedState = true
}

func (f *FakeNotifier) call(name string) {
	if f.OnCall != nil {
		f.OnCall(name)
	}
}
