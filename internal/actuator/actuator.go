// Package actuator layers timed actuation (LEDs, chime playback, the
// camera trigger pulse) on top of the raw GPIO output lines. All calls
// are fire-and-forget: hardware errors are logged, never returned, so
// the controller tick is never blocked on a failed line.
package actuator

import (
	"time"

	"go.uber.org/zap"

	"github.com/arlenner/doorbell-controller/internal/gpio"
)

// ToneStep is one step of a chime: a square wave at Freq for Duration,
// or silence when Freq is 0.
type ToneStep struct {
	Freq     int // Hz
	Duration time.Duration
}

// DoorbellChime is the fixed three-tone descending chime, ~900ms total
// including the rests between tones.
func DoorbellChime() []ToneStep {
	return []ToneStep{
		{Freq: 784, Duration: 200 * time.Millisecond}, // G5
		{Freq: 0, Duration: 100 * time.Millisecond},
		{Freq: 659, Duration: 200 * time.Millisecond}, // E5
		{Freq: 0, Duration: 100 * time.Millisecond},
		{Freq: 523, Duration: 300 * time.Millisecond}, // C5
	}
}

// Set drives the doorbell's actuators.
type Set struct {
	out        gpio.Outputs
	cameraHold time.Duration
	log        *zap.SugaredLogger

	// Sleep is swappable so tests can run timed playback instantly.
	Sleep func(time.Duration)
}

// New creates a Set with the given camera trigger hold duration.
func New(out gpio.Outputs, cameraHold time.Duration, log *zap.SugaredLogger) *Set {
	return &Set{
		out:        out,
		cameraHold: cameraHold,
		log:        log,
		Sleep:      time.Sleep,
	}
}

// StatusLED sets the ambient status indicator.
func (s *Set) StatusLED(on bool) {
	if err := s.out.SetStatusLED(on); err != nil {
		s.log.Warnw("set status led", "on", on, "error", err)
	}
}

// MotionLED sets the motion indicator.
func (s *Set) MotionLED(on bool) {
	if err := s.out.SetMotionLED(on); err != nil {
		s.log.Warnw("set motion led", "on", on, "error", err)
	}
}

// PlayChime plays the doorbell chime. Blocks for the chime duration.
func (s *Set) PlayChime() {
	s.Play(DoorbellChime())
}

// Play bit-bangs a tone sequence on the buzzer line. Software timing is
// close enough for a chime; pitch accuracy is not a goal.
func (s *Set) Play(steps []ToneStep) {
	for _, step := range steps {
		if step.Freq <= 0 {
			s.Sleep(step.Duration)
			continue
		}

		period := time.Second / time.Duration(step.Freq)
		half := period / 2
		cycles := int(step.Duration / period)
		for i := 0; i < cycles; i++ {
			s.setBuzzer(true)
			s.Sleep(half)
			s.setBuzzer(false)
			s.Sleep(half)
		}
	}
	s.setBuzzer(false)
}

// TriggerCamera pulses the camera trigger line high for the configured
// hold duration. Blocks for the hold.
func (s *Set) TriggerCamera() {
	if err := s.out.SetCameraTrigger(true); err != nil {
		s.log.Warnw("camera trigger high", "error", err)
	}
	s.Sleep(s.cameraHold)
	if err := s.out.SetCameraTrigger(false); err != nil {
		s.log.Warnw("camera trigger low", "error", err)
	}
}

func (s *Set) setBuzzer(on bool) {
	if err := s.out.SetBuzzer(on); err != nil {
		s.log.Warnw("set buzzer", "on", on, "error", err)
	}
}
