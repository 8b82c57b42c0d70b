package logic

import "time"

// DebouncedSignal converts raw samples of one boolean sensor line into
// edge events gated by a cooldown window. The debounce is asymmetric:
// a rise is rate-limited against the previous rise, a fall is observed
// immediately. While raw stays true after a suppressed rise, no edge
// is re-emitted until a full fall/rise cycle.
type DebouncedSignal struct {
	cooldown time.Duration
	raw      bool
	latched  bool
	lastRise time.Time
}

// NewDebouncedSignal creates an inactive signal with the given cooldown.
func NewDebouncedSignal(cooldown time.Duration) *DebouncedSignal {
	return &DebouncedSignal{cooldown: cooldown}
}

// Sample feeds one raw reading taken at now. It returns the edge that
// fired, if any. The first rise ever observed always fires.
func (s *DebouncedSignal) Sample(raw bool, now time.Time) (Edge, bool) {
	s.raw = raw

	if raw && !s.latched {
		if s.lastRise.IsZero() || now.Sub(s.lastRise) >= s.cooldown {
			s.latched = true
			s.lastRise = now
			return EdgeRose, true
		}
		return "", false
	}

	if !raw && s.latched {
		s.latched = false
		return EdgeFell, true
	}

	return "", false
}

// Latched reports the debounced state.
func (s *DebouncedSignal) Latched() bool {
	return s.latched
}

// Raw reports the most recently sampled raw state.
func (s *DebouncedSignal) Raw() bool {
	return s.raw
}
