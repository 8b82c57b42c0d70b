// Package status provides a thread-safe status tracker for the
// doorbell-controller daemon. The controller tick writes it; the local
// web server reads it from HTTP handler goroutines.
package status

import (
	"sync"
	"time"

	"github.com/arlenner/doorbell-controller/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	DeviceID           string
	Location           string
	Transport          string
	Endpoint           string
	HTTPAddr           string
	TickMs             int64
	MotionCooldownMs   int64
	DoorbellCooldownMs int64
	ReportIntervalMs   int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Mode            logic.DeviceMode
	MotionLatched   bool
	DoorbellLatched bool
	LinkUp          bool
	LinkStrength    int
	Counts          logic.EventCounts
	StartTime       time.Time
	Now             time.Time
	Config          Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// Mode starts at the default (active, home).
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Mode:      logic.DefaultMode(),
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets mode, latch states, and event counts.
// Called from the controller loop on every tick.
func (t *Tracker) Update(mode logic.DeviceMode, motionLatched, doorbellLatched bool, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Mode = mode
	t.snap.MotionLatched = motionLatched
	t.snap.DoorbellLatched = doorbellLatched
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetLink sets the transport link state.
func (t *Tracker) SetLink(up bool) {
	t.mu.Lock()
	t.snap.LinkUp = up
	t.mu.Unlock()
}

// SetLinkStrength sets the last observed wireless signal level (dBm).
func (t *Tracker) SetLinkStrength(dbm int) {
	t.mu.Lock()
	t.snap.LinkStrength = dbm
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
