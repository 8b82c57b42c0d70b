package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/transport"
)

// Reporter pushes a status snapshot on a fixed interval and applies
// any home-mode override the server returns.
type Reporter struct {
	notifier     transport.Notifier
	mode         *logic.DeviceMode
	deviceID     string
	interval     time.Duration
	startTime    time.Time
	lastReport   time.Time
	linkStrength func() int
	log          *zap.SugaredLogger
}

// NewReporter creates a Reporter. The first report fires one interval
// after startTime. linkStrength may be nil when the host has no
// wireless interface.
func NewReporter(notifier transport.Notifier, mode *logic.DeviceMode, deviceID string, interval time.Duration, startTime time.Time, linkStrength func() int, log *zap.SugaredLogger) *Reporter {
	if linkStrength == nil {
		linkStrength = func() int { return 0 }
	}
	return &Reporter{
		notifier:     notifier,
		mode:         mode,
		deviceID:     deviceID,
		interval:     interval,
		startTime:    startTime,
		lastReport:   startTime,
		linkStrength: linkStrength,
		log:          log,
	}
}

// MaybeReport sends a snapshot if the interval has elapsed. It returns
// true when a send was attempted. lastReport advances on every attempt,
// success or failure, so a flaky server never causes a retry storm.
// The caller only invokes this while the link is up.
func (r *Reporter) MaybeReport(now time.Time, motionLatched, doorbellLatched bool) bool {
	if now.Sub(r.lastReport) < r.interval {
		return false
	}
	r.lastReport = now

	snap := transport.StatusSnapshot{
		DeviceID:        r.deviceID,
		Timestamp:       now,
		LinkConnected:   true,
		LinkStrength:    r.linkStrength(),
		SystemActive:    r.mode.SystemActive,
		HomeMode:        r.mode.HomeMode,
		MotionDetected:  motionLatched,
		DoorbellPressed: doorbellLatched,
		Uptime:          now.Sub(r.startTime),
	}

	resp, err := r.notifier.ReportStatus(snap)
	if err != nil {
		// Discard and wait for the next interval.
		r.log.Warnw("status report failed", "error", err)
		return true
	}

	if resp != nil && resp.HomeMode != nil && *resp.HomeMode != r.mode.HomeMode {
		r.log.Infow("home mode override from server", "home_mode", *resp.HomeMode)
		r.mode.HomeMode = *resp.HomeMode
	}

	return true
}
