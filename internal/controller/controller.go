package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arlenner/doorbell-controller/internal/gpio"
	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/status"
	"github.com/arlenner/doorbell-controller/internal/transport"
)

// Options wires a Controller.
type Options struct {
	Reader   gpio.Reader
	Acts     Actuation
	Notifier transport.Notifier
	Tracker  *status.Tracker // optional
	Mode     *logic.DeviceMode

	DeviceID string
	Location string

	MotionCooldown   time.Duration
	DoorbellCooldown time.Duration
	ReportInterval   time.Duration
	LinkBlink        time.Duration

	StartTime    time.Time
	LinkStrength func() int // optional
	Log          *zap.SugaredLogger
}

// Controller is the process's only control path: a single-threaded
// tick loop with two logical states, link down and link up. While the
// link is down, sensors are still sampled and local actuation still
// runs; only transport calls are suppressed.
type Controller struct {
	reader       gpio.Reader
	disp         *Dispatcher
	rep          *Reporter
	notifier     transport.Notifier
	acts         Actuation
	tracker      *status.Tracker
	mode         *logic.DeviceMode
	linkStrength func() int
	log          *zap.SugaredLogger

	blinkInterval time.Duration
	linkUp        bool
	statusLEDOn   bool
	lastBlink     time.Time
	started       bool
}

// New builds the controller, its dispatcher, and its reporter.
func New(opts Options) *Controller {
	disp := NewDispatcher(opts.Mode, opts.Acts, opts.Notifier, opts.Location,
		opts.MotionCooldown, opts.DoorbellCooldown, opts.Log)
	rep := NewReporter(opts.Notifier, opts.Mode, opts.DeviceID,
		opts.ReportInterval, opts.StartTime, opts.LinkStrength, opts.Log)

	strength := opts.LinkStrength
	if strength == nil {
		strength = func() int { return 0 }
	}

	return &Controller{
		reader:        opts.Reader,
		disp:          disp,
		rep:           rep,
		notifier:      opts.Notifier,
		acts:          opts.Acts,
		tracker:       opts.Tracker,
		mode:          opts.Mode,
		linkStrength:  strength,
		log:           opts.Log,
		blinkInterval: opts.LinkBlink,
	}
}

// Run ticks the controller until the context is canceled. It never
// returns on error: every failure inside a tick is logged and the next
// tick proceeds.
func (c *Controller) Run(ctx context.Context, tick <-chan time.Time, now func() time.Time) {
	for {
		select {
		case <-ctx.Done():
			c.log.Infow("controller stopping")
			return
		case <-tick:
			c.Tick(now())
		}
	}
}

// Tick runs one pass: link check, sensor dispatch, report check,
// ambient status indicator, tracker update.
func (c *Controller) Tick(now time.Time) {
	linkUp := c.notifier.Connected()
	if linkUp != c.linkUp || !c.started {
		c.log.Infow("link state", "up", linkUp)
		c.linkUp = linkUp
		c.started = true
	}

	motionRaw, doorbellRaw, err := c.reader.Read()
	if err != nil {
		c.log.Errorw("gpio read failed", "error", err)
	} else {
		c.disp.OnTick(motionRaw, doorbellRaw, now, linkUp)
	}

	if linkUp {
		motionLatched, doorbellLatched := c.disp.Latches()
		if c.rep.MaybeReport(now, motionLatched, doorbellLatched) && c.tracker != nil {
			c.tracker.SetLinkStrength(c.linkStrength())
		}
	}

	c.updateStatusLED(now, linkUp)

	if c.tracker != nil {
		motionLatched, doorbellLatched := c.disp.Latches()
		c.tracker.Update(*c.mode, motionLatched, doorbellLatched, c.disp.Counts())
		c.tracker.SetLink(linkUp)
	}
}

// updateStatusLED keeps the ambient indicator solid while linked and
// blinking on the configured period while not.
func (c *Controller) updateStatusLED(now time.Time, linkUp bool) {
	if linkUp {
		if !c.statusLEDOn {
			c.statusLEDOn = true
			c.acts.StatusLED(true)
		}
		c.lastBlink = time.Time{}
		return
	}

	if c.lastBlink.IsZero() || now.Sub(c.lastBlink) >= c.blinkInterval {
		c.statusLEDOn = !c.statusLEDOn
		c.acts.StatusLED(c.statusLEDOn)
		c.lastBlink = now
	}
}
