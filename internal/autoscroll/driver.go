package autoscroll

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"stackgrid/internal/geometry"
	"stackgrid/internal/schedule"
)

// DefaultTick is the tick interval used when none is configured
const DefaultTick = time.Second / 60

// Driver runs a repeating tick while a scroll request is active
type Driver struct {
	scheduler schedule.Scheduler
	scroller  Scroller
	interval  time.Duration
	onTick    func(translation geometry.Point)
	logger    *log.Logger

	request *Request
	stop    func()
}

// NewDriver creates a driver that scrolls s. onTick runs after every
// applied step so the owner can re-sample the pointer and resolve hover.
func NewDriver(sched schedule.Scheduler, s Scroller, interval time.Duration, onTick func(geometry.Point)) *Driver {
	if interval <= 0 {
		interval = DefaultTick
	}
	return &Driver{
		scheduler: sched,
		scroller:  s,
		interval:  interval,
		onTick:    onTick,
		logger:    log.New(io.Discard),
	}
}

// SetLogger replaces the driver's logger
func (d *Driver) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Request returns the active request, or nil
func (d *Driver) Request() *Request {
	if d.request == nil {
		return nil
	}
	r := *d.request
	return &r
}

// Active reports whether a request is set
func (d *Driver) Active() bool {
	return d.request != nil
}

// Set replaces the active request. The timer only starts on a nil to
// non-nil change and only stops on the reverse, so magnitude updates while
// scrolling never churn the timer.
func (d *Driver) Set(req *Request) {
	if req == nil {
		if d.request != nil {
			d.logger.Debug("auto-scroll stopped")
		}
		d.Stop()
		return
	}

	r := *req
	wasActive := d.request != nil
	d.request = &r
	if wasActive {
		return
	}

	d.logger.Debug("auto-scroll started", "direction", r.Direction, "speed", r.Magnitude)
	d.stop = d.scheduler.Every(d.interval, d.tick)
}

// Stop clears the request and cancels the timer synchronously
func (d *Driver) Stop() {
	d.request = nil
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
}

func (d *Driver) tick(elapsed time.Duration) {
	if d.request == nil || d.scroller == nil {
		return
	}
	translation := Step(*d.request, d.scroller, elapsed)
	if d.onTick != nil {
		d.onTick(translation)
	}
}
