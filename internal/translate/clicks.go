package translate

import (
	"time"

	"inputhook/event"
)

const (
	DefaultClickInterval  = 500 * time.Millisecond
	DefaultClickTolerance = 4
)

// ClickConfig bounds what counts as a repeated click
type ClickConfig struct {
	Interval  time.Duration
	Tolerance int // pixels, per axis
}

func (c ClickConfig) withDefaults() ClickConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultClickInterval
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultClickTolerance
	}
	return c
}

// ClickTracker counts multi-clicks
type ClickTracker struct {
	cfg ClickConfig

	button   event.Button
	count    uint16
	time     uint64
	x, y     int16
	moved    bool // pointer left the tolerance box since the last press
	dragging bool
}

// NewClickTracker creates a tracker. Zero fields of cfg take the defaults.
func NewClickTracker(cfg ClickConfig) *ClickTracker {
	return &ClickTracker{cfg: cfg.withDefaults()}
}

func (c *ClickTracker) near(x, y int16) bool {
	dx, dy := int(x)-int(c.x), int(y)-int(c.y)
	tol := c.cfg.Tolerance
	return dx >= -tol && dx <= tol && dy >= -tol && dy <= tol
}

// Press records a button press and returns the click count for it.
func (c *ClickTracker) Press(b event.Button, at uint64, x, y int16) uint16 {
	interval := uint64(c.cfg.Interval / time.Millisecond)
	if c.count > 0 && b == c.button && !c.moved && at >= c.time && at-c.time <= interval && c.near(x, y) {
		c.count++
	} else {
		c.count = 1
	}
	c.button = b
	c.time = at
	c.x, c.y = x, y
	c.moved = false
	c.dragging = false
	return c.count
}

// Release returns the count to report with the release and whether the
// release completes a click.
func (c *ClickTracker) Release(b event.Button, x, y int16) (count uint16, clicked bool) {
	if b != c.button || c.count == 0 {
		return 0, false
	}
	clicked = !c.dragging && !c.moved && c.near(x, y)
	return c.count, clicked
}

// Move records pointer motion. Leaving the tolerance box resets the count
// and, with a button held, starts a drag.
func (c *ClickTracker) Move(x, y int16, held bool) {
	if c.count == 0 || c.near(x, y) {
		return
	}
	c.moved = true
	if held {
		c.dragging = true
	}
}

// Count returns the click count of the last press.
func (c *ClickTracker) Count() uint16 { return c.count }
