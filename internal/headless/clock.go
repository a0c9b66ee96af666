// Package headless runs a canvas surface against a virtual clock, with no
// terminal or window attached.
package headless

import (
	"time"

	"github.com/san-kum/asciiscape/internal/host"
)

type queued struct {
	id host.FrameID
	cb func(ts float64)
}

// Clock is a host.Scheduler on virtual time. Callbacks requested before a
// Step fire on that step in request order; callbacks requested during a
// step wait for the next one.
type Clock struct {
	now      float64
	interval time.Duration
	next     host.FrameID
	queue    []queued
	live     map[host.FrameID]bool
}

// NewClock returns a clock stepping fps frames per second.
func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = 60
	}
	return &Clock{
		interval: time.Second / time.Duration(fps),
		live:     make(map[host.FrameID]bool),
	}
}

func (c *Clock) RequestFrame(cb func(ts float64)) host.FrameID {
	c.next++
	c.queue = append(c.queue, queued{id: c.next, cb: cb})
	c.live[c.next] = true
	return c.next
}

func (c *Clock) CancelFrame(id host.FrameID) {
	delete(c.live, id)
}

// Now is the virtual time in milliseconds.
func (c *Clock) Now() float64 { return c.now }

func (c *Clock) Interval() time.Duration { return c.interval }

// Pending is the number of callbacks waiting for the next step.
func (c *Clock) Pending() int { return len(c.live) }

// Step advances one frame interval and fires due callbacks. It returns how
// many fired.
func (c *Clock) Step() int {
	c.now += float64(c.interval) / float64(time.Millisecond)
	return c.fire()
}

// StepAt fires due callbacks at the timestamp ts, in milliseconds. Drivers
// with a real frame clock use it in place of Step. Time never runs
// backwards: an earlier ts fires at the current time.
func (c *Clock) StepAt(ts float64) int {
	if ts > c.now {
		c.now = ts
	}
	return c.fire()
}

func (c *Clock) fire() int {
	batch := c.queue
	c.queue = nil
	fired := 0
	for _, q := range batch {
		if !c.live[q.id] {
			continue
		}
		delete(c.live, q.id)
		q.cb(c.now)
		fired++
	}
	return fired
}

// Advance steps whole frame intervals covering d.
func (c *Clock) Advance(d time.Duration) int {
	fired := 0
	for n := int(d / c.interval); n > 0; n-- {
		fired += c.Step()
	}
	return fired
}

// Skip moves time forward without firing anything, as when a page is
// suspended in the background.
func (c *Clock) Skip(d time.Duration) {
	c.now += float64(d) / float64(time.Millisecond)
}
