// Package frameclock is a cooperative, single-threaded scheduler for display frames
// and delayed callbacks.
//
// The host calls Tick once per display refresh. Frame callbacks requested during a
// tick run on the following tick, so a callback that reschedules itself runs at most
// once per refresh and a throttled host simply skips frames. Timers are polled on
// each tick and never run on another goroutine.
package frameclock

import (
	"sort"
	"time"
)

// Handle identifies a scheduled frame or timer. The zero Handle is never issued.
type Handle uint64

// Scheduler requests frame callbacks and delayed callbacks with cancellable handles.
type Scheduler interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle) bool
	AfterFunc(d time.Duration, fn func()) Handle
	CancelTimer(h Handle) bool
}

type frameRequest struct {
	handle Handle
	fn     func()
}

type timer struct {
	handle   Handle
	deadline time.Time
	seq      uint64
	fn       func()
}

// Clock implements Scheduler on top of a TimeProvider.
type Clock struct {
	time    TimeProvider
	next    Handle
	frames  []frameRequest
	running []frameRequest
	timers  []timer
	seq     uint64
	ticks   uint64
}

// New creates a clock reading time from tp.
func New(tp TimeProvider) *Clock {
	if tp == nil {
		tp = NewSystemTime()
	}
	return &Clock{time: tp}
}

// RequestFrame schedules fn to run on the next tick.
func (c *Clock) RequestFrame(fn func()) Handle {
	c.next++
	c.frames = append(c.frames, frameRequest{handle: c.next, fn: fn})
	return c.next
}

// CancelFrame removes a pending frame request. Returns false if it already ran or
// was never issued.
func (c *Clock) CancelFrame(h Handle) bool {
	if h == 0 {
		return false
	}
	for i, f := range c.frames {
		if f.handle == h {
			c.frames = append(c.frames[:i], c.frames[i+1:]...)
			return true
		}
	}
	// Still queued in the batch being run by Tick.
	for i, f := range c.running {
		if f.handle == h && f.fn != nil {
			c.running[i].fn = nil
			return true
		}
	}
	return false
}

// AfterFunc schedules fn to run on the first tick at or after now+d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) Handle {
	c.next++
	c.seq++
	c.timers = append(c.timers, timer{
		handle:   c.next,
		deadline: c.time.Now().Add(d),
		seq:      c.seq,
		fn:       fn,
	})
	return c.next
}

// CancelTimer removes a pending timer. Returns false if it already fired.
func (c *Clock) CancelTimer(h Handle) bool {
	if h == 0 {
		return false
	}
	for i, t := range c.timers {
		if t.handle == h {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Tick fires due timers in deadline order, then runs the frame callbacks that were
// pending when the tick began. Frames requested by a timer or frame callback wait for
// the next tick; a timer may still cancel a frame of the current batch.
// Returns the number of frame callbacks run.
func (c *Clock) Tick() int {
	c.ticks++
	c.running = c.frames
	c.frames = nil

	c.fireTimers(c.time.Now())

	ran := 0
	for i := range c.running {
		fn := c.running[i].fn
		if fn == nil {
			continue
		}
		c.running[i].fn = nil
		fn()
		ran++
	}
	c.running = nil
	return ran
}

// fireTimers runs every timer whose deadline has passed. Timers armed by a firing
// callback wait for a later tick.
func (c *Clock) fireTimers(now time.Time) {
	var due []timer
	kept := c.timers[:0]
	for _, t := range c.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	c.timers = kept

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.fn()
	}
}

// PendingFrames returns the number of frame requests waiting for the next tick.
func (c *Clock) PendingFrames() int {
	return len(c.frames)
}

// PendingTimers returns the number of armed timers.
func (c *Clock) PendingTimers() int {
	return len(c.timers)
}

// Ticks returns the number of ticks processed.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
