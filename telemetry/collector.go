package telemetry

import "time"

// Collector accumulates frame and lifecycle events within time windows and produces
// WindowStats.
type Collector struct {
	windowDuration time.Duration
	history        int

	// Current window tracking
	windowStart      time.Time
	windowStartFrame uint64
	frames           uint64
	frameDurations   []time.Duration

	// Event counters for current window
	rebuilds    int
	pauses      int
	resumes     int
	motionStops int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in wall-clock seconds
// history: maximum frame durations kept for percentile calculation
func NewCollector(windowDurationSec float64, history int, start time.Time) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	if history < 1 {
		history = 600
	}
	return &Collector{
		windowDuration: time.Duration(windowDurationSec * float64(time.Second)),
		history:        history,
		windowStart:    start,
		frameDurations: make([]time.Duration, 0, history),
	}
}

// RecordFrame records one rendered frame and how long its update and draw took.
func (c *Collector) RecordFrame(d time.Duration) {
	c.frames++
	if len(c.frameDurations) >= c.history {
		copy(c.frameDurations, c.frameDurations[1:])
		c.frameDurations = c.frameDurations[:len(c.frameDurations)-1]
	}
	c.frameDurations = append(c.frameDurations, d)
}

// RecordEvent records a lifecycle event.
func (c *Collector) RecordEvent(e EventType) {
	switch e {
	case EventRebuild:
		c.rebuilds++
	case EventPause:
		c.pauses++
	case EventResume:
		c.resumes++
	case EventMotionStop:
		c.motionStops++
	}
}

// Frames returns the total number of frames recorded.
func (c *Collector) Frames() uint64 {
	return c.frames
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush(now time.Time) bool {
	return now.Sub(c.windowStart) >= c.windowDuration
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the current pool size, total recycled particles and the
// animator state name.
func (c *Collector) Flush(now time.Time, particles int, resets uint64, state string) WindowStats {
	mean, std, p50, p95 := ComputeFrameStats(c.frameDurations)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frames,
		ElapsedSec:       now.Sub(c.windowStart).Seconds(),
		Particles:        particles,
		Resets:           resets,
		Rebuilds:         c.rebuilds,
		Pauses:           c.pauses,
		Resumes:          c.resumes,
		MotionStops:      c.motionStops,
		FrameMeanUS:      mean,
		FrameStdUS:       std,
		FrameP50US:       p50,
		FrameP95US:       p95,
		State:            state,
	}

	c.windowStart = now
	c.windowStartFrame = c.frames
	c.frameDurations = c.frameDurations[:0]
	c.rebuilds = 0
	c.pauses = 0
	c.resumes = 0
	c.motionStops = 0

	return stats
}
