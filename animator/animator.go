// Package animator drives the ambient glyph field: it sizes a render surface to its
// container, keeps a fixed pool of drifting glyphs, and advances and draws them once
// per display frame.
//
// All entry points run on the host's single cooperative thread. The animator owns at
// most one outstanding frame request and one debounce timer, both cancelled before any
// rebuild so a stale callback never touches a replaced pool.
package animator

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/glyphdrift/config"
	"github.com/pthm-cable/glyphdrift/field"
	"github.com/pthm-cable/glyphdrift/frameclock"
	"github.com/pthm-cable/glyphdrift/telemetry"
)

// State is the loop lifecycle state.
type State uint8

const (
	StateInactive State = iota // No surface; every call is a no-op
	StateStopped
	StateRunning
	StateDisposed
)

// String returns the state name used in logs and the HUD.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Observer receives frame timings and lifecycle events. telemetry.Collector
// satisfies it.
type Observer interface {
	RecordFrame(d time.Duration)
	RecordEvent(e telemetry.EventType)
}

// Options configures an Animator.
type Options struct {
	Surface       Surface   // nil leaves the animator permanently inactive
	Container     Container // nil means the container can never be measured
	Scheduler     frameclock.Scheduler
	ReducedMotion Signal // nil means motion is always allowed
	Profile       config.ProfileConfig
	Debounce      time.Duration
	Rand          *rand.Rand
	Logger        *slog.Logger
	Perf          *telemetry.PerfCollector // optional
	Observer      Observer                 // optional
}

// Animator is the particle field animator.
type Animator struct {
	surface   Surface
	container Container
	sched     frameclock.Scheduler
	reduced   Signal
	profile   config.ProfileConfig
	debounce  time.Duration
	rng       *rand.Rand
	log       *slog.Logger
	perf      *telemetry.PerfCollector
	observer  Observer

	field  *field.Field
	state  State
	hidden bool

	frame       frameclock.Handle // outstanding frame request, 0 if none
	resizeTimer frameclock.Handle // pending debounce timer, 0 if none

	frames   uint64
	rebuilds uint64
}

// New creates an animator. A nil surface yields an inactive animator.
func New(opts Options) *Animator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a := &Animator{
		surface:   opts.Surface,
		container: opts.Container,
		sched:     opts.Scheduler,
		reduced:   opts.ReducedMotion,
		profile:   opts.Profile,
		debounce:  opts.Debounce,
		rng:       rng,
		log:       log,
		perf:      opts.Perf,
		observer:  opts.Observer,
		state:     StateStopped,
	}

	if a.surface == nil || a.sched == nil {
		a.state = StateInactive
		log.Debug("render surface absent, animator inactive")
	}
	return a
}

// Initialize sizes the surface to the container and populates a fresh pool of
// particle_count particles scattered across the visible area. Calling it again
// replaces the pool rather than growing it.
func (a *Animator) Initialize() {
	if !a.usable() {
		return
	}

	w, h, ok := a.measure()
	if !ok {
		// Keep whatever size the surface already has.
		w, h = a.surface.Size()
	}
	a.rebuild(w, h)
}

// AdvanceFrame moves every particle one frame, recycling those past the top margin.
func (a *Animator) AdvanceFrame() {
	if a.field == nil {
		return
	}
	a.field.Advance()
	a.frames++
}

// Render clears the surface and draws every particle.
func (a *Animator) Render() {
	if !a.usable() || a.field == nil {
		return
	}

	a.surface.Clear()
	symbols := a.profile.Symbols
	colors := a.profile.Colors
	a.field.Each(func(p field.Particle) {
		a.surface.DrawGlyph(Glyph{
			Text:     symbols[p.Symbol],
			X:        p.X,
			Y:        p.Y,
			Size:     p.Size,
			Rotation: p.Rotation,
			Color:    colors[p.Color],
			Opacity:  p.Opacity,
		})
	})
}

// Loop is the per-frame callback. It re-checks the reduced-motion preference on every
// call; when set, it clears the surface once and stops without rescheduling.
// Otherwise it advances, renders and requests the next frame.
func (a *Animator) Loop() {
	if !a.usable() {
		return
	}
	// Guarantees a single outstanding request when called outside the scheduler.
	a.cancelFrame()

	if a.field == nil {
		a.Initialize()
	}

	if a.reduced != nil && a.reduced.Active() {
		a.surface.Clear()
		if a.state == StateRunning {
			a.log.Info("reduced motion requested, animation stopped")
			a.emit(telemetry.EventMotionStop)
		}
		a.state = StateStopped
		return
	}
	if a.hidden {
		a.state = StateStopped
		return
	}

	if a.perf != nil {
		a.perf.BeginFrame()
		a.perf.StartPhase(telemetry.PhaseAdvance)
	}
	start := time.Now()
	a.AdvanceFrame()
	if a.perf != nil {
		a.perf.StartPhase(telemetry.PhaseRender)
	}
	a.Render()
	if a.perf != nil {
		a.perf.EndFrame()
	}
	if a.observer != nil {
		a.observer.RecordFrame(time.Since(start))
	}

	a.frame = a.sched.RequestFrame(a.Loop)
	a.state = StateRunning
}

// HandleResize (re)arms the debounce timer. When it fires, the surface is resized to
// the container and the pool is rebuilt from scratch. If the container cannot be
// measured at that point, the previous state is kept.
func (a *Animator) HandleResize() {
	if !a.usable() {
		return
	}
	if a.resizeTimer != 0 {
		a.sched.CancelTimer(a.resizeTimer)
	}
	a.resizeTimer = a.sched.AfterFunc(a.debounce, a.applyResize)
}

func (a *Animator) applyResize() {
	a.resizeTimer = 0
	if !a.usable() {
		return
	}

	w, h, ok := a.measure()
	if !ok {
		a.log.Debug("container not measurable, resize skipped")
		return
	}

	a.cancelFrame()
	a.rebuild(w, h)
	a.rebuilds++
	a.emit(telemetry.EventRebuild)
	a.log.Info("field rebuilt", "width", w, "height", h, "particles", a.profile.ParticleCount)

	if a.hidden {
		a.state = StateStopped
		return
	}
	a.schedule()
}

// HandleVisibilityChange pauses the loop while the host is hidden and resumes it on
// the next tick once visible again.
func (a *Animator) HandleVisibilityChange(hidden bool) {
	if !a.usable() {
		return
	}
	if hidden == a.hidden {
		return
	}
	a.hidden = hidden

	if hidden {
		a.cancelFrame()
		a.state = StateStopped
		a.emit(telemetry.EventPause)
		a.log.Debug("host hidden, animation paused")
		return
	}

	if a.field == nil {
		a.Initialize()
	}
	a.schedule()
	a.emit(telemetry.EventResume)
	a.log.Debug("host visible, animation resumed")
}

// Start initializes the pool if needed and runs the first frame immediately.
// It is a no-op while running or hidden.
func (a *Animator) Start() {
	if !a.usable() || a.hidden || a.state == StateRunning {
		return
	}
	if a.field == nil {
		a.Initialize()
	}
	a.Loop()
}

// Stop cancels the outstanding frame and any pending resize. The pool is kept.
func (a *Animator) Stop() {
	if !a.usable() {
		return
	}
	a.cancelFrame()
	if a.resizeTimer != 0 {
		a.sched.CancelTimer(a.resizeTimer)
		a.resizeTimer = 0
	}
	a.state = StateStopped
}

// Dispose stops the animator for good and releases the pool.
func (a *Animator) Dispose() {
	if a.state == StateDisposed {
		return
	}
	a.Stop()
	a.field = nil
	a.state = StateDisposed
}

// State returns the current lifecycle state.
func (a *Animator) State() State {
	return a.state
}

// Hidden reports whether the host is currently hidden.
func (a *Animator) Hidden() bool {
	return a.hidden
}

// Field returns the current particle field, or nil before initialization.
func (a *Animator) Field() *field.Field {
	return a.field
}

// Frames returns the number of frames advanced since creation.
func (a *Animator) Frames() uint64 {
	return a.frames
}

// Rebuilds returns the number of resize-triggered rebuilds.
func (a *Animator) Rebuilds() uint64 {
	return a.rebuilds
}

// FramePending reports whether a frame request is outstanding.
func (a *Animator) FramePending() bool {
	return a.frame != 0
}

// ResizePending reports whether a debounced resize is waiting to fire.
func (a *Animator) ResizePending() bool {
	return a.resizeTimer != 0
}

func (a *Animator) usable() bool {
	return a.state != StateInactive && a.state != StateDisposed
}

func (a *Animator) measure() (int, int, bool) {
	if a.container == nil {
		return 0, 0, false
	}
	return a.container.Size()
}

// rebuild replaces the surface size and the whole pool.
func (a *Animator) rebuild(w, h int) {
	a.surface.Resize(w, h)
	a.field = field.New(float64(w), float64(h), a.profile, a.rng)
	a.field.Populate(a.profile.ParticleCount)
}

func (a *Animator) schedule() {
	if a.frame == 0 {
		a.frame = a.sched.RequestFrame(a.Loop)
	}
	a.state = StateRunning
}

func (a *Animator) cancelFrame() {
	if a.frame != 0 {
		a.sched.CancelFrame(a.frame)
		a.frame = 0
	}
}

func (a *Animator) emit(e telemetry.EventType) {
	if a.observer != nil {
		a.observer.RecordEvent(e)
	}
}
