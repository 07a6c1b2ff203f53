package host

import (
	"testing"

	"github.com/pthm-cable/glyphdrift/animator"
	"github.com/pthm-cable/glyphdrift/config"
	"github.com/pthm-cable/glyphdrift/telemetry"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func newHeadless(t *testing.T) *Host {
	t.Helper()
	t.Setenv(config.Cfg().Motion.EnvVar, "")
	h := New(Options{Seed: 7, Headless: true, StatsWindowSec: 1})
	t.Cleanup(h.Unload)
	return h
}

func TestHeadlessRunsOneFramePerUpdate(t *testing.T) {
	h := newHeadless(t)
	anim := h.Animator()

	if anim.State() != animator.StateRunning {
		t.Fatalf("state = %s, want running", anim.State())
	}
	start := anim.Frames()
	for i := 0; i < 100; i++ {
		h.UpdateHeadless()
	}
	if got := anim.Frames() - start; got != 100 {
		t.Errorf("advanced %d frames over 100 updates", got)
	}

	cfg := config.Cfg()
	w, hgt := h.Recorder().Size()
	if w != cfg.Screen.Width || hgt != cfg.Screen.Height {
		t.Errorf("surface = %dx%d, want %dx%d", w, hgt, cfg.Screen.Width, cfg.Screen.Height)
	}
	if got := len(h.Recorder().Drawn()); got != cfg.Derived.Active.ParticleCount {
		t.Errorf("last frame drew %d glyphs, want %d", got, cfg.Derived.Active.ParticleCount)
	}
}

func TestHeadlessFlushesStatsWindows(t *testing.T) {
	h := newHeadless(t)

	var windows []telemetry.WindowStats
	h.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for i := 0; i < 130; i++ {
		h.UpdateHeadless()
	}

	if len(windows) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(windows))
	}
	first := windows[0]
	if first.Particles != config.Cfg().Derived.Active.ParticleCount {
		t.Errorf("particles = %d", first.Particles)
	}
	if first.State != "running" {
		t.Errorf("state = %q, want running", first.State)
	}
	if first.WindowEndFrame == 0 {
		t.Error("expected frames in the first window")
	}
}

func TestReducedMotionToggleStopsAndRestarts(t *testing.T) {
	h := newHeadless(t)
	anim := h.Animator()
	h.UpdateHeadless()

	h.ToggleReducedMotion()
	h.UpdateHeadless()
	if anim.State() != animator.StateStopped {
		t.Fatalf("state = %s, want stopped", anim.State())
	}
	frames := anim.Frames()
	for i := 0; i < 10; i++ {
		h.UpdateHeadless()
	}
	if anim.Frames() != frames {
		t.Error("frames advanced under reduced motion")
	}

	h.ToggleReducedMotion()
	h.UpdateHeadless()
	if anim.State() != animator.StateRunning {
		t.Errorf("state = %s, want running", anim.State())
	}
	if anim.Frames() <= frames {
		t.Error("animation did not resume")
	}
}

func TestSimulatedVisibility(t *testing.T) {
	h := newHeadless(t)
	anim := h.Animator()
	h.UpdateHeadless()

	h.ToggleHidden()
	h.UpdateHeadless()
	if anim.FramePending() {
		t.Error("hidden host kept a pending frame")
	}
	frames := anim.Frames()
	for i := 0; i < 10; i++ {
		h.UpdateHeadless()
	}
	if anim.Frames() != frames {
		t.Error("frames advanced while hidden")
	}

	h.ToggleHidden()
	h.UpdateHeadless()
	if anim.Frames() != frames+1 {
		t.Errorf("frames = %d, want %d after one visible update", anim.Frames(), frames+1)
	}
}
