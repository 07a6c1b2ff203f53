package host

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Update polls window events and keyboard input, then ticks the frame clock.
func (h *Host) Update() {
	if rl.IsWindowResized() {
		h.anim.HandleResize()
	}
	h.windowHidden = rl.IsWindowMinimized() || rl.IsWindowHidden()
	h.handleInput()
	h.step()
}

// UpdateHeadless advances the manual clock by one display interval and ticks.
func (h *Host) UpdateHeadless() {
	h.time.Advance(h.frameInterval)
	h.step()
}

// ToggleReducedMotion flips the user's reduced-motion toggle.
func (h *Host) ToggleReducedMotion() {
	on := h.preference.Toggle()
	slog.Info("reduced motion toggled", "reduced_motion", on)
}

// ToggleHidden flips the simulated page visibility.
func (h *Host) ToggleHidden() {
	h.simulatedHidden = !h.simulatedHidden
	slog.Info("visibility toggled", "hidden", h.simulatedHidden)
}

// step applies visibility and preference changes, runs one clock tick and flushes
// telemetry windows.
func (h *Host) step() {
	h.anim.HandleVisibilityChange(h.simulatedHidden || h.windowHidden)

	reduced := h.preference.Active()
	if h.lastReduced && !reduced {
		h.anim.Start()
	}
	h.lastReduced = reduced

	h.perf.RecordFrame()
	h.clock.Tick()
	h.updates++

	h.flushTelemetry()
}

func (h *Host) handleInput() {
	if rl.IsKeyPressed(rl.KeyM) {
		h.ToggleReducedMotion()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		h.ToggleHidden()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		h.hud.Toggle()
	}
}
