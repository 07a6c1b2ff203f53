package host

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glyphdrift/telemetry"
	"github.com/pthm-cable/glyphdrift/ui"
)

// Draw composes the background, the glyph surface and the HUD.
func (h *Host) Draw() {
	bg := h.cfg.Screen.Background

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: bg.R, G: bg.G, B: bg.B, A: uint8(bg.A * 255)})

	h.surface.Draw(0, 0)

	actions := h.hud.Draw(h.hudData())
	if actions.ToggleReducedMotion {
		h.ToggleReducedMotion()
	}
	if actions.ToggleHidden {
		h.ToggleHidden()
	}

	rl.EndDrawing()
}

func (h *Host) hudData() ui.HUDData {
	perfStats := h.perf.Stats()
	w, hgt := h.surface.Size()

	data := ui.HUDData{
		Title:         h.cfg.Screen.Title,
		State:         h.anim.State().String(),
		Profile:       h.cfg.Profile,
		Rebuilds:      h.anim.Rebuilds(),
		FPS:           rl.GetFPS(),
		FrameCostUS:   float64(perfStats.AvgCost.Microseconds()),
		PhasePct:      perfStats.PhasePct,
		Phases:        telemetry.Phases,
		Colors:        h.hudColors,
		ReducedMotion: h.preference.Toggled(),
		Hidden:        h.simulatedHidden,
		Width:         w,
		Height:        hgt,
	}
	if f := h.anim.Field(); f != nil {
		data.Particles = f.Len()
		data.Resets = f.Resets()
	}
	return data
}
