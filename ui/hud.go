package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const hudWidth = 250

// HUD renders the status panel and its toggle buttons.
type HUD struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewHUD creates a visible HUD anchored at (x, y).
func NewHUD(x, y int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		visible:  true,
	}
}

// Toggle shows or hides the HUD.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the HUD is drawn.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD and returns which buttons were pressed.
func (h *HUD) Draw(data HUDData) HUDActions {
	var actions HUDActions
	if !h.visible {
		return actions
	}

	r := h.renderer
	t := r.Theme
	x := h.x + t.Padding
	y := h.y + t.Padding

	height := t.Padding*2 + t.LineHeight*9 + int32(t.ButtonHeight) + 8 + t.LineHeight*int32(len(data.Phases))
	r.DrawPanel(h.x, h.y, hudWidth, height)

	y = r.DrawSectionHeader(x, y, data.Title)

	stateColor := t.ValueColor
	if data.State != "running" {
		stateColor = t.WarnColor
	}
	rl.DrawText("State:", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(data.State, x+t.LabelWidth, y, t.FontSize, stateColor)
	y += t.LineHeight

	y = r.DrawLabelValue(x, y, "Profile", data.Profile)
	y = r.DrawLabelValue(x, y, "Surface", fmt.Sprintf("%dx%d", data.Width, data.Height))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d (%d recycled)", data.Particles, data.Resets))
	y = r.DrawLabelValue(x, y, "Rebuilds", fmt.Sprintf("%d", data.Rebuilds))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d | %.0fus/frame", data.FPS, data.FrameCostUS))
	for _, phase := range data.Phases {
		y = r.DrawBar(x, y, phase, data.PhasePct[phase], hudWidth-2*t.Padding)
	}
	y = r.DrawColorSwatches(x, y, "Colors", data.Colors)
	y += 4

	motionLabel := toggleText(data.ReducedMotion, "Allow motion", "Reduce motion")
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: t.ButtonWidth, Height: t.ButtonHeight}, motionLabel) {
		actions.ToggleReducedMotion = true
	}
	hideLabel := toggleText(data.Hidden, "Show", "Hide")
	if gui.Button(rl.Rectangle{X: float32(x) + t.ButtonWidth + 8, Y: float32(y), Width: t.ButtonWidth, Height: t.ButtonHeight}, hideLabel) {
		actions.ToggleHidden = true
	}
	y += int32(t.ButtonHeight) + 4

	rl.DrawText("[M] motion  [V] visibility  [H] hud", x, y, 10, t.LabelColor)
	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
