package animator

import "github.com/pthm-cable/glyphdrift/config"

// Glyph is one draw command: a symbol centred at (X, Y), rotated around its own centre.
type Glyph struct {
	Text     string
	X, Y     float64
	Size     float64 // font size in pixels, bold monospace
	Rotation float64 // radians
	Color    config.RGBA
	Opacity  float64 // global alpha multiplier
}

// Alpha returns the effective fill alpha in [0, 1].
func (g Glyph) Alpha() float64 {
	a := g.Color.A * g.Opacity
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Surface is the pixel buffer the animator draws into.
type Surface interface {
	// Resize sets the pixel-buffer dimensions.
	Resize(width, height int)
	// Size returns the current pixel-buffer dimensions.
	Size() (width, height int)
	// Clear erases the whole buffer.
	Clear()
	DrawGlyph(g Glyph)
}

// Container is the element the surface is sized to.
type Container interface {
	// Size returns the container's client size, or ok=false when it cannot be measured.
	Size() (width, height int, ok bool)
}

// Signal is a live boolean read at the moment it is needed (never cached).
type Signal interface {
	Active() bool
}
