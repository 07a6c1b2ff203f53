package components

// Position is a glyph's location on the surface in pixels.
type Position struct {
	X, Y float64
}

// Drift is the constant upward speed of a glyph (pixels per frame).
type Drift struct {
	Speed float64
}

// Spin holds a glyph's orientation and angular velocity.
type Spin struct {
	Rotation      float64 // radians
	RotationSpeed float64 // radians per frame, signed
}
