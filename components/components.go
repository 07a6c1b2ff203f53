// Package components defines ECS components for the glyph field.
package components

// Glyph holds the visual styling drawn for a particle.
type Glyph struct {
	Symbol  int     // index into the profile symbols
	Color   int     // index into the profile colors
	Size    float64 // font size in pixels
	Opacity float64 // global alpha multiplier (1 when the profile does not track opacity)
}
