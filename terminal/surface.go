// Package terminal runs the glyph field in a terminal through tcell.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glyphdrift/animator"
	"github.com/pthm-cable/glyphdrift/config"
)

// Screen is the subset of tcell.Screen the surface writes to.
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Surface maps the animator's pixel space onto terminal cells. Each glyph is written
// into the cell row containing its centre; rotation is not representable and is
// dropped.
type Surface struct {
	screen       Screen
	cellW, cellH float64
	width        int
	height       int
	bg           config.RGBA
	boost        float64
	blank        tcell.Style
}

// NewSurface creates a surface over screen. cellW and cellH give the pixel size of
// one terminal cell.
func NewSurface(screen Screen, cellW, cellH float64, bg config.RGBA, boost float64) *Surface {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	if boost <= 0 {
		boost = 1
	}
	return &Surface{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		bg:     bg,
		boost:  boost,
		blank:  tcell.StyleDefault.Background(rgb(bg.R, bg.G, bg.B)),
	}
}

// Resize sets the pixel-space dimensions. The cell grid itself follows the terminal.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Size returns the pixel-space dimensions.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Clear paints every cell with the background.
func (s *Surface) Clear() {
	cols, rows := s.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s.screen.SetContent(x, y, ' ', nil, s.blank)
		}
	}
}

// DrawGlyph writes the symbol centred on its cell, blending its color over the
// background.
func (s *Surface) DrawGlyph(g animator.Glyph) {
	cols, rows := s.screen.Size()
	row := int(math.Floor(g.Y / s.cellH))
	if row < 0 || row >= rows {
		return
	}

	runes := []rune(g.Text)
	col := int(math.Floor(g.X/s.cellW)) - len(runes)/2

	a := math.Min(1, g.Alpha()*s.boost)
	style := s.blank.Foreground(rgb(
		blend(s.bg.R, g.Color.R, a),
		blend(s.bg.G, g.Color.G, a),
		blend(s.bg.B, g.Color.B, a),
	))

	for i, r := range runes {
		x := col + i
		if x < 0 || x >= cols {
			continue
		}
		s.screen.SetContent(x, row, r, nil, style)
	}
}

// Container measures the terminal in the surface's pixel space.
type Container struct {
	screen       Screen
	cellW, cellH float64
}

// NewContainer creates a container over screen.
func NewContainer(screen Screen, cellW, cellH float64) *Container {
	return &Container{screen: screen, cellW: cellW, cellH: cellH}
}

// Size returns the terminal size in pixels, or ok=false for an empty terminal.
func (c *Container) Size() (int, int, bool) {
	cols, rows := c.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return int(float64(cols) * c.cellW), int(float64(rows) * c.cellH), true
}

func blend(bg, fg uint8, a float64) uint8 {
	return uint8(math.Round(float64(bg) + (float64(fg)-float64(bg))*a))
}

func rgb(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
