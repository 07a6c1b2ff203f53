package renderer

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glyphdrift/animator"
)

// GlyphSurface is an animator surface backed by a render texture. Glyphs are drawn
// into the texture during the frame callback and blitted to the window by Draw.
type GlyphSurface struct {
	target  rl.RenderTexture2D
	font    rl.Font
	spacing float32

	width, height int
	ownsFont      bool
	active        bool // inside BeginTextureMode
	allocated     bool
}

// NewGlyphSurface creates a surface with the given pixel-buffer size. The font is
// loaded from fontPath with the given codepoints, falling back to the raylib default
// font when fontPath is empty or fails to load.
// Must be called after the raylib window is created.
func NewGlyphSurface(width, height int, fontPath string, baseSize int, runes []rune, spacing float64) *GlyphSurface {
	s := &GlyphSurface{spacing: float32(spacing)}
	s.font, s.ownsFont = loadFont(fontPath, baseSize, runes)
	s.Resize(width, height)
	return s
}

func loadFont(path string, baseSize int, runes []rune) (rl.Font, bool) {
	if path == "" {
		return rl.GetFontDefault(), false
	}
	font := rl.LoadFontEx(path, int32(baseSize), runes)
	if font.Texture.ID == 0 {
		slog.Warn("font failed to load, using default", "path", path)
		return rl.GetFontDefault(), false
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font, true
}

// Resize reallocates the render texture. Previous contents are discarded.
func (s *GlyphSurface) Resize(width, height int) {
	s.end()
	if s.allocated {
		rl.UnloadRenderTexture(s.target)
		s.allocated = false
	}
	s.width, s.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	s.target = rl.LoadRenderTexture(int32(width), int32(height))
	s.allocated = true
	s.Clear()
	s.end()
}

// Size returns the pixel-buffer dimensions.
func (s *GlyphSurface) Size() (int, int) {
	return s.width, s.height
}

// Clear erases the texture to transparent.
func (s *GlyphSurface) Clear() {
	if !s.begin() {
		return
	}
	rl.ClearBackground(rl.Blank)
}

// DrawGlyph draws one symbol centred at its position and rotated about its centre.
func (s *GlyphSurface) DrawGlyph(g animator.Glyph) {
	if !s.begin() {
		return
	}

	size := float32(g.Size)
	extent := rl.MeasureTextEx(s.font, g.Text, size, s.spacing)
	origin := rl.Vector2{X: extent.X / 2, Y: extent.Y / 2}
	tint := rl.Color{
		R: g.Color.R,
		G: g.Color.G,
		B: g.Color.B,
		A: uint8(math.Round(g.Alpha() * 255)),
	}
	rotation := float32(g.Rotation * 180 / math.Pi)

	rl.DrawTextPro(s.font, g.Text, rl.Vector2{X: float32(g.X), Y: float32(g.Y)}, origin, rotation, size, s.spacing, tint)
}

// Draw blits the texture to the window at (x, y).
func (s *GlyphSurface) Draw(x, y float32) {
	s.end()
	if !s.allocated {
		return
	}

	// Render textures are stored upside down, so flip the source.
	src := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(s.width),
		Height: -float32(s.height),
	}
	dst := rl.Rectangle{
		X:      x,
		Y:      y,
		Width:  float32(s.width),
		Height: float32(s.height),
	}
	rl.DrawTexturePro(s.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the texture and any loaded font.
func (s *GlyphSurface) Unload() {
	s.end()
	if s.allocated {
		rl.UnloadRenderTexture(s.target)
		s.allocated = false
	}
	if s.ownsFont {
		rl.UnloadFont(s.font)
		s.ownsFont = false
	}
}

func (s *GlyphSurface) begin() bool {
	if !s.allocated {
		return false
	}
	if !s.active {
		rl.BeginTextureMode(s.target)
		s.active = true
	}
	return true
}

func (s *GlyphSurface) end() {
	if s.active {
		rl.EndTextureMode()
		s.active = false
	}
}
