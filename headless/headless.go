// Package headless provides in-memory stand-ins for the render surface, container and
// host signals. Headless runs and tests drive the animator through them.
package headless

import "github.com/pthm-cable/glyphdrift/animator"

// Surface records what the animator does to its pixel buffer.
type Surface struct {
	width, height int

	Clears  int // Clear calls since creation
	Draws   int // DrawGlyph calls since creation
	Resizes int

	last    []animator.Glyph // glyphs drawn since the last Clear
	history [][2]int         // sizes passed to Resize, in order
}

// NewSurface creates a surface with an initial pixel-buffer size.
func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// Resize sets the pixel-buffer dimensions.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
	s.Resizes++
	s.history = append(s.history, [2]int{width, height})
}

// Size returns the pixel-buffer dimensions.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Clear erases the buffer.
func (s *Surface) Clear() {
	s.Clears++
	s.last = s.last[:0]
}

// DrawGlyph records a draw.
func (s *Surface) DrawGlyph(g animator.Glyph) {
	s.Draws++
	s.last = append(s.last, g)
}

// Drawn returns the glyphs drawn since the last Clear.
func (s *Surface) Drawn() []animator.Glyph {
	out := make([]animator.Glyph, len(s.last))
	copy(out, s.last)
	return out
}

// Mutations returns the total number of pixel-buffer writes (clears and draws).
func (s *Surface) Mutations() int {
	return s.Clears + s.Draws
}

// ResizeHistory returns every size passed to Resize.
func (s *Surface) ResizeHistory() [][2]int {
	return s.history
}

// Container is a container with a settable client size.
type Container struct {
	width, height int
	absent        bool
}

// NewContainer creates a measurable container.
func NewContainer(width, height int) *Container {
	return &Container{width: width, height: height}
}

// SetSize changes the client size and makes the container measurable.
func (c *Container) SetSize(width, height int) {
	c.width, c.height = width, height
	c.absent = false
}

// SetAbsent makes the container unmeasurable.
func (c *Container) SetAbsent(absent bool) {
	c.absent = absent
}

// Size returns the client size, or ok=false when absent.
func (c *Container) Size() (int, int, bool) {
	if c.absent {
		return 0, 0, false
	}
	return c.width, c.height, true
}

// Switch is a live boolean signal.
type Switch struct {
	on    bool
	reads int
}

// NewSwitch creates a switch in the given position.
func NewSwitch(on bool) *Switch {
	return &Switch{on: on}
}

// Set changes the switch position.
func (s *Switch) Set(on bool) {
	s.on = on
}

// Toggle flips the switch and returns the new position.
func (s *Switch) Toggle() bool {
	s.on = !s.on
	return s.on
}

// Active reports the current position.
func (s *Switch) Active() bool {
	s.reads++
	return s.on
}

// Reads returns how many times the signal has been queried.
func (s *Switch) Reads() int {
	return s.reads
}
