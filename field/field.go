// Package field holds the fixed-size pool of drifting glyph particles.
//
// Particles live in an ark ECS world as four components. The pool is populated once
// and never grows: a particle that drifts past the top margin is reset in place with a
// freshly spawned state that re-enters from below the surface.
package field

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glyphdrift/components"
	"github.com/pthm-cable/glyphdrift/config"
)

// Particle is a flat view of one pooled glyph.
type Particle struct {
	X, Y          float64
	Speed         float64
	Size          float64
	Symbol        int
	Color         int
	Rotation      float64
	RotationSpeed float64
	Opacity       float64
}

// Field owns the surface dimensions and the particle pool.
type Field struct {
	width, height float64
	profile       config.ProfileConfig
	rng           *rand.Rand

	world  *ecs.World
	mapper *ecs.Map4[
		components.Position,
		components.Drift,
		components.Spin,
		components.Glyph,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Drift,
		components.Spin,
		components.Glyph,
	]

	resets uint64
}

// New creates an empty field of the given size.
func New(width, height float64, profile config.ProfileConfig, rng *rand.Rand) *Field {
	world := ecs.NewWorld()
	return &Field{
		width:   width,
		height:  height,
		profile: profile,
		rng:     rng,
		world:   world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Drift,
			components.Spin,
			components.Glyph,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Drift,
			components.Spin,
			components.Glyph,
		](world),
	}
}

// Spawn returns a freshly randomized particle positioned just below the bottom edge.
func Spawn(p config.ProfileConfig, rng *rand.Rand, width, height float64) Particle {
	opacity := 1.0
	if p.TrackOpacity {
		opacity = p.OpacityMin + rng.Float64()*(p.OpacityMax-p.OpacityMin)
	}
	return Particle{
		X:             rng.Float64() * width,
		Y:             height + p.Margin,
		Speed:         (rng.Float64()*p.SpeedSpread + p.SpeedMin) * p.SpeedBase,
		Size:          rng.Float64()*p.SizeSpread + p.SizeMin,
		Symbol:        rng.Intn(len(p.Symbols)),
		Color:         rng.Intn(len(p.Colors)),
		Rotation:      rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64() - 0.5) * 2 * p.RotationSpeedMax,
		Opacity:       opacity,
	}
}

// Populate adds n particles scattered across the whole visible area, so the field
// looks full immediately instead of scrolling in from the bottom.
func (f *Field) Populate(n int) {
	for i := 0; i < n; i++ {
		p := Spawn(f.profile, f.rng, f.width, f.height)
		p.X = f.rng.Float64() * f.width
		p.Y = f.rng.Float64() * f.height

		pos, drift, spin, glyph := p.components()
		f.mapper.NewEntity(&pos, &drift, &spin, &glyph)
	}
}

// Advance moves every particle up by its speed and turns it by its rotation speed.
// Particles above the top margin are replaced with a fresh spawn.
func (f *Field) Advance() {
	query := f.filter.Query()
	for query.Next() {
		pos, drift, spin, glyph := query.Get()

		pos.Y -= drift.Speed
		spin.Rotation += spin.RotationSpeed

		if pos.Y < -f.profile.Margin {
			*pos, *drift, *spin, *glyph = Spawn(f.profile, f.rng, f.width, f.height).components()
			f.resets++
		}
	}
}

// Each calls fn for every particle in pool order.
func (f *Field) Each(fn func(p Particle)) {
	query := f.filter.Query()
	for query.Next() {
		pos, drift, spin, glyph := query.Get()
		fn(fromComponents(pos, drift, spin, glyph))
	}
}

// Particles returns a snapshot of the pool.
func (f *Field) Particles() []Particle {
	out := make([]Particle, 0, f.profile.ParticleCount)
	f.Each(func(p Particle) {
		out = append(out, p)
	})
	return out
}

// Len returns the number of pooled particles.
func (f *Field) Len() int {
	n := 0
	query := f.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Size returns the field dimensions.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Resets returns how many particles have been recycled since the field was built.
func (f *Field) Resets() uint64 {
	return f.resets
}

// Profile returns the profile the field spawns from.
func (f *Field) Profile() config.ProfileConfig {
	return f.profile
}

func (p Particle) components() (components.Position, components.Drift, components.Spin, components.Glyph) {
	return components.Position{X: p.X, Y: p.Y},
		components.Drift{Speed: p.Speed},
		components.Spin{Rotation: p.Rotation, RotationSpeed: p.RotationSpeed},
		components.Glyph{Symbol: p.Symbol, Color: p.Color, Size: p.Size, Opacity: p.Opacity}
}

func fromComponents(pos *components.Position, drift *components.Drift, spin *components.Spin, glyph *components.Glyph) Particle {
	return Particle{
		X:             pos.X,
		Y:             pos.Y,
		Speed:         drift.Speed,
		Size:          glyph.Size,
		Symbol:        glyph.Symbol,
		Color:         glyph.Color,
		Rotation:      spin.Rotation,
		RotationSpeed: spin.RotationSpeed,
		Opacity:       glyph.Opacity,
	}
}
