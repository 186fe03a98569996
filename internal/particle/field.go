package particle

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Params describes how a Field seeds, moves and links its particles.
type Params struct {
	// AreaPerParticle is the surface area, in square pixels, each particle
	// accounts for. The field holds floor(w*h/AreaPerParticle) particles.
	AreaPerParticle float64
	// MaxParticles caps the field size. Zero means no cap.
	MaxParticles int

	SizeMin, SizeMax float64
	// Speed bounds each velocity component to [-Speed, Speed].
	Speed float64
	// Inset keeps spawn positions 2*size away from the edges.
	Inset bool
	Color color.NRGBA

	Repel                bool
	RepelStep            float64
	RepelMargin          float64
	PointerRadiusDivisor float64

	Connect          bool
	ConnectorColor   color.NRGBA
	ConnectorWidth   float64
	ConnectorDivisor float64
	ConnectorFalloff float64
	ConnectorOpacity float64
}

// Stats reports what one Tick drew.
type Stats struct {
	Particles int
	Segments  int
}

// Field owns the particle collection and drives it one frame at a time.
// It is not safe for concurrent use; all calls are expected from the frame loop.
type Field struct {
	params    Params
	rng       *rand.Rand
	width     float64
	height    float64
	particles []Particle
	pointer   Pointer
}

func NewField(params Params, rng *rand.Rand) *Field {
	return &Field{
		params: params,
		rng:    rng,
	}
}

// Count returns how many particles a w x h surface holds.
func (f *Field) Count(w, h float64) int {
	if w <= 0 || h <= 0 || f.params.AreaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(w * h / f.params.AreaPerParticle))
	if f.params.MaxParticles > 0 && n > f.params.MaxParticles {
		n = f.params.MaxParticles
	}
	return n
}

// Initialize discards the current particles and seeds a fresh set for a
// w x h surface.
func (f *Field) Initialize(w, h float64) {
	f.width, f.height = w, h
	f.pointer.Radius = f.pointerRadius()

	n := f.Count(w, h)
	particles := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		size := f.uniform(f.params.SizeMin, f.params.SizeMax)
		var x, y float64
		if f.params.Inset {
			x = f.uniform(size*2, w-size*2)
			y = f.uniform(size*2, h-size*2)
		} else {
			x = f.uniform(0, w)
			y = f.uniform(0, h)
		}
		particles = append(particles, Particle{
			X:          x,
			Y:          y,
			DirectionX: f.uniform(-f.params.Speed, f.params.Speed),
			DirectionY: f.uniform(-f.params.Speed, f.params.Speed),
			Size:       size,
			Color:      f.params.Color,
		})
	}
	f.particles = particles
}

// Resize is the viewport resize handler: the surface takes the new size and
// the particle set is rebuilt from scratch.
func (f *Field) Resize(w, h float64) {
	f.Initialize(w, h)
}

// Tick runs one frame: clear, move and draw every particle, then link
// neighbours when the connector pass is enabled.
func (f *Field) Tick(c Canvas) Stats {
	c.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		reflect(p, f.width, f.height)
		if f.params.Repel {
			repel(p, f.pointer, f.width, f.height, f.params.RepelStep, f.params.RepelMargin)
		}
		advance(p)
		draw(c, p)
	}

	stats := Stats{Particles: len(f.particles)}
	if f.params.Connect {
		stats.Segments = connect(c, f.particles, f.width, f.height, f.params)
	}
	return stats
}

// SetPointer records the cursor position used by repulsion.
func (f *Field) SetPointer(x, y float64) {
	f.pointer.X, f.pointer.Y = x, y
	f.pointer.Present = true
}

// ClearPointer marks the cursor as gone; repulsion is skipped until the next
// SetPointer.
func (f *Field) ClearPointer() {
	f.pointer.Present = false
}

func (f *Field) Pointer() Pointer { return f.pointer }

func (f *Field) Particles() []Particle { return f.particles }

func (f *Field) Size() (w, h float64) { return f.width, f.height }

func (f *Field) Params() Params { return f.params }

func (f *Field) pointerRadius() float64 {
	d := f.params.PointerRadiusDivisor
	if d <= 0 {
		return 0
	}
	return (f.height / d) * (f.width / d)
}

// uniform returns a value in [lo, hi). A collapsed range yields lo.
func (f *Field) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Float64()*(hi-lo)
}
