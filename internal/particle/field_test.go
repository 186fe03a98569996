package particle

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

type circle struct {
	x, y, r float64
	clr     color.NRGBA
}

type segment struct {
	x0, y0, x1, y1, width float64
	clr                   color.NRGBA
}

type recorder struct {
	clears   int
	circles  []circle
	segments []segment
}

func (r *recorder) Clear() {
	r.clears++
	r.circles = r.circles[:0]
	r.segments = r.segments[:0]
}

func (r *recorder) FillCircle(x, y, rad float64, clr color.NRGBA) {
	r.circles = append(r.circles, circle{x, y, rad, clr})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	r.segments = append(r.segments, segment{x0, y0, x1, y1, width, clr})
}

var red = color.NRGBA{R: 229, G: 57, B: 53, A: 153}

func classicParams() Params {
	return Params{
		AreaPerParticle: 9000,
		SizeMin:         0.5,
		SizeMax:         2.5,
		Speed:           0.2,
		Inset:           true,
		Color:           red,
	}
}

func constellationParams() Params {
	return Params{
		AreaPerParticle:      9000,
		SizeMin:              1,
		SizeMax:              3.5,
		Speed:                0.2,
		Color:                red,
		Repel:                true,
		RepelStep:            2,
		RepelMargin:          10,
		PointerRadiusDivisor: 80,
		Connect:              true,
		ConnectorColor:       color.NRGBA{R: 229, G: 57, B: 53, A: 255},
		ConnectorWidth:       1,
		ConnectorDivisor:     7,
		ConnectorFalloff:     20000,
		ConnectorOpacity:     0.3,
	}
}

func newTestField(p Params) *Field {
	return NewField(p, rand.New(rand.NewPCG(1, 2)))
}

func TestInitializeCount(t *testing.T) {
	tests := []struct {
		w, h float64
		want int
	}{
		{1000, 900, 100},
		{1920, 1080, 230},
		{800, 600, 53},
		{90, 100, 1},
		{89, 100, 0},
		{0, 900, 0},
	}
	for _, tt := range tests {
		f := newTestField(classicParams())
		f.Initialize(tt.w, tt.h)
		if got := len(f.Particles()); got != tt.want {
			t.Errorf("Initialize(%v, %v): got %d particles, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestInitializeMaxParticles(t *testing.T) {
	p := classicParams()
	p.MaxParticles = 40
	f := newTestField(p)
	f.Initialize(1000, 900)
	if got := len(f.Particles()); got != 40 {
		t.Fatalf("got %d particles, want cap of 40", got)
	}
}

func TestInitializeRanges(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"classic", classicParams()},
		{"constellation", constellationParams()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const w, h = 1200.0, 800.0
			f := newTestField(tt.params)
			f.Initialize(w, h)
			for i, p := range f.Particles() {
				if p.Size < tt.params.SizeMin || p.Size >= tt.params.SizeMax {
					t.Fatalf("particle %d size %v outside [%v, %v)", i, p.Size, tt.params.SizeMin, tt.params.SizeMax)
				}
				lo, hiX, hiY := 0.0, w, h
				if tt.params.Inset {
					lo, hiX, hiY = 2*p.Size, w-2*p.Size, h-2*p.Size
				}
				if p.X < lo || p.X > hiX || p.Y < lo || p.Y > hiY {
					t.Fatalf("particle %d at (%v, %v) outside spawn area", i, p.X, p.Y)
				}
				if math.Abs(p.DirectionX) > 0.2 || math.Abs(p.DirectionY) > 0.2 {
					t.Fatalf("particle %d velocity (%v, %v) exceeds 0.2", i, p.DirectionX, p.DirectionY)
				}
				if p.Color != red {
					t.Fatalf("particle %d color %v, want %v", i, p.Color, red)
				}
			}
		})
	}
}

func TestTickBoundedOvershoot(t *testing.T) {
	const w, h = 300.0, 200.0
	f := newTestField(classicParams())
	f.Initialize(w, h)
	rec := &recorder{}
	for frame := 0; frame < 5000; frame++ {
		f.Tick(rec)
		for i, p := range f.Particles() {
			vx, vy := math.Abs(p.DirectionX), math.Abs(p.DirectionY)
			if p.X < -vx || p.X > w+vx || p.Y < -vy || p.Y > h+vy {
				t.Fatalf("frame %d: particle %d at (%v, %v) overshot bounds", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestTickReflectsAtEdges(t *testing.T) {
	tests := []struct {
		name   string
		p      Particle
		wantDX float64
		wantDY float64
	}{
		{"past right", Particle{X: 100.1, Y: 50, DirectionX: 0.2, DirectionY: 0.1, Size: 1}, -0.2, 0.1},
		{"past left", Particle{X: -0.1, Y: 50, DirectionX: -0.2, DirectionY: 0.1, Size: 1}, 0.2, 0.1},
		{"past bottom", Particle{X: 50, Y: 100.05, DirectionX: 0.1, DirectionY: 0.15, Size: 1}, 0.1, -0.15},
		{"past top", Particle{X: 50, Y: -0.05, DirectionX: 0.1, DirectionY: -0.15, Size: 1}, 0.1, 0.15},
		{"inside", Particle{X: 50, Y: 50, DirectionX: 0.1, DirectionY: -0.1, Size: 1}, 0.1, -0.1},
		{"on edge", Particle{X: 100, Y: 0, DirectionX: 0.1, DirectionY: -0.1, Size: 1}, 0.1, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(classicParams())
			f.width, f.height = 100, 100
			f.particles = []Particle{tt.p}
			f.Tick(&recorder{})
			got := f.Particles()[0]
			if got.DirectionX != tt.wantDX || got.DirectionY != tt.wantDY {
				t.Fatalf("direction = (%v, %v), want (%v, %v)", got.DirectionX, got.DirectionY, tt.wantDX, tt.wantDY)
			}
			if got.X != tt.p.X+tt.wantDX || got.Y != tt.p.Y+tt.wantDY {
				t.Fatalf("position = (%v, %v), want moved by new direction", got.X, got.Y)
			}
		})
	}
}

func TestTickDrawsEveryParticle(t *testing.T) {
	f := newTestField(classicParams())
	f.Initialize(1000, 900)
	rec := &recorder{}
	stats := f.Tick(rec)
	if rec.clears != 1 {
		t.Fatalf("surface cleared %d times, want 1", rec.clears)
	}
	if len(rec.circles) != 100 || stats.Particles != 100 {
		t.Fatalf("drew %d circles (stats %d), want 100", len(rec.circles), stats.Particles)
	}
	for i, c := range rec.circles {
		p := f.Particles()[i]
		if c.x != p.X || c.y != p.Y || c.r != p.Size {
			t.Fatalf("circle %d = %+v, want drawn at updated particle %+v", i, c, p)
		}
	}
	if len(rec.segments) != 0 || stats.Segments != 0 {
		t.Fatalf("classic field drew %d segments", len(rec.segments))
	}
}

func TestResizeDiscardsParticles(t *testing.T) {
	f := newTestField(constellationParams())
	f.Initialize(1000, 900)
	old := append([]Particle(nil), f.Particles()...)

	f.Resize(1920, 1080)
	if w, h := f.Size(); w != 1920 || h != 1080 {
		t.Fatalf("size = %vx%v, want 1920x1080", w, h)
	}
	if got := len(f.Particles()); got != 230 {
		t.Fatalf("got %d particles after resize, want 230", got)
	}
	seen := make(map[[2]float64]bool, len(old))
	for _, p := range old {
		seen[[2]float64{p.X, p.Y}] = true
	}
	for i, p := range f.Particles() {
		if seen[[2]float64{p.X, p.Y}] {
			t.Fatalf("particle %d kept a previous position (%v, %v)", i, p.X, p.Y)
		}
	}
	if r := f.Pointer().Radius; r != (1080.0/80)*(1920.0/80) {
		t.Fatalf("pointer radius = %v, not recomputed", r)
	}
}

func TestRepelMovesAway(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float64
		wantX, wantY float64
	}{
		{"pointer up-left", 95, 95, 102, 102},
		{"pointer down-right", 105, 105, 98, 98},
		{"pointer left same row", 95, 100, 102, 100},
		{"pointer on particle", 100, 100, 100, 100},
		{"pointer out of reach", 400, 400, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := constellationParams()
			p.Connect = false
			f := newTestField(p)
			f.width, f.height = 500, 500
			f.pointer.Radius = 20
			f.particles = []Particle{{X: 100, Y: 100, Size: 2}}
			f.SetPointer(tt.px, tt.py)
			f.Tick(&recorder{})
			got := f.Particles()[0]
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Fatalf("particle at (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRepelRespectsEdgeMargin(t *testing.T) {
	p := constellationParams()
	p.Connect = false
	f := newTestField(p)
	f.width, f.height = 500, 500
	f.pointer.Radius = 20
	// 10*size = 20 from the right edge: pushing further right is refused.
	f.particles = []Particle{{X: 485, Y: 100, Size: 2}}
	f.SetPointer(480, 95)
	f.Tick(&recorder{})
	got := f.Particles()[0]
	if got.X != 485 {
		t.Fatalf("x = %v, want unchanged inside edge margin", got.X)
	}
	if got.Y != 102 {
		t.Fatalf("y = %v, want pushed to 102", got.Y)
	}
}

func TestClearPointerDisablesRepel(t *testing.T) {
	p := constellationParams()
	p.Connect = false
	f := newTestField(p)
	f.width, f.height = 500, 500
	f.pointer.Radius = 20
	f.particles = []Particle{{X: 100, Y: 100, Size: 2}}
	f.SetPointer(95, 95)
	f.ClearPointer()
	f.Tick(&recorder{})
	if got := f.Particles()[0]; got.X != 100 || got.Y != 100 {
		t.Fatalf("absent pointer moved particle to (%v, %v)", got.X, got.Y)
	}
}

func TestRepelDisabledForClassic(t *testing.T) {
	f := newTestField(classicParams())
	f.width, f.height = 500, 500
	f.pointer.Radius = 20
	f.particles = []Particle{{X: 100, Y: 100, Size: 2}}
	f.SetPointer(95, 95)
	f.Tick(&recorder{})
	if got := f.Particles()[0]; got.X != 100 || got.Y != 100 {
		t.Fatalf("classic field repelled particle to (%v, %v)", got.X, got.Y)
	}
}
