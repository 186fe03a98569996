package particle

import (
	"image/color"
	"math"
)

// Particle is a single moving dot. Positions are in surface pixels,
// directions in pixels per frame.
type Particle struct {
	X, Y       float64
	DirectionX float64
	DirectionY float64
	Size       float64
	Color      color.NRGBA
}

// Pointer is the last known cursor position. Present is false once the cursor
// has left the surface.
type Pointer struct {
	X, Y    float64
	Radius  float64
	Present bool
}

// Canvas is the drawing surface a Field renders onto.
type Canvas interface {
	Clear()
	FillCircle(x, y, r float64, clr color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA)
}

// reflect flips the direction on every axis where p has left [0, w] x [0, h].
func reflect(p *Particle, w, h float64) {
	if p.X > w || p.X < 0 {
		p.DirectionX = -p.DirectionX
	}
	if p.Y > h || p.Y < 0 {
		p.DirectionY = -p.DirectionY
	}
}

// repel nudges p away from ptr when the pointer is within ptr.Radius+p.Size.
// Each axis moves independently and only while p stays margin*size away from
// the edge it is pushed towards. A pointer exactly on p leaves it in place.
func repel(p *Particle, ptr Pointer, w, h, step, margin float64) {
	if !ptr.Present {
		return
	}
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	if math.Sqrt(dx*dx+dy*dy) >= ptr.Radius+p.Size {
		return
	}
	edge := p.Size * margin
	if ptr.X < p.X && p.X < w-edge {
		p.X += step
	}
	if ptr.X > p.X && p.X > edge {
		p.X -= step
	}
	if ptr.Y < p.Y && p.Y < h-edge {
		p.Y += step
	}
	if ptr.Y > p.Y && p.Y > edge {
		p.Y -= step
	}
}

func advance(p *Particle) {
	p.X += p.DirectionX
	p.Y += p.DirectionY
}

func draw(c Canvas, p *Particle) {
	c.FillCircle(p.X, p.Y, p.Size, p.Color)
}
