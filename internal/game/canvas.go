package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// screenCanvas draws particle frames onto an ebiten image.
type screenCanvas struct {
	dst *ebiten.Image
	bg  color.NRGBA
	// radiusScale multiplies every circle radius (track pulse).
	radiusScale float64
	// fill, when set, replaces the particle RGB and keeps its alpha (hue drift).
	fill *color.NRGBA
}

func (c *screenCanvas) Clear() {
	c.dst.Fill(c.bg)
}

func (c *screenCanvas) FillCircle(x, y, r float64, clr color.NRGBA) {
	if c.fill != nil {
		a := clr.A
		clr = *c.fill
		clr.A = a
	}
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(r*c.radiusScale), clr, true)
}

func (c *screenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}
