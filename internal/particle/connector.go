package particle

import (
	"image/color"
	"math"
)

// ConnectorOpacity is the stroke opacity for two particles whose squared
// distance is d2.
func ConnectorOpacity(d2, falloff, scale float64) float64 {
	return math.Max(0, 1-d2/falloff) * scale
}

// ConnectorThreshold is the squared distance below which two particles on a
// w x h surface are linked.
func ConnectorThreshold(w, h, divisor float64) float64 {
	return (w / divisor) * (h / divisor)
}

// connect draws a segment between every pair a <= b closer than the
// threshold and returns how many it drew. Self pairs are zero-length and
// included. The scan is quadratic in len(ps); the area divisor and
// Params.MaxParticles are what keep it affordable.
func connect(c Canvas, ps []Particle, w, h float64, params Params) int {
	threshold := ConnectorThreshold(w, h, params.ConnectorDivisor)
	drawn := 0
	for a := range ps {
		for b := a; b < len(ps); b++ {
			dx := ps[a].X - ps[b].X
			dy := ps[a].Y - ps[b].Y
			d2 := dx*dx + dy*dy
			if d2 >= threshold {
				continue
			}
			opacity := ConnectorOpacity(d2, params.ConnectorFalloff, params.ConnectorOpacity)
			c.StrokeLine(ps[a].X, ps[a].Y, ps[b].X, ps[b].Y, params.ConnectorWidth, fade(params.ConnectorColor, opacity))
			drawn++
		}
	}
	return drawn
}

// fade scales the alpha of clr by opacity.
func fade(clr color.NRGBA, opacity float64) color.NRGBA {
	clr.A = uint8(math.Round(float64(clr.A) * opacity))
	return clr
}
