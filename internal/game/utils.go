package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/crazy3lf/colorconv"
)

// hueColor converts HSV to an NRGBA with alpha a (hue: 0-360, saturation: 0-1, value: 0-1).
// Out-of-range input falls back to fallback.
func hueColor(h, s, v float64, a uint8, fallback color.NRGBA) color.NRGBA {
	r, g, b, err := colorconv.HSVToRGB(math.Mod(h, 360), clamp01(s), clamp01(v))
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
