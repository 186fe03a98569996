package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var ErrBadColor = errors.New("malformed color")

// ParseRGBA parses a CSS color of the form "rgba(r, g, b, a)" or "rgb(r, g, b)",
// with r, g, b in [0, 255] and a in [0, 1].
func ParseRGBA(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	var body string
	var want int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body, want = s[len("rgba("):len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body, want = s[len("rgb("):len(s)-1], 3
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("%w: %q has %d components", ErrBadColor, s, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: %q channel %d", ErrBadColor, s, i)
		}
		ch[i] = uint8(v)
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("%w: %q alpha", ErrBadColor, s)
		}
		alpha = a
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(math.Round(alpha * 255))}, nil
}
