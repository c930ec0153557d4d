package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

func parseHex(s string) (colorful.Color, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	// Workbooks need the six-digit form.
	if len(h) != 7 {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: want #RRGGBB", s)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

func mustColour(s string) colorful.Color {
	c, err := parseHex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// hexColour formats c as upper-case #RRGGBB.
func hexColour(c colorful.Color) string {
	return strings.ToUpper(c.Clamped().Hex())
}

// scale maps v in [0, top] onto the low-mid-high palette.
func scale(palette []string, v, top float64) colorful.Color {
	low, mid, high := mustColour(palette[0]), mustColour(palette[1]), mustColour(palette[2])
	if top <= 0 || v <= 0 {
		return low
	}
	t := v / top
	if t >= 1 {
		return high
	}
	if t > 0.5 {
		return mid.BlendRgb(high, (t-0.5)*2)
	}
	return low.BlendRgb(mid, t*2)
}
