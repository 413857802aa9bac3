package fade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA creates a color from its components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseColor parses a hex color. Supported forms are "#rgb", "#rgba",
// "#rrggbb" and "#rrggbbaa"; the leading '#' is optional.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	if len(s) == 5 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) +
			strings.Repeat(s[3:4], 2) + strings.Repeat(s[4:5], 2)
	}

	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// MustParseColor is like ParseColor but panics on invalid input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbbaa".
func (c Color) Hex() string {
	rgb := c.rgb().Clamped().Hex()
	return fmt.Sprintf("%s%02x", rgb, uint8(clamp01(c.A)*255+0.5))
}

func (c Color) rgb() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// InterpolateColor blends two colors channel by channel in RGB space with
// a linear alpha ramp.
func InterpolateColor(from, to Color, t float64) Color {
	blended := from.rgb().BlendRgb(to.rgb(), t)
	return Color{
		R: blended.R,
		G: blended.G,
		B: blended.B,
		A: InterpolateNumber(from.A, to.A, t),
	}
}
