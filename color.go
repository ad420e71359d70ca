package vecmesh

import (
	stdcolor "image/color"
	"strconv"

	"github.com/gogpu/vecmesh/internal/color"
)

// RGBA is an sRGB color with straight alpha. Each component is in the
// range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string with an optional leading '#'.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA". Malformed input
// yields opaque black.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black
	}
	nibble := func(shift uint) float64 { return float64((v>>shift)&0xf) * 17 / 255 }
	octet := func(shift uint) float64 { return float64((v>>shift)&0xff) / 255 }

	switch len(hex) {
	case 3:
		return RGB(nibble(8), nibble(4), nibble(0))
	case 4:
		return RGBA2(nibble(12), nibble(8), nibble(4), nibble(0))
	case 6:
		return RGB(octet(16), octet(8), octet(0))
	case 8:
		return RGBA2(octet(24), octet(16), octet(8), octet(0))
	default:
		return Black
	}
}

// Color converts c to the standard color.Color interface.
func (c RGBA) Color() stdcolor.Color {
	return stdcolor.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Lerp interpolates component-wise in sRGB space.
func (c RGBA) Lerp(o RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

func (c RGBA) linear() color.ColorF32 {
	return color.SRGBToLinearColor(color.ColorF32{
		R: float32(clamp01(c.R)),
		G: float32(clamp01(c.G)),
		B: float32(clamp01(c.B)),
		A: float32(clamp01(c.A)),
	})
}

// Tint returns c as a vertex tint: linear light with premultiplied alpha.
func (c RGBA) Tint() [4]float32 {
	return c.linear().Premultiplied()
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

func to8(x float64) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)
