// Package color converts colors between sRGB and linear light.
//
// Tints are stored in vertices as linear premultiplied RGBA; gradients
// interpolate in linear space, and the preview encodes back to sRGB bytes.
package color

// ColorF32 represents a color with float32 components in [0,1].
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}

// Lerp interpolates component-wise between c and o.
func (c ColorF32) Lerp(o ColorF32, t float32) ColorF32 {
	return ColorF32{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Premultiplied returns the color as a premultiplied RGBA array.
func (c ColorF32) Premultiplied() [4]float32 {
	return [4]float32{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}
