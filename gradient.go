package vecmesh

import (
	"slices"
	"sort"

	"github.com/gogpu/vecmesh/internal/color"
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Gradient maps the normalized length along a stroked path to a color.
// Colors are interpolated in linear light; positions outside the first
// and last stop take the color of that stop.
type Gradient struct {
	stops []ColorStop
}

// NewGradient creates a gradient from the given stops.
func NewGradient(stops ...ColorStop) *Gradient {
	g := &Gradient{}
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
	return g
}

// AddColorStop adds a stop. Stops at equal offsets keep their insertion
// order, which produces a hard transition.
func (g *Gradient) AddColorStop(offset float64, c RGBA) {
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset > offset })
	g.stops = slices.Insert(g.stops, i, ColorStop{Offset: offset, Color: c})
}

// Stops returns a copy of the stops sorted by offset.
func (g *Gradient) Stops() []ColorStop {
	return slices.Clone(g.stops)
}

// ColorAt returns the sRGB color at t.
func (g *Gradient) ColorAt(t float64) RGBA {
	c := color.LinearToSRGBColor(g.linearAt(t))
	return RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

func (g *Gradient) tintAt(t float64) [4]float32 {
	return g.linearAt(t).Premultiplied()
}

func (g *Gradient) linearAt(t float64) color.ColorF32 {
	switch len(g.stops) {
	case 0:
		return color.ColorF32{}
	case 1:
		return g.stops[0].Color.linear()
	}

	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset > t })
	switch i {
	case 0:
		return g.stops[0].Color.linear()
	case len(g.stops):
		return g.stops[i-1].Color.linear()
	}
	s0, s1 := g.stops[i-1], g.stops[i]
	f := (t - s0.Offset) / (s1.Offset - s0.Offset)
	return s0.Color.linear().Lerp(s1.Color.linear(), float32(f))
}
