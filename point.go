package vecmesh

import (
	"github.com/gogpu/vecmesh/internal/geom"
)

// Point represents a 2D point or vector in pixels.
type Point = geom.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return geom.Pt(x, y)
}

// ArcDirection is the sweep direction of Painter2D.Arc.
type ArcDirection = geom.Direction

const (
	// Clockwise sweeps with increasing angle, clockwise on screen.
	Clockwise = geom.Clockwise
	// CounterClockwise sweeps with decreasing angle.
	CounterClockwise = geom.CounterClockwise
)
