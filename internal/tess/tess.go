// Package tess triangulates polygon contours under a winding rule.
//
// The fill pipeline only needs a rough tessellation: triangles may carry
// Steiner points and T-junctions, antialiasing is recovered afterwards from
// exact arc metadata.
package tess

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
)

// Sentinel errors returned by tessellators.
var (
	// ErrTooFewPoints is returned when no contour has three or more points.
	ErrTooFewPoints = errors.New("tess: too few points")

	// ErrEmptyResult is returned when the contours enclose no area.
	ErrEmptyResult = errors.New("tess: empty result")

	// ErrInvalidPoint is returned for NaN or infinite coordinates.
	ErrInvalidPoint = errors.New("tess: invalid point")

	// ErrUnsupported is returned by a tessellator that cannot handle the
	// given input; callers may retry with a more general one.
	ErrUnsupported = errors.New("tess: unsupported input")
)

// WindingRule decides which regions of a set of contours are inside.
type WindingRule uint8

const (
	// NonZero treats a point as inside when its winding number is not zero.
	NonZero WindingRule = iota
	// EvenOdd treats a point as inside when its winding number is odd.
	EvenOdd
)

// String returns the rule name.
func (r WindingRule) String() string {
	switch r {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return fmt.Sprintf("WindingRule(%d)", r)
	}
}

// Inside reports whether winding number w is inside under the rule.
func (r WindingRule) Inside(w int) bool {
	if r == EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Result is a triangle soup over a shared vertex list.
type Result struct {
	Vertices []geom.Point
	Indices  []int // three per triangle
}

// TriangleCount returns the number of triangles.
func (r Result) TriangleCount() int {
	return len(r.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (r Result) Triangle(i int) [3]geom.Point {
	return [3]geom.Point{
		r.Vertices[r.Indices[3*i]],
		r.Vertices[r.Indices[3*i+1]],
		r.Vertices[r.Indices[3*i+2]],
	}
}

// Tessellator triangulates closed contours. Each contour is implicitly
// closed from its last point back to its first.
type Tessellator interface {
	Tessellate(contours [][]geom.Point, rule WindingRule) (Result, error)
}

// TessellatorFunc adapts a function to the Tessellator interface.
type TessellatorFunc func(contours [][]geom.Point, rule WindingRule) (Result, error)

// Tessellate calls f.
func (f TessellatorFunc) Tessellate(contours [][]geom.Point, rule WindingRule) (Result, error) {
	return f(contours, rule)
}

// Winding returns the winding number of the contours around p. A contour
// that is clockwise on screen (y-down) winds +1 around its interior.
func Winding(contours [][]geom.Point, p geom.Point) int {
	w := 0
	for _, c := range contours {
		n := len(c)
		for i := range n {
			a := c[i]
			b := c[(i+1)%n]
			if a.Y <= p.Y {
				if b.Y > p.Y && isLeft(a, b, p) > 0 {
					w++
				}
			} else if b.Y <= p.Y && isLeft(a, b, p) < 0 {
				w--
			}
		}
	}
	return w
}

// isLeft is positive when p is on the positive side of the directed line a-b.
func isLeft(a, b, p geom.Point) float64 {
	return b.Sub(a).Cross(p.Sub(a))
}

// SignedArea returns the shoelace area of a contour. It is positive for
// contours that are clockwise on screen (y-down).
func SignedArea(c []geom.Point) float64 {
	area := 0.0
	n := len(c)
	for i := range n {
		area += c[i].Cross(c[(i+1)%n])
	}
	return area / 2
}

// usableContours returns the number of contours with at least three points.
func usableContours(contours [][]geom.Point) int {
	n := 0
	for _, c := range contours {
		if len(c) >= 3 {
			n++
		}
	}
	return n
}

// validPoint rejects NaN and infinite coordinates.
func validPoint(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
