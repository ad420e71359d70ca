// Package geom provides the 2D point math and curve flattening primitives
// shared by the stroke and fill tessellators.
package geom

import "math"

// Epsilon is the distance below which two points are considered coincident.
const Epsilon = 1e-9

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the negated vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of the 3D cross product).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	length := p.Length()
	if length < Epsilon {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Perp returns the vector rotated by 90 degrees. In the y-down screen space
// used throughout this module the result points to the right of the
// direction of travel.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Angle returns the angle of the vector in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// IsZero reports whether the vector is shorter than Epsilon.
func (p Point) IsZero() bool {
	return p.LengthSquared() < Epsilon*Epsilon
}

// Near reports whether p and q are within eps of each other.
func (p Point) Near(q Point, eps float64) bool {
	return p.Sub(q).LengthSquared() <= eps*eps
}

// Polar returns the point at the given angle and radius around center.
func Polar(center Point, radius, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a rectangle that contains nothing; extending it with any
// point yields a degenerate rectangle at that point.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{X: inf, Y: inf}, Max: Point{X: -inf, Y: -inf}}
}

// IsEmpty reports whether the rectangle has never been extended.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// SegmentDistance returns the distance from p to the segment (a, b).
func SegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen2 := ab.LengthSquared()
	if abLen2 < Epsilon*Epsilon {
		return p.Distance(a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/abLen2, 0, 1)
	return p.Distance(a.Add(ab.Mul(t)))
}

// SegmentIntersection returns the intersection point of segments (a0, a1)
// and (b0, b1) and whether they properly intersect. Parallel segments
// report no intersection.
func SegmentIntersection(a0, a1, b0, b1 Point) (Point, bool) {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	denom := da.Cross(db)
	if math.Abs(denom) < Epsilon {
		return Point{}, false
	}
	w := b0.Sub(a0)
	s := w.Cross(db) / denom
	u := w.Cross(da) / denom
	if s < 0 || s > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return a0.Add(da.Mul(s)), true
}
