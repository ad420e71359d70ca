package geom

import "math"

// Tolerance is the maximum allowed deviation between a curve and its
// flattened approximation, in pixels. 0.1 keeps visual error well below one
// pixel at typical UI scales.
const Tolerance = 0.1

// maxSubdivision bounds the recursion depth of Bezier flattening so that
// pathological control points cannot explode the point count.
const maxSubdivision = 16

// Sample is a flattened point together with the curve parameter it was
// evaluated at.
type Sample struct {
	P Point
	T float64
}

// Quad is a quadratic Bezier curve.
type Quad struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t.
func (q Quad) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Derivative returns the first derivative at t.
func (q Quad) Derivative(t float64) Point {
	a := q.P1.Sub(q.P0).Mul(2 * (1 - t))
	b := q.P2.Sub(q.P1).Mul(2 * t)
	return a.Add(b)
}

// Tangent returns the unit tangent at t. Where the derivative vanishes
// (coincident control points) the chord direction is used instead.
func (q Quad) Tangent(t float64) Point {
	d := q.Derivative(t)
	if d.IsZero() {
		d = q.P2.Sub(q.P0)
	}
	return d.Normalize()
}

// Flatten appends the flattened samples of the curve to dst, excluding the
// start point, and returns the extended slice.
func (q Quad) Flatten(dst []Sample) []Sample {
	return flattenQuadRec(dst, q.P0, q.P1, q.P2, 0, 1, 0)
}

func flattenQuadRec(dst []Sample, p0, p1, p2 Point, t0, t1 float64, depth int) []Sample {
	if depth >= maxSubdivision || SegmentDistance(p1, p0, p2) < Tolerance {
		return append(dst, Sample{P: p2, T: t1})
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	tm := (t0 + t1) / 2

	dst = flattenQuadRec(dst, p0, q0, mid, t0, tm, depth+1)
	return flattenQuadRec(dst, mid, q1, p2, tm, t1, depth+1)
}

// Cubic is a cubic Bezier curve.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t.
func (c Cubic) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Derivative returns the first derivative at t.
func (c Cubic) Derivative(t float64) Point {
	mt := 1 - t
	a := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	b := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d := c.P3.Sub(c.P2).Mul(3 * t * t)
	return a.Add(b).Add(d)
}

// Tangent returns the unit tangent at t. At the endpoints a vanishing
// derivative falls back to the next distinct control point, matching the
// direction the curve actually leaves or enters the endpoint.
func (c Cubic) Tangent(t float64) Point {
	d := c.Derivative(t)
	if !d.IsZero() {
		return d.Normalize()
	}
	switch {
	case t <= 0:
		for _, p := range []Point{c.P2, c.P3} {
			if v := p.Sub(c.P0); !v.IsZero() {
				return v.Normalize()
			}
		}
	case t >= 1:
		for _, p := range []Point{c.P1, c.P0} {
			if v := c.P3.Sub(p); !v.IsZero() {
				return v.Normalize()
			}
		}
	}
	return c.P3.Sub(c.P0).Normalize()
}

// Flatten appends the flattened samples of the curve to dst, excluding the
// start point, and returns the extended slice.
func (c Cubic) Flatten(dst []Sample) []Sample {
	return flattenCubicRec(dst, c.P0, c.P1, c.P2, c.P3, 0, 1, 0)
}

func flattenCubicRec(dst []Sample, p0, p1, p2, p3 Point, t0, t1 float64, depth int) []Sample {
	dist := math.Max(SegmentDistance(p1, p0, p3), SegmentDistance(p2, p0, p3))
	if depth >= maxSubdivision || dist < Tolerance {
		return append(dst, Sample{P: p3, T: t1})
	}

	// de Casteljau split at the midpoint
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	tm := (t0 + t1) / 2

	dst = flattenCubicRec(dst, p0, q0, r0, s, t0, tm, depth+1)
	return flattenCubicRec(dst, s, r1, q2, p3, tm, t1, depth+1)
}

// CircleThrough returns the circle passing through a, b and c.
// ok is false when the points are colinear (the "circle" is a line).
func CircleThrough(a, b, c Point) (center Point, radius float64, ok bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	d := 2 * ab.Cross(ac)
	scale := math.Max(ab.LengthSquared(), ac.LengthSquared())
	if math.Abs(d) <= 1e-12*scale || scale < Epsilon*Epsilon {
		return Point{}, 0, false
	}
	ab2 := ab.LengthSquared()
	ac2 := ac.LengthSquared()
	ux := (ac.Y*ab2 - ab.Y*ac2) / d
	uy := (ab.X*ac2 - ac.X*ab2) / d
	center = Point{X: a.X + ux, Y: a.Y + uy}
	return center, math.Hypot(ux, uy), true
}
