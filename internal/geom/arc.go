package geom

import "math"

// Direction is the sweep direction of an arc.
type Direction int

const (
	// Clockwise sweeps with increasing angle. In y-down screen space this
	// is visually clockwise.
	Clockwise Direction = iota
	// CounterClockwise sweeps with decreasing angle.
	CounterClockwise
)

// String returns the direction name.
func (d Direction) String() string {
	if d == CounterClockwise {
		return "CounterClockwise"
	}
	return "Clockwise"
}

// maxArcTangentDistance is the ArcTo tangent distance beyond which the
// corner is considered straight.
const maxArcTangentDistance = 10000.0

// ArcSweep returns the signed sweep from a0 to a1 in the given direction.
// Clockwise sweeps land in [0, 2π] and counter-clockwise sweeps in
// [-2π, 0]; a difference of a full turn or more is clamped to one turn.
func ArcSweep(a0, a1 float64, dir Direction) float64 {
	da := a1 - a0
	if dir == Clockwise {
		if math.Abs(da) >= 2*math.Pi {
			return 2 * math.Pi
		}
		for da < 0 {
			da += 2 * math.Pi
		}
		return da
	}
	if math.Abs(da) >= 2*math.Pi {
		return -2 * math.Pi
	}
	for da > 0 {
		da -= 2 * math.Pi
	}
	return da
}

// ArcSegments returns the number of chords needed to keep the deviation of
// an arc of the given radius and sweep below Tolerance.
func ArcSegments(radius, sweep float64) int {
	if radius <= Tolerance {
		return max(1, int(math.Ceil(math.Abs(sweep)/(math.Pi/2))))
	}
	step := 2 * math.Acos(1-Tolerance/radius)
	return max(1, int(math.Ceil(math.Abs(sweep)/step)))
}

// FlattenArc returns the points of the arc, including both endpoints.
// Every point is computed from the analytic parametrisation, so the first and
// last points are exactly the arc endpoints.
func FlattenArc(center Point, radius, a0, sweep float64) []Point {
	n := ArcSegments(radius, sweep)
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, Polar(center, radius, a0+sweep*t))
	}
	return pts
}

// ArcTangent returns the unit tangent of a circle at angle a when swept in
// the given direction.
func ArcTangent(a float64, sweep float64) Point {
	sin, cos := math.Sincos(a)
	if sweep < 0 {
		return Point{X: sin, Y: -cos}
	}
	return Point{X: -sin, Y: cos}
}

// ArcToParams is the circular arc produced by the two-tangent construction.
type ArcToParams struct {
	Center Point
	Radius float64
	A0, A1 float64
	Dir    Direction
}

// ArcTo computes the arc of the given radius tangent to the lines p0-p1 and
// p1-p2. ok is false for degenerate corners (coincident or colinear points,
// non-positive radius), in which case callers draw a straight line to p1.
func ArcTo(p0, p1, p2 Point, radius float64) (ArcToParams, bool) {
	if radius <= 0 || p0.Near(p1, Epsilon) || p1.Near(p2, Epsilon) {
		return ArcToParams{}, false
	}
	d0 := p0.Sub(p1).Normalize()
	d1 := p2.Sub(p1).Normalize()
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-9 {
		return ArcToParams{}, false
	}

	a := math.Acos(Clamp(d0.Dot(d1), -1, 1))
	d := radius / math.Tan(a/2)
	if d > maxArcTangentDistance {
		return ArcToParams{}, false
	}

	if cross < 0 {
		return ArcToParams{
			Center: Point{X: p1.X + d0.X*d + d0.Y*radius, Y: p1.Y + d0.Y*d - d0.X*radius},
			Radius: radius,
			A0:     math.Atan2(d0.X, -d0.Y),
			A1:     math.Atan2(-d1.X, d1.Y),
			Dir:    Clockwise,
		}, true
	}
	return ArcToParams{
		Center: Point{X: p1.X + d0.X*d - d0.Y*radius, Y: p1.Y + d0.Y*d + d0.X*radius},
		Radius: radius,
		A0:     math.Atan2(-d0.X, d0.Y),
		A1:     math.Atan2(d1.X, -d1.Y),
		Dir:    CounterClockwise,
	}, true
}
