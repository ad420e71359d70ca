package path

import (
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
)

// JoinKind classifies a flattened point for strip assembly.
type JoinKind uint8

const (
	// Smooth points continue the strip with a shared pair of vertices.
	Smooth JoinKind = iota
	// Joint points have a tangent discontinuity and need join geometry.
	Joint
	// CapStart is the first point of an open sub-path.
	CapStart
	// CapEnd is the last point of an open sub-path.
	CapEnd
)

// smoothCos is the cosine of the largest turn still treated as smooth.
var smoothCos = math.Cos(1e-3)

// maxArcRadius is the radius above which curve metadata degrades to a line.
const maxArcRadius = 1e5

// JoinInfo is the per-point metadata used during strip construction.
type JoinInfo struct {
	Pos    geom.Point
	TanIn  geom.Point // unit tangent arriving at Pos
	TanOut geom.Point // unit tangent leaving Pos
	Dist   float64    // chord length from the start of the sub-path
	Kind   JoinKind
	Arc    int // filled arc of the edge leaving Pos, -1 if not tracked
}

// Turn returns the signed turn angle at the point, in (-π, π].
func (j JoinInfo) Turn() float64 {
	return math.Atan2(j.TanIn.Cross(j.TanOut), j.TanIn.Dot(j.TanOut))
}

// Polyline is a flattened sub-path.
type Polyline struct {
	Points []JoinInfo
	Closed bool
	Length float64
}

// ArcKind distinguishes straight and curved filled arcs.
type ArcKind uint8

const (
	// ArcLine is a straight boundary segment (an arc of infinite radius).
	ArcLine ArcKind = iota
	// ArcCircle is a circular boundary segment.
	ArcCircle
)

// FilledArc is an exact boundary segment retained for antialiasing. Only
// its geometry matters to the fill tessellator: the supporting line for
// ArcLine and the circle for ArcCircle.
type FilledArc struct {
	Kind   ArcKind
	From   geom.Point
	To     geom.Point
	Center geom.Point
	Radius float64
	A0     float64
	Sweep  float64
}

// flattener accumulates the points of one sub-path.
type flattener struct {
	pts    []JoinInfo
	arcs   *[]FilledArc
	curArc int
	last   geom.Point // last valid tangent
}

// Flatten converts a sub-path into a polyline. When arcs is not nil the
// filled-arc metadata of every edge is appended to it and referenced from
// JoinInfo.Arc. A sub-path with fewer than two distinct points yields a
// polyline with no points.
func Flatten(sp SubPath, arcs *[]FilledArc) Polyline {
	f := &flattener{arcs: arcs, curArc: -1}
	f.pts = append(f.pts, JoinInfo{Pos: sp.Start, Arc: -1})

	for _, s := range sp.Segments {
		switch s.Kind {
		case SegLine:
			f.curArc = f.addArc(FilledArc{Kind: ArcLine, From: s.From, To: s.To})
			tan := s.To.Sub(s.From).Normalize()
			f.start(tan)
			f.add(s.To, tan)
		case SegArc:
			f.curArc = f.addArc(FilledArc{
				Kind: ArcCircle, From: s.From, To: s.To,
				Center: s.Center, Radius: s.Radius, A0: s.A0, Sweep: s.Sweep,
			})
			pts := geom.FlattenArc(s.Center, s.Radius, s.A0, s.Sweep)
			n := len(pts) - 1
			f.start(geom.ArcTangent(s.A0, s.Sweep))
			for i := 1; i <= n; i++ {
				a := s.A0 + s.Sweep*(float64(i)/float64(n))
				f.add(pts[i], geom.ArcTangent(a, s.Sweep))
			}
		case SegQuad:
			q := geom.Quad{P0: s.From, P1: s.C1, P2: s.To}
			f.flattenCurve(q.Flatten(nil), q.Eval, q.Tangent)
		case SegCubic:
			c := geom.Cubic{P0: s.From, P1: s.C1, P2: s.C2, P3: s.To}
			f.flattenCurve(c.Flatten(nil), c.Eval, c.Tangent)
		}
	}

	return f.finish(sp.Closed)
}

// flattenCurve adds Bezier samples, creating one filled arc per flattened
// piece from the circle through its endpoints and parametric midpoint.
func (f *flattener) flattenCurve(samples []geom.Sample, eval func(float64) geom.Point, tangent func(float64) geom.Point) {
	f.start(tangent(0))
	t0 := 0.0
	from := eval(0)
	for _, s := range samples {
		f.curArc = f.addArc(curveArc(from, eval((t0+s.T)/2), s.P))
		f.add(s.P, tangent(s.T))
		t0 = s.T
		from = s.P
	}
}

// curveArc returns the filled arc through a, mid and b.
func curveArc(a, mid, b geom.Point) FilledArc {
	center, radius, ok := geom.CircleThrough(a, mid, b)
	if !ok || radius > maxArcRadius {
		return FilledArc{Kind: ArcLine, From: a, To: b}
	}
	a0 := a.Sub(center).Angle()
	a1 := b.Sub(center).Angle()
	dir := geom.Clockwise
	if b.Sub(a).Cross(mid.Sub(a)) > 0 {
		dir = geom.CounterClockwise
	}
	return FilledArc{
		Kind: ArcCircle, From: a, To: b,
		Center: center, Radius: radius, A0: a0, Sweep: geom.ArcSweep(a0, a1, dir),
	}
}

func (f *flattener) addArc(a FilledArc) int {
	if f.arcs == nil {
		return -1
	}
	*f.arcs = append(*f.arcs, a)
	return len(*f.arcs) - 1
}

// start records the tangent leaving the current last point.
func (f *flattener) start(tan geom.Point) {
	f.pts[len(f.pts)-1].TanOut = f.valid(tan)
}

// add appends a point reached with the given tangent along the current arc.
// Points coincident with the previous one are merged into it.
func (f *flattener) add(p geom.Point, tan geom.Point) {
	tan = f.valid(tan)
	last := &f.pts[len(f.pts)-1]
	if p.Near(last.Pos, geom.Epsilon) {
		if len(f.pts) > 1 {
			last.TanIn = tan
		}
		return
	}
	last.Arc = f.curArc
	f.pts = append(f.pts, JoinInfo{
		Pos:    p,
		TanIn:  tan,
		TanOut: tan,
		Dist:   last.Dist + p.Distance(last.Pos),
		Arc:    -1,
	})
}

// valid returns tan when it is usable, else the previous valid tangent.
func (f *flattener) valid(tan geom.Point) geom.Point {
	if tan.IsZero() {
		return f.last
	}
	tan = tan.Normalize()
	f.last = tan
	return tan
}

func (f *flattener) finish(closed bool) Polyline {
	pts := f.pts
	if closed && len(pts) > 1 && pts[len(pts)-1].Pos.Near(pts[0].Pos, geom.Epsilon) {
		end := pts[len(pts)-1]
		pts = pts[:len(pts)-1]
		pts[0].TanIn = end.TanIn
		closed = len(pts) > 2
		if !closed {
			// A closed contour that folds onto a single segment is stroked
			// as an open one.
			pts = append(pts, end)
		}
	}
	if len(pts) < 2 {
		return Polyline{}
	}

	length := pts[len(pts)-1].Dist
	if closed {
		length += pts[len(pts)-1].Pos.Distance(pts[0].Pos)
	}

	for i := range pts {
		fixTangents(pts, i)
		p := &pts[i]
		switch {
		case !closed && i == 0:
			p.Kind = CapStart
			p.TanIn = p.TanOut
		case !closed && i == len(pts)-1:
			p.Kind = CapEnd
			p.TanOut = p.TanIn
		case p.TanIn.Dot(p.TanOut) >= smoothCos:
			p.Kind = Smooth
		default:
			p.Kind = Joint
		}
	}
	return Polyline{Points: pts, Closed: closed, Length: length}
}

// fixTangents replaces tangents that never became valid with chord
// directions of the neighbouring edges.
func fixTangents(pts []JoinInfo, i int) {
	p := &pts[i]
	n := len(pts)
	if p.TanOut.IsZero() {
		p.TanOut = pts[(i+1)%n].Pos.Sub(p.Pos).Normalize()
	}
	if p.TanIn.IsZero() {
		p.TanIn = p.Pos.Sub(pts[(i+n-1)%n].Pos).Normalize()
		if i == 0 {
			p.TanIn = p.TanOut
		}
	}
}

// Outline is a closed contour for filling: Points[i] -> Points[i+1] (and the
// implicit closing edge back to Points[0]) with EdgeArc[i] the filled arc the
// edge approximates.
type Outline struct {
	Points  []geom.Point
	EdgeArc []int
}

// Outlines flattens all sub-paths as closed contours for filling and returns
// them with the filled arcs they reference. Implicit closing edges become
// straight arcs.
func Outlines(subpaths []SubPath) ([]Outline, []FilledArc) {
	var arcs []FilledArc
	var outlines []Outline
	for _, sp := range subpaths {
		pl := Flatten(sp, &arcs)
		if len(pl.Points) < 3 {
			continue
		}
		o := Outline{
			Points:  make([]geom.Point, len(pl.Points)),
			EdgeArc: make([]int, len(pl.Points)),
		}
		for i, p := range pl.Points {
			o.Points[i] = p.Pos
			o.EdgeArc[i] = p.Arc
		}
		last := len(o.Points) - 1
		switch {
		case pl.Closed:
		case o.Points[last].Near(o.Points[0], geom.Epsilon):
			o.Points = o.Points[:last]
			o.EdgeArc = o.EdgeArc[:last]
		default:
			arcs = append(arcs, FilledArc{Kind: ArcLine, From: o.Points[last], To: o.Points[0]})
			o.EdgeArc[last] = len(arcs) - 1
		}
		if len(o.Points) < 3 {
			continue
		}
		outlines = append(outlines, o)
	}
	return outlines, arcs
}
