package path

import (
	"github.com/gogpu/vecmesh/internal/geom"
)

// SegmentKind identifies the primitive stored in a Segment.
type SegmentKind uint8

const (
	// SegLine is a straight line from From to To.
	SegLine SegmentKind = iota
	// SegArc is a circular arc around Center starting at angle A0.
	SegArc
	// SegQuad is a quadratic Bezier with control C1.
	SegQuad
	// SegCubic is a cubic Bezier with controls C1 and C2.
	SegCubic
)

// Segment is a resolved drawing primitive with explicit start and end
// points. ArcTo and implicit connecting lines have already been expanded.
type Segment struct {
	Kind     SegmentKind
	From, To geom.Point
	C1, C2   geom.Point
	Center   geom.Point
	Radius   float64
	A0       float64
	Sweep    float64
}

// SubPath is one contiguous contour.
type SubPath struct {
	Start    geom.Point
	Segments []Segment
	Closed   bool
}

// resolver tracks the current point while expanding entries.
type resolver struct {
	out    []SubPath
	cur    *SubPath
	point  geom.Point
	hasCur bool
}

// Resolve expands recorded entries into sub-paths of explicit segments.
//
// It follows the usual canvas conventions: a drawing command without a
// current point starts a new sub-path, Arc connects to the current point with
// a straight line, a degenerate ArcTo becomes a LineTo, and after Close the
// current point is the start of the closed sub-path.
func Resolve(entries []Entry) []SubPath {
	r := &resolver{}
	for _, e := range entries {
		switch e.Kind {
		case MoveTo:
			r.moveTo(e.P0)
		case LineTo:
			if !r.hasCur {
				r.moveTo(e.P0)
				continue
			}
			r.lineTo(e.P0)
		case ArcTo:
			r.arcTo(e.P0, e.P1, e.Radius)
		case Arc:
			r.arc(e.P0, e.Radius, e.A0, e.A1, e.Dir)
		case BezierTo:
			if !r.hasCur {
				r.moveTo(e.P0)
			}
			r.append(Segment{Kind: SegCubic, From: r.point, C1: e.P0, C2: e.P1, To: e.P2})
		case QuadTo:
			if !r.hasCur {
				r.moveTo(e.P0)
			}
			r.append(Segment{Kind: SegQuad, From: r.point, C1: e.P0, To: e.P1})
		case Close:
			r.close()
		}
	}
	r.flush()
	return r.out
}

func (r *resolver) flush() {
	if r.cur != nil && len(r.cur.Segments) > 0 {
		r.out = append(r.out, *r.cur)
	}
	r.cur = nil
}

func (r *resolver) moveTo(p geom.Point) {
	r.flush()
	r.cur = &SubPath{Start: p}
	r.point = p
	r.hasCur = true
}

func (r *resolver) append(s Segment) {
	if r.cur == nil {
		r.cur = &SubPath{Start: s.From}
	}
	r.cur.Segments = append(r.cur.Segments, s)
	r.point = s.To
	r.hasCur = true
}

func (r *resolver) lineTo(p geom.Point) {
	r.append(Segment{Kind: SegLine, From: r.point, To: p})
}

func (r *resolver) arcTo(p1, p2 geom.Point, radius float64) {
	if !r.hasCur {
		r.moveTo(p1)
		return
	}
	params, ok := geom.ArcTo(r.point, p1, p2, radius)
	if !ok {
		r.lineTo(p1)
		return
	}
	sweep := geom.ArcSweep(params.A0, params.A1, params.Dir)
	start := geom.Polar(params.Center, params.Radius, params.A0)
	if !start.Near(r.point, geom.Epsilon) {
		r.lineTo(start)
	}
	r.appendArc(params.Center, params.Radius, params.A0, sweep)
}

func (r *resolver) arc(center geom.Point, radius, a0, a1 float64, dir geom.Direction) {
	sweep := geom.ArcSweep(a0, a1, dir)
	if radius <= 0 || sweep == 0 {
		return
	}
	start := geom.Polar(center, radius, a0)
	switch {
	case !r.hasCur:
		r.moveTo(start)
	case !start.Near(r.point, geom.Epsilon):
		r.lineTo(start)
	}
	r.appendArc(center, radius, a0, sweep)
}

func (r *resolver) appendArc(center geom.Point, radius, a0, sweep float64) {
	r.append(Segment{
		Kind:   SegArc,
		From:   r.point,
		To:     geom.Polar(center, radius, a0+sweep),
		Center: center,
		Radius: radius,
		A0:     a0,
		Sweep:  sweep,
	})
}

func (r *resolver) close() {
	if r.cur == nil || len(r.cur.Segments) == 0 {
		return
	}
	start := r.cur.Start
	if !r.point.Near(start, geom.Epsilon) {
		r.lineTo(start)
	}
	r.cur.Closed = true
	r.flush()
	r.point = start
}
