package tess

import (
	"math"
	"sort"

	"github.com/gogpu/vecmesh/internal/geom"
)

// sweepEpsilon merges event rows closer than this.
const sweepEpsilon = 1e-9

// Sweep decomposes the plane into horizontal slabs bounded by every vertex
// and every edge intersection. Inside a slab no two edges cross, so sorting
// the spanning edges by x and accumulating their winding yields the inside
// spans as trapezoids.
//
// It handles self-intersecting and overlapping contours under both winding
// rules and produces T-junctions between slabs.
type Sweep struct{}

// sweepEdge is an edge oriented top to bottom with its original direction.
type sweepEdge struct {
	a, b geom.Point // a.Y < b.Y
	dir  int        // +1 when the contour runs downward
}

func (e sweepEdge) xAt(y float64) float64 {
	switch {
	case y <= e.a.Y:
		return e.a.X
	case y >= e.b.Y:
		return e.b.X
	}
	return e.a.X + (y-e.a.Y)*(e.b.X-e.a.X)/(e.b.Y-e.a.Y)
}

// span is one edge clipped to the current slab.
type span struct {
	x0, xm, x1 float64
	dir        int
}

// Tessellate implements Tessellator.
func (Sweep) Tessellate(contours [][]geom.Point, rule WindingRule) (Result, error) {
	if usableContours(contours) == 0 {
		return Result{}, ErrTooFewPoints
	}

	var edges []sweepEdge
	var ys []float64
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		for i, a := range c {
			if !validPoint(a) {
				return Result{}, ErrInvalidPoint
			}
			b := c[(i+1)%len(c)]
			ys = append(ys, a.Y)
			if math.Abs(a.Y-b.Y) < sweepEpsilon {
				continue
			}
			dir := 1
			if a.Y > b.Y {
				a, b = b, a
				dir = -1
			}
			edges = append(edges, sweepEdge{a: a, b: b, dir: dir})
		}
	}
	ys = append(ys, intersectionRows(edges)...)
	ys = uniqueRows(ys)

	bld := newBuilder()
	var active []span
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		ym := (y0 + y1) / 2

		active = active[:0]
		for _, e := range edges {
			if e.a.Y <= ym && e.b.Y >= ym {
				active = append(active, span{x0: e.xAt(y0), xm: e.xAt(ym), x1: e.xAt(y1), dir: e.dir})
			}
		}
		sort.Slice(active, func(i, j int) bool { return active[i].xm < active[j].xm })

		w := 0
		inside := false
		var left span
		for _, s := range active {
			w += s.dir
			in := rule.Inside(w)
			switch {
			case in && !inside:
				left = s
			case !in && inside:
				bld.trapezoid(left, s, y0, y1)
			}
			inside = in
		}
	}

	if len(bld.res.Indices) == 0 {
		return Result{}, ErrEmptyResult
	}
	return bld.res, nil
}

// intersectionRows returns the y of every proper crossing between edges.
func intersectionRows(edges []sweepEdge) []float64 {
	var ys []float64
	for i := range edges {
		ei := edges[i]
		for j := i + 1; j < len(edges); j++ {
			ej := edges[j]
			if ej.a.Y >= ei.b.Y || ej.b.Y <= ei.a.Y {
				continue
			}
			if math.Max(ei.a.X, ei.b.X) < math.Min(ej.a.X, ej.b.X) ||
				math.Max(ej.a.X, ej.b.X) < math.Min(ei.a.X, ei.b.X) {
				continue
			}
			if p, ok := geom.SegmentIntersection(ei.a, ei.b, ej.a, ej.b); ok {
				ys = append(ys, p.Y)
			}
		}
	}
	return ys
}

// uniqueRows sorts ys and drops rows closer than sweepEpsilon.
func uniqueRows(ys []float64) []float64 {
	sort.Float64s(ys)
	out := ys[:0]
	for _, y := range ys {
		if len(out) > 0 && y-out[len(out)-1] < sweepEpsilon {
			continue
		}
		out = append(out, y)
	}
	return out
}

// builder deduplicates vertices while emitting triangles.
type builder struct {
	res   Result
	index map[geom.Point]int
}

func newBuilder() *builder {
	return &builder{index: make(map[geom.Point]int)}
}

func (b *builder) vertex(p geom.Point) int {
	if i, ok := b.index[p]; ok {
		return i
	}
	i := len(b.res.Vertices)
	b.res.Vertices = append(b.res.Vertices, p)
	b.index[p] = i
	return i
}

// triangle emits p0, p1, p2 unless it has no area.
func (b *builder) triangle(p0, p1, p2 geom.Point) {
	if math.Abs(p1.Sub(p0).Cross(p2.Sub(p0))) < sweepEpsilon {
		return
	}
	b.res.Indices = append(b.res.Indices, b.vertex(p0), b.vertex(p1), b.vertex(p2))
}

// trapezoid emits the region between spans l and r over [y0, y1]. The
// triangles are clockwise on screen.
func (b *builder) trapezoid(l, r span, y0, y1 float64) {
	p0 := geom.Pt(l.x0, y0)
	p1 := geom.Pt(r.x0, y0)
	p2 := geom.Pt(r.x1, y1)
	p3 := geom.Pt(l.x1, y1)
	switch {
	case p1.X-p0.X < sweepEpsilon:
		b.triangle(p0, p2, p3)
	case p2.X-p3.X < sweepEpsilon:
		b.triangle(p0, p1, p2)
	default:
		b.triangle(p0, p1, p2)
		b.triangle(p0, p2, p3)
	}
}
