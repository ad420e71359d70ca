package fill

import (
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/internal/tess"
)

// ArcEpsilon is the distance within which a triangle vertex counts as lying
// on an outline edge.
const ArcEpsilon = 1e-3

// outsideOffset is how far beyond a candidate edge the winding rule is
// sampled.
const outsideOffset = 1e-2

// outlineEdge is one flattened edge of an outline with its filled arc.
type outlineEdge struct {
	a, b geom.Point
	arc  int
}

type cell struct{ x, y int }

// edgeMap finds the filled arc a tessellated edge lies on. Outline edges are
// bucketed into a uniform grid so lookups only test nearby edges.
type edgeMap struct {
	edges    []outlineEdge
	grid     map[cell][]int
	origin   geom.Point
	size     float64
	contours [][]geom.Point
	rule     tess.WindingRule
}

func newEdgeMap(outlines []path.Outline, contours [][]geom.Point, rule tess.WindingRule) *edgeMap {
	m := &edgeMap{grid: make(map[cell][]int), contours: contours, rule: rule}
	bounds := geom.EmptyRect()
	for _, o := range outlines {
		n := len(o.Points)
		for i := range n {
			e := outlineEdge{a: o.Points[i], b: o.Points[(i+1)%n], arc: o.EdgeArc[i]}
			m.edges = append(m.edges, e)
			bounds = bounds.Extend(e.a)
		}
	}
	if len(m.edges) == 0 {
		return m
	}

	m.origin = bounds.Min
	m.size = math.Max(bounds.Width(), bounds.Height()) / math.Max(1, math.Sqrt(float64(len(m.edges))))
	if m.size < ArcEpsilon {
		m.size = ArcEpsilon
	}
	for i, e := range m.edges {
		c0 := m.cellOf(geom.Pt(math.Min(e.a.X, e.b.X)-ArcEpsilon, math.Min(e.a.Y, e.b.Y)-ArcEpsilon))
		c1 := m.cellOf(geom.Pt(math.Max(e.a.X, e.b.X)+ArcEpsilon, math.Max(e.a.Y, e.b.Y)+ArcEpsilon))
		for y := c0.y; y <= c1.y; y++ {
			for x := c0.x; x <= c1.x; x++ {
				k := cell{x, y}
				m.grid[k] = append(m.grid[k], i)
			}
		}
	}
	return m
}

func (m *edgeMap) cellOf(p geom.Point) cell {
	return cell{
		x: int(math.Floor((p.X - m.origin.X) / m.size)),
		y: int(math.Floor((p.Y - m.origin.Y) / m.size)),
	}
}

// lookup returns the filled arc of the boundary edge a-b, or -1 when the
// edge is interior. inward is any point on the triangle side of the edge.
func (m *edgeMap) lookup(a, b, inward geom.Point) int {
	if len(m.edges) == 0 || a.Near(b, geom.Epsilon) {
		return -1
	}
	arc := -1
	for _, i := range m.grid[m.cellOf(a)] {
		e := m.edges[i]
		if geom.SegmentDistance(a, e.a, e.b) <= ArcEpsilon && geom.SegmentDistance(b, e.a, e.b) <= ArcEpsilon {
			arc = e.arc
			break
		}
	}
	if arc < 0 {
		return -1
	}

	out := outwardNormal(a, b, inward)
	beyond := a.Lerp(b, 0.5).Add(out.Mul(outsideOffset))
	if m.rule.Inside(tess.Winding(m.contours, beyond)) {
		return -1
	}
	return arc
}

// outwardNormal returns the unit normal of a-b pointing away from inward.
func outwardNormal(a, b, inward geom.Point) geom.Point {
	n := b.Sub(a).Perp().Normalize()
	if n.Dot(inward.Sub(a)) > 0 {
		n = n.Neg()
	}
	return n
}
