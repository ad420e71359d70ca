// Package fill tessellates closed outlines into antialiased triangle meshes.
//
// The outlines are first triangulated roughly by a tess.Tessellator. Every
// triangle edge lying on the outline is then mapped back to the exact arc it
// approximates, and the triangles along the boundary carry that arc as a
// distance field so curved edges stay smooth at any chord tolerance.
package fill

import (
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/internal/tess"
	"github.com/gogpu/vecmesh/mesh"
)

// Options configures a fill.
type Options struct {
	Rule        tess.WindingRule
	Tessellator tess.Tessellator // tess.Default() when nil
	Color       [4]float32       // linear premultiplied tint
}

// Result is the mesh of one Fill call.
type Result struct {
	Mesh      mesh.Data
	Triangles int // triangles produced by the tessellator
	Boundary  int // antialiased boundary edges
}

// Tessellate fills the sub-paths, each implicitly closed. Sub-paths that
// enclose no area are skipped; when none remain the result is empty. Errors
// from the tessellator are returned unchanged and leave the result empty.
func Tessellate(subpaths []path.SubPath, opts Options) (Result, error) {
	outlines, arcs := path.Outlines(subpaths)
	if len(outlines) == 0 {
		return Result{}, nil
	}
	contours := make([][]geom.Point, len(outlines))
	for i, o := range outlines {
		contours[i] = o.Points
	}

	ts := opts.Tessellator
	if ts == nil {
		ts = tess.Default()
	}
	rough, err := ts.Tessellate(contours, opts.Rule)
	if err != nil {
		return Result{}, err
	}

	b := &builder{
		arcs:  arcs,
		edges: newEdgeMap(outlines, contours, opts.Rule),
		color: opts.Color,
		solid: make(map[int]uint32),
	}
	for i := range rough.TriangleCount() {
		b.triangle(rough, i)
	}

	data, err := b.mb.Data()
	if err != nil {
		return Result{}, err
	}
	return Result{Mesh: data, Triangles: rough.TriangleCount(), Boundary: b.boundary}, nil
}

type builder struct {
	arcs     []path.FilledArc
	edges    *edgeMap
	color    [4]float32
	mb       mesh.Builder
	solid    map[int]uint32 // rough vertex -> shared solid vertex
	boundary int
}

func (b *builder) vertex(p geom.Point, flags float32, params [4]float32) uint32 {
	return b.mb.Vertex(mesh.Vertex{
		Position: [3]float32{float32(p.X), float32(p.Y), mesh.NearZ},
		Tint:     b.color,
		Flags:    flags,
		Circle:   params,
	})
}

func (b *builder) solidVertex(rough tess.Result, idx int) uint32 {
	if v, ok := b.solid[idx]; ok {
		return v
	}
	v := b.vertex(rough.Vertices[idx], mesh.FlagSolid, [4]float32{})
	b.solid[idx] = v
	return v
}

// triangle emits rough triangle i, splitting it at its centroid when more
// than one of its edges lies on the boundary.
func (b *builder) triangle(rough tess.Result, i int) {
	idx := [3]int{rough.Indices[3*i], rough.Indices[3*i+1], rough.Indices[3*i+2]}
	tri := rough.Triangle(i)
	c := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3)

	var arc [3]int
	n := 0
	for k := range 3 {
		arc[k] = b.edges.lookup(tri[k], tri[(k+1)%3], c)
		if arc[k] >= 0 {
			n++
		}
	}

	switch n {
	case 0:
		b.mb.Triangle(b.solidVertex(rough, idx[0]), b.solidVertex(rough, idx[1]), b.solidVertex(rough, idx[2]))
	case 1:
		for k := range 3 {
			if arc[k] >= 0 {
				b.antialiased(tri[k], tri[(k+1)%3], tri[(k+2)%3], arc[k])
			}
		}
	default:
		for k := range 3 {
			p0, p1 := tri[k], tri[(k+1)%3]
			if arc[k] >= 0 {
				b.antialiased(p0, p1, c, arc[k])
				continue
			}
			v0 := b.vertex(c, mesh.FlagSolid, [4]float32{})
			v1 := b.vertex(p0, mesh.FlagSolid, [4]float32{})
			v2 := b.vertex(p1, mesh.FlagSolid, [4]float32{})
			b.mb.Triangle(v0, v1, v2)
		}
	}
}

// antialiased emits triangle a-b-apex for boundary edge a-b with the
// distance field of its filled arc, plus the outward fringe of that edge.
// A circle field is only kept in a band along the edge where it matches the
// outline; the rest of the triangle is solid.
func (b *builder) antialiased(a, c, apex geom.Point, arcIdx int) {
	b.boundary++
	arc := b.arcs[arcIdx]
	out := outwardNormal(a, c, apex)
	mid := a.Lerp(c, 0.5)

	var flags float32
	var params [4]float32
	width := mesh.EdgeBuffer
	band := math.Inf(1)
	switch arc.Kind {
	case path.ArcCircle:
		half := a.Distance(c) / 2
		h := math.Sqrt(math.Max(0, arc.Radius*arc.Radius-half*half))
		sagitta := arc.Radius - h
		side := float32(1)
		if out.Dot(arc.Center.Sub(mid)) > 0 {
			// the circle lies outside, the arc carves a concavity
			side = -1
			band = sagitta + mesh.EdgeBuffer
		} else {
			width += sagitta
			band = math.Min(mesh.EdgeBuffer, 2*h)
		}
		flags = mesh.FlagCircle
		params = [4]float32{float32(arc.Center.X), float32(arc.Center.Y), float32(arc.Radius), side}
	default:
		n := arc.To.Sub(arc.From).Perp().Normalize()
		if n.IsZero() {
			n = out
		} else if n.Dot(out) < 0 {
			n = n.Neg()
		}
		flags = mesh.FlagLine
		params = [4]float32{float32(n.X), float32(n.Y), float32(n.Dot(arc.From)), 0}
	}

	if math.IsInf(band, 1) {
		b.polygon([]geom.Point{a, c, apex}, flags, params)
	} else {
		b.banded(a, c, apex, out, band, flags, params)
	}

	push := out.Mul(width)
	v0 := b.vertex(a, flags, params)
	v1 := b.vertex(c, flags, params)
	f0 := b.vertex(c.Add(push), flags, params)
	f1 := b.vertex(a.Add(push), flags, params)
	b.mb.Quad(v0, v1, f0, f1)
}

// banded splits triangle a-c-apex into the part within depth of edge a-c
// and over its extent, which gets the field, and solid pieces for the rest.
func (b *builder) banded(a, c, apex, out geom.Point, depth float64, flags float32, params [4]float32) {
	tri := []geom.Point{a, c, apex}
	u := c.Sub(a)
	l := u.Length()
	if l < geom.Epsilon {
		b.polygon(tri, flags, params)
		return
	}
	u = u.Mul(1 / l)

	beyond := func(p geom.Point) float64 { return -p.Sub(a).Dot(out) - depth }
	before := func(p geom.Point) float64 { return p.Sub(a).Dot(u) }
	after := func(p geom.Point) float64 { return l - p.Sub(a).Dot(u) }

	strip := clip(tri, beyond)
	b.polygon(clip(clip(strip, neg(before)), neg(after)), flags, params)
	b.polygon(clip(strip, before), mesh.FlagSolid, [4]float32{})
	b.polygon(clip(strip, after), mesh.FlagSolid, [4]float32{})
	b.polygon(clip(tri, neg(beyond)), mesh.FlagSolid, [4]float32{})
}

func neg(f func(geom.Point) float64) func(geom.Point) float64 {
	return func(p geom.Point) float64 { return -f(p) }
}

// polygon emits a convex polygon as a fan.
func (b *builder) polygon(pts []geom.Point, flags float32, params [4]float32) {
	if len(pts) < 3 {
		return
	}
	v0 := b.vertex(pts[0], flags, params)
	prev := b.vertex(pts[1], flags, params)
	for _, p := range pts[2:] {
		v := b.vertex(p, flags, params)
		b.mb.Triangle(v0, prev, v)
		prev = v
	}
}

// clip returns the part of the convex polygon pts where f is not positive.
// f must be affine.
func clip(pts []geom.Point, f func(geom.Point) float64) []geom.Point {
	var res []geom.Point
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		fp, fq := f(p), f(q)
		if fp <= 0 {
			res = append(res, p)
		}
		if (fp < 0 && fq > 0) || (fp > 0 && fq < 0) {
			res = append(res, p.Lerp(q, fp/(fp-fq)))
		}
	}
	return res
}
