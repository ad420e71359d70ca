package stroke

import (
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/mesh"
)

// joint emits the strip vertices at a tangent discontinuity and, when emit
// is set, the join geometry filling the outer side of the turn. in ends the
// incoming strip, out starts the outgoing one. When both adjacent segments
// are long enough the two inner vertices are welded at the intersection of
// the inner offset lines; otherwise each strip keeps its own inner corner
// and the strips overlap on the inner side.
func (t *tessellator) joint(j path.JoinInfo, lenIn, lenOut, dist float64, emit bool) (in, out pair) {
	nIn := j.TanIn.Perp()
	nOut := j.TanOut.Perp()
	turn := j.Turn()
	s := 1.0 // +1 when the inner side is the right side
	if turn < 0 {
		s = -1
	}
	half := math.Abs(turn) / 2

	oi := t.stripVertex(j.Pos.Add(nIn.Mul(-s*t.ext)), -s*t.ext, dist)
	oo := t.stripVertex(j.Pos.Add(nOut.Mul(-s*t.ext)), -s*t.ext, dist)
	var ii, io uint32
	q, welded := j.Pos, false
	// half of each segment, so the welds at both of its ends never cross
	if t.ext*math.Tan(half) <= t.style.WeldThreshold*math.Min(lenIn, lenOut)/2 {
		m := nIn.Add(nOut).Normalize()
		q = j.Pos.Add(m.Mul(s * t.ext / math.Cos(half)))
		welded = true
		ii = t.stripVertex(q, s*t.ext, dist)
		io = ii
	} else {
		ii = t.stripVertex(j.Pos.Add(nIn.Mul(s*t.ext)), s*t.ext, dist)
		io = t.stripVertex(j.Pos.Add(nOut.Mul(s*t.ext)), s*t.ext, dist)
	}
	if s > 0 {
		in = pair{left: oi, right: ii}
		out = pair{left: oo, right: io}
	} else {
		in = pair{left: ii, right: oi}
		out = pair{left: io, right: oo}
	}

	if emit {
		if welded {
			t.weldGap(j.Pos, q, nIn, s, dist)
			t.weldGap(j.Pos, q, nOut, s, dist)
		}
		t.join(j, s, turn, dist)
		t.joins++
	}
	return in, out
}

// weldGap covers the part of a strip cut off by welding: the triangle
// between the weld point q, the join point p and the outer corner at p. n
// is the right normal of the strip there.
func (t *tessellator) weldGap(p, q, n geom.Point, s, dist float64) {
	a := t.stripVertex(q, s*t.ext, dist)
	b := t.stripVertex(p.Add(n.Mul(-s*t.ext)), -s*t.ext, dist)
	c := t.stripVertex(p, 0, dist)
	t.b.Triangle(a, b, c)
}

// join emits the outer-side geometry of a joint as a fan around the join
// point.
func (t *tessellator) join(j path.JoinInfo, s, turn, dist float64) {
	p := j.Pos
	outIn := j.TanIn.Perp().Mul(-s)   // outward normal of the incoming edge
	outOut := j.TanOut.Perp().Mul(-s) // outward normal of the outgoing edge
	half := math.Abs(turn) / 2

	switch t.style.Join {
	case LineJoinRound:
		t.roundFan(p, outIn.Angle(), turn, dist)
		return
	case LineJoinMiter:
		if c := math.Cos(half); c > geom.Epsilon && 1/c <= t.style.MiterLimit {
			t.miter(p, outIn, outOut, c, dist)
			return
		}
	}
	t.bevel(p, outIn, outOut, j.TanIn, dist)
}

// lineParams returns distance-field parameters of the line through a with
// outward normal n.
func lineParams(n, a geom.Point) [4]float32 {
	return [4]float32{float32(n.X), float32(n.Y), float32(n.Dot(a)), 0}
}

// bevel cuts the outer corner flat. The fan between the strip edges carries
// the cut; the fringe next to each strip edge keeps the field of that edge.
func (t *tessellator) bevel(p, outIn, outOut, tanIn geom.Point, dist float64) {
	aIn := p.Add(outIn.Mul(t.hw))
	aOut := p.Add(outOut.Mul(t.hw))
	nb := outIn.Add(outOut).Normalize()
	if nb.IsZero() {
		// full reversal, the bevel faces forward
		nb = tanIn
	}
	push := nb.Mul(EdgeBuffer)
	cIn := aIn.Add(push)
	cOut := aOut.Add(push)

	t.fringe(aIn, p.Add(outIn.Mul(t.ext)), cIn, lineParams(outIn, aIn), dist)

	params := lineParams(nb, aIn)
	hub := t.vertex(p, dist, mesh.FlagLine, params)
	v0 := t.vertex(aIn, dist, mesh.FlagLine, params)
	v1 := t.vertex(cIn, dist, mesh.FlagLine, params)
	v2 := t.vertex(cOut, dist, mesh.FlagLine, params)
	v3 := t.vertex(aOut, dist, mesh.FlagLine, params)
	t.b.Triangle(hub, v0, v1)
	t.b.Triangle(hub, v1, v2)
	t.b.Triangle(hub, v2, v3)

	t.fringe(aOut, cOut, p.Add(outOut.Mul(t.ext)), lineParams(outOut, aOut), dist)
}

// fringe emits one triangle of edge-buffer geometry with the given field.
func (t *tessellator) fringe(a, b, c geom.Point, params [4]float32, dist float64) {
	t.b.Triangle(
		t.vertex(a, dist, mesh.FlagLine, params),
		t.vertex(b, dist, mesh.FlagLine, params),
		t.vertex(c, dist, mesh.FlagLine, params),
	)
}

func (t *tessellator) miter(p, outIn, outOut geom.Point, cosHalf, dist float64) {
	m := outIn.Add(outOut).Normalize()
	aIn := p.Add(outIn.Mul(t.hw))
	aOut := p.Add(outOut.Mul(t.hw))
	tip := p.Add(m.Mul(t.ext / cosHalf))

	pIn := lineParams(outIn, aIn)
	h0 := t.vertex(p, dist, mesh.FlagLine, pIn)
	v0 := t.vertex(p.Add(outIn.Mul(t.ext)), dist, mesh.FlagLine, pIn)
	v1 := t.vertex(tip, dist, mesh.FlagLine, pIn)
	t.b.Triangle(h0, v0, v1)

	pOut := lineParams(outOut, aOut)
	h1 := t.vertex(p, dist, mesh.FlagLine, pOut)
	v2 := t.vertex(tip, dist, mesh.FlagLine, pOut)
	v3 := t.vertex(p.Add(outOut.Mul(t.ext)), dist, mesh.FlagLine, pOut)
	t.b.Triangle(h1, v2, v3)
}

// roundFan emits a fan from center over the arc of radius ext around it,
// starting at angle a0 and sweeping sweep radians.
func (t *tessellator) roundFan(center geom.Point, a0, sweep, dist float64) {
	params := [4]float32{float32(center.X), float32(center.Y), float32(t.hw), 1}
	h := t.vertex(center, dist, mesh.FlagCircle, params)
	pts := geom.FlattenArc(center, t.ext, a0, sweep)
	prev := t.vertex(pts[0], dist, mesh.FlagCircle, params)
	for _, pt := range pts[1:] {
		v := t.vertex(pt, dist, mesh.FlagCircle, params)
		t.b.Triangle(h, prev, v)
		prev = v
	}
}

// cap closes a strip end at p. tan is the direction of travel there; start
// tells whether p begins the polyline.
func (t *tessellator) cap(p, tan geom.Point, dist float64, start bool) {
	t.caps++
	n := tan.Perp()
	switch t.style.Cap {
	case LineCapRound:
		// rotating n by +π/2 yields -tan, by -π/2 yields tan
		sweep := -math.Pi
		if start {
			sweep = math.Pi
		}
		t.roundFan(p, n.Angle(), sweep, dist)
	case LineCapSquare:
		d := tan
		if start {
			d = tan.Neg()
		}
		reach := t.hw + EdgeBuffer
		hw, ext := float32(t.hw), float32(t.ext)
		far := float32(reach)
		a := t.vertex(p.Add(n.Mul(t.ext)), dist, mesh.FlagLateral, [4]float32{ext, 0, hw, hw})
		b := t.vertex(p.Sub(n.Mul(t.ext)), dist, mesh.FlagLateral, [4]float32{-ext, 0, hw, hw})
		c := t.vertex(p.Sub(n.Mul(t.ext)).Add(d.Mul(reach)), dist, mesh.FlagLateral, [4]float32{-ext, far, hw, hw})
		e := t.vertex(p.Add(n.Mul(t.ext)).Add(d.Mul(reach)), dist, mesh.FlagLateral, [4]float32{ext, far, hw, hw})
		t.b.Quad(a, b, c, e)
	}
}
