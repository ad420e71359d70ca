package stroke

import (
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/mesh"
)

// EdgeBuffer is the outward inflation of every outer vertex, in pixels.
const EdgeBuffer = mesh.EdgeBuffer

// ColorFunc returns the linear premultiplied tint at a distance along the
// stroked path.
type ColorFunc func(dist float64) [4]float32

var white = [4]float32{1, 1, 1, 1}

// Result is the mesh of one Stroke call.
type Result struct {
	Mesh  mesh.Data
	Joins int // join regions emitted
	Caps  int // caps emitted, butt caps included
}

// Tessellate strokes the polylines into a single mesh. Distances for color
// and the u texture coordinate accumulate over all polylines in order. A
// non-positive width yields an empty result.
func Tessellate(lines []path.Polyline, style Stroke, color ColorFunc) (Result, error) {
	if style.Width <= 0 || math.IsNaN(style.Width) || math.IsInf(style.Width, 0) {
		return Result{}, nil
	}
	if color == nil {
		color = func(float64) [4]float32 { return white }
	}

	t := &tessellator{
		style: style.sanitized(),
		color: color,
		hw:    style.Width / 2,
		ext:   style.Width/2 + EdgeBuffer,
	}
	for _, pl := range lines {
		t.total += pl.Length
	}
	for _, pl := range lines {
		t.polyline(pl)
		t.offset += pl.Length
	}

	data, err := t.b.Data()
	if err != nil {
		return Result{}, err
	}
	return Result{Mesh: data, Joins: t.joins, Caps: t.caps}, nil
}

// tessellator holds the state of one Tessellate call.
type tessellator struct {
	style  Stroke
	color  ColorFunc
	hw     float64 // half line width
	ext    float64 // half line width plus EdgeBuffer
	total  float64 // length of all polylines
	offset float64 // length of the polylines already stroked
	b      mesh.Builder
	joins  int
	caps   int
}

// pair is the two strip vertices at a point, left and right of the
// direction of travel.
type pair struct {
	left, right uint32
}

func (t *tessellator) vertex(p geom.Point, dist float64, flags float32, params [4]float32) uint32 {
	u := 0.0
	if t.total > 0 {
		u = dist / t.total
	}
	return t.b.Vertex(mesh.Vertex{
		Position: [3]float32{float32(p.X), float32(p.Y), mesh.NearZ},
		Tint:     t.color(dist),
		UV:       [2]float32{float32(u), 0},
		Flags:    flags,
		Circle:   params,
	})
}

// stripVertex emits a strip vertex with its signed lateral offset.
func (t *tessellator) stripVertex(p geom.Point, lateral, dist float64) uint32 {
	return t.vertex(p, dist, mesh.FlagLateral, [4]float32{float32(lateral), 0, float32(t.hw), -1})
}

// pair emits the strip vertices at p for normal n.
func (t *tessellator) pair(p, n geom.Point, dist float64) pair {
	return pair{
		left:  t.stripVertex(p.Sub(n.Mul(t.ext)), -t.ext, dist),
		right: t.stripVertex(p.Add(n.Mul(t.ext)), t.ext, dist),
	}
}

// polyline strokes one flattened sub-path.
func (t *tessellator) polyline(pl path.Polyline) {
	pts := pl.Points
	n := len(pts)
	if n < 2 {
		return
	}

	count := n
	if pl.Closed {
		// revisit the first point to close the strip
		count = n + 1
	}

	var prev pair
	for k := range count {
		i := k % n
		j := pts[i]
		dist := t.offset + j.Dist
		wrap := k == n
		if wrap {
			dist = t.offset + pl.Length
		}

		var in, out pair
		switch j.Kind {
		case path.CapStart:
			out = t.pair(j.Pos, j.TanOut.Perp(), dist)
			t.cap(j.Pos, j.TanOut, dist, true)
		case path.CapEnd:
			in = t.pair(j.Pos, j.TanIn.Perp(), dist)
			t.cap(j.Pos, j.TanIn, dist, false)
		case path.Smooth:
			tan := j.TanIn.Add(j.TanOut).Normalize()
			if tan.IsZero() {
				tan = j.TanOut
			}
			in = t.pair(j.Pos, tan.Perp(), dist)
			out = in
		default:
			lenIn := j.Pos.Distance(pts[(i+n-1)%n].Pos)
			lenOut := pts[(i+1)%n].Pos.Distance(j.Pos)
			in, out = t.joint(j, lenIn, lenOut, dist, !wrap)
		}

		if k > 0 {
			t.b.Quad(prev.left, prev.right, in.right, in.left)
		}
		prev = out
	}
}
