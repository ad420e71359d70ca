package fill

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/vecmesh/internal/geom"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/internal/tess"
	"github.com/gogpu/vecmesh/mesh"
)

func pos(v mesh.Vertex) geom.Point {
	return geom.Pt(float64(v.Position[0]), float64(v.Position[1]))
}

// covered reports whether p lies in a triangle whose distance field is not
// positive at p.
func covered(d mesh.Data, p geom.Point) bool {
	for i := 0; i+2 < len(d.Indices); i += 3 {
		v0 := d.Vertices[d.Indices[i]]
		a, b, c := pos(v0), pos(d.Vertices[d.Indices[i+1]]), pos(d.Vertices[d.Indices[i+2]])
		d0 := b.Sub(a).Cross(p.Sub(a))
		d1 := c.Sub(b).Cross(p.Sub(b))
		d2 := a.Sub(c).Cross(p.Sub(c))
		hasNeg := d0 < -1e-9 || d1 < -1e-9 || d2 < -1e-9
		hasPos := d0 > 1e-9 || d1 > 1e-9 || d2 > 1e-9
		if hasNeg && hasPos {
			continue
		}
		if mesh.SignedDistance(v0, float32(p.X), float32(p.Y)) <= 0 {
			return true
		}
	}
	return false
}

func subpaths(entries ...path.Entry) []path.SubPath {
	return path.Resolve(entries)
}

func circle(center geom.Point, r float64) []path.Entry {
	return []path.Entry{
		path.MoveToEntry(geom.Polar(center, r, 0)),
		path.ArcEntry(center, r, 0, 2*math.Pi, geom.Clockwise),
		path.CloseEntry(),
	}
}

func TestFillSquare(t *testing.T) {
	sps := subpaths(
		path.MoveToEntry(geom.Pt(0, 0)),
		path.LineToEntry(geom.Pt(10, 0)),
		path.LineToEntry(geom.Pt(10, 10)),
		path.LineToEntry(geom.Pt(0, 10)),
		path.CloseEntry(),
	)
	res, err := Tessellate(sps, Options{Color: [4]float32{1, 0, 0, 1}})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if res.Boundary != 4 {
		t.Errorf("Boundary = %d, want 4", res.Boundary)
	}
	for _, v := range res.Mesh.Vertices {
		if v.Flags != mesh.FlagLine && v.Flags != mesh.FlagSolid {
			t.Errorf("unexpected flags %v", v.Flags)
		}
		if v.Tint != [4]float32{1, 0, 0, 1} {
			t.Errorf("tint = %v", v.Tint)
		}
	}

	tests := []struct {
		p    geom.Point
		want bool
	}{
		{geom.Pt(5, 5), true},
		{geom.Pt(0.2, 5), true},
		{geom.Pt(-0.2, 5), false},
		{geom.Pt(5, 10.5), false},
		{geom.Pt(20, 20), false},
	}
	for _, tt := range tests {
		if got := covered(res.Mesh, tt.p); got != tt.want {
			t.Errorf("covered(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	// the fringe reaches one edge buffer beyond the square
	minX, minY, maxX, maxY, _ := mesh.Bounds(res.Mesh.Vertices)
	if minX != -mesh.EdgeBuffer || minY != -mesh.EdgeBuffer || maxX != 10+mesh.EdgeBuffer || maxY != 10+mesh.EdgeBuffer {
		t.Errorf("bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestFillRules(t *testing.T) {
	var entries []path.Entry
	entries = append(entries, circle(geom.Pt(0, 0), 10)...)
	entries = append(entries, circle(geom.Pt(10, 0), 10)...)
	sps := subpaths(entries...)

	tests := []struct {
		rule    tess.WindingRule
		overlap bool
	}{
		{tess.NonZero, true},
		{tess.EvenOdd, false},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			res, err := Tessellate(sps, Options{Rule: tt.rule})
			if err != nil {
				t.Fatalf("Tessellate: %v", err)
			}
			if got := covered(res.Mesh, geom.Pt(5, 0)); got != tt.overlap {
				t.Errorf("overlap covered = %v, want %v", got, tt.overlap)
			}
			if !covered(res.Mesh, geom.Pt(-5, 0)) || !covered(res.Mesh, geom.Pt(15, 0)) {
				t.Error("lobes not covered")
			}
			if covered(res.Mesh, geom.Pt(30, 0)) {
				t.Error("outside covered")
			}
		})
	}
}

// checkCoverage walks a grid over r and compares coverage with the sign of
// the exact distance sd. Points within one pixel of the outline are skipped.
func checkCoverage(t *testing.T, d mesh.Data, sd func(geom.Point) float64, r geom.Rect) {
	t.Helper()
	var holes, spills int
	var first geom.Point
	for y := r.Min.Y + 0.25; y < r.Max.Y; y++ {
		for x := r.Min.X + 0.25; x < r.Max.X; x++ {
			p := geom.Pt(x, y)
			dist := sd(p)
			if math.Abs(dist) <= 1 {
				continue
			}
			got := covered(d, p)
			if got == (dist < 0) {
				continue
			}
			if holes+spills == 0 {
				first = p
			}
			if got {
				spills++
			} else {
				holes++
			}
		}
	}
	if holes+spills > 0 {
		t.Errorf("%d inside points uncovered, %d outside points covered, first at %v", holes, spills, first)
	}
}

func circleDist(p, center geom.Point, r float64) float64 {
	return p.Distance(center) - r
}

func roundedRectDist(p geom.Point, r geom.Rect, radius float64) float64 {
	c := r.Min.Lerp(r.Max, 0.5)
	qx := math.Abs(p.X-c.X) - (r.Width()/2 - radius)
	qy := math.Abs(p.Y-c.Y) - (r.Height()/2 - radius)
	return math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) + math.Min(math.Max(qx, qy), 0) - radius
}

func TestFillRulesCoverage(t *testing.T) {
	ca, cb := geom.Pt(40, 40), geom.Pt(60, 40)
	var entries []path.Entry
	entries = append(entries, circle(ca, 25)...)
	entries = append(entries, circle(cb, 25)...)
	sps := subpaths(entries...)

	tests := []struct {
		rule tess.WindingRule
		sd   func(geom.Point) float64
	}{
		{tess.NonZero, func(p geom.Point) float64 {
			return math.Min(circleDist(p, ca, 25), circleDist(p, cb, 25))
		}},
		{tess.EvenOdd, func(p geom.Point) float64 {
			da, db := circleDist(p, ca, 25), circleDist(p, cb, 25)
			return math.Max(math.Min(da, db), -math.Max(da, db))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			res, err := Tessellate(sps, Options{Rule: tt.rule})
			if err != nil {
				t.Fatalf("Tessellate: %v", err)
			}
			checkCoverage(t, res.Mesh, tt.sd, geom.Rect{Min: geom.Pt(5, 5), Max: geom.Pt(95, 75)})
		})
	}
}

func TestFillRoundedRectCoverage(t *testing.T) {
	box := geom.Rect{Min: geom.Pt(10, 10), Max: geom.Pt(90, 60)}
	const radius = 15
	x0, y0, x1, y1 := box.Min.X, box.Min.Y, box.Max.X, box.Max.Y
	sps := subpaths(
		path.MoveToEntry(geom.Pt(x0+radius, y0)),
		path.ArcToEntry(geom.Pt(x1, y0), geom.Pt(x1, y1), radius),
		path.ArcToEntry(geom.Pt(x1, y1), geom.Pt(x0, y1), radius),
		path.ArcToEntry(geom.Pt(x0, y1), geom.Pt(x0, y0), radius),
		path.ArcToEntry(geom.Pt(x0, y0), geom.Pt(x1, y0), radius),
		path.CloseEntry(),
	)
	sd := func(p geom.Point) float64 { return roundedRectDist(p, box, radius) }

	for _, rule := range []tess.WindingRule{tess.NonZero, tess.EvenOdd} {
		t.Run(rule.String(), func(t *testing.T) {
			res, err := Tessellate(sps, Options{Rule: rule})
			if err != nil {
				t.Fatalf("Tessellate: %v", err)
			}
			checkCoverage(t, res.Mesh, sd, geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(100, 70)})
		})
	}
}

func TestFillCircleUsesExactArc(t *testing.T) {
	res, err := Tessellate(subpaths(circle(geom.Pt(0, 0), 10)...), Options{})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if res.Boundary == 0 {
		t.Fatal("no antialiased edges")
	}
	for _, v := range res.Mesh.Vertices {
		if v.Flags != mesh.FlagCircle {
			continue
		}
		if v.Circle != [4]float32{0, 0, 10, 1} {
			t.Errorf("circle params = %v, want center 0,0 radius 10 side 1", v.Circle)
		}
	}

	// between two flattened vertices the chord cuts inside the circle
	n := geom.ArcSegments(10, 2*math.Pi)
	mid := math.Pi / float64(n)
	if !covered(res.Mesh, geom.Polar(geom.Pt(0, 0), 9.98, mid)) {
		t.Error("point inside the circle but outside the chord is not covered")
	}
	if covered(res.Mesh, geom.Polar(geom.Pt(0, 0), 10.5, mid)) {
		t.Error("point outside the circle is covered")
	}
}

func TestFillConcaveArc(t *testing.T) {
	// a square with a circular bite taken out of its right side
	sps := subpaths(
		path.MoveToEntry(geom.Pt(0, 0)),
		path.LineToEntry(geom.Pt(20, 0)),
		path.ArcEntry(geom.Pt(20, 10), 10, -math.Pi/2, math.Pi/2, geom.CounterClockwise),
		path.LineToEntry(geom.Pt(0, 20)),
		path.CloseEntry(),
	)
	res, err := Tessellate(sps, Options{})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	found := false
	for _, v := range res.Mesh.Vertices {
		if v.Flags == mesh.FlagCircle {
			found = true
			if v.Circle[3] != -1 {
				t.Errorf("concave arc side = %v, want -1", v.Circle[3])
			}
		}
	}
	if !found {
		t.Fatal("no circle boundary")
	}
	if covered(res.Mesh, geom.Pt(11, 10)) {
		t.Error("bite is covered")
	}
	if !covered(res.Mesh, geom.Pt(5, 10)) {
		t.Error("body is not covered")
	}
}

func TestFillEmpty(t *testing.T) {
	tests := []struct {
		name string
		sps  []path.SubPath
	}{
		{"nothing", nil},
		{"single line", subpaths(path.MoveToEntry(geom.Pt(0, 0)), path.LineToEntry(geom.Pt(10, 0)))},
	}
	for _, tt := range tests {
		res, err := Tessellate(tt.sps, Options{})
		if err != nil {
			t.Errorf("%s: err = %v", tt.name, err)
		}
		if !res.Mesh.IsEmpty() || len(res.Mesh.Vertices) != 0 {
			t.Errorf("%s: mesh not empty", tt.name)
		}
	}
}

func TestFillTessellatorError(t *testing.T) {
	failing := tess.TessellatorFunc(func([][]geom.Point, tess.WindingRule) (tess.Result, error) {
		return tess.Result{}, tess.ErrEmptyResult
	})
	sps := subpaths(circle(geom.Pt(0, 0), 5)...)
	res, err := Tessellate(sps, Options{Tessellator: failing})
	if !errors.Is(err, tess.ErrEmptyResult) {
		t.Errorf("err = %v, want ErrEmptyResult", err)
	}
	if len(res.Mesh.Vertices) != 0 {
		t.Errorf("vertices = %d, want 0", len(res.Mesh.Vertices))
	}
}

func TestEdgeMapRejectsInteriorEdges(t *testing.T) {
	square := func(x float64) []geom.Point {
		return []geom.Point{geom.Pt(x, 0), geom.Pt(x+10, 0), geom.Pt(x+10, 10), geom.Pt(x, 10)}
	}
	outlines := []path.Outline{
		{Points: square(0), EdgeArc: []int{0, 1, 2, 3}},
		{Points: square(5), EdgeArc: []int{4, 5, 6, 7}},
	}
	contours := [][]geom.Point{outlines[0].Points, outlines[1].Points}

	nonZero := newEdgeMap(outlines, contours, tess.NonZero)
	// right edge of the first square runs through the second one
	if got := nonZero.lookup(geom.Pt(10, 2), geom.Pt(10, 8), geom.Pt(8, 5)); got != -1 {
		t.Errorf("interior edge maps to arc %d", got)
	}
	if got := nonZero.lookup(geom.Pt(0, 2), geom.Pt(0, 8), geom.Pt(2, 5)); got != 3 {
		t.Errorf("left edge maps to arc %d, want 3", got)
	}
	if got := nonZero.lookup(geom.Pt(3, 3), geom.Pt(4, 4), geom.Pt(3, 4)); got != -1 {
		t.Errorf("free edge maps to arc %d", got)
	}

	evenOdd := newEdgeMap(outlines, contours, tess.EvenOdd)
	// seen from the filled side the overlap is a hole
	if got := evenOdd.lookup(geom.Pt(10, 2), geom.Pt(10, 8), geom.Pt(12, 5)); got != 1 {
		t.Errorf("even-odd edge maps to arc %d, want 1", got)
	}
}
