package tess

import (
	"fmt"

	"github.com/ByteArena/poly2tri-go"

	"github.com/gogpu/vecmesh/internal/geom"
)

// maxSimpleCheck bounds the quadratic simplicity test of the fast path.
const maxSimpleCheck = 2048

// Poly2Tri triangulates a single simple contour with constrained Delaunay
// triangulation. Any other input returns ErrUnsupported.
type Poly2Tri struct{}

// Tessellate implements Tessellator. The winding rule is irrelevant for a
// simple contour, whose interior has winding ±1.
func (Poly2Tri) Tessellate(contours [][]geom.Point, _ WindingRule) (res Result, err error) {
	var contour []geom.Point
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		if contour != nil {
			return Result{}, ErrUnsupported
		}
		contour = c
	}
	if contour == nil {
		return Result{}, ErrTooFewPoints
	}
	for _, p := range contour {
		if !validPoint(p) {
			return Result{}, ErrInvalidPoint
		}
	}
	if len(contour) > maxSimpleCheck || !isSimple(contour) {
		return Result{}, ErrUnsupported
	}
	if SignedArea(contour) == 0 {
		return Result{}, ErrEmptyResult
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = fmt.Errorf("%w: poly2tri: %v", ErrUnsupported, r)
		}
	}()

	pts := make([]*poly2tri.Point, len(contour))
	for i, p := range contour {
		pts[i] = poly2tri.NewPoint(p.X, p.Y)
	}
	swctx := poly2tri.NewSweepContext(pts, false)
	swctx.Triangulate()

	bld := newBuilder()
	for _, tr := range swctx.GetTriangles() {
		p0 := geom.Pt(tr.Points[0].X, tr.Points[0].Y)
		p1 := geom.Pt(tr.Points[1].X, tr.Points[1].Y)
		p2 := geom.Pt(tr.Points[2].X, tr.Points[2].Y)
		if p1.Sub(p0).Cross(p2.Sub(p0)) < 0 {
			p1, p2 = p2, p1
		}
		bld.triangle(p0, p1, p2)
	}
	if len(bld.res.Indices) == 0 {
		return Result{}, ErrEmptyResult
	}
	return bld.res, nil
}

// isSimple reports whether the closed contour has no repeated vertices and
// no crossing edges.
func isSimple(c []geom.Point) bool {
	n := len(c)
	seen := make(map[geom.Point]struct{}, n)
	for _, p := range c {
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}
	for i := range n {
		a0, a1 := c[i], c[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if _, ok := geom.SegmentIntersection(a0, a1, c[j], c[(j+1)%n]); ok {
				return false
			}
		}
	}
	return true
}

// Auto uses Poly2Tri for a single simple contour and Sweep otherwise.
type Auto struct{}

// Tessellate implements Tessellator.
func (Auto) Tessellate(contours [][]geom.Point, rule WindingRule) (Result, error) {
	if usableContours(contours) == 1 {
		if res, err := (Poly2Tri{}).Tessellate(contours, rule); err == nil {
			return res, nil
		}
	}
	return Sweep{}.Tessellate(contours, rule)
}

// Default returns the tessellator used when none is configured.
func Default() Tessellator {
	return Auto{}
}
