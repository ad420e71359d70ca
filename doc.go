// Package vecmesh turns 2D vector paths into antialiased triangle meshes.
//
// # Overview
//
// A Painter2D records canvas-style path commands (MoveTo, LineTo, ArcTo,
// Arc, BezierCurveTo, QuadraticCurveTo, ClosePath) and tessellates them on
// Stroke and Fill. Every vertex carries the parameters of a distance field
// (a half-plane, a circle or a stroke band) so that a fragment stage can
// antialias the true curve instead of the polygon that approximates it.
//
// # Quick Start
//
// Detached painters tessellate synchronously and keep their meshes:
//
//	p := vecmesh.NewDetachedPainter2D()
//	p.LineWidth = 4
//	p.StrokeColor = vecmesh.Hex("#336699")
//	p.MoveTo(vecmesh.Pt(10, 10))
//	p.LineTo(vecmesh.Pt(90, 40))
//	p.Stroke()
//
//	img, err := p.SaveToVectorImage()
//
// Attached painters belong to one generation of a Generator. Their Stroke
// and Fill calls run on the generator's worker pool and the meshes are
// collected, in issue order, by End:
//
//	gen := vecmesh.NewGenerator(vecmesh.WithWorkers(4))
//	defer gen.Close()
//
//	ctx := gen.Begin()
//	p := ctx.Painter2D()
//	p.Circle(vecmesh.Pt(50, 50), 20)
//	p.Fill(vecmesh.FillRuleNonZero)
//	buffers := ctx.End()
//
// # Coordinate System
//
// Origin at the top-left, X to the right, Y down. Angles are in radians
// and Clockwise arcs sweep with increasing angle, which is clockwise on
// screen.
//
// # Errors
//
// Path commands, Stroke and Fill never return errors. Misuse, such as
// drawing with a painter whose generation has ended, is logged at warn
// level and ignored; degenerate geometry produces no triangles.
package vecmesh
