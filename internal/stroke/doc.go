// Package stroke tessellates flattened polylines into antialiased triangle
// strips.
//
// # Algorithm Overview
//
// Every flattened point contributes a pair of vertices offset by half the
// line width along its normal, and consecutive pairs form the quads of the
// strip. Points where the tangent turns sharply break the strip and are
// handed to the join generator; the free ends of open polylines get caps.
//
// All geometry is inflated by EdgeBuffer so the antialiasing shader has
// border pixels to blend into. The distance-field parameters of each vertex
// keep describing the true outline, so the inflation never widens the
// visible stroke.
//
// # Line Caps
//
//   - LineCapButt: no extra geometry, the strip ends square at the endpoint
//   - LineCapRound: a half disc around the endpoint
//   - LineCapSquare: a square extending half the width beyond the endpoint
//
// # Line Joins
//
//   - LineJoinMiter: sharp corner, falls back to bevel past the miter limit
//   - LineJoinRound: a fan of triangles spanning the turn
//   - LineJoinBevel: a flat cut across the corner
//
// On the inner side of a join the two strip vertices are welded into one at
// the intersection of the inner offset lines, and the outer part cut off by
// the weld is filled back in with the strip's own field. When the
// neighbouring segments are too short for that, each strip keeps its own
// inner corner and the two overlap.
//
// # Usage
//
//	style := stroke.Stroke{
//	    Width:      2.0,
//	    Cap:        stroke.LineCapRound,
//	    Join:       stroke.LineJoinMiter,
//	    MiterLimit: 4.0,
//	}
//
//	lines := []path.Polyline{path.Flatten(sp, nil)}
//	res, err := stroke.Tessellate(lines, style, nil)
package stroke
