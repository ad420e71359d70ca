package vecmesh

import (
	"github.com/gogpu/vecmesh/internal/stroke"
	"github.com/gogpu/vecmesh/internal/tess"
)

// LineCap specifies the shape of open stroke ends.
type LineCap = stroke.LineCap

// Line caps.
const (
	LineCapButt   = stroke.LineCapButt
	LineCapRound  = stroke.LineCapRound
	LineCapSquare = stroke.LineCapSquare
)

// LineJoin specifies the shape of stroke corners.
type LineJoin = stroke.LineJoin

// Line joins.
const (
	LineJoinMiter = stroke.LineJoinMiter
	LineJoinRound = stroke.LineJoinRound
	LineJoinBevel = stroke.LineJoinBevel
)

// DefaultMiterLimit is the miter length, in line widths, beyond which a
// miter join becomes a bevel.
const DefaultMiterLimit = stroke.DefaultMiterLimit

// FillRule selects which regions of a self-overlapping path are inside.
type FillRule = tess.WindingRule

// Fill rules.
const (
	FillRuleNonZero = tess.NonZero
	FillRuleEvenOdd = tess.EvenOdd
)

// Tessellator triangulates closed contours under a fill rule. The fill
// pipeline maps boundary edges back to curves by their endpoints, so any
// valid triangulation is accepted, including one with extra vertices.
type Tessellator = tess.Tessellator

// Triangulation is the output of a Tessellator.
type Triangulation = tess.Result

// Built-in tessellators.
var (
	// SweepTessellator decomposes contours into trapezoids between
	// consecutive vertex rows and handles any fill rule and overlap.
	SweepTessellator Tessellator = tess.Sweep{}
	// Poly2TriTessellator runs constrained Delaunay triangulation. It
	// accepts only a single simple contour.
	Poly2TriTessellator Tessellator = tess.Poly2Tri{}
	// AutoTessellator uses Poly2TriTessellator for a single simple
	// contour and SweepTessellator otherwise.
	AutoTessellator Tessellator = tess.Auto{}
)
