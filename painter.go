package vecmesh

import (
	"errors"
	"math"

	"github.com/gogpu/vecmesh/internal/geom"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/recording"
)

// ErrAttached is returned by detached-only operations called on a painter
// that belongs to a generation.
var ErrAttached = errors.New("vecmesh: painter is attached to a generation")

// Painter2D records a path and tessellates it on Stroke and Fill.
//
// A painter is either attached to a GenerationContext, in which case its
// meshes are produced on the generator's workers and returned by End, or
// detached, in which case Stroke and Fill run immediately and the meshes
// are kept for Bounds and SaveToVectorImage.
//
// The style fields are read when Stroke or Fill is called; changing them
// afterwards does not affect geometry already issued. The zero value is a
// detached painter with a zero line width and transparent colors; use
// NewDetachedPainter2D for the usual defaults.
//
// A Painter2D is not safe for concurrent use.
type Painter2D struct {
	LineWidth      float64
	StrokeColor    RGBA
	StrokeGradient *Gradient // overrides StrokeColor when set
	FillColor      RGBA
	LineJoin       LineJoin
	LineCap        LineCap
	MiterLimit     float64 // in line widths

	entries []path.Entry
	ctx     *GenerationContext // nil when detached
	rec     *recording.Recorder
	cfg     options
	ready   bool
}

// NewDetachedPainter2D creates a detached painter with a 1 pixel black
// stroke, white fill, miter joins and butt caps.
func NewDetachedPainter2D(opts ...Option) *Painter2D {
	p := &Painter2D{cfg: newOptions(opts), ready: true}
	p.setDefaultStyle()
	return p
}

func (p *Painter2D) setDefaultStyle() {
	p.LineWidth = 1
	p.StrokeColor = Black
	p.FillColor = White
	p.LineJoin = LineJoinMiter
	p.LineCap = LineCapButt
	p.MiterLimit = DefaultMiterLimit
}

// IsDetached reports whether the painter keeps its own meshes.
func (p *Painter2D) IsDetached() bool {
	return p.ctx == nil
}

// usable reports whether the painter may record or tessellate, logging
// the rejected operation otherwise.
func (p *Painter2D) usable(op string) bool {
	if p.ctx != nil && !p.ctx.Active() {
		Logger().Warn("vecmesh: painter used after its generation ended", "op", op)
		return false
	}
	if !p.ready {
		p.cfg = defaultOptions()
		p.ready = true
	}
	return true
}

func (p *Painter2D) record(op string, e path.Entry) {
	if p.usable(op) {
		p.entries = append(p.entries, e)
	}
}

// BeginPath discards the current path.
func (p *Painter2D) BeginPath() {
	if p.usable("BeginPath") {
		p.entries = p.entries[:0]
	}
}

// MoveTo starts a new sub-path at pt.
func (p *Painter2D) MoveTo(pt Point) {
	p.record("MoveTo", path.MoveToEntry(pt))
}

// LineTo adds a straight line from the current point to pt.
func (p *Painter2D) LineTo(pt Point) {
	p.record("LineTo", path.LineToEntry(pt))
}

// ArcTo adds an arc of the given radius tangent to the line from the
// current point to p1 and the line from p1 to p2, joined to the current
// point by a straight line. Colinear points or a non-positive radius give
// a straight line to p1.
func (p *Painter2D) ArcTo(p1, p2 Point, radius float64) {
	p.record("ArcTo", path.ArcToEntry(p1, p2, radius))
}

// Arc adds a circular arc around center from startAngle to endAngle. A
// current point is joined to the start of the arc by a straight line.
func (p *Painter2D) Arc(center Point, radius, startAngle, endAngle float64, dir ArcDirection) {
	p.record("Arc", path.ArcEntry(center, radius, startAngle, endAngle, dir))
}

// BezierCurveTo adds a cubic Bezier curve with controls c1 and c2.
func (p *Painter2D) BezierCurveTo(c1, c2, pt Point) {
	p.record("BezierCurveTo", path.BezierToEntry(c1, c2, pt))
}

// QuadraticCurveTo adds a quadratic Bezier curve with control c.
func (p *Painter2D) QuadraticCurveTo(c, pt Point) {
	p.record("QuadraticCurveTo", path.QuadToEntry(c, pt))
}

// ClosePath closes the current sub-path. Stroke joins its last segment
// to the first instead of capping them.
func (p *Painter2D) ClosePath() {
	p.record("ClosePath", path.CloseEntry())
}

// Rect adds a closed axis-aligned rectangle sub-path.
func (p *Painter2D) Rect(x, y, w, h float64) {
	p.MoveTo(Pt(x, y))
	p.LineTo(Pt(x+w, y))
	p.LineTo(Pt(x+w, y+h))
	p.LineTo(Pt(x, y+h))
	p.ClosePath()
}

// Circle adds a closed circle sub-path.
func (p *Painter2D) Circle(center Point, radius float64) {
	p.MoveTo(geom.Polar(center, radius, 0))
	p.Arc(center, radius, 0, 2*math.Pi, Clockwise)
	p.ClosePath()
}

// Stroke tessellates the outline of the current path.
func (p *Painter2D) Stroke() {
	if p.usable("Stroke") {
		p.issue(p.snapshot(strokeJob, FillRuleNonZero))
	}
}

// Fill tessellates the interior of the current path under rule. Every
// sub-path is implicitly closed.
func (p *Painter2D) Fill(rule FillRule) {
	if p.usable("Fill") {
		p.issue(p.snapshot(fillJob, rule))
	}
}

func (p *Painter2D) issue(j job) {
	if p.ctx != nil {
		p.ctx.submit(j)
		return
	}
	if p.rec == nil {
		p.rec = recording.NewRecorder()
	}
	p.rec.Append(j.execute())
}

// Clear discards the path and every mesh recorded by a detached painter.
func (p *Painter2D) Clear() {
	if p.ctx != nil {
		Logger().Warn("vecmesh: Clear on an attached painter")
		return
	}
	p.entries = p.entries[:0]
	if p.rec != nil {
		p.rec.Clear()
	}
}

// Bounds returns the bounding box of everything a detached painter has
// recorded, antialiasing margin included. ok is false when nothing has
// been recorded or the painter is attached.
func (p *Painter2D) Bounds() (r recording.Rect, ok bool) {
	if p.ctx != nil {
		Logger().Warn("vecmesh: Bounds on an attached painter")
		return recording.Rect{}, false
	}
	if p.rec == nil {
		return recording.Rect{}, false
	}
	return p.rec.Bounds()
}

// SaveToVectorImage exports the meshes of a detached painter as a single
// image positioned at its bounding box origin.
func (p *Painter2D) SaveToVectorImage() (recording.VectorImage, error) {
	if p.ctx != nil {
		Logger().Warn("vecmesh: SaveToVectorImage on an attached painter")
		return recording.VectorImage{}, ErrAttached
	}
	if p.rec == nil {
		return recording.VectorImage{Version: recording.Version}, nil
	}
	return p.rec.Export()
}
