package vecmesh

import (
	"errors"
	"slices"

	"github.com/gogpu/vecmesh/internal/fill"
	"github.com/gogpu/vecmesh/internal/path"
	"github.com/gogpu/vecmesh/internal/stroke"
	"github.com/gogpu/vecmesh/internal/tess"
	"github.com/gogpu/vecmesh/mesh"
)

type jobKind uint8

const (
	strokeJob jobKind = iota
	fillJob
)

func (k jobKind) String() string {
	if k == fillJob {
		return "Fill"
	}
	return "Stroke"
}

// job is a snapshot of one Stroke or Fill call. It shares nothing mutable
// with the painter that issued it.
type job struct {
	kind    jobKind
	entries []path.Entry
	rule    FillRule

	lineWidth  float64
	lineCap    LineCap
	lineJoin   LineJoin
	miterLimit float64
	color      RGBA
	gradient   []ColorStop

	tessellator tess.Tessellator
	weld        float64
}

// run tessellates the job into scratch memory. Geometry that produces no
// triangles yields an empty mesh; only an oversized mesh is an error.
func (j job) run() (mesh.Data, error) {
	subpaths := path.Resolve(j.entries)
	if len(subpaths) == 0 {
		return mesh.Data{}, nil
	}
	if j.kind == fillJob {
		return j.fill(subpaths)
	}
	return j.stroke(subpaths)
}

func (j job) stroke(subpaths []path.SubPath) (mesh.Data, error) {
	lines := make([]path.Polyline, 0, len(subpaths))
	total := 0.0
	for _, sp := range subpaths {
		pl := path.Flatten(sp, nil)
		if len(pl.Points) < 2 {
			continue
		}
		lines = append(lines, pl)
		total += pl.Length
	}

	var colorAt stroke.ColorFunc
	if len(j.gradient) > 0 {
		g := NewGradient(j.gradient...)
		colorAt = func(dist float64) [4]float32 {
			if total <= 0 {
				return g.tintAt(0)
			}
			return g.tintAt(dist / total)
		}
	} else {
		tint := j.color.Tint()
		colorAt = func(float64) [4]float32 { return tint }
	}

	res, err := stroke.Tessellate(lines, stroke.Stroke{
		Width:         j.lineWidth,
		Cap:           j.lineCap,
		Join:          j.lineJoin,
		MiterLimit:    j.miterLimit,
		WeldThreshold: j.weld,
	}, colorAt)
	if err != nil {
		return mesh.Data{}, err
	}
	return res.Mesh, nil
}

func (j job) fill(subpaths []path.SubPath) (mesh.Data, error) {
	res, err := fill.Tessellate(subpaths, fill.Options{
		Rule:        j.rule,
		Tessellator: j.tessellator,
		Color:       j.color.Tint(),
	})
	switch {
	case errors.Is(err, mesh.ErrTooManyVertices):
		return mesh.Data{}, err
	case err != nil:
		Logger().Debug("vecmesh: fill produced no geometry", "rule", j.rule, "err", err)
		return mesh.Data{}, nil
	}
	return res.Mesh, nil
}

// execute runs the job and logs instead of failing.
func (j job) execute() mesh.Data {
	data, err := j.run()
	if err != nil {
		Logger().Warn("vecmesh: geometry dropped", "op", j.kind, "err", err)
		return mesh.Data{}
	}
	if data.IsEmpty() {
		Logger().Debug("vecmesh: no geometry", "op", j.kind, "entries", len(j.entries))
	}
	return data
}

func (p *Painter2D) snapshot(kind jobKind, rule FillRule) job {
	j := job{
		kind:        kind,
		entries:     slices.Clone(p.entries),
		rule:        rule,
		lineWidth:   p.LineWidth,
		lineCap:     p.LineCap,
		lineJoin:    p.LineJoin,
		miterLimit:  p.MiterLimit,
		color:       p.StrokeColor,
		tessellator: p.cfg.tessellator,
		weld:        p.cfg.weld,
	}
	switch {
	case kind == fillJob:
		j.color = p.FillColor
	case p.StrokeGradient != nil:
		j.gradient = p.StrokeGradient.Stops()
	}
	return j
}
