package vecmesh

import (
	"github.com/gogpu/vecmesh/internal/stroke"
	"github.com/gogpu/vecmesh/internal/tess"
	"github.com/gogpu/vecmesh/mesh"
)

// Option configures a Generator or a detached Painter2D.
//
// Example:
//
//	gen := vecmesh.NewGenerator(
//	    vecmesh.WithWorkers(4),
//	    vecmesh.WithTessellator(vecmesh.SweepTessellator),
//	)
type Option func(*options)

type options struct {
	workers     int
	pageSize    int
	tessellator tess.Tessellator
	weld        float64
	allocator   mesh.MeshAllocator
}

func defaultOptions() options {
	return options{
		pageSize:    mesh.DefaultPageSize,
		tessellator: tess.Default(),
		weld:        stroke.DefaultWeldThreshold,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers sets the number of worker goroutines of a Generator.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithArenaPageSize sets the vertex capacity of each page of the
// per-generation mesh arena. Non-positive values keep the default.
func WithArenaPageSize(vertices int) Option {
	return func(o *options) {
		if vertices > 0 {
			o.pageSize = vertices
		}
	}
}

// WithTessellator replaces the polygon tessellator used by Fill.
// A nil tessellator keeps the default.
func WithTessellator(t Tessellator) Option {
	return func(o *options) {
		if t != nil {
			o.tessellator = t
		}
	}
}

// WithWeldThreshold tunes when the inner vertices of a stroke join are
// moved to the intersection of the offset lines. Larger values weld more
// aggressively; zero never welds and lets the strips overlap.
func WithWeldThreshold(k float64) Option {
	return func(o *options) {
		o.weld = max(k, 0)
	}
}

// WithAllocator makes every generation write its meshes through a instead
// of a fresh arena. a must be safe for concurrent use.
func WithAllocator(a mesh.MeshAllocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}
