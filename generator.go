package vecmesh

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/vecmesh/internal/parallel"
	"github.com/gogpu/vecmesh/mesh"
)

// Generator tessellates the Stroke and Fill calls of attached painters on
// a pool of worker goroutines.
//
// Thread safety: Generator is safe for concurrent use. Each
// GenerationContext may be used from several goroutines, but each of its
// painters from only one.
type Generator struct {
	cfg  options
	pool *parallel.WorkerPool
}

// NewGenerator starts a generator and its workers.
func NewGenerator(opts ...Option) *Generator {
	cfg := newOptions(opts)
	return &Generator{
		cfg:  cfg,
		pool: parallel.NewWorkerPool(cfg.workers),
	}
}

// Workers returns the number of worker goroutines.
func (g *Generator) Workers() int {
	return g.pool.Workers()
}

// Close waits for queued tessellation to finish and stops the workers.
// Generations begun afterwards tessellate on the calling goroutine.
func (g *Generator) Close() {
	g.pool.Close()
}

// Begin starts a generation. Its meshes are written to the allocator
// given with WithAllocator, or to an arena owned by the generation.
func (g *Generator) Begin() *GenerationContext {
	alloc := g.cfg.allocator
	var arena *mesh.Arena
	if alloc == nil {
		arena = mesh.NewArena(g.cfg.pageSize)
		alloc = arena
	}
	c := &GenerationContext{gen: g, alloc: alloc, arena: arena}
	c.active.Store(true)
	return c
}

// GenerationContext is the scope of one generation. Painters obtained from
// it may record and tessellate until End is called; afterwards every call
// on them is logged and ignored.
type GenerationContext struct {
	gen    *Generator
	alloc  mesh.MeshAllocator
	arena  *mesh.Arena
	active atomic.Bool

	mu    sync.Mutex
	tasks []*parallel.Future[*mesh.MeshWriteBuffer]
}

// Painter2D returns a new painter attached to this generation, with the
// same default style as NewDetachedPainter2D.
func (c *GenerationContext) Painter2D() *Painter2D {
	p := &Painter2D{ctx: c, cfg: c.gen.cfg, ready: true}
	p.setDefaultStyle()
	return p
}

// Active reports whether End has not been called yet.
func (c *GenerationContext) Active() bool {
	return c.active.Load()
}

// submit queues j. The task tessellates in scratch memory and claims its
// exact vertex and index counts from the allocator once.
func (c *GenerationContext) submit(j job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active.Load() {
		Logger().Warn("vecmesh: painter used after its generation ended", "op", j.kind)
		return
	}
	c.tasks = append(c.tasks, parallel.Go(c.gen.pool, func() *mesh.MeshWriteBuffer {
		data := j.execute()
		if data.IsEmpty() {
			return nil
		}
		buf := c.alloc.Allocate(len(data.Vertices), len(data.Indices))
		buf.SetAllVertices(data.Vertices)
		buf.SetAllIndices(data.Indices)
		return buf
	}))
}

// End closes the generation, waits for every queued Stroke and Fill and
// returns their non-empty meshes in the order the calls were issued.
// Calling End again returns nil.
func (c *GenerationContext) End() []*mesh.MeshWriteBuffer {
	c.mu.Lock()
	if !c.active.CompareAndSwap(true, false) {
		c.mu.Unlock()
		return nil
	}
	tasks := c.tasks
	c.tasks = nil
	c.mu.Unlock()

	out := make([]*mesh.MeshWriteBuffer, 0, len(tasks))
	for _, f := range tasks {
		if buf := f.Wait(); buf != nil {
			out = append(out, buf)
		}
	}
	if c.arena != nil {
		st := c.arena.Stats()
		Logger().Debug("vecmesh: generation ended",
			"meshes", len(out), "vertices", st.Vertices, "indices", st.Indices,
			"vertexPages", st.VertexPages, "indexPages", st.IndexPages)
	}
	return out
}
