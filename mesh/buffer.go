package mesh

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MeshWriteBuffer is a fixed-size destination for one mesh. Its slices are
// sized by the allocator and must be filled exactly.
type MeshWriteBuffer struct {
	Vertices []Vertex
	Indices  []uint16
}

// SetAllVertices copies v into the buffer. It panics if the length differs
// from the allocated vertex count.
func (b *MeshWriteBuffer) SetAllVertices(v []Vertex) {
	if len(v) != len(b.Vertices) {
		panic(fmt.Sprintf("mesh: SetAllVertices with %d vertices, buffer holds %d", len(v), len(b.Vertices)))
	}
	copy(b.Vertices, v)
}

// SetAllIndices copies idx into the buffer. It panics if the length differs
// from the allocated index count.
func (b *MeshWriteBuffer) SetAllIndices(idx []uint16) {
	if len(idx) != len(b.Indices) {
		panic(fmt.Sprintf("mesh: SetAllIndices with %d indices, buffer holds %d", len(idx), len(b.Indices)))
	}
	copy(b.Indices, idx)
}

// Data returns the buffer contents as Data without copying.
func (b *MeshWriteBuffer) Data() Data {
	return Data{Vertices: b.Vertices, Indices: b.Indices}
}

// MeshAllocator hands out write buffers of exact size. Implementations must
// be safe for concurrent use.
type MeshAllocator interface {
	Allocate(vertexCount, indexCount int) *MeshWriteBuffer
}

// AllocatorFunc adapts a function to the MeshAllocator interface.
type AllocatorFunc func(vertexCount, indexCount int) *MeshWriteBuffer

// Allocate calls f.
func (f AllocatorFunc) Allocate(vertexCount, indexCount int) *MeshWriteBuffer {
	return f(vertexCount, indexCount)
}

// HeapAllocator allocates every buffer separately on the heap.
type HeapAllocator struct{}

// Allocate implements MeshAllocator.
func (HeapAllocator) Allocate(vertexCount, indexCount int) *MeshWriteBuffer {
	return &MeshWriteBuffer{
		Vertices: make([]Vertex, vertexCount),
		Indices:  make([]uint16, indexCount),
	}
}

// DefaultPageSize is the number of vertices per arena page. Index pages hold
// three times as many entries.
const DefaultPageSize = 16 * 1024

// Arena is a bump allocator for meshes produced concurrently. Allocation
// advances an atomic offset into the current page; a new page is added under
// a mutex when the current one is full. Buffers never overlap and stay valid
// for the lifetime of the arena.
type Arena struct {
	vertices bumpPool[Vertex]
	indices  bumpPool[uint16]
}

// NewArena creates an arena whose pages hold pageSize vertices. A
// non-positive pageSize selects DefaultPageSize.
func NewArena(pageSize int) *Arena {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	a := &Arena{}
	a.vertices.pageSize = pageSize
	a.indices.pageSize = 3 * pageSize
	return a
}

// Allocate implements MeshAllocator.
func (a *Arena) Allocate(vertexCount, indexCount int) *MeshWriteBuffer {
	return &MeshWriteBuffer{
		Vertices: a.vertices.alloc(vertexCount),
		Indices:  a.indices.alloc(indexCount),
	}
}

// ArenaStats describes arena usage.
type ArenaStats struct {
	VertexPages int
	IndexPages  int
	Vertices    int // vertices handed out
	Indices     int // indices handed out
}

// Stats returns a snapshot of the arena usage.
func (a *Arena) Stats() ArenaStats {
	vp, vn := a.vertices.stats()
	ip, in := a.indices.stats()
	return ArenaStats{VertexPages: vp, IndexPages: ip, Vertices: vn, Indices: in}
}

type page[T any] struct {
	data []T
	used atomic.Int64
}

type bumpPool[T any] struct {
	mu       sync.Mutex
	cur      atomic.Pointer[page[T]]
	pages    []*page[T]
	handed   atomic.Int64
	pageSize int
}

func (p *bumpPool[T]) alloc(n int) []T {
	if n <= 0 {
		return []T{}
	}
	for {
		pg := p.cur.Load()
		if pg != nil {
			off := pg.used.Load()
			end := off + int64(n)
			if end <= int64(len(pg.data)) {
				if pg.used.CompareAndSwap(off, end) {
					p.handed.Add(int64(n))
					return pg.data[off:end:end]
				}
				continue
			}
		}
		p.grow(pg, n)
	}
}

// grow installs a new page unless another goroutine already replaced old.
func (p *bumpPool[T]) grow(old *page[T], n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur.Load() != old {
		return
	}
	pg := &page[T]{data: make([]T, max(p.pageSize, n))}
	p.pages = append(p.pages, pg)
	p.cur.Store(pg)
}

func (p *bumpPool[T]) stats() (pages, handed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages), int(p.handed.Load())
}
