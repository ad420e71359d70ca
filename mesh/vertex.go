// Package mesh defines the vertex format produced by the tessellators and
// the allocator interface through which meshes are handed to their owner.
package mesh

import (
	"errors"
	"fmt"
)

// NearZ is the depth written into every vertex.
const NearZ float32 = 0

// EdgeBuffer is the outward inflation of antialiased geometry, in pixels.
const EdgeBuffer = 1.0

// MaxVertices is the largest vertex count a single mesh may hold so that
// every vertex is addressable with a uint16 index.
const MaxVertices = 1<<16 - 1

// ErrTooManyVertices is returned when a mesh exceeds MaxVertices.
var ErrTooManyVertices = errors.New("mesh: too many vertices")

// Distance-field kinds stored in Vertex.Flags.
const (
	// FlagSolid disables antialiasing; the fragment is fully covered.
	FlagSolid float32 = iota
	// FlagLine selects a half-plane: Circle = (nx, ny, c, 0) with the
	// signed distance nx*x + ny*y - c, positive outside.
	FlagLine
	// FlagCircle selects a disc boundary: Circle = (cx, cy, r, side) with
	// the signed distance side * (|p - c| - r).
	FlagCircle
	// FlagLateral selects a stroke band: Circle.X is the interpolated
	// lateral offset and Circle.Z the half line width. When Circle.W is not
	// negative, Circle.Y is an interpolated longitudinal offset limited to
	// Circle.W, which closes square caps.
	FlagLateral
)

// Vertex is the GPU vertex of a tessellated mesh.
type Vertex struct {
	Position [3]float32
	Tint     [4]float32 // linear premultiplied RGBA
	UV       [2]float32 // u is the normalized stroke length
	Flags    float32
	Circle   [4]float32 // distance-field parameters, see the Flag constants
}

// VertexSize is the size of Vertex in bytes.
const VertexSize = (3 + 4 + 2 + 1 + 4) * 4

// Data is a self-contained indexed triangle list.
type Data struct {
	Vertices []Vertex
	Indices  []uint16
}

// IsEmpty reports whether the mesh has no triangles.
func (d Data) IsEmpty() bool {
	return len(d.Indices) == 0
}

// Builder accumulates vertices and triangles in scratch memory. Indices are
// kept wide until Data checks them against MaxVertices.
type Builder struct {
	vertices []Vertex
	indices  []uint32
}

// Vertex appends v and returns its index.
func (b *Builder) Vertex(v Vertex) uint32 {
	b.vertices = append(b.vertices, v)
	return uint32(len(b.vertices) - 1)
}

// Triangle appends one triangle.
func (b *Builder) Triangle(i0, i1, i2 uint32) {
	b.indices = append(b.indices, i0, i1, i2)
}

// Quad appends the two triangles of quad i0 i1 i2 i3.
func (b *Builder) Quad(i0, i1, i2, i3 uint32) {
	b.indices = append(b.indices, i0, i1, i2, i0, i2, i3)
}

// VertexCount returns the number of vertices added so far.
func (b *Builder) VertexCount() int { return len(b.vertices) }

// IndexCount returns the number of indices added so far.
func (b *Builder) IndexCount() int { return len(b.indices) }

// Reset empties the builder, keeping its memory.
func (b *Builder) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// Data returns a copy of the accumulated mesh with 16-bit indices.
func (b *Builder) Data() (Data, error) {
	if len(b.indices) == 0 {
		return Data{}, nil
	}
	if len(b.vertices) > MaxVertices {
		return Data{}, fmt.Errorf("%w: %d > %d", ErrTooManyVertices, len(b.vertices), MaxVertices)
	}
	d := Data{
		Vertices: make([]Vertex, len(b.vertices)),
		Indices:  make([]uint16, len(b.indices)),
	}
	copy(d.Vertices, b.vertices)
	for i, idx := range b.indices {
		d.Indices[i] = uint16(idx)
	}
	return d, nil
}
