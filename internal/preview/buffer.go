package preview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vecmesh/mesh"
)

// Shader locations of the mesh.Vertex attributes.
const (
	locPosition = iota
	locTint
	locUV
	locFlags
	locCircle
)

// ErrBadBuffer is returned by DrawBuffer for vertex or index bytes that do
// not match the layout.
var ErrBadBuffer = errors.New("preview: malformed vertex buffer")

// DrawBuffer composites raw upload buffers the way a GPU pipeline would
// read them: every vertex is fetched from vertices through layout, by
// attribute offset and shader location, and indices are 16-bit.
func (c *Canvas) DrawBuffer(layout gputypes.VertexBufferLayout, vertices, indices []byte, dx, dy float32) error {
	d, err := decode(layout, vertices, indices)
	if err != nil {
		return err
	}
	c.Draw(d, dx, dy)
	return nil
}

func decode(layout gputypes.VertexBufferLayout, vertices, indices []byte) (mesh.Data, error) {
	stride := int(layout.ArrayStride)
	if stride == 0 || len(vertices)%stride != 0 {
		return mesh.Data{}, fmt.Errorf("%w: %d bytes with stride %d", ErrBadBuffer, len(vertices), stride)
	}
	if len(indices)%2 != 0 {
		return mesh.Data{}, fmt.Errorf("%w: odd index byte count %d", ErrBadBuffer, len(indices))
	}
	for _, a := range layout.Attributes {
		if a.Format.Size() == 0 || int(a.Offset+a.Format.Size()) > stride {
			return mesh.Data{}, fmt.Errorf("%w: attribute %d (%v at %d) outside stride %d",
				ErrBadBuffer, a.ShaderLocation, a.Format, a.Offset, stride)
		}
	}

	n := len(vertices) / stride
	d := mesh.Data{
		Vertices: make([]mesh.Vertex, n),
		Indices:  make([]uint16, len(indices)/2),
	}
	for i := range d.Vertices {
		rec := vertices[i*stride : (i+1)*stride]
		v := &d.Vertices[i]
		for _, a := range layout.Attributes {
			var dst []float32
			switch a.ShaderLocation {
			case locPosition:
				dst = v.Position[:]
			case locTint:
				dst = v.Tint[:]
			case locUV:
				dst = v.UV[:]
			case locFlags:
				dst = []float32{0}
			case locCircle:
				dst = v.Circle[:]
			default:
				continue
			}
			floats(dst, rec[a.Offset:a.Offset+a.Format.Size()])
			if a.ShaderLocation == locFlags {
				v.Flags = dst[0]
			}
		}
	}
	for i := range d.Indices {
		idx := binary.NativeEndian.Uint16(indices[2*i:])
		if int(idx) >= n {
			return mesh.Data{}, fmt.Errorf("%w: index %d of %d vertices", ErrBadBuffer, idx, n)
		}
		d.Indices[i] = idx
	}
	return d, nil
}

// floats reads up to len(dst) float32 components from b.
func floats(dst []float32, b []byte) {
	for k := 0; k < len(dst) && 4*k+4 <= len(b); k++ {
		dst[k] = math.Float32frombits(binary.NativeEndian.Uint32(b[4*k:]))
	}
}
