package recording

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/vecmesh/mesh"
)

// Version is the VectorImage encoding version written by MarshalBinary.
const Version uint32 = 1

var magic = [4]byte{'V', 'M', 'S', 'H'}

// Decoding errors.
var (
	ErrBadMagic   = errors.New("recording: not a vector image")
	ErrBadVersion = errors.New("recording: unsupported vector image version")
	ErrCorrupt    = errors.New("recording: corrupt vector image")
)

// VectorImage is a detached, position-independent mesh. Vertices are
// relative to the top-left corner of the recorded bounds and Size holds
// the bounds' width and height.
type VectorImage struct {
	Version  uint32
	Vertices []mesh.Vertex
	Indices  []uint16
	Size     [2]float32
}

type imageHeader struct {
	Magic    [4]byte
	Version  uint32
	Size     [2]float32
	Vertices uint32
	Indices  uint32
}

// MarshalBinary encodes the image in little-endian byte order.
func (img VectorImage) MarshalBinary() ([]byte, error) {
	if len(img.Vertices) > mesh.MaxVertices {
		return nil, mesh.ErrTooManyVertices
	}
	h := imageHeader{
		Magic:    magic,
		Version:  Version,
		Size:     img.Size,
		Vertices: uint32(len(img.Vertices)),
		Indices:  uint32(len(img.Indices)),
	}
	var buf bytes.Buffer
	buf.Grow(binary.Size(h) + len(img.Vertices)*mesh.VertexSize + len(img.Indices)*2)
	for _, v := range []any{h, img.Vertices, img.Indices} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("recording: encode: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes an image written by MarshalBinary. Indices that
// reference missing vertices are rejected.
func (img *VectorImage) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var h imageHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if h.Magic != magic {
		return ErrBadMagic
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	if h.Vertices > mesh.MaxVertices {
		return fmt.Errorf("%w: %w", ErrCorrupt, mesh.ErrTooManyVertices)
	}
	want := int64(h.Vertices)*mesh.VertexSize + int64(h.Indices)*2
	if int64(r.Len()) != want {
		return fmt.Errorf("%w: payload is %d bytes, want %d", ErrCorrupt, r.Len(), want)
	}

	vertices := make([]mesh.Vertex, h.Vertices)
	indices := make([]uint16, h.Indices)
	if err := binary.Read(r, binary.LittleEndian, vertices); err != nil {
		return fmt.Errorf("%w: vertices: %w", ErrCorrupt, err)
	}
	if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
		return fmt.Errorf("%w: indices: %w", ErrCorrupt, err)
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("%w: index %d references vertex %d of %d", ErrCorrupt, i, idx, len(vertices))
		}
	}

	*img = VectorImage{Version: h.Version, Vertices: vertices, Indices: indices, Size: h.Size}
	return nil
}
