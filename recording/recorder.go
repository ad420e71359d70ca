package recording

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/vecmesh/mesh"
)

// Rect is an axis-aligned bounding box in pixels.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Recorder collects meshes and tracks their running bounds.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	meshes   []mesh.Data
	bounds   Rect
	vertices int
	indices  int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds a mesh to the recording. Empty meshes are ignored. The
// recorder keeps d; the caller must not modify it afterwards.
func (r *Recorder) Append(d mesh.Data) {
	if d.IsEmpty() {
		return
	}
	minX, minY, maxX, maxY, ok := mesh.Bounds(d.Vertices)
	if !ok {
		return
	}
	if len(r.meshes) == 0 {
		r.bounds = Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	} else {
		r.bounds = Rect{
			MinX: math32.Min(r.bounds.MinX, minX),
			MinY: math32.Min(r.bounds.MinY, minY),
			MaxX: math32.Max(r.bounds.MaxX, maxX),
			MaxY: math32.Max(r.bounds.MaxY, maxY),
		}
	}
	r.meshes = append(r.meshes, d)
	r.vertices += len(d.Vertices)
	r.indices += len(d.Indices)
}

// Clear discards every recorded mesh.
func (r *Recorder) Clear() {
	clear(r.meshes)
	r.meshes = r.meshes[:0]
	r.bounds = Rect{}
	r.vertices = 0
	r.indices = 0
}

// Bounds returns the bounding box of all recorded vertices. ok is false
// when nothing has been recorded.
func (r *Recorder) Bounds() (Rect, bool) {
	return r.bounds, len(r.meshes) > 0
}

// Len returns the number of recorded meshes.
func (r *Recorder) Len() int {
	return len(r.meshes)
}

// VertexCount returns the total number of recorded vertices.
func (r *Recorder) VertexCount() int {
	return r.vertices
}

// Meshes returns the recorded meshes in append order. The slice aliases
// the recorder's storage.
func (r *Recorder) Meshes() []mesh.Data {
	return r.meshes
}

// Export concatenates the recording into a single VectorImage positioned
// relative to its bounding box origin. It returns mesh.ErrTooManyVertices
// when the combined mesh cannot be indexed with uint16.
func (r *Recorder) Export() (VectorImage, error) {
	img := VectorImage{Version: Version}
	if len(r.meshes) == 0 {
		return img, nil
	}
	if r.vertices > mesh.MaxVertices {
		return VectorImage{}, mesh.ErrTooManyVertices
	}

	img.Vertices = make([]mesh.Vertex, 0, r.vertices)
	img.Indices = make([]uint16, 0, r.indices)
	for _, d := range r.meshes {
		base := uint16(len(img.Vertices))
		img.Vertices = append(img.Vertices, d.Vertices...)
		for _, idx := range d.Indices {
			img.Indices = append(img.Indices, base+idx)
		}
	}
	mesh.Translate(img.Vertices, -r.bounds.MinX, -r.bounds.MinY)
	img.Size = [2]float32{r.bounds.Width(), r.bounds.Height()}
	return img, nil
}
