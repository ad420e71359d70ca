package mesh

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"honnef.co/go/safeish"
)

// VertexLayout returns the GPU vertex buffer layout of Vertex.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // tint
			{Format: gputypes.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 2}, // uv
			{Format: gputypes.VertexFormatFloat32, Offset: 36, ShaderLocation: 3},   // flags
			{Format: gputypes.VertexFormatFloat32x4, Offset: 40, ShaderLocation: 4}, // circle
		},
	}
}

// VertexBytes reinterprets vertices as raw bytes for upload. The result
// aliases the input.
func VertexBytes(v []Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](v)
}

// IndexBytes reinterprets indices as raw bytes for upload. The result
// aliases the input.
func IndexBytes(idx []uint16) []byte {
	if len(idx) == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](idx)
}

// Bounds returns the bounding box of the vertex positions. ok is false for
// an empty slice.
func Bounds(v []Vertex) (minX, minY, maxX, maxY float32, ok bool) {
	if len(v) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math32.Inf(1), math32.Inf(1)
	maxX, maxY = math32.Inf(-1), math32.Inf(-1)
	for i := range v {
		p := v[i].Position
		minX = math32.Min(minX, p[0])
		minY = math32.Min(minY, p[1])
		maxX = math32.Max(maxX, p[0])
		maxY = math32.Max(maxY, p[1])
	}
	return minX, minY, maxX, maxY, true
}

// Translate moves every vertex by (dx, dy), including the position-bound
// distance-field parameters.
func Translate(v []Vertex, dx, dy float32) {
	for i := range v {
		vx := &v[i]
		vx.Position[0] += dx
		vx.Position[1] += dy
		switch vx.Flags {
		case FlagLine:
			// n·(p+d) - (c + n·d) is unchanged
			vx.Circle[2] += vx.Circle[0]*dx + vx.Circle[1]*dy
		case FlagCircle:
			vx.Circle[0] += dx
			vx.Circle[1] += dy
		}
	}
}

// SignedDistance evaluates the distance field of v at (x, y), where v holds
// the interpolated parameters of a fragment. Positive values are outside.
func SignedDistance(v Vertex, x, y float32) float32 {
	c := v.Circle
	switch v.Flags {
	case FlagLine:
		return c[0]*x + c[1]*y - c[2]
	case FlagCircle:
		return c[3] * (math32.Hypot(x-c[0], y-c[1]) - c[2])
	case FlagLateral:
		d := math32.Abs(c[0]) - c[2]
		if c[3] >= 0 {
			d = math32.Max(d, math32.Abs(c[1])-c[3])
		}
		return d
	default:
		return math32.Inf(-1)
	}
}

// Coverage converts a signed distance into pixel coverage in [0, 1].
func Coverage(d float32) float32 {
	return math32.Max(0, math32.Min(1, 0.5-d))
}
