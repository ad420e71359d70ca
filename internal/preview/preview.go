// Package preview is a CPU reference renderer for tessellated meshes.
//
// It shades each triangle the way the fragment stage would: vertex
// attributes are interpolated barycentrically, the distance field selected
// by Vertex.Flags is evaluated at the pixel center and turned into
// coverage. Geometric coverage of the triangle itself comes from
// golang.org/x/image/vector.
package preview

import (
	"image"
	"math"

	"github.com/gogpu/vecmesh/internal/color"
	"github.com/gogpu/vecmesh/mesh"
	"golang.org/x/image/vector"
)

// Canvas accumulates meshes in linear premultiplied RGBA.
//
// Triangles of one mesh are summed, clamped to full opacity and then
// composited over the canvas, so shared triangle edges leave no seams.
type Canvas struct {
	w, h  int
	px    [][4]float32
	layer [][4]float32
	ras   *vector.Rasterizer
}

// New creates a transparent canvas of the given size.
func New(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	return &Canvas{
		w:     width,
		h:     height,
		px:    make([][4]float32, width*height),
		layer: make([][4]float32, width*height),
		ras:   vector.NewRasterizer(0, 0),
	}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.w, c.h)
}

// Fill sets every pixel to the premultiplied linear color bg.
func (c *Canvas) Fill(bg [4]float32) {
	for i := range c.px {
		c.px[i] = bg
	}
}

// At returns the linear premultiplied color of a pixel.
func (c *Canvas) At(x, y int) [4]float32 {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return [4]float32{}
	}
	return c.px[y*c.w+x]
}

// Draw composites d over the canvas with its vertices offset by (dx, dy).
func (c *Canvas) Draw(d mesh.Data, dx, dy float32) {
	dirty := image.Rectangle{}
	for t := 0; t+2 < len(d.Indices); t += 3 {
		a := d.Vertices[d.Indices[t]]
		b := d.Vertices[d.Indices[t+1]]
		v := d.Vertices[d.Indices[t+2]]
		dirty = dirty.Union(c.triangle(a, b, v, dx, dy))
	}

	for y := dirty.Min.Y; y < dirty.Max.Y; y++ {
		for x := dirty.Min.X; x < dirty.Max.X; x++ {
			i := y*c.w + x
			src := c.layer[i]
			if src[3] <= 0 {
				continue
			}
			if src[3] > 1 {
				k := 1 / src[3]
				src = [4]float32{src[0] * k, src[1] * k, src[2] * k, 1}
			}
			inv := 1 - src[3]
			dst := &c.px[i]
			for ch := range dst {
				dst[ch] = src[ch] + dst[ch]*inv
			}
			c.layer[i] = [4]float32{}
		}
	}
}

// triangle accumulates one triangle into the layer and returns the pixels
// it touched.
func (c *Canvas) triangle(a, b, v mesh.Vertex, dx, dy float32) image.Rectangle {
	ax, ay := a.Position[0]+dx, a.Position[1]+dy
	bx, by := b.Position[0]+dx, b.Position[1]+dy
	vx, vy := v.Position[0]+dx, v.Position[1]+dy

	det := (bx-ax)*(vy-ay) - (vx-ax)*(by-ay)
	if det == 0 || math.IsNaN(float64(det)) {
		return image.Rectangle{}
	}

	box := image.Rect(
		int(math.Floor(float64(min(ax, bx, vx)))),
		int(math.Floor(float64(min(ay, by, vy)))),
		int(math.Ceil(float64(max(ax, bx, vx)))),
		int(math.Ceil(float64(max(ay, by, vy)))),
	)
	clip := box.Intersect(c.Bounds())
	if clip.Empty() {
		return image.Rectangle{}
	}

	w, h := box.Dx(), box.Dy()
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	c.ras.Reset(w, h)
	c.ras.MoveTo(ax-ox, ay-oy)
	c.ras.LineTo(bx-ox, by-oy)
	c.ras.LineTo(vx-ox, vy-oy)
	c.ras.ClosePath()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	c.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			m := mask.AlphaAt(x-box.Min.X, y-box.Min.Y).A
			if m == 0 {
				continue
			}
			px, py := float32(x)+0.5, float32(y)+0.5
			l1 := ((px-ax)*(vy-ay) - (vx-ax)*(py-ay)) / det
			l2 := ((bx-ax)*(py-ay) - (px-ax)*(by-ay)) / det
			frag := interpolate(a, b, v, 1-l1-l2, l1, l2)

			cov := mesh.Coverage(mesh.SignedDistance(frag, px-dx, py-dy)) * float32(m) / 255
			if cov <= 0 {
				continue
			}
			dst := &c.layer[y*c.w+x]
			for ch := range dst {
				dst[ch] += frag.Tint[ch] * cov
			}
		}
	}
	return clip
}

func interpolate(a, b, c mesh.Vertex, la, lb, lc float32) mesh.Vertex {
	out := mesh.Vertex{Flags: a.Flags}
	for i := range out.Tint {
		out.Tint[i] = a.Tint[i]*la + b.Tint[i]*lb + c.Tint[i]*lc
	}
	for i := range out.Circle {
		out.Circle[i] = a.Circle[i]*la + b.Circle[i]*lb + c.Circle[i]*lc
	}
	for i := range out.UV {
		out.UV[i] = a.UV[i]*la + b.UV[i]*lb + c.UV[i]*lc
	}
	return out
}

// Image encodes the canvas as 8-bit sRGB with straight alpha.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(c.Bounds())
	for i, p := range c.px {
		a := p[3]
		if a <= 0 {
			continue
		}
		a = min(a, 1)
		o := i * 4
		img.Pix[o+0] = color.LinearToSRGB8(p[0] / a)
		img.Pix[o+1] = color.LinearToSRGB8(p[1] / a)
		img.Pix[o+2] = color.LinearToSRGB8(p[2] / a)
		img.Pix[o+3] = uint8(a*255 + 0.5)
	}
	return img
}
