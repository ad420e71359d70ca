// Command vecmeshdemo tessellates a TOML scene, writes a PNG preview
// rendered from the meshes and a binary vector image asset.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/vecmesh"
	"github.com/gogpu/vecmesh/internal/preview"
	"github.com/gogpu/vecmesh/mesh"
)

//go:embed demo.toml
var demoScene []byte

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (TOML); the built-in demo when empty")
		output    = flag.String("output", "vecmesh.png", "PNG preview file")
		asset     = flag.String("asset", "", "vector image file; skipped when empty")
		workers   = flag.Int("workers", 0, "tessellation workers (0 = GOMAXPROCS)")
		verbose   = flag.Bool("v", false, "log tessellation diagnostics")
	)
	flag.Parse()

	if *verbose {
		vecmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	opts := []vecmesh.Option{
		vecmesh.WithWorkers(*workers),
		vecmesh.WithTessellator(tessellators[sc.Tessellator]),
	}
	if err := writePreview(sc, *output, opts); err != nil {
		log.Fatalf("Failed to write preview: %v", err)
	}
	log.Printf("Preview saved to %s (%dx%d)\n", *output, sc.Width, sc.Height)

	if *asset != "" {
		n, err := writeAsset(sc, *asset, opts)
		if err != nil {
			log.Fatalf("Failed to write asset: %v", err)
		}
		log.Printf("Vector image saved to %s (%d bytes)\n", *asset, n)
	}
}

func loadScene(path string) (*Scene, error) {
	if path == "" {
		return ParseScene(demoScene)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadScene(f)
}

// render tessellates the scene in one generation and composites the
// meshes in issue order, reading them back from their upload bytes.
func render(sc *Scene, opts []vecmesh.Option) (*preview.Canvas, error) {
	gen := vecmesh.NewGenerator(opts...)
	defer gen.Close()

	ctx := gen.Begin()
	sc.Draw(ctx.Painter2D())
	bufs := ctx.End()

	c := preview.New(sc.Width, sc.Height)
	if sc.Background != "" {
		c.Fill(vecmesh.Hex(sc.Background).Tint())
	}
	layout := mesh.VertexLayout()
	for i, b := range bufs {
		d := b.Data()
		if err := c.DrawBuffer(layout, mesh.VertexBytes(d.Vertices), mesh.IndexBytes(d.Indices), 0, 0); err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	return c, nil
}

func writePreview(sc *Scene, path string, opts []vecmesh.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	c, err := render(sc, opts)
	if err != nil {
		f.Close()
		return err
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// writeAsset records the scene with a detached painter and saves the
// exported image.
func writeAsset(sc *Scene, path string, opts []vecmesh.Option) (int, error) {
	p := vecmesh.NewDetachedPainter2D(opts...)
	sc.Draw(p)

	img, err := p.SaveToVectorImage()
	if err != nil {
		return 0, err
	}
	data, err := img.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return len(data), nil
}
