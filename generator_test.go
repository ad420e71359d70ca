package vecmesh

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/vecmesh/mesh"
)

func TestGeneratorPreservesIssueOrder(t *testing.T) {
	gen := NewGenerator(WithWorkers(4))
	defer gen.Close()

	ctx := gen.Begin()
	p := ctx.Painter2D()
	p.LineWidth = 2
	const n = 32
	for i := range n {
		p.BeginPath()
		y := float64(i * 10)
		p.MoveTo(Pt(0, y))
		// vary the work per call so tasks finish out of order
		for x := 1; x <= (n-i)*4; x++ {
			p.LineTo(Pt(float64(x), y))
		}
		p.Stroke()
	}
	bufs := ctx.End()

	if len(bufs) != n {
		t.Fatalf("End() returned %d buffers, want %d", len(bufs), n)
	}
	for i, b := range bufs {
		_, minY, _, _, ok := mesh.Bounds(b.Vertices)
		want := float32(i*10) - 1 - mesh.EdgeBuffer
		if !ok || minY > want+1e-3 || minY < want-1e-3 {
			t.Errorf("buffer %d starts at y=%v, want %v", i, minY, want)
		}
	}
}

func TestGeneratorSnapshotsPathAndStyle(t *testing.T) {
	gen := NewGenerator(WithWorkers(2))
	defer gen.Close()

	ctx := gen.Begin()
	p := ctx.Painter2D()
	p.LineWidth = 2
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.Stroke()
	p.LineWidth = 20
	p.LineTo(Pt(10, 10))
	bufs := ctx.End()

	if len(bufs) != 1 {
		t.Fatalf("End() returned %d buffers, want 1", len(bufs))
	}
	_, minY, _, maxY, _ := mesh.Bounds(bufs[0].Vertices)
	if minY != -2 || maxY != 2 {
		t.Errorf("y extent = [%v, %v], want [-2, 2]", minY, maxY)
	}
}

func TestGeneratorConcurrentPainters(t *testing.T) {
	var allocs atomic.Int64
	alloc := mesh.AllocatorFunc(func(v, i int) *mesh.MeshWriteBuffer {
		allocs.Add(1)
		return mesh.HeapAllocator{}.Allocate(v, i)
	})
	gen := NewGenerator(WithWorkers(4), WithAllocator(alloc))
	defer gen.Close()

	ctx := gen.Begin()
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := ctx.Painter2D()
			for k := range 10 {
				p.BeginPath()
				p.Circle(Pt(float64(g*30), float64(k*30)), 10)
				p.Fill(FillRuleNonZero)
				p.Stroke()
			}
			// empty calls produce no buffer and no allocation
			p.BeginPath()
			p.Stroke()
			p.Fill(FillRuleEvenOdd)
		}()
	}
	wg.Wait()
	bufs := ctx.End()

	if len(bufs) != 160 {
		t.Errorf("End() returned %d buffers, want 160", len(bufs))
	}
	if allocs.Load() != 160 {
		t.Errorf("Allocate called %d times, want once per non-empty call", allocs.Load())
	}
	for i, b := range bufs {
		for _, idx := range b.Indices {
			if int(idx) >= len(b.Vertices) {
				t.Fatalf("buffer %d index %d out of range", i, idx)
			}
		}
	}
}

func TestGeneratorEndTwice(t *testing.T) {
	gen := NewGenerator(WithWorkers(1))
	defer gen.Close()

	ctx := gen.Begin()
	p := ctx.Painter2D()
	p.Rect(0, 0, 5, 5)
	p.Fill(FillRuleNonZero)

	if got := len(ctx.End()); got != 1 {
		t.Errorf("first End() = %d buffers, want 1", got)
	}
	if ctx.Active() {
		t.Error("Active() = true after End")
	}
	if got := ctx.End(); got != nil {
		t.Errorf("second End() = %v, want nil", got)
	}

	// the painter is dead, a new generation starts clean
	p.Fill(FillRuleNonZero)
	next := gen.Begin()
	if got := len(next.End()); got != 0 {
		t.Errorf("new generation returned %d buffers, want 0", got)
	}
}

func TestGeneratorAfterClose(t *testing.T) {
	gen := NewGenerator(WithWorkers(2))
	gen.Close()

	ctx := gen.Begin()
	p := ctx.Painter2D()
	p.Circle(Pt(0, 0), 5)
	p.Fill(FillRuleNonZero)

	if got := len(ctx.End()); got != 1 {
		t.Errorf("End() = %d buffers, want 1", got)
	}
}

func TestGeneratorArenaPages(t *testing.T) {
	gen := NewGenerator(WithWorkers(2), WithArenaPageSize(16))
	defer gen.Close()

	ctx := gen.Begin()
	p := ctx.Painter2D()
	p.LineJoin = LineJoinRound
	p.LineWidth = 6
	for i := range 5 {
		p.BeginPath()
		p.MoveTo(Pt(0, float64(i*20)))
		p.LineTo(Pt(50, float64(i*20)))
		p.LineTo(Pt(50, float64(i*20+10)))
		p.Stroke()
	}
	bufs := ctx.End()

	if len(bufs) != 5 {
		t.Fatalf("End() returned %d buffers, want 5", len(bufs))
	}
	for i := 1; i < len(bufs); i++ {
		if len(bufs[i].Vertices) != len(bufs[0].Vertices) {
			t.Errorf("buffer %d has %d vertices, want %d", i, len(bufs[i].Vertices), len(bufs[0].Vertices))
		}
	}
}
