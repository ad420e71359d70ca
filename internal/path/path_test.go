package path

import (
	"math"
	"testing"

	"github.com/gogpu/vecmesh/internal/geom"
)

func TestKindString(t *testing.T) {
	if got := BezierTo.String(); got != "BezierTo" {
		t.Errorf("BezierTo.String() = %q", got)
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		subpaths int
		segments []int
		closed   []bool
	}{
		{"empty", nil, 0, nil, nil},
		{"move only", []Entry{MoveToEntry(geom.Pt(1, 1))}, 0, nil, nil},
		{
			"line without move",
			[]Entry{LineToEntry(geom.Pt(1, 1)), LineToEntry(geom.Pt(5, 1))},
			1, []int{1}, []bool{false},
		},
		{
			"closed triangle",
			[]Entry{
				MoveToEntry(geom.Pt(0, 0)), LineToEntry(geom.Pt(10, 0)),
				LineToEntry(geom.Pt(0, 10)), CloseEntry(),
			},
			1, []int{3}, []bool{true},
		},
		{
			"two sub-paths",
			[]Entry{
				MoveToEntry(geom.Pt(0, 0)), LineToEntry(geom.Pt(10, 0)),
				MoveToEntry(geom.Pt(0, 5)), LineToEntry(geom.Pt(10, 5)),
			},
			2, []int{1, 1}, []bool{false, false},
		},
		{
			"close then continue",
			[]Entry{
				MoveToEntry(geom.Pt(0, 0)), LineToEntry(geom.Pt(10, 0)),
				LineToEntry(geom.Pt(10, 10)), CloseEntry(), LineToEntry(geom.Pt(-5, 0)),
			},
			2, []int{3, 1}, []bool{true, false},
		},
		{
			"arc connects with a line",
			[]Entry{
				MoveToEntry(geom.Pt(0, 0)),
				ArcEntry(geom.Pt(20, 0), 5, 0, math.Pi, geom.Clockwise),
			},
			1, []int{2}, []bool{false},
		},
		{
			"degenerate arc",
			[]Entry{ArcEntry(geom.Pt(20, 0), 0, 0, math.Pi, geom.Clockwise)},
			0, nil, nil,
		},
		{
			"degenerate arcTo",
			[]Entry{
				MoveToEntry(geom.Pt(0, 0)),
				ArcToEntry(geom.Pt(5, 0), geom.Pt(10, 0), 3),
			},
			1, []int{1}, []bool{false},
		},
		{
			"arcTo corner",
			[]Entry{
				MoveToEntry(geom.Pt(0, 0)),
				ArcToEntry(geom.Pt(10, 0), geom.Pt(10, 10), 2),
			},
			1, []int{2}, []bool{false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sps := Resolve(tt.entries)
			if len(sps) != tt.subpaths {
				t.Fatalf("sub-paths = %d, want %d", len(sps), tt.subpaths)
			}
			for i, sp := range sps {
				if len(sp.Segments) != tt.segments[i] {
					t.Errorf("sub-path %d segments = %d, want %d", i, len(sp.Segments), tt.segments[i])
				}
				if sp.Closed != tt.closed[i] {
					t.Errorf("sub-path %d closed = %v, want %v", i, sp.Closed, tt.closed[i])
				}
				for j := 1; j < len(sp.Segments); j++ {
					if !sp.Segments[j].From.Near(sp.Segments[j-1].To, 1e-9) {
						t.Errorf("sub-path %d segment %d is disconnected", i, j)
					}
				}
			}
		})
	}
}

func TestResolveCloseRestartsAtStart(t *testing.T) {
	sps := Resolve([]Entry{
		MoveToEntry(geom.Pt(1, 2)), LineToEntry(geom.Pt(10, 0)),
		LineToEntry(geom.Pt(10, 10)), CloseEntry(), LineToEntry(geom.Pt(-5, 0)),
	})
	if got := sps[1].Start; got != geom.Pt(1, 2) {
		t.Errorf("start after close = %v, want (1, 2)", got)
	}
}

func TestFlattenOpenPolyline(t *testing.T) {
	sps := Resolve([]Entry{
		MoveToEntry(geom.Pt(0, 0)),
		LineToEntry(geom.Pt(10, 0)),
		LineToEntry(geom.Pt(10, 10)),
	})
	pl := Flatten(sps[0], nil)

	want := []JoinKind{CapStart, Joint, CapEnd}
	if len(pl.Points) != len(want) {
		t.Fatalf("points = %d, want %d", len(pl.Points), len(want))
	}
	for i, k := range want {
		if pl.Points[i].Kind != k {
			t.Errorf("point %d kind = %v, want %v", i, pl.Points[i].Kind, k)
		}
	}
	if pl.Length != 20 {
		t.Errorf("Length = %v, want 20", pl.Length)
	}
	if turn := pl.Points[1].Turn(); math.Abs(turn-math.Pi/2) > 1e-12 {
		t.Errorf("turn = %v, want π/2", turn)
	}
}

func TestFlattenClosedCircle(t *testing.T) {
	var arcs []FilledArc
	sps := Resolve([]Entry{
		ArcEntry(geom.Pt(0, 0), 10, 0, 2*math.Pi, geom.Clockwise),
		CloseEntry(),
	})
	pl := Flatten(sps[0], &arcs)

	if !pl.Closed {
		t.Fatal("circle not closed")
	}
	if len(arcs) != 1 || arcs[0].Kind != ArcCircle {
		t.Fatalf("arcs = %+v, want one circle", arcs)
	}
	for i, p := range pl.Points {
		if p.Kind != Smooth {
			t.Errorf("point %d kind = %v, want Smooth", i, p.Kind)
		}
		if p.Arc != 0 {
			t.Errorf("point %d arc = %d, want 0", i, p.Arc)
		}
		if d := math.Abs(p.TanOut.Length() - 1); d > 1e-12 {
			t.Errorf("point %d tangent not unit", i)
		}
	}
	if math.Abs(pl.Length-2*math.Pi*10) > 0.5 {
		t.Errorf("Length = %v, want about %v", pl.Length, 2*math.Pi*10)
	}
}

func TestFlattenCurveArcs(t *testing.T) {
	var arcs []FilledArc
	sps := Resolve([]Entry{
		MoveToEntry(geom.Pt(0, 0)),
		QuadToEntry(geom.Pt(50, 100), geom.Pt(100, 0)),
	})
	pl := Flatten(sps[0], &arcs)

	if len(arcs) != len(pl.Points)-1 {
		t.Fatalf("arcs = %d, want one per piece (%d)", len(arcs), len(pl.Points)-1)
	}
	for i := 0; i+1 < len(pl.Points); i++ {
		a := arcs[pl.Points[i].Arc]
		if !a.From.Near(pl.Points[i].Pos, 1e-9) || !a.To.Near(pl.Points[i+1].Pos, 1e-9) {
			t.Errorf("edge %d maps to arc %+v", i, a)
		}
		if a.Kind == ArcCircle {
			r0 := a.From.Distance(a.Center)
			r1 := a.To.Distance(a.Center)
			if math.Abs(r0-a.Radius) > 1e-6 || math.Abs(r1-a.Radius) > 1e-6 {
				t.Errorf("arc %d endpoints off its circle", i)
			}
		}
	}
	if got := pl.Points[len(pl.Points)-1].Arc; got != -1 {
		t.Errorf("last point arc = %d, want -1", got)
	}
}

func TestFlattenDegenerate(t *testing.T) {
	sps := Resolve([]Entry{MoveToEntry(geom.Pt(3, 3)), LineToEntry(geom.Pt(3, 3))})
	if pl := Flatten(sps[0], nil); len(pl.Points) != 0 {
		t.Errorf("points = %d, want 0", len(pl.Points))
	}
}

func TestOutlines(t *testing.T) {
	sps := Resolve([]Entry{
		// open triangle, closed implicitly
		MoveToEntry(geom.Pt(0, 0)), LineToEntry(geom.Pt(10, 0)), LineToEntry(geom.Pt(0, 10)),
		// a lone line encloses nothing
		MoveToEntry(geom.Pt(20, 0)), LineToEntry(geom.Pt(30, 0)),
		// full circle without ClosePath
		MoveToEntry(geom.Pt(55, 50)),
		ArcEntry(geom.Pt(50, 50), 5, 0, 2*math.Pi, geom.Clockwise),
	})
	outlines, arcs := Outlines(sps)
	if len(outlines) != 2 {
		t.Fatalf("outlines = %d, want 2", len(outlines))
	}

	tri := outlines[0]
	if len(tri.Points) != 3 {
		t.Errorf("triangle points = %d, want 3", len(tri.Points))
	}
	closing := arcs[tri.EdgeArc[2]]
	if closing.Kind != ArcLine || closing.From != geom.Pt(0, 10) || closing.To != geom.Pt(0, 0) {
		t.Errorf("closing arc = %+v", closing)
	}

	circle := outlines[1]
	first, last := circle.Points[0], circle.Points[len(circle.Points)-1]
	if first.Near(last, 1e-6) {
		t.Error("circle outline repeats its first point")
	}
	for i, a := range circle.EdgeArc {
		if a < 0 || arcs[a].Kind != ArcCircle {
			t.Errorf("circle edge %d arc = %d", i, a)
		}
	}
}
