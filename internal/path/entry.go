// Package path holds the recorded path commands and turns them into
// flattened polylines for the stroke and fill tessellators.
package path

import (
	"fmt"

	"github.com/gogpu/vecmesh/internal/geom"
)

// Kind identifies the command stored in an Entry.
type Kind uint8

const (
	// MoveTo starts a new sub-path at P0.
	MoveTo Kind = iota
	// LineTo draws a straight line to P0.
	LineTo
	// ArcTo draws the arc of Radius tangent to the lines
	// (current point, P0) and (P0, P1).
	ArcTo
	// Arc draws a circular arc around P0 from A0 to A1 in direction Dir.
	Arc
	// BezierTo draws a cubic Bezier with controls P0, P1 ending at P2.
	BezierTo
	// QuadTo draws a quadratic Bezier with control P0 ending at P1.
	QuadTo
	// Close closes the current sub-path.
	Close
)

var kindNames = [...]string{"MoveTo", "LineTo", "ArcTo", "Arc", "BezierTo", "QuadTo", "Close"}

// String returns the command name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Entry is one recorded path command. It is a tagged variant: Kind decides
// which of the remaining fields are meaningful.
type Entry struct {
	Kind   Kind
	P0     geom.Point
	P1     geom.Point
	P2     geom.Point
	Radius float64
	A0, A1 float64
	Dir    geom.Direction
}

// MoveToEntry returns a MoveTo entry.
func MoveToEntry(p geom.Point) Entry { return Entry{Kind: MoveTo, P0: p} }

// LineToEntry returns a LineTo entry.
func LineToEntry(p geom.Point) Entry { return Entry{Kind: LineTo, P0: p} }

// ArcToEntry returns an ArcTo entry.
func ArcToEntry(p1, p2 geom.Point, radius float64) Entry {
	return Entry{Kind: ArcTo, P0: p1, P1: p2, Radius: radius}
}

// ArcEntry returns an Arc entry.
func ArcEntry(center geom.Point, radius, a0, a1 float64, dir geom.Direction) Entry {
	return Entry{Kind: Arc, P0: center, Radius: radius, A0: a0, A1: a1, Dir: dir}
}

// BezierToEntry returns a cubic Bezier entry.
func BezierToEntry(c1, c2, p geom.Point) Entry {
	return Entry{Kind: BezierTo, P0: c1, P1: c2, P2: p}
}

// QuadToEntry returns a quadratic Bezier entry.
func QuadToEntry(c, p geom.Point) Entry {
	return Entry{Kind: QuadTo, P0: c, P1: p}
}

// CloseEntry returns a Close entry.
func CloseEntry() Entry { return Entry{Kind: Close} }
