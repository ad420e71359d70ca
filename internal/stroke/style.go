package stroke

import "fmt"

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// String returns the cap name.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "Butt"
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return fmt.Sprintf("LineCap(%d)", int(c))
	}
}

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// String returns the join name.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "Miter"
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return fmt.Sprintf("LineJoin(%d)", int(j))
	}
}

// Stroke defines the style for stroke tessellation.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// WeldThreshold scales how long the segments around a join must be
	// for the inner vertices to be welded at the offset-line intersection.
	// Below it the strips keep separate inner corners.
	WeldThreshold float64
}

// Default style values.
const (
	DefaultMiterLimit    = 10.0
	DefaultWeldThreshold = 1.0
)

// DefaultStroke returns a stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:         1.0,
		Cap:           LineCapButt,
		Join:          LineJoinMiter,
		MiterLimit:    DefaultMiterLimit,
		WeldThreshold: DefaultWeldThreshold,
	}
}

// sanitized replaces out-of-range parameters with usable values.
func (s Stroke) sanitized() Stroke {
	if s.MiterLimit <= 0 {
		s.MiterLimit = DefaultMiterLimit
	}
	if s.WeldThreshold < 0 {
		s.WeldThreshold = 0
	}
	return s
}
