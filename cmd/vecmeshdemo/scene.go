package main

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/vecmesh"
	"github.com/pelletier/go-toml/v2"
)

// Scene is a list of shapes drawn in order on a canvas.
type Scene struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Background  string  `toml:"background"`
	Tessellator string  `toml:"tessellator"`
	Shapes      []Shape `toml:"shape"`
}

// Shape is one Stroke or Fill call.
type Shape struct {
	Op         string    `toml:"op"` // "stroke" or "fill"
	Color      string    `toml:"color"`
	Gradient   []string  `toml:"gradient"`
	Width      float64   `toml:"width"`
	Join       string    `toml:"join"`
	Cap        string    `toml:"cap"`
	MiterLimit float64   `toml:"miter_limit"`
	Rule       string    `toml:"rule"`
	Path       []Command `toml:"path"`
}

// Command is one path command. Which fields are read depends on Cmd.
type Command struct {
	Cmd   string  `toml:"cmd"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	X1    float64 `toml:"x1"`
	Y1    float64 `toml:"y1"`
	X2    float64 `toml:"x2"`
	Y2    float64 `toml:"y2"`
	W     float64 `toml:"w"`
	H     float64 `toml:"h"`
	R     float64 `toml:"r"`
	Start float64 `toml:"start"` // degrees
	End   float64 `toml:"end"`   // degrees
	CCW   bool    `toml:"ccw"`
}

// LoadScene decodes a scene, rejecting unknown keys.
func LoadScene(r io.Reader) (*Scene, error) {
	sc := &Scene{Width: 256, Height: 256}
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// ParseScene decodes a scene held in memory.
func ParseScene(data []byte) (*Scene, error) {
	return LoadScene(bytes.NewReader(data))
}

var (
	joins = map[string]vecmesh.LineJoin{"": vecmesh.LineJoinMiter, "miter": vecmesh.LineJoinMiter, "round": vecmesh.LineJoinRound, "bevel": vecmesh.LineJoinBevel}
	caps  = map[string]vecmesh.LineCap{"": vecmesh.LineCapButt, "butt": vecmesh.LineCapButt, "round": vecmesh.LineCapRound, "square": vecmesh.LineCapSquare}
	rules = map[string]vecmesh.FillRule{"": vecmesh.FillRuleNonZero, "nonzero": vecmesh.FillRuleNonZero, "evenodd": vecmesh.FillRuleEvenOdd}

	tessellators = map[string]vecmesh.Tessellator{
		"":         vecmesh.AutoTessellator,
		"auto":     vecmesh.AutoTessellator,
		"sweep":    vecmesh.SweepTessellator,
		"poly2tri": vecmesh.Poly2TriTessellator,
	}
)

func (sc *Scene) validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("scene size %dx%d: must be positive", sc.Width, sc.Height)
	}
	if _, ok := tessellators[sc.Tessellator]; !ok {
		return fmt.Errorf("unknown tessellator %q", sc.Tessellator)
	}
	for i, s := range sc.Shapes {
		if s.Op != "stroke" && s.Op != "fill" {
			return fmt.Errorf("shape %d: unknown op %q", i, s.Op)
		}
		if _, ok := joins[s.Join]; !ok {
			return fmt.Errorf("shape %d: unknown join %q", i, s.Join)
		}
		if _, ok := caps[s.Cap]; !ok {
			return fmt.Errorf("shape %d: unknown cap %q", i, s.Cap)
		}
		if _, ok := rules[s.Rule]; !ok {
			return fmt.Errorf("shape %d: unknown rule %q", i, s.Rule)
		}
		for j, c := range s.Path {
			if _, ok := commands[c.Cmd]; !ok {
				return fmt.Errorf("shape %d, command %d: unknown cmd %q", i, j, c.Cmd)
			}
		}
	}
	return nil
}

var commands = map[string]func(p *vecmesh.Painter2D, c Command){
	"move":  func(p *vecmesh.Painter2D, c Command) { p.MoveTo(vecmesh.Pt(c.X, c.Y)) },
	"line":  func(p *vecmesh.Painter2D, c Command) { p.LineTo(vecmesh.Pt(c.X, c.Y)) },
	"arcto": func(p *vecmesh.Painter2D, c Command) { p.ArcTo(vecmesh.Pt(c.X1, c.Y1), vecmesh.Pt(c.X2, c.Y2), c.R) },
	"arc": func(p *vecmesh.Painter2D, c Command) {
		dir := vecmesh.Clockwise
		if c.CCW {
			dir = vecmesh.CounterClockwise
		}
		p.Arc(vecmesh.Pt(c.X, c.Y), c.R, c.Start*math.Pi/180, c.End*math.Pi/180, dir)
	},
	"cubic": func(p *vecmesh.Painter2D, c Command) {
		p.BezierCurveTo(vecmesh.Pt(c.X1, c.Y1), vecmesh.Pt(c.X2, c.Y2), vecmesh.Pt(c.X, c.Y))
	},
	"quad":   func(p *vecmesh.Painter2D, c Command) { p.QuadraticCurveTo(vecmesh.Pt(c.X1, c.Y1), vecmesh.Pt(c.X, c.Y)) },
	"close":  func(p *vecmesh.Painter2D, c Command) { p.ClosePath() },
	"rect":   func(p *vecmesh.Painter2D, c Command) { p.Rect(c.X, c.Y, c.W, c.H) },
	"circle": func(p *vecmesh.Painter2D, c Command) { p.Circle(vecmesh.Pt(c.X, c.Y), c.R) },
}

// Draw issues every shape of the scene on p. Unset style fields keep the
// painter's defaults.
func (sc *Scene) Draw(p *vecmesh.Painter2D) {
	for _, s := range sc.Shapes {
		p.BeginPath()
		for _, c := range s.Path {
			commands[c.Cmd](p, c)
		}

		if s.Width > 0 {
			p.LineWidth = s.Width
		}
		if s.MiterLimit > 0 {
			p.MiterLimit = s.MiterLimit
		}
		p.LineJoin = joins[s.Join]
		p.LineCap = caps[s.Cap]
		p.StrokeGradient = nil
		if len(s.Gradient) > 0 {
			p.StrokeGradient = gradient(s.Gradient)
		}

		if s.Op == "fill" {
			p.FillColor = colorOr(s.Color, vecmesh.White)
			p.Fill(rules[s.Rule])
			continue
		}
		p.StrokeColor = colorOr(s.Color, vecmesh.Black)
		p.Stroke()
	}
}

// gradient spreads the colors evenly over the path.
func gradient(colors []string) *vecmesh.Gradient {
	g := vecmesh.NewGradient()
	for i, c := range colors {
		t := 0.0
		if len(colors) > 1 {
			t = float64(i) / float64(len(colors)-1)
		}
		g.AddColorStop(t, vecmesh.Hex(c))
	}
	return g
}

func colorOr(hex string, def vecmesh.RGBA) vecmesh.RGBA {
	if hex == "" {
		return def
	}
	return vecmesh.Hex(hex)
}
