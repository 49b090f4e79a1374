package plotgpu

import (
	"github.com/gogpu/plotgpu/tess"
)

// Defaults applied to unset PathStyle fields.
const (
	// DefaultLineWidth is the stroke width in points.
	DefaultLineWidth = 0.5

	// DefaultDashWidth is the width in points dash patterns scale with
	// when no line width is set.
	DefaultDashWidth = 2.0

	// minHalfWidth is the stroke half width floor in pixels.
	minHalfWidth = 0.5
)

// PathStyle describes how a path is filled and stroked. The zero value
// and a nil *PathStyle both mean all defaults: black face, edge equal to
// the face, a 0.5pt solid line with bevel joins and butt caps.
//
// Setters return the style so calls can be chained:
//
//	style := new(plotgpu.PathStyle).SetFace(plotgpu.Red).SetLineWidth(2)
type PathStyle struct {
	face, edge       Color
	hasFace, hasEdge bool

	lineWidth    float32
	hasLineWidth bool

	join      tess.JoinStyle
	cap       tess.CapStyle
	lineStyle tess.LineStyle
	dash      []float32
}

// SetFace sets the fill color. Transparent disables filling.
func (s *PathStyle) SetFace(c Color) *PathStyle {
	s.face, s.hasFace = c, true
	return s
}

// SetEdge sets the stroke color. Transparent disables stroking.
func (s *PathStyle) SetEdge(c Color) *PathStyle {
	s.edge, s.hasEdge = c, true
	return s
}

// SetLineWidth sets the stroke width in points. Zero or less disables
// stroking.
func (s *PathStyle) SetLineWidth(w float32) *PathStyle {
	s.lineWidth, s.hasLineWidth = w, true
	return s
}

// SetJoin sets the join style.
func (s *PathStyle) SetJoin(j tess.JoinStyle) *PathStyle {
	s.join = j
	return s
}

// SetCap sets the cap style.
func (s *PathStyle) SetCap(c tess.CapStyle) *PathStyle {
	s.cap = c
	return s
}

// SetLineStyle sets a predefined dash style.
func (s *PathStyle) SetLineStyle(ls tess.LineStyle) *PathStyle {
	s.lineStyle = ls
	return s
}

// SetDash sets a custom on/off pattern in points. It takes precedence
// over the line style. nil restores the line style.
func (s *PathStyle) SetDash(pattern ...float32) *PathStyle {
	s.dash = pattern
	return s
}

// Face returns the fill color, black when unset.
func (s *PathStyle) Face() Color {
	if s == nil || !s.hasFace {
		return Black
	}
	return s.face
}

// Edge returns the stroke color, the face color when unset.
func (s *PathStyle) Edge() Color {
	if s == nil || !s.hasEdge {
		return s.Face()
	}
	return s.edge
}

// LineWidth returns the stroke width in points and whether it was set.
func (s *PathStyle) LineWidth() (float32, bool) {
	if s == nil || !s.hasLineWidth {
		return DefaultLineWidth, false
	}
	return s.lineWidth, true
}

// Join returns the join style.
func (s *PathStyle) Join() tess.JoinStyle {
	if s == nil {
		return tess.JoinBevel
	}
	return s.join
}

// Cap returns the cap style.
func (s *PathStyle) Cap() tess.CapStyle {
	if s == nil {
		return tess.CapButt
	}
	return s.cap
}

// LineStyle returns the dash style.
func (s *PathStyle) LineStyle() tess.LineStyle {
	if s == nil {
		return tess.Solid
	}
	return s.lineStyle
}

// Dash returns the custom dash pattern in points, or nil.
func (s *PathStyle) Dash() []float32 {
	if s == nil {
		return nil
	}
	return s.dash
}
