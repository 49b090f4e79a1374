package path

import (
	"fmt"

	"github.com/gogpu/plotgpu/geom"
)

// Code is a single drawing command.
type Code interface {
	// Tail returns the point the command leaves as the current point.
	Tail() geom.Point

	transform(m geom.Affine2D) Code
}

// MoveTo starts a new subpath at P.
type MoveTo struct {
	P geom.Point
}

// LineTo draws a straight segment to P.
type LineTo struct {
	P geom.Point
}

// Bezier2 draws a quadratic Bezier curve to End.
type Bezier2 struct {
	Ctrl geom.Point
	End  geom.Point
}

// Bezier3 draws a cubic Bezier curve to End.
type Bezier3 struct {
	Ctrl1 geom.Point
	Ctrl2 geom.Point
	End   geom.Point
}

// ClosePoly draws a segment to P and closes the subpath back to its
// MoveTo point.
type ClosePoly struct {
	P geom.Point
}

func (c MoveTo) Tail() geom.Point    { return c.P }
func (c LineTo) Tail() geom.Point    { return c.P }
func (c Bezier2) Tail() geom.Point   { return c.End }
func (c Bezier3) Tail() geom.Point   { return c.End }
func (c ClosePoly) Tail() geom.Point { return c.P }

func (c MoveTo) transform(m geom.Affine2D) Code { return MoveTo{P: m.Transform(c.P)} }
func (c LineTo) transform(m geom.Affine2D) Code { return LineTo{P: m.Transform(c.P)} }

func (c Bezier2) transform(m geom.Affine2D) Code {
	return Bezier2{Ctrl: m.Transform(c.Ctrl), End: m.Transform(c.End)}
}

func (c Bezier3) transform(m geom.Affine2D) Code {
	return Bezier3{
		Ctrl1: m.Transform(c.Ctrl1),
		Ctrl2: m.Transform(c.Ctrl2),
		End:   m.Transform(c.End),
	}
}

func (c ClosePoly) transform(m geom.Affine2D) Code { return ClosePoly{P: m.Transform(c.P)} }

func (c MoveTo) String() string { return fmt.Sprintf("MoveTo(%g,%g)", c.P.X, c.P.Y) }
func (c LineTo) String() string { return fmt.Sprintf("LineTo(%g,%g)", c.P.X, c.P.Y) }
func (c Bezier2) String() string {
	return fmt.Sprintf("Bezier2(%g,%g %g,%g)", c.Ctrl.X, c.Ctrl.Y, c.End.X, c.End.Y)
}

func (c Bezier3) String() string {
	return fmt.Sprintf("Bezier3(%g,%g %g,%g %g,%g)",
		c.Ctrl1.X, c.Ctrl1.Y, c.Ctrl2.X, c.Ctrl2.Y, c.End.X, c.End.Y)
}

func (c ClosePoly) String() string { return fmt.Sprintf("ClosePoly(%g,%g)", c.P.X, c.P.Y) }
