package path

import (
	"iter"

	"honnef.co/go/curve"
)

// Shape is anything that can produce curve path elements, such as a
// curve.BezPath or one of the curve package's shapes.
type Shape interface {
	PathElements(tolerance float64) iter.Seq[curve.PathElement]
}

// FromShape converts a curve shape into a path. Tolerance is forwarded to
// shapes that approximate themselves with Beziers.
func FromShape[S Space](s Shape, tolerance float64) Path[S] {
	b := NewBuilder[S]()
	for el := range s.PathElements(tolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			b.MoveTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.LineToKind:
			b.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.QuadToKind:
			b.QuadTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
			)
		case curve.CubicToKind:
			b.CubicTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
				float32(el.P2.X), float32(el.P2.Y),
			)
		case curve.ClosePathKind:
			b.Close()
		}
	}
	return b.Build()
}

// ToBezPath converts a path into a curve.BezPath, the inverse of
// FromShape. ClosePoly becomes a LineTo to its vertex followed by
// ClosePath.
func ToBezPath[S Space](p Path[S]) curve.BezPath {
	var out curve.BezPath
	var cur curve.Point
	for _, c := range p.codes {
		switch c := c.(type) {
		case MoveTo:
			out.MoveTo(pt(c.P.X, c.P.Y))
		case LineTo:
			out.LineTo(pt(c.P.X, c.P.Y))
		case Bezier2:
			out.QuadTo(pt(c.Ctrl.X, c.Ctrl.Y), pt(c.End.X, c.End.Y))
		case Bezier3:
			out.CubicTo(pt(c.Ctrl1.X, c.Ctrl1.Y), pt(c.Ctrl2.X, c.Ctrl2.Y), pt(c.End.X, c.End.Y))
		case ClosePoly:
			if next := pt(c.P.X, c.P.Y); next != cur {
				out.LineTo(next)
			}
			out.ClosePath()
		}
		t := c.Tail()
		cur = pt(t.X, t.Y)
	}
	return out
}

func pt(x, y float32) curve.Point {
	return curve.Point{X: float64(x), Y: float64(y)}
}
