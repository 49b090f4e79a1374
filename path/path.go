package path

import (
	"iter"
	"slices"

	"github.com/gogpu/plotgpu/geom"
)

// Data tags paths in untransformed user coordinates.
type Data struct{}

// Canvas tags paths in device pixel coordinates.
type Canvas struct{}

// Space is the set of coordinate-space tags.
type Space interface {
	Data | Canvas
}

// Path is an immutable sequence of drawing codes in coordinate space S.
type Path[S Space] struct {
	codes []Code
}

// DataPath is a path in user coordinates.
type DataPath = Path[Data]

// CanvasPath is a path in device coordinates.
type CanvasPath = Path[Canvas]

// New creates a path from codes. The slice is copied.
func New[S Space](codes ...Code) Path[S] {
	return Path[S]{codes: slices.Clone(codes)}
}

// Len returns the number of codes.
func (p Path[S]) Len() int { return len(p.codes) }

// At returns the i-th code.
func (p Path[S]) At(i int) Code { return p.codes[i] }

// Codes returns a copy of the codes.
func (p Path[S]) Codes() []Code { return slices.Clone(p.codes) }

// All iterates over the codes in order.
func (p Path[S]) All() iter.Seq2[int, Code] {
	return slices.All(p.codes)
}

// IsEmpty reports whether the path has no codes.
func (p Path[S]) IsEmpty() bool { return len(p.codes) == 0 }

// IsClosed reports whether every subpath ends in ClosePoly.
// An empty path is not closed.
func (p Path[S]) IsClosed() bool {
	if len(p.codes) == 0 {
		return false
	}
	for i, c := range p.codes {
		if _, ok := c.(MoveTo); ok && i > 0 {
			if _, closed := p.codes[i-1].(ClosePoly); !closed {
				return false
			}
		}
	}
	_, ok := p.codes[len(p.codes)-1].(ClosePoly)
	return ok
}

// LastPoint returns the tail of the final code, or the origin for an
// empty path.
func (p Path[S]) LastPoint() geom.Point {
	if len(p.codes) == 0 {
		return geom.Point{}
	}
	return p.codes[len(p.codes)-1].Tail()
}

// Bounds returns the bounding box of all points, control points
// included.
func (p Path[S]) Bounds() geom.Bounds {
	var b geom.Bounds
	first := true
	add := func(pt geom.Point) {
		if first {
			b = geom.Bounds{P0: pt, P1: pt}
			first = false
			return
		}
		b = b.AddPoint(pt)
	}
	for _, c := range p.codes {
		switch c := c.(type) {
		case Bezier2:
			add(c.Ctrl)
		case Bezier3:
			add(c.Ctrl1)
			add(c.Ctrl2)
		}
		add(c.Tail())
	}
	return b
}

// Map applies m to every point and returns a path in the same space.
func (p Path[S]) Map(m geom.Affine2D) Path[S] {
	return Path[S]{codes: transformCodes(p.codes, m)}
}

// Transform maps a data-space path into canvas space.
func Transform(p DataPath, m geom.Affine2D) CanvasPath {
	return CanvasPath{codes: transformCodes(p.codes, m)}
}

func transformCodes(codes []Code, m geom.Affine2D) []Code {
	out := make([]Code, len(codes))
	for i, c := range codes {
		out[i] = c.transform(m)
	}
	return out
}
