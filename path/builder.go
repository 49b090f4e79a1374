package path

import (
	"math"

	"github.com/gogpu/plotgpu/geom"
)

// Builder provides a fluent interface for path construction.
// All methods return the builder for chaining.
type Builder[S Space] struct {
	codes   []Code
	start   geom.Point
	current geom.Point
	open    bool
}

// NewBuilder starts a new path builder in space S.
func NewBuilder[S Space]() *Builder[S] {
	return &Builder[S]{codes: make([]Code, 0, 16)}
}

// MoveTo starts a new subpath.
func (b *Builder[S]) MoveTo(x, y float32) *Builder[S] {
	pt := geom.Pt(x, y)
	b.codes = append(b.codes, MoveTo{P: pt})
	b.start = pt
	b.current = pt
	b.open = true
	return b
}

// LineTo draws a line to a position. Without a current subpath it acts
// as MoveTo.
func (b *Builder[S]) LineTo(x, y float32) *Builder[S] {
	if !b.open {
		return b.MoveTo(x, y)
	}
	pt := geom.Pt(x, y)
	b.codes = append(b.codes, LineTo{P: pt})
	b.current = pt
	return b
}

// QuadTo draws a quadratic Bezier curve.
func (b *Builder[S]) QuadTo(cx, cy, x, y float32) *Builder[S] {
	if !b.open {
		b.MoveTo(b.current.X, b.current.Y)
	}
	pt := geom.Pt(x, y)
	b.codes = append(b.codes, Bezier2{Ctrl: geom.Pt(cx, cy), End: pt})
	b.current = pt
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *Builder[S]) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Builder[S] {
	if !b.open {
		b.MoveTo(b.current.X, b.current.Y)
	}
	pt := geom.Pt(x, y)
	b.codes = append(b.codes, Bezier3{
		Ctrl1: geom.Pt(c1x, c1y),
		Ctrl2: geom.Pt(c2x, c2y),
		End:   pt,
	})
	b.current = pt
	return b
}

// Close closes the current subpath. A trailing LineTo is folded into
// the ClosePoly; a trailing LineTo back to the subpath start is dropped.
func (b *Builder[S]) Close() *Builder[S] {
	if !b.open {
		return b
	}
	last := len(b.codes) - 1
	if line, ok := b.codes[last].(LineTo); ok {
		b.codes = b.codes[:last]
		if line.P == b.start && last > 0 {
			if prev, ok := b.codes[last-1].(LineTo); ok {
				b.codes = b.codes[:last-1]
				line = prev
			}
		}
		b.codes = append(b.codes, ClosePoly{P: line.P})
	} else {
		b.codes = append(b.codes, ClosePoly{P: b.current})
	}
	b.current = b.start
	b.open = false
	return b
}

// Rect adds a closed axis-aligned rectangle.
func (b *Builder[S]) Rect(x0, y0, x1, y1 float32) *Builder[S] {
	return b.MoveTo(x0, y0).
		LineTo(x1, y0).
		LineTo(x1, y1).
		LineTo(x0, y1).
		Close()
}

// Circle adds a circle made of four cubic arcs.
func (b *Builder[S]) Circle(cx, cy, r float32) *Builder[S] {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse made of four cubic arcs.
func (b *Builder[S]) Ellipse(cx, cy, rx, ry float32) *Builder[S] {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	kx := float32(k) * rx
	ky := float32(k) * ry

	b.MoveTo(cx+rx, cy)
	b.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	b.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	b.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	b.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	return b.Close()
}

// Arc appends a circular arc from angle a0 to a1 counter-clockwise,
// split into segments of at most 90 degrees. When the builder has no
// current subpath the arc starts one.
func (b *Builder[S]) Arc(cx, cy, r float32, a0, a1 geom.Angle) *Builder[S] {
	const twoPi = 2 * math.Pi
	start := float64(a0.Radians())
	end := float64(a1.Radians())
	for end < start {
		end += twoPi
	}

	const maxAngle = math.Pi / 2
	n := max(int(math.Ceil((end-start)/maxAngle)), 1)
	step := (end - start) / float64(n)

	for i := range n {
		t0 := start + float64(i)*step
		b.arcSegment(float64(cx), float64(cy), float64(r), t0, t0+step)
	}
	return b
}

// arcSegment appends a single arc segment of at most 90 degrees.
func (b *Builder[S]) arcSegment(cx, cy, r, a1, a2 float64) {
	tan := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*tan*tan) - 1) / 3

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	if !b.open {
		b.MoveTo(float32(x1), float32(y1))
	}
	b.CubicTo(
		float32(x1-alpha*r*sin1), float32(y1+alpha*r*cos1),
		float32(x2+alpha*r*sin2), float32(y2-alpha*r*cos2),
		float32(x2), float32(y2),
	)
}

// Polygon adds a closed regular polygon with its first vertex at the top.
func (b *Builder[S]) Polygon(cx, cy, radius float32, sides int) *Builder[S] {
	if sides < 3 {
		return b
	}
	step := 2 * math.Pi / float64(sides)
	for i := range sides {
		angle := math.Pi/2 + float64(i)*step
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close()
}

// Star adds a closed star with alternating outer and inner vertices.
func (b *Builder[S]) Star(cx, cy, outer, inner float32, points int) *Builder[S] {
	if points < 3 {
		return b
	}
	step := math.Pi / float64(points)
	for i := range points * 2 {
		angle := math.Pi/2 + float64(i)*step
		r := outer
		if i%2 == 1 {
			r = inner
		}
		x := cx + r*float32(math.Cos(angle))
		y := cy + r*float32(math.Sin(angle))
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close()
}

// Current returns the current point.
func (b *Builder[S]) Current() geom.Point { return b.current }

// Build returns the constructed path. The builder may keep being used;
// later calls do not affect the returned path.
func (b *Builder[S]) Build() Path[S] {
	return New[S](b.codes...)
}
