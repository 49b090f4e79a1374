package geom

import "fmt"

// Bounds is an axis-aligned box spanned by two corner points.
// P0 and P1 need not be ordered.
type Bounds struct {
	P0, P1 Point
}

// NewBounds creates bounds from two corners.
func NewBounds(x0, y0, x1, y1 float32) Bounds {
	return Bounds{P0: Point{X: x0, Y: y0}, P1: Point{X: x1, Y: y1}}
}

// Extent creates bounds anchored at the origin.
func Extent(width, height float32) Bounds {
	return NewBounds(0, 0, width, height)
}

// UnitBounds returns the bounds [0,0]..[1,1].
func UnitBounds() Bounds { return NewBounds(0, 0, 1, 1) }

// XMin returns the smallest x coordinate.
func (b Bounds) XMin() float32 { return min(b.P0.X, b.P1.X) }

// YMin returns the smallest y coordinate.
func (b Bounds) YMin() float32 { return min(b.P0.Y, b.P1.Y) }

// XMax returns the largest x coordinate.
func (b Bounds) XMax() float32 { return max(b.P0.X, b.P1.X) }

// YMax returns the largest y coordinate.
func (b Bounds) YMax() float32 { return max(b.P0.Y, b.P1.Y) }

// Width returns the absolute width.
func (b Bounds) Width() float32 { return abs(b.P1.X - b.P0.X) }

// Height returns the absolute height.
func (b Bounds) Height() float32 { return abs(b.P1.Y - b.P0.Y) }

// IsZero reports whether the bounds have no area.
func (b Bounds) IsZero() bool { return b.Width() == 0 || b.Height() == 0 }

// Contains reports whether p lies inside the bounds, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.XMin() && p.X <= b.XMax() &&
		p.Y >= b.YMin() && p.Y <= b.YMax()
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return NewBounds(
		min(b.XMin(), o.XMin()), min(b.YMin(), o.YMin()),
		max(b.XMax(), o.XMax()), max(b.YMax(), o.YMax()),
	)
}

// AddPoint returns the smallest bounds containing both b and p.
func (b Bounds) AddPoint(p Point) Bounds {
	return b.Union(Bounds{P0: p, P1: p})
}

// AffineTo returns the transform mapping b onto to. Degenerate source
// extents are floored to Epsilon.
func (b Bounds) AffineTo(to Bounds) Affine2D {
	w := max(b.Width(), Epsilon)
	h := max(b.Height(), Epsilon)

	return Identity().
		Translate(-b.XMin(), -b.YMin()).
		Scale(to.Width()/w, to.Height()/h).
		Translate(to.XMin(), to.YMin())
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", b.XMin(), b.YMin(), b.XMax(), b.YMax())
}

// Clip is an optional device-space clip rectangle. The zero value is
// unclipped.
type Clip struct {
	Bounds Bounds
	Set    bool
}

// NoClip is the unclipped value.
var NoClip = Clip{}

// ClipTo returns a clip restricted to b.
func ClipTo(b Bounds) Clip {
	return Clip{Bounds: b, Set: true}
}
