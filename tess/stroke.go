package tess

import (
	"math"

	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

// JoinStyle is the shape drawn where two stroked segments meet.
type JoinStyle uint8

const (
	JoinBevel JoinStyle = iota
	JoinMiter
	JoinRound
)

func (j JoinStyle) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	default:
		return "bevel"
	}
}

// CapStyle is the shape drawn at the open ends of a stroked subpath.
type CapStyle uint8

const (
	CapButt CapStyle = iota
	CapRound
	CapProjecting
)

func (c CapStyle) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapProjecting:
		return "projecting"
	default:
		return "butt"
	}
}

// StrokeStyle configures Stroke. HalfWidth is half the line width in
// canvas units; zero or less draws nothing. Dash, when non-nil, is
// applied with Resample before stroking.
type StrokeStyle struct {
	HalfWidth float32
	Join      JoinStyle
	Cap       CapStyle
	Dash      []float32
}

const (
	// minJoinWidth is the half width below which joins are skipped.
	minJoinWidth = 1.0

	// minRoundEdge is the edge length below which round joins degrade
	// to bevel.
	minRoundEdge = 1.0

	// detClamp bounds the intersection determinant away from zero so
	// near-parallel miters stay short.
	detClamp = 0.2

	// flatCross is the control-triangle cross product below which a
	// quadratic is stroked as its chord.
	flatCross = 1e-3
)

// LineNormal returns the normal of the segment p0-p1 scaled to
// halfWidth, as (dy, dx) of the unit direction. The outside edge of a
// point b is (b.X+nx, b.Y-ny). Zero-length segments give a zero normal.
func LineNormal(p0, p1 geom.Point, halfWidth float32) (nx, ny float32) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	l := max(float32(math.Hypot(float64(dx), float64(dy))), geom.Epsilon)
	return dy * halfWidth / l, dx * halfWidth / l
}

// LineIntersection intersects the infinite lines p0-p1 and q0-q1. It
// returns false for parallel lines. The point is found by extending
// p0-p1 beyond p1; when the lines meet at a shallow angle the sine of
// that angle is clamped to detClamp so the extension stays short.
func LineIntersection(p0, p1, q0, q1 geom.Point) (geom.Point, bool) {
	pt, _, ok := intersect(p0, p1, q0, q1)
	return pt, ok
}

// intersect is LineIntersection that also reports whether the clamp
// was applied.
func intersect(p0, p1, q0, q1 geom.Point) (pt geom.Point, clamped, ok bool) {
	d := unit(p1.Sub(p0))
	e := unit(q1.Sub(q0))
	det := d.Cross(e)
	if abs32(det) <= geom.Epsilon {
		return p0, false, false
	}
	if abs32(det) < detClamp {
		det = float32(math.Copysign(detClamp, float64(det)))
		clamped = true
	}
	t := q0.Sub(p1).Cross(e) / det
	return p1.Add(d.Mul(t)), clamped, true
}

func unit(v geom.Point) geom.Point {
	return v.Mul(1 / max(v.Length(), geom.Epsilon))
}

func offset(p geom.Point, nx, ny, sign float32) geom.Point {
	return geom.Point{X: p.X + sign*nx, Y: p.Y - sign*ny}
}

// Join emits the join at b1 between segments b0-b1 and b1-b2. Each side
// gets a bevel triangle; Miter adds the triangle to the offset-line
// intersection and Round a curved fill through it. Joins are skipped for
// zero-length segments and for half widths below one unit.
func Join(sink Sink, b0, b1, b2 geom.Point, halfWidth float32, join JoinStyle) {
	if b0 == b1 || b1 == b2 || halfWidth < minJoinWidth {
		return
	}
	joinSide(sink, b0, b1, b2, halfWidth, join, 1)
	joinSide(sink, b0, b1, b2, halfWidth, join, -1)
}

func joinSide(sink Sink, b0, b1, b2 geom.Point, hw float32, join JoinStyle, sign float32) {
	nx, ny := LineNormal(b0, b1, hw)
	p0 := offset(b0, nx, ny, sign)
	p1 := offset(b1, nx, ny, sign)

	nx, ny = LineNormal(b1, b2, hw)
	q1 := offset(b1, nx, ny, sign)
	q2 := offset(b2, nx, ny, sign)

	sink.Triangle(p1, q1, b1)

	switch join {
	case JoinMiter:
		if mp, ok := LineIntersection(p0, p1, q1, q2); ok {
			sink.Triangle(p1, mp, q1)
		}
	case JoinRound:
		mp, ok := LineIntersection(p0, p1, q1, q2)
		if ok && p0.Distance(p1) > minRoundEdge && q1.Distance(q2) > minRoundEdge {
			sink.Curve(p1, mp, q1, Convex)
		}
	}
}

// Cap emits the cap beyond b1 at the end of segment b0-b1.
func Cap(sink Sink, b0, b1 geom.Point, halfWidth float32, style CapStyle) {
	if b0 == b1 || style == CapButt {
		return
	}

	nx, ny := LineNormal(b0, b1, halfWidth)
	dx, dy := ny, nx

	p0 := geom.Point{X: b1.X + nx, Y: b1.Y - ny}
	p1 := geom.Point{X: p0.X + dx, Y: p0.Y + dy}
	q0 := geom.Point{X: b1.X - nx, Y: b1.Y + ny}
	q1 := geom.Point{X: q0.X + dx, Y: q0.Y + dy}
	mp := geom.Point{X: b1.X + dx, Y: b1.Y + dy}

	switch style {
	case CapRound:
		sink.Triangle(p0, mp, q0)
		sink.Curve(p0, p1, mp, Convex)
		sink.Curve(mp, q1, q0, Convex)
	case CapProjecting:
		sink.Triangle(p0, p1, q1)
		sink.Triangle(q1, q0, p0)
	}
}

// Line emits the two triangles of the band of width 2*halfWidth
// centered on p0-p1.
func Line(sink Sink, p0, p1 geom.Point, halfWidth float32) {
	nx, ny := LineNormal(p0, p1, halfWidth)

	a := offset(p0, nx, ny, 1)
	b := offset(p0, nx, ny, -1)
	c := offset(p1, nx, ny, 1)
	d := offset(p1, nx, ny, -1)

	sink.Triangle(a, c, d)
	sink.Triangle(d, b, a)
}

// Quad emits the band of width 2*halfWidth centered on the quadratic
// p0-ctrl-p1. The offset curves are approximated by quadratics whose
// control points are the intersections of the offset control legs.
// The band is the pentagon fanned from the inner control point, plus
// the convex fill under the outer curve and the concave fill over the
// inner one.
func Quad(sink Sink, p0, ctrl, p1 geom.Point, halfWidth float32) {
	if abs32(ctrl.Sub(p0).Cross(p1.Sub(p0))) < flatCross {
		Line(sink, p0, p1, halfWidth)
		return
	}

	n0x, n0y := LineNormal(p0, ctrl, halfWidth)
	n1x, n1y := LineNormal(ctrl, p1, halfWidth)

	// the outer side is the one the control point bulges toward
	outer := float32(1)
	bulge := ctrl.Sub(p0.Mid(p1))
	if (geom.Point{X: n0x, Y: -n0y}).Dot(bulge) < 0 {
		outer = -1
	}

	side := func(sign float32) (a, c, b geom.Point) {
		a = offset(p0, n0x, n0y, sign)
		b = offset(p1, n1x, n1y, sign)
		c0 := offset(ctrl, n0x, n0y, sign)
		c1 := offset(ctrl, n1x, n1y, sign)
		c, clamped, ok := intersect(a, c0, c1, b)
		if !ok || clamped {
			c = c0
		}
		return a, c, b
	}

	ao, co, bo := side(outer)
	ai, ci, bi := side(-outer)

	sink.Curve(ao, co, bo, Convex)
	sink.Curve(ai, ci, bi, Concave)

	sink.Triangle(ci, ai, ao)
	sink.Triangle(ci, ao, bo)
	sink.Triangle(ci, bo, bi)
}

// Stroke tessellates the outline of p. Every segment becomes a band,
// interior vertices and ClosePoly wraparounds get joins, and open
// subpath ends get caps. It panics on a Bezier3.
func Stroke(sink Sink, p path.CanvasPath, style StrokeStyle) {
	if style.HalfWidth <= 0 {
		return
	}
	if style.Dash != nil {
		p = Resample(p, style.Dash)
	}

	s := stroker{sink: sink, style: style}
	var cur geom.Point
	for _, code := range p.All() {
		switch c := code.(type) {
		case path.MoveTo:
			s.finish()
			s.start = c.P
		case path.LineTo:
			s.add(segment{a: cur, b: c.P})
		case path.Bezier2:
			s.add(segment{a: cur, ctrl: c.Ctrl, b: c.End, curved: true})
		case path.Bezier3:
			mustNormalized()
		case path.ClosePoly:
			s.add(segment{a: cur, b: c.P})
			s.add(segment{a: c.P, b: s.start})
			s.closed = true
			s.finish()
			s.start = c.P
		}
		cur = code.Tail()
	}
	s.finish()
}

type segment struct {
	a, ctrl, b geom.Point
	curved     bool
}

// from returns the point the segment leaves a from.
func (s segment) from() geom.Point {
	if s.curved && s.ctrl != s.a {
		return s.ctrl
	}
	return s.b
}

// to returns the point the segment arrives at b from.
func (s segment) to() geom.Point {
	if s.curved && s.ctrl != s.b {
		return s.ctrl
	}
	return s.a
}

type stroker struct {
	sink   Sink
	style  StrokeStyle
	start  geom.Point
	segs   []segment
	closed bool
}

func (s *stroker) add(seg segment) {
	if seg.a == seg.b && (!seg.curved || seg.ctrl == seg.a) {
		return
	}
	s.segs = append(s.segs, seg)
}

// finish emits the pending subpath and resets for the next one.
func (s *stroker) finish() {
	defer func() {
		s.segs = s.segs[:0]
		s.closed = false
	}()
	if len(s.segs) == 0 {
		return
	}

	hw := s.style.HalfWidth
	for i, seg := range s.segs {
		if seg.curved {
			Quad(s.sink, seg.a, seg.ctrl, seg.b, hw)
		} else {
			Line(s.sink, seg.a, seg.b, hw)
		}
		if i > 0 {
			prev := s.segs[i-1]
			Join(s.sink, prev.to(), seg.a, seg.from(), hw, s.style.Join)
		}
	}

	first, last := s.segs[0], s.segs[len(s.segs)-1]
	if s.closed {
		if len(s.segs) > 1 {
			Join(s.sink, last.to(), first.a, first.from(), hw, s.style.Join)
		}
		return
	}
	Cap(s.sink, first.from(), first.a, hw, s.style.Cap)
	Cap(s.sink, last.to(), last.b, hw, s.style.Cap)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
