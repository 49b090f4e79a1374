package tess

import (
	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

// Triangulator splits a simple polygon into triangles.
type Triangulator interface {
	Triangulate(sink Sink, poly []geom.Point)
}

// Fill tessellates the interior of a closed path. Each subpath is
// triangulated on its own with tri (EarClip when nil). A quadratic edge
// bulging outward keeps its chord in the polygon and adds a convex fill;
// one bulging inward routes the polygon through its control point and
// adds a concave fill, so curved edges never double-cover.
//
// Fill panics if the path is not closed. Holes and self-intersecting
// subpaths are not supported.
func Fill(sink Sink, p path.CanvasPath, tri Triangulator) {
	if !p.IsClosed() {
		panic("tess: fill requires a closed path")
	}
	if tri == nil {
		tri = EarClip{}
	}

	var f filler
	var cur geom.Point
	for _, code := range p.All() {
		switch c := code.(type) {
		case path.MoveTo:
			f.edges = f.edges[:0]
		case path.LineTo:
			f.edges = append(f.edges, segment{a: cur, b: c.P})
		case path.Bezier2:
			f.edges = append(f.edges, segment{a: cur, ctrl: c.Ctrl, b: c.End, curved: true})
		case path.Bezier3:
			mustNormalized()
		case path.ClosePoly:
			f.edges = append(f.edges, segment{a: cur, b: c.P})
			f.emit(sink, tri)
			f.edges = f.edges[:0]
		}
		cur = code.Tail()
	}
}

type filler struct {
	edges []segment
	poly  []geom.Point
}

func (f *filler) emit(sink Sink, tri Triangulator) {
	if len(f.edges) == 0 {
		return
	}

	// orientation from the on-curve points
	var area float32
	start := f.edges[0].a
	for _, e := range f.edges {
		area += e.a.Cross(e.b)
	}
	area += f.edges[len(f.edges)-1].b.Cross(start)

	f.poly = append(f.poly[:0], start)
	for _, e := range f.edges {
		if e.curved {
			cross := e.b.Sub(e.a).Cross(e.ctrl.Sub(e.a))
			inward := (area > 0) == (cross > 0)
			if inward && cross != 0 {
				sink.Curve(e.a, e.ctrl, e.b, Concave)
				f.push(e.ctrl)
			} else {
				sink.Curve(e.a, e.ctrl, e.b, Convex)
			}
		}
		f.push(e.b)
	}
	if n := len(f.poly); n > 1 && f.poly[n-1] == f.poly[0] {
		f.poly = f.poly[:n-1]
	}
	if len(f.poly) >= 3 {
		tri.Triangulate(sink, f.poly)
	}
}

func (f *filler) push(p geom.Point) {
	if n := len(f.poly); n > 0 && f.poly[n-1] == p {
		return
	}
	f.poly = append(f.poly, p)
}
