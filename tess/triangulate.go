package tess

import (
	"github.com/ByteArena/poly2tri-go"

	"github.com/gogpu/plotgpu/geom"
)

// EarClip triangulates simple polygons by ear clipping in O(n²).
// Collinear vertices are dropped without emitting a triangle. Emitted
// triangles keep the winding of the input.
type EarClip struct{}

// Triangulate implements Triangulator.
func (EarClip) Triangulate(sink Sink, poly []geom.Point) {
	n := len(poly)
	if n < 3 {
		return
	}
	if n == 3 {
		sink.Triangle(poly[0], poly[1], poly[2])
		return
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	orient := float32(1)
	if signedArea(poly) < 0 {
		orient = -1
	}

	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			ia := idx[(i+len(idx)-1)%len(idx)]
			ib := idx[i]
			ic := idx[(i+1)%len(idx)]
			a, b, c := poly[ia], poly[ib], poly[ic]

			turn := b.Sub(a).Cross(c.Sub(b)) * orient
			if turn == 0 {
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if turn < 0 || !isEar(poly, idx, ia, ib, ic) {
				continue
			}
			sink.Triangle(a, b, c)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// not simple; the remainder is dropped
			return
		}
	}
	a, b, c := poly[idx[0]], poly[idx[1]], poly[idx[2]]
	if b.Sub(a).Cross(c.Sub(a)) != 0 {
		sink.Triangle(a, b, c)
	}
}

// isEar reports whether no other remaining vertex lies inside a-b-c.
func isEar(poly []geom.Point, idx []int, ia, ib, ic int) bool {
	a, b, c := poly[ia], poly[ib], poly[ic]
	for _, j := range idx {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := poly[j]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c geom.Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func signedArea(poly []geom.Point) float32 {
	var sum float32
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// SweepTriangulator triangulates with the poly2tri constrained Delaunay
// sweep. It gives better-shaped triangles than EarClip on long polygons
// but panics on duplicate or self-touching vertices.
type SweepTriangulator struct{}

// Triangulate implements Triangulator.
func (SweepTriangulator) Triangulate(sink Sink, poly []geom.Point) {
	if len(poly) < 3 {
		return
	}

	contour := make([]*poly2tri.Point, 0, len(poly))
	for _, p := range poly {
		contour = append(contour, poly2tri.NewPoint(float64(p.X), float64(p.Y)))
	}

	swctx := poly2tri.NewSweepContext(contour, false)
	swctx.Triangulate()

	for _, tr := range swctx.GetTriangles() {
		sink.Triangle(
			geom.Pt(float32(tr.Points[0].X), float32(tr.Points[0].Y)),
			geom.Pt(float32(tr.Points[1].X), float32(tr.Points[1].Y)),
			geom.Pt(float32(tr.Points[2].X), float32(tr.Points[2].Y)),
		)
	}
}
