package tess

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

func approxArea(t *testing.T, g *Geometry, want float32) {
	t.Helper()
	if a := g.Area(); math.Abs(float64(a-want)) > 1e-3 {
		t.Errorf("area = %v, want %v", a, want)
	}
}

func TestFillTriangle(t *testing.T) {
	p := path.Polygon[path.Canvas](geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 10))
	var g Geometry
	Fill(&g, p, nil)

	want := [][3]geom.Point{{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 10)}}
	if diff := cmp.Diff(want, g.Triangles); diff != "" {
		t.Errorf("triangles mismatch (-want +got):\n%s", diff)
	}
	if len(g.Curves) != 0 {
		t.Errorf("curves = %d, want 0", len(g.Curves))
	}
}

func TestFillExplicitReturnToStart(t *testing.T) {
	// ClosePoly at the start point adds no vertex
	p := path.New[path.Canvas](
		path.MoveTo{P: geom.Pt(0, 0)},
		path.LineTo{P: geom.Pt(10, 0)},
		path.LineTo{P: geom.Pt(5, 10)},
		path.ClosePoly{P: geom.Pt(0, 0)},
	)
	var g Geometry
	Fill(&g, p, nil)
	if len(g.Triangles) != 1 {
		t.Fatalf("triangles = %d, want 1", len(g.Triangles))
	}
	approxArea(t, &g, 50)
}

func TestFillPolygons(t *testing.T) {
	tests := []struct {
		name      string
		pts       []geom.Point
		triangles int
		area      float32
	}{
		{"square", []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}, 2, 100},
		{"clockwise square", []geom.Point{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10), geom.Pt(10, 0)}, 2, 100},
		{"concave L", []geom.Point{
			geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 5),
			geom.Pt(5, 5), geom.Pt(5, 10), geom.Pt(0, 10),
		}, 4, 75},
		{"collinear vertex", []geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}, 3, 100},
		{"degenerate", []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Geometry
			Fill(&g, path.Polygon[path.Canvas](tt.pts...), nil)
			if len(g.Triangles) != tt.triangles {
				t.Errorf("triangles = %d, want %d", len(g.Triangles), tt.triangles)
			}
			approxArea(t, &g, tt.area)
		})
	}
}

func TestFillSubpaths(t *testing.T) {
	p := path.NewBuilder[path.Canvas]().Rect(0, 0, 10, 10).Rect(20, 0, 30, 5).Build()
	var g Geometry
	Fill(&g, p, nil)
	if len(g.Triangles) != 4 {
		t.Errorf("triangles = %d, want 4", len(g.Triangles))
	}
	approxArea(t, &g, 150)
}

func TestFillCurvedEdges(t *testing.T) {
	tests := []struct {
		name string
		ctrl geom.Point
		side CurveSide
		area float32
	}{
		{"outward", geom.Pt(15, 5), Convex, 100},
		{"inward", geom.Pt(5, 5), Concave, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := path.NewBuilder[path.Canvas]().
				MoveTo(0, 0).
				LineTo(10, 0).
				QuadTo(tt.ctrl.X, tt.ctrl.Y, 10, 10).
				LineTo(0, 10).
				Close().
				Build()
			var g Geometry
			Fill(&g, p, nil)

			want := []CurveFill{{A: geom.Pt(10, 0), Ctrl: tt.ctrl, B: geom.Pt(10, 10), Side: tt.side}}
			if diff := cmp.Diff(want, g.Curves); diff != "" {
				t.Errorf("curves mismatch (-want +got):\n%s", diff)
			}
			approxArea(t, &g, tt.area)
		})
	}
}

func TestFillOpenPathPanics(t *testing.T) {
	mustPanic(t, "closed path", func() {
		Fill(&Geometry{}, makeLine(0, 0, 10, 10), nil)
	})
}

func TestFillCubicPanics(t *testing.T) {
	p := path.NewBuilder[path.Canvas]().Circle(0, 0, 10).Build()
	mustPanic(t, "normalized", func() {
		Fill(&Geometry{}, p, nil)
	})

	var g Geometry
	Fill(&g, path.Normalize(p), nil)
	if len(g.Curves) != 8 {
		t.Errorf("circle curves = %d, want 8", len(g.Curves))
	}
}

func TestSweepTriangulator(t *testing.T) {
	p := path.Polygon[path.Canvas](
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 5),
		geom.Pt(5, 5), geom.Pt(5, 10), geom.Pt(0, 10),
	)
	var g Geometry
	Fill(&g, p, SweepTriangulator{})
	if len(g.Triangles) != 4 {
		t.Errorf("triangles = %d, want 4", len(g.Triangles))
	}
	approxArea(t, &g, 75)
}

func TestEarClipWindingKept(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}
	var g Geometry
	EarClip{}.Triangulate(&g, pts)
	for _, tri := range g.Triangles {
		if tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])) <= 0 {
			t.Errorf("triangle %v flipped winding", tri)
		}
	}
}
