package tess

import "github.com/gogpu/plotgpu/geom"

// CurveSide selects which side of a quadratic curve a fill covers.
type CurveSide int8

const (
	// Convex fills between the chord and the curve.
	Convex CurveSide = 1
	// Concave fills between the curve and its control point.
	Concave CurveSide = -1
)

func (s CurveSide) String() string {
	if s == Concave {
		return "concave"
	}
	return "convex"
}

// Sink receives tessellator output.
type Sink interface {
	Triangle(a, b, c geom.Point)
	Curve(a, ctrl, b geom.Point, side CurveSide)
}

// CurveFill is one curved fill primitive.
type CurveFill struct {
	A, Ctrl, B geom.Point
	Side       CurveSide
}

// Geometry is a Sink that collects its input.
type Geometry struct {
	Triangles [][3]geom.Point
	Curves    []CurveFill
}

// Triangle implements Sink.
func (g *Geometry) Triangle(a, b, c geom.Point) {
	g.Triangles = append(g.Triangles, [3]geom.Point{a, b, c})
}

// Curve implements Sink.
func (g *Geometry) Curve(a, ctrl, b geom.Point, side CurveSide) {
	g.Curves = append(g.Curves, CurveFill{A: a, Ctrl: ctrl, B: b, Side: side})
}

// Reset empties the collector, keeping its storage.
func (g *Geometry) Reset() {
	g.Triangles = g.Triangles[:0]
	g.Curves = g.Curves[:0]
}

// TriangleArea returns the unsigned area of a triangle.
func TriangleArea(t [3]geom.Point) float32 {
	a := t[1].Sub(t[0]).Cross(t[2].Sub(t[0])) / 2
	if a < 0 {
		return -a
	}
	return a
}

// Area returns the summed unsigned area of the collected triangles.
// Curved fills are not included.
func (g *Geometry) Area() float32 {
	var sum float32
	for _, t := range g.Triangles {
		sum += TriangleArea(t)
	}
	return sum
}

func mustNormalized() {
	panic("tess: cubic bezier must be normalized before tessellation")
}
