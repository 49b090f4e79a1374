package path

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"honnef.co/go/curve"

	"github.com/gogpu/plotgpu/geom"
)

var approxPoints = cmpopts.EquateApprox(0, 1e-4)

// makeCurvyPath builds a path mixing every code kind.
func makeCurvyPath() DataPath {
	return NewBuilder[Data]().
		MoveTo(0, 0).
		LineTo(10, 0).
		CubicTo(15, 0, 20, 5, 20, 10).
		QuadTo(20, 20, 10, 20).
		LineTo(0, 20).
		Close().
		MoveTo(30, 30).
		CubicTo(40, 30, 40, 40, 30, 40).
		Build()
}

func TestNormalizeRemovesCubics(t *testing.T) {
	p := makeCurvyPath()
	if IsNormalized(p) {
		t.Fatal("IsNormalized(input) = true, want false")
	}
	n := Normalize(p)
	if !IsNormalized(n) {
		t.Fatal("IsNormalized(Normalize(p)) = false")
	}
	// two cubics become four quads
	if got, want := n.Len(), p.Len()+2; got != want {
		t.Errorf("Normalize length = %d, want %d", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize(makeCurvyPath())
	twice := Normalize(once)
	if diff := cmp.Diff(once.Codes(), twice.Codes()); diff != "" {
		t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalizeTruong(t *testing.T) {
	p := New[Canvas](
		MoveTo{P: geom.Pt(0, 0)},
		Bezier3{Ctrl1: geom.Pt(0, 4), Ctrl2: geom.Pt(4, 4), End: geom.Pt(4, 0)},
	)
	want := []Code{
		MoveTo{P: geom.Pt(0, 0)},
		Bezier2{Ctrl: geom.Pt(0, 3), End: geom.Pt(2, 3)},
		Bezier2{Ctrl: geom.Pt(4, 3), End: geom.Pt(4, 0)},
	}
	if diff := cmp.Diff(want, Normalize(p).Codes(), approxPoints); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePreservesEndpoints(t *testing.T) {
	p := makeCurvyPath()
	n := Normalize(p)

	var tails []geom.Point
	for _, c := range n.All() {
		if _, ok := c.(Bezier2); ok {
			continue
		}
		tails = append(tails, c.Tail())
	}
	var want []geom.Point
	for _, c := range p.All() {
		switch c.(type) {
		case Bezier2, Bezier3:
			continue
		}
		want = append(want, c.Tail())
	}
	if diff := cmp.Diff(want, tails); diff != "" {
		t.Errorf("non-curve endpoints changed (-want +got):\n%s", diff)
	}
	if got, want := n.LastPoint(), p.LastPoint(); got != want {
		t.Errorf("LastPoint = %v, want %v", got, want)
	}
}

func TestBuilderCloseFoldsLine(t *testing.T) {
	tests := []struct {
		name string
		path DataPath
		want []Code
	}{
		{
			name: "triangle",
			path: NewBuilder[Data]().MoveTo(0, 0).LineTo(10, 0).LineTo(5, 10).Close().Build(),
			want: []Code{
				MoveTo{P: geom.Pt(0, 0)},
				LineTo{P: geom.Pt(10, 0)},
				ClosePoly{P: geom.Pt(5, 10)},
			},
		},
		{
			name: "explicit return to start",
			path: NewBuilder[Data]().MoveTo(0, 0).LineTo(10, 0).LineTo(5, 10).LineTo(0, 0).Close().Build(),
			want: []Code{
				MoveTo{P: geom.Pt(0, 0)},
				LineTo{P: geom.Pt(10, 0)},
				ClosePoly{P: geom.Pt(5, 10)},
			},
		},
		{
			name: "curve before close",
			path: NewBuilder[Data]().MoveTo(0, 0).QuadTo(5, 5, 10, 0).Close().Build(),
			want: []Code{
				MoveTo{P: geom.Pt(0, 0)},
				Bezier2{Ctrl: geom.Pt(5, 5), End: geom.Pt(10, 0)},
				ClosePoly{P: geom.Pt(10, 0)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.path.Codes()); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsClosed(t *testing.T) {
	tests := []struct {
		name string
		path DataPath
		want bool
	}{
		{"empty", New[Data](), false},
		{"open line", Polyline[Data](geom.Pt(0, 0), geom.Pt(1, 1)), false},
		{"rect", Unit[Data](), true},
		{"closed then open", NewBuilder[Data]().Rect(0, 0, 1, 1).MoveTo(5, 5).LineTo(6, 6).Build(), false},
		{"two closed", NewBuilder[Data]().Rect(0, 0, 1, 1).Rect(2, 2, 3, 3).Build(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.IsClosed(); got != tt.want {
				t.Errorf("IsClosed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	p := Polyline[Data](geom.Pt(1, 1), geom.Pt(2, 3))
	c := Transform(p, geom.Scaling(10, 10).Translate(5, 0))
	want := []Code{
		MoveTo{P: geom.Pt(15, 10)},
		LineTo{P: geom.Pt(25, 30)},
	}
	if diff := cmp.Diff(want, c.Codes()); diff != "" {
		t.Errorf("Transform mismatch (-want +got):\n%s", diff)
	}
	// the source is untouched
	if got := p.At(1).Tail(); got != geom.Pt(2, 3) {
		t.Errorf("source modified: %v", got)
	}
}

func TestBounds(t *testing.T) {
	p := New[Data](
		MoveTo{P: geom.Pt(0, 0)},
		Bezier2{Ctrl: geom.Pt(5, 10), End: geom.Pt(10, 0)},
	)
	b := p.Bounds()
	if b.XMax() != 10 || b.YMax() != 10 || b.XMin() != 0 {
		t.Errorf("Bounds() = %v", b)
	}
}

func TestMarkers(t *testing.T) {
	for _, kind := range []MarkerKind{MarkerPoint, MarkerCircle, MarkerSquare, MarkerTriangle, MarkerDiamond, MarkerStar} {
		t.Run(kind.String(), func(t *testing.T) {
			m := Marker(kind, 4)
			if !m.IsClosed() {
				t.Errorf("Marker(%v) not closed", kind)
			}
			if !IsNormalized(m) {
				t.Errorf("Marker(%v) not normalized", kind)
			}
			b := m.Bounds()
			if b.XMax() > 4.5 || b.XMin() < -4.5 {
				t.Errorf("Marker(%v) bounds = %v, want within radius", kind, b)
			}
		})
	}
	if Marker(MarkerPlus, 4).IsClosed() {
		t.Error("plus marker should be open")
	}
	if k, ok := ParseMarker("star"); !ok || k != MarkerStar {
		t.Errorf("ParseMarker(star) = %v, %v", k, ok)
	}
}

func TestCurveRoundTrip(t *testing.T) {
	var bp curve.BezPath
	bp.MoveTo(curve.Point{X: 0, Y: 0})
	bp.LineTo(curve.Point{X: 10, Y: 0})
	bp.QuadTo(curve.Point{X: 10, Y: 10}, curve.Point{X: 0, Y: 10})
	bp.ClosePath()

	p := FromShape[Data](bp, 0.1)
	want := []Code{
		MoveTo{P: geom.Pt(0, 0)},
		LineTo{P: geom.Pt(10, 0)},
		Bezier2{Ctrl: geom.Pt(10, 10), End: geom.Pt(0, 10)},
		ClosePoly{P: geom.Pt(0, 10)},
	}
	if diff := cmp.Diff(want, p.Codes()); diff != "" {
		t.Fatalf("FromShape mismatch (-want +got):\n%s", diff)
	}

	back := FromShape[Data](ToBezPath(p), 0.1)
	if diff := cmp.Diff(p.Codes(), back.Codes()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
