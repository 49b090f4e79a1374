package plotgpu

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

func TestNullRenderer(t *testing.T) {
	var r NullRenderer
	var _ Renderer = &r

	p := path.Rect[path.Canvas](geom.Pt(0, 0), geom.Pt(1, 1))
	if err := r.DrawPath(p, nil, geom.NoClip); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("DrawPath() error = %v, want ErrNotImplemented", err)
	}
	if err := r.DrawMarkers(p, nil, nil, nil, nil, geom.NoClip); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("DrawMarkers() error = %v, want ErrNotImplemented", err)
	}
	if err := r.DrawTriangles(nil, nil, nil, geom.NoClip); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("DrawTriangles() error = %v, want ErrNotImplemented", err)
	}
	if err := r.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
	r.Clear()
	if err := r.Resize(10, 10); err != nil {
		t.Errorf("Resize() error = %v", err)
	}

	want := []string{"draw_path", "draw_markers", "draw_triangles", "flush", "clear", "resize"}
	if got := r.Ops(); !slices.Equal(got, want) {
		t.Errorf("Ops() = %v, want %v", got, want)
	}
}

func TestNullRendererScaleFactor(t *testing.T) {
	var r NullRenderer
	if got := r.ToPx(3); abs32(got-4) > 1e-5 {
		t.Errorf("ToPx(3) = %v, want 4", got)
	}
	if err := r.SetScaleFactor(1.5); err != nil {
		t.Fatalf("SetScaleFactor() error = %v", err)
	}
	if got := r.ToPx(3); abs32(got-6) > 1e-5 {
		t.Errorf("ToPx(3) = %v, want 6", got)
	}
	if err := r.SetScaleFactor(-1); !errors.Is(err, ErrInvalidScaleFactor) {
		t.Errorf("SetScaleFactor(-1) error = %v, want ErrInvalidScaleFactor", err)
	}
}
