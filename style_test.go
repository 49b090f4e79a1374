package plotgpu

import (
	"slices"
	"testing"

	"github.com/gogpu/plotgpu/tess"
)

func TestPathStyleDefaults(t *testing.T) {
	for _, s := range []*PathStyle{nil, new(PathStyle)} {
		if s.Face() != Black {
			t.Errorf("Face() = %v, want black", s.Face())
		}
		if s.Edge() != Black {
			t.Errorf("Edge() = %v, want black", s.Edge())
		}
		if lw, set := s.LineWidth(); lw != DefaultLineWidth || set {
			t.Errorf("LineWidth() = (%v, %v), want (%v, false)", lw, set, DefaultLineWidth)
		}
		if s.Join() != tess.JoinBevel || s.Cap() != tess.CapButt || s.LineStyle() != tess.Solid {
			t.Errorf("Join/Cap/LineStyle = %v/%v/%v, want bevel/butt/solid", s.Join(), s.Cap(), s.LineStyle())
		}
		if s.Dash() != nil {
			t.Errorf("Dash() = %v, want nil", s.Dash())
		}
	}
}

func TestPathStyleEdgeFollowsFace(t *testing.T) {
	s := new(PathStyle).SetFace(Red)
	if s.Edge() != Red {
		t.Errorf("Edge() = %v, want face %v", s.Edge(), Red)
	}
	s.SetEdge(Transparent)
	if !s.Edge().IsNone() {
		t.Errorf("Edge() = %v, want transparent", s.Edge())
	}
}

func TestPathStyleSetters(t *testing.T) {
	s := new(PathStyle).
		SetLineWidth(3).
		SetJoin(tess.JoinRound).
		SetCap(tess.CapProjecting).
		SetLineStyle(tess.Dotted).
		SetDash(1, 2)

	if lw, set := s.LineWidth(); lw != 3 || !set {
		t.Errorf("LineWidth() = (%v, %v), want (3, true)", lw, set)
	}
	if s.Join() != tess.JoinRound {
		t.Errorf("Join() = %v", s.Join())
	}
	if s.Cap() != tess.CapProjecting {
		t.Errorf("Cap() = %v", s.Cap())
	}
	if s.LineStyle() != tess.Dotted {
		t.Errorf("LineStyle() = %v", s.LineStyle())
	}
	if !slices.Equal(s.Dash(), []float32{1, 2}) {
		t.Errorf("Dash() = %v, want [1 2]", s.Dash())
	}
}

func TestStrokeStyleResolution(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)

	tests := []struct {
		name     string
		style    *PathStyle
		wantHW   float32
		wantDash []float32
	}{
		{"default", nil, 0.5, nil},
		{"wide", new(PathStyle).SetLineWidth(3), 2, nil},
		{"disabled", new(PathStyle).SetLineWidth(-1), 0, nil},
		{"dashed default width", new(PathStyle).SetLineStyle(tess.Dashed), 0.5, tess.Dashed.Pattern(c.ToPx(DefaultDashWidth))},
		{"dashed line width", new(PathStyle).SetLineWidth(3).SetLineStyle(tess.Dashed), 2, tess.Dashed.Pattern(4)},
		{"custom dash", new(PathStyle).SetDash(3, 6), 0.5, []float32{4, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.strokeStyle(tt.style)
			if err != nil {
				t.Fatalf("strokeStyle() error = %v", err)
			}
			if abs32(got.HalfWidth-tt.wantHW) > 1e-5 {
				t.Errorf("HalfWidth = %v, want %v", got.HalfWidth, tt.wantHW)
			}
			if len(got.Dash) != len(tt.wantDash) {
				t.Fatalf("Dash = %v, want %v", got.Dash, tt.wantDash)
			}
			for i := range got.Dash {
				if abs32(got.Dash[i]-tt.wantDash[i]) > 1e-4 {
					t.Errorf("Dash = %v, want %v", got.Dash, tt.wantDash)
					break
				}
			}
		})
	}
}
