package plotgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

// Renderer is the drawing surface the plotting layer talks to. Paths,
// marker positions and triangle vertices are in canvas pixels with the
// origin at the bottom left.
type Renderer interface {
	// DrawPath fills and strokes p.
	DrawPath(p path.CanvasPath, style *PathStyle, clip geom.Clip) error

	// DrawMarkers draws marker once per position in xy. scale and colors
	// are empty (defaults), hold one shared value, or one per position.
	DrawMarkers(marker path.CanvasPath, xy []geom.Point, scale []float32, colors []Color, style *PathStyle, clip geom.Clip) error

	// DrawTriangles draws a mesh with one color per vertex.
	DrawTriangles(vertices []geom.Point, colors []Color, triangles [][3]uint32, clip geom.Clip) error

	// Flush submits everything drawn since the last Flush.
	Flush() error

	// Clear drops everything drawn since the last Flush.
	Clear()

	// Resize sets the canvas size in pixels.
	Resize(width, height int) error

	// SetScaleFactor sets the display scale factor.
	SetScaleFactor(f float32) error

	// ToPx converts a size in points to pixels.
	ToPx(size float32) float32
}

var (
	_ Renderer = (*Canvas)(nil)
	_ Renderer = (*NullRenderer)(nil)
)

// NullRenderer declines every drawing operation with ErrNotImplemented
// and records the names of the operations it received. It stands in for
// a backend when testing the layers above the renderer.
//
// NullRenderer is safe for concurrent use.
type NullRenderer struct {
	mu    sync.Mutex
	ops   []string
	scale float32
}

func (r *NullRenderer) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// Ops returns the recorded operation names in call order.
func (r *NullRenderer) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func (r *NullRenderer) DrawPath(path.CanvasPath, *PathStyle, geom.Clip) error {
	r.record("draw_path")
	return fmt.Errorf("draw_path: %w", ErrNotImplemented)
}

func (r *NullRenderer) DrawMarkers(path.CanvasPath, []geom.Point, []float32, []Color, *PathStyle, geom.Clip) error {
	r.record("draw_markers")
	return fmt.Errorf("draw_markers: %w", ErrNotImplemented)
}

func (r *NullRenderer) DrawTriangles([]geom.Point, []Color, [][3]uint32, geom.Clip) error {
	r.record("draw_triangles")
	return fmt.Errorf("draw_triangles: %w", ErrNotImplemented)
}

func (r *NullRenderer) Flush() error {
	r.record("flush")
	return nil
}

func (r *NullRenderer) Clear() {
	r.record("clear")
}

func (r *NullRenderer) Resize(int, int) error {
	r.record("resize")
	return nil
}

func (r *NullRenderer) SetScaleFactor(f float32) error {
	r.record("set_scale_factor")
	if err := checkScaleFactor(f); err != nil {
		return err
	}
	r.mu.Lock()
	r.scale = f * ptToPx
	r.mu.Unlock()
	return nil
}

// ToPx converts points to pixels at the last scale factor, 4/3 by default.
func (r *NullRenderer) ToPx(size float32) float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scale == 0 {
		return size * ptToPx
	}
	return size * r.scale
}
