package plotgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/plotgpu/backend"
	"github.com/gogpu/plotgpu/batch"
	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
	"github.com/gogpu/plotgpu/tess"
)

// ptToPx converts typographic points to pixels at scale factor 1.
const ptToPx = 4.0 / 3.0

// Canvas tessellates paths into batch buffers and draws them on a
// backend when flushed.
//
// Coordinates are canvas pixels with the origin at the bottom left and y
// pointing up. Draws are batched per pipeline and flushed in the order
// meshes, straight-edged shapes, curved fills, so primitives of
// different kinds do not keep their relative stacking order.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	device batch.Backend
	owned  bool
	closed bool

	mesh  *batch.Buffer[batch.MeshVertex, geom.Affine2D]
	shape *batch.Buffer[geom.Point, batch.ColorStyle]
	curve *batch.Buffer[batch.CurveVertex, batch.ColorStyle]
	sink  shapeSink

	width, height int
	bounds        geom.Bounds
	toGPU         geom.Affine2D
	scale         float32

	tri    tess.Triangulator
	logger *slog.Logger
}

// NewCanvas creates a canvas of the given size in pixels.
//
// Without WithDevice the best registered backend is created for it; at
// least one backend package must be imported:
//
//	import _ "github.com/gogpu/plotgpu/backend/software"
func NewCanvas(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkScaleFactor(o.scaleFactor); err != nil {
		return nil, err
	}
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}

	c := &Canvas{
		device: o.device,
		scale:  o.scaleFactor * ptToPx,
		tri:    o.triangulator,
		logger: logger,
	}
	if c.device == nil {
		dev, err := backend.Default(backend.Config{
			Width:    width,
			Height:   height,
			Provider: o.provider,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
		}
		c.device = dev
		c.owned = true
		logger.Info("plotgpu: backend selected", slog.String("backend", fmt.Sprintf("%T", dev)))
	}

	bufOpts := []batch.Option{batch.WithChunk(o.chunk), batch.WithLogger(logger)}
	c.mesh = batch.NewMeshBuffer(append(bufOpts, batch.WithLabel("mesh"))...)
	c.shape = batch.NewShapeBuffer(append(bufOpts, batch.WithLabel("shape"))...)
	c.curve = batch.NewCurveBuffer(append(bufOpts, batch.WithLabel("curve"))...)
	c.sink = shapeSink{shape: c.shape, curve: c.curve}

	c.setSize(width, height)
	return c, nil
}

// SetLogger sets the logger of the canvas, its buffers and its backend.
// nil disables logging.
func (c *Canvas) SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	c.logger = l
	c.mesh.SetLogger(l)
	c.shape.SetLogger(l)
	c.curve.SetLogger(l)
	propagateLogger(c.device, l)
}

// Device returns the backend the canvas flushes to.
func (c *Canvas) Device() batch.Backend { return c.device }

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Bounds returns the canvas rectangle in pixels.
func (c *Canvas) Bounds() geom.Bounds { return c.bounds }

// ToGPU returns the transform from canvas pixels to normalized device
// coordinates.
func (c *Canvas) ToGPU() geom.Affine2D { return c.toGPU }

func (c *Canvas) setSize(width, height int) {
	c.width, c.height = width, height
	c.bounds = geom.Extent(float32(width), float32(height))
	c.toGPU = c.bounds.AffineTo(geom.NewBounds(-1, -1, 1, 1))
}

// DrawPath fills a closed p with the face color and strokes it with the
// edge color. An edge equal to the face is not stroked over the fill.
// Open paths are only stroked.
func (c *Canvas) DrawPath(p path.CanvasPath, style *PathStyle, clip geom.Clip) error {
	if c.closed {
		return ErrClosed
	}
	if p.IsEmpty() {
		return nil
	}
	stroke, err := c.strokeStyle(style)
	if err != nil {
		return err
	}

	sc := c.ToScissor(clip)
	face, edge := style.Face(), style.Edge()
	solid := path.Normalize(p)

	if solid.IsClosed() && !face.IsNone() {
		c.startShape(sc)
		tess.Fill(&c.sink, solid, c.tri)
		c.finishShape(c.toGPU, face)
		if edge == face || edge.IsNone() {
			return nil
		}
	} else if edge.IsNone() {
		return nil
	}

	if stroke.HalfWidth > 0 {
		c.startShape(sc)
		tess.Stroke(&c.sink, solid, stroke)
		c.finishShape(c.toGPU, edge)
	}
	return nil
}

// DrawMarkers tessellates marker once and draws an instance of it at
// every position in xy. scale multiplies the marker size and colors
// replaces the face color; each holds no value, one shared value, or one
// value per position. Open markers are stroked in the marker color.
func (c *Canvas) DrawMarkers(marker path.CanvasPath, xy []geom.Point, scale []float32, colors []Color, style *PathStyle, clip geom.Clip) error {
	if c.closed {
		return ErrClosed
	}
	if !perItem(len(scale), len(xy)) || !perItem(len(colors), len(xy)) {
		return fmt.Errorf("%w: %d positions, %d scales, %d colors",
			ErrMismatchedLength, len(xy), len(scale), len(colors))
	}
	if len(xy) == 0 || marker.IsEmpty() {
		return nil
	}
	stroke, err := c.strokeStyle(style)
	if err != nil {
		return err
	}
	// marker outlines are always solid
	stroke.Dash = nil

	sc := c.ToScissor(clip)
	face, edge := style.Face(), style.Edge()
	colorAt := func(i int) Color {
		switch len(colors) {
		case 0:
			return face
		case 1:
			return colors[0]
		}
		return colors[i]
	}
	solid := path.Normalize(marker)

	if !solid.IsClosed() {
		if stroke.HalfWidth <= 0 {
			return nil
		}
		c.startShape(sc)
		tess.Stroke(&c.sink, solid, stroke)
		c.instances(xy, scale, func(i int) Color {
			if len(colors) == 0 {
				return edge
			}
			return colorAt(i)
		})
		return nil
	}

	if len(colors) > 0 || !face.IsNone() {
		c.startShape(sc)
		tess.Fill(&c.sink, solid, c.tri)
		c.instances(xy, scale, colorAt)
	}
	if edge != face && !edge.IsNone() && stroke.HalfWidth > 0 {
		c.startShape(sc)
		tess.Stroke(&c.sink, solid, stroke)
		c.instances(xy, scale, func(int) Color { return edge })
	}
	return nil
}

// instances finishes the open shape once per marker position.
func (c *Canvas) instances(xy []geom.Point, scale []float32, color func(int) Color) {
	for i, p := range xy {
		s := float32(1)
		switch len(scale) {
		case 0:
		case 1:
			s = scale[0]
		default:
			s = scale[i]
		}
		m := geom.Scaling(s, s).Translate(p.X, p.Y)
		c.finishShape(c.toGPU.Matmul(m), color(i))
	}
}

// DrawTriangles draws an indexed mesh with one color per vertex.
func (c *Canvas) DrawTriangles(vertices []geom.Point, colors []Color, triangles [][3]uint32, clip geom.Clip) error {
	if c.closed {
		return ErrClosed
	}
	if len(colors) != len(vertices) {
		return fmt.Errorf("%w: %d vertices, %d colors", ErrMismatchedLength, len(vertices), len(colors))
	}
	n := uint32(len(vertices))
	for i, t := range triangles {
		if t[0] >= n || t[1] >= n || t[2] >= n {
			return fmt.Errorf("%w: triangle %d %v, %d vertices", ErrInvalidIndex, i, t, n)
		}
	}
	if len(triangles) == 0 {
		return nil
	}

	c.mesh.StartItem(c.ToScissor(clip))
	for i, v := range vertices {
		c.mesh.PushVertex(batch.MeshVertex{Pos: v, Color: colors[i].Premultiplied()})
	}
	for _, t := range triangles {
		c.mesh.PushTriangle(t[0], t[1], t[2])
	}
	c.mesh.FinishItem(c.toGPU)
	return nil
}

// Flush draws everything recorded since the last Flush or Clear into a
// new backend frame. The recorded geometry is dropped even on error.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrClosed
	}
	defer c.Clear()

	frame, err := c.device.BeginFrame()
	if err != nil {
		return fmt.Errorf("plotgpu: begin frame: %w", err)
	}

	err = errors.Join(
		c.mesh.Flush(c.device, frame),
		c.shape.Flush(c.device, frame),
		c.curve.Flush(c.device, frame),
	)
	if endErr := frame.End(); endErr != nil {
		err = errors.Join(err, fmt.Errorf("plotgpu: end frame: %w", endErr))
	}
	return err
}

// Clear drops everything recorded since the last Flush.
func (c *Canvas) Clear() {
	c.mesh.Clear()
	c.shape.Clear()
	c.curve.Clear()
}

type resizer interface {
	Resize(width, height int)
}

// Resize changes the canvas size. A backend with a Resize method is
// resized with it.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	c.setSize(width, height)
	if r, ok := c.device.(resizer); ok {
		r.Resize(width, height)
	}
	c.logger.Debug("plotgpu: resized", slog.Int("width", width), slog.Int("height", height))
	return nil
}

// SetScaleFactor sets the display scale factor. Sizes in points are
// multiplied by f·4/3 to get pixels.
func (c *Canvas) SetScaleFactor(f float32) error {
	if err := checkScaleFactor(f); err != nil {
		return err
	}
	c.scale = f * ptToPx
	return nil
}

// ToPx converts a size in points to pixels.
func (c *Canvas) ToPx(size float32) float32 {
	return size * c.scale
}

// ToScissor converts a canvas clip to a target scissor rectangle with
// the origin at the top left, clamped to the canvas. An unset clip gives
// a disabled scissor.
func (c *Canvas) ToScissor(clip geom.Clip) batch.Scissor {
	if !clip.Set {
		return batch.Scissor{}
	}
	w, h := float64(c.width), float64(c.height)
	b := clip.Bounds
	x0 := clamp(math.Floor(float64(b.XMin())), 0, w)
	y0 := clamp(math.Floor(float64(b.YMin())), 0, h)
	x1 := clamp(math.Ceil(float64(b.XMax())), 0, w)
	y1 := clamp(math.Ceil(float64(b.YMax())), 0, h)
	return batch.Scissor{
		X:       uint32(x0),
		Y:       uint32(h - y1),
		Width:   uint32(x1 - x0),
		Height:  uint32(y1 - y0),
		Enabled: true,
	}
}

// Close releases the device buffers and, when the canvas created its
// backend, the backend too.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.mesh.Release()
	c.shape.Release()
	c.curve.Release()
	if d, ok := c.device.(interface{ Destroy() }); ok && c.owned {
		d.Destroy()
	}
	return nil
}

// strokeStyle resolves the stroke parameters of style in pixels.
func (c *Canvas) strokeStyle(style *PathStyle) (tess.StrokeStyle, error) {
	s := tess.StrokeStyle{Join: style.Join(), Cap: style.Cap()}
	if lw, _ := style.LineWidth(); lw > 0 {
		s.HalfWidth = max(c.ToPx(0.5*lw), minHalfWidth)
	}

	if dash := style.Dash(); dash != nil {
		if err := checkDash(dash); err != nil {
			return s, err
		}
		s.Dash = make([]float32, len(dash))
		for i, d := range dash {
			s.Dash[i] = c.ToPx(d)
		}
		return s, nil
	}

	dw := float32(DefaultDashWidth)
	if lw, ok := style.LineWidth(); ok && lw > 0 {
		dw = lw
	}
	s.Dash = style.LineStyle().Pattern(c.ToPx(dw))
	return s, nil
}

func (c *Canvas) startShape(sc batch.Scissor) {
	c.shape.StartItem(sc)
	c.curve.StartItem(sc)
}

func (c *Canvas) finishShape(m geom.Affine2D, color Color) {
	style := batch.ColorStyle{Affine: m, Color: color.Premultiplied()}
	c.shape.FinishItem(style)
	c.curve.FinishItem(style)
}

// shapeSink routes tessellator output into the shape and curve buffers.
type shapeSink struct {
	shape *batch.Buffer[geom.Point, batch.ColorStyle]
	curve *batch.Buffer[batch.CurveVertex, batch.ColorStyle]
}

func (s *shapeSink) Triangle(a, b, c geom.Point) {
	i0 := s.shape.PushVertex(a)
	i1 := s.shape.PushVertex(b)
	i2 := s.shape.PushVertex(c)
	s.shape.PushTriangle(i0, i1, i2)
}

func (s *shapeSink) Curve(a, ctrl, b geom.Point, side tess.CurveSide) {
	f := float32(side)
	i0 := s.curve.PushVertex(batch.CurveVertex{Pos: a, UV: geom.Pt(0, 0), Side: f})
	i1 := s.curve.PushVertex(batch.CurveVertex{Pos: ctrl, UV: geom.Pt(0.5, 0), Side: f})
	i2 := s.curve.PushVertex(batch.CurveVertex{Pos: b, UV: geom.Pt(1, 1), Side: f})
	s.curve.PushTriangle(i0, i1, i2)
}

func checkScaleFactor(f float32) error {
	if !(f > 0) || math.IsInf(float64(f), 0) {
		return fmt.Errorf("%w: %g", ErrInvalidScaleFactor, f)
	}
	return nil
}

func checkDash(pattern []float32) error {
	positive := false
	for _, d := range pattern {
		if d < 0 || math.IsNaN(float64(d)) {
			return fmt.Errorf("%w: %v", ErrInvalidDash, pattern)
		}
		if d > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: %v", ErrInvalidDash, pattern)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// perItem reports whether n values can be spread over count items: none,
// one shared, or one each.
func perItem(n, count int) bool {
	return n <= 1 || n == count
}
