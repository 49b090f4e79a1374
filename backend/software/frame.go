package software

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/plotgpu/batch"
	"github.com/gogpu/plotgpu/geom"
)

// frame rasterizes draw calls as they arrive; End only closes it.
type frame struct {
	b     *Backend
	ended bool
	draws int
}

// Draw decodes call the way the matching GPU pipeline would and
// rasterizes every instance of every triangle.
func (f *frame) Draw(call batch.DrawCall) error {
	if f.ended {
		return ErrFrameEnded
	}

	clip := f.clip(call.Scissor)
	if clip.Empty() || call.IndexCount == 0 || call.InstanceCount == 0 {
		return nil
	}

	src, err := f.sources(call)
	if err != nil {
		return err
	}

	switch call.Kind {
	case batch.KindMesh:
		err = f.drawMesh(call, src, clip)
	case batch.KindShape:
		err = f.drawShape(call, src, clip)
	case batch.KindCurve:
		err = f.drawCurve(call, src, clip)
	default:
		err = fmt.Errorf("software: unsupported pipeline %v", call.Kind)
	}
	if err != nil {
		return err
	}
	f.draws++
	return nil
}

// End finishes the frame.
func (f *frame) End() error {
	if f.ended {
		return ErrFrameEnded
	}
	f.ended = true
	f.b.logger.Debug("software: frame ended", "draws", f.draws)
	return nil
}

type sources struct {
	vertices, indices, styles []byte
}

func (f *frame) sources(call batch.DrawCall) (sources, error) {
	var s sources
	var err error
	if s.vertices, err = f.b.bytes(call.Vertices); err != nil {
		return s, err
	}
	if s.indices, err = f.b.bytes(call.Indices); err != nil {
		return s, err
	}
	if s.styles, err = f.b.bytes(call.Styles); err != nil {
		return s, err
	}
	return s, nil
}

// clip returns the pixel rectangle a draw may touch.
func (f *frame) clip(sc batch.Scissor) image.Rectangle {
	r := f.b.img.Bounds()
	if !sc.Enabled {
		return r
	}
	return r.Intersect(image.Rect(
		int(sc.X), int(sc.Y),
		int(sc.X+sc.Width), int(sc.Y+sc.Height)))
}

// triangle returns the absolute vertex indices of triangle t.
func triangle(call batch.DrawCall, indices []byte, t int) ([3]int, error) {
	var tri [3]int
	for k := range tri {
		i := int(call.FirstIndex) + 3*t + k
		if (i+1)*batch.IndexStride > len(indices) {
			return tri, fmt.Errorf("%w: index %d", ErrOutOfRange, i)
		}
		tri[k] = int(call.BaseVertex) + int(batch.DecodeIndex(indices, i))
	}
	return tri, nil
}

func decode[T any](l batch.Layout[T], src []byte, i int) (T, error) {
	off := i * l.Stride()
	if i < 0 || off+l.Stride() > len(src) {
		var zero T
		return zero, fmt.Errorf("%w: record %d", ErrOutOfRange, i)
	}
	return l.Get(src[off:]), nil
}

// mapper takes a position through the instance transform and from
// normalized device coordinates to pixels relative to the clip origin.
type mapper struct {
	m    geom.Affine2D
	w, h float32
	org  image.Point
}

func (f *frame) mapper(m geom.Affine2D, clip image.Rectangle) mapper {
	w, h := f.b.Size()
	return mapper{m: m, w: float32(w), h: float32(h), org: clip.Min}
}

func (mp mapper) pixel(p geom.Point) geom.Point {
	q := mp.m.Transform(p)
	return geom.Point{
		X: (q.X+1)/2*mp.w - float32(mp.org.X),
		Y: (1-q.Y)/2*mp.h - float32(mp.org.Y),
	}
}

func (f *frame) begin(clip image.Rectangle) {
	f.b.raster.Reset(clip.Dx(), clip.Dy())
	f.b.raster.DrawOp = draw.Over
}

func (f *frame) paint(clip image.Rectangle, c batch.RGBA) {
	f.b.raster.Draw(f.b.img, clip, image.NewUniform(premul(c)), image.Point{})
}

// addTriangle adds a counter-clockwise triangle so overlapping pieces of
// one item accumulate instead of cancelling.
func (f *frame) addTriangle(a, b, c geom.Point) bool {
	cross := b.Sub(a).Cross(c.Sub(a))
	if cross == 0 {
		return false
	}
	if cross < 0 {
		b, c = c, b
	}
	z := f.b.raster
	z.MoveTo(a.X, a.Y)
	z.LineTo(b.X, b.Y)
	z.LineTo(c.X, c.Y)
	z.ClosePath()
	return true
}

func (f *frame) drawShape(call batch.DrawCall, src sources, clip image.Rectangle) error {
	tris := int(call.IndexCount / 3)
	for inst := range int(call.InstanceCount) {
		style, err := decode(batch.ColorStyleLayout{}, src.styles, int(call.FirstInstance)+inst)
		if err != nil {
			return err
		}
		mp := f.mapper(style.Affine, clip)

		f.begin(clip)
		for t := range tris {
			tri, err := triangle(call, src.indices, t)
			if err != nil {
				return err
			}
			var p [3]geom.Point
			for k, vi := range tri {
				v, err := decode(batch.PointLayout{}, src.vertices, vi)
				if err != nil {
					return err
				}
				p[k] = mp.pixel(v)
			}
			f.addTriangle(p[0], p[1], p[2])
		}
		f.paint(clip, style.Color)
	}
	return nil
}

// drawMesh paints each triangle with the mean of its vertex colors.
func (f *frame) drawMesh(call batch.DrawCall, src sources, clip image.Rectangle) error {
	tris := int(call.IndexCount / 3)
	for inst := range int(call.InstanceCount) {
		m, err := decode(batch.AffineLayout{}, src.styles, int(call.FirstInstance)+inst)
		if err != nil {
			return err
		}
		mp := f.mapper(m, clip)

		for t := range tris {
			tri, err := triangle(call, src.indices, t)
			if err != nil {
				return err
			}
			var p [3]geom.Point
			var c batch.RGBA
			for k, vi := range tri {
				v, err := decode(batch.MeshLayout{}, src.vertices, vi)
				if err != nil {
					return err
				}
				p[k] = mp.pixel(v.Pos)
				for j := range c {
					c[j] += v.Color[j] / 3
				}
			}
			f.begin(clip)
			if f.addTriangle(p[0], p[1], p[2]) {
				f.paint(clip, c)
			}
		}
	}
	return nil
}

// drawCurve fills the region each curve triangle selects: between chord
// and curve for a convex side, between curve and control point for a
// concave one. The vertices are told apart by their curve coordinates.
func (f *frame) drawCurve(call batch.DrawCall, src sources, clip image.Rectangle) error {
	tris := int(call.IndexCount / 3)
	for inst := range int(call.InstanceCount) {
		style, err := decode(batch.ColorStyleLayout{}, src.styles, int(call.FirstInstance)+inst)
		if err != nil {
			return err
		}
		mp := f.mapper(style.Affine, clip)

		f.begin(clip)
		for t := range tris {
			tri, err := triangle(call, src.indices, t)
			if err != nil {
				return err
			}
			var a, ctrl, b geom.Point
			var side float32
			for _, vi := range tri {
				v, err := decode(batch.CurveLayout{}, src.vertices, vi)
				if err != nil {
					return err
				}
				p := mp.pixel(v.Pos)
				switch {
				case v.UV.X == 0:
					a = p
				case v.UV.X == 1:
					b = p
				default:
					ctrl = p
				}
				side = v.Side
			}
			f.addCurve(a, ctrl, b, side)
		}
		f.paint(clip, style.Color)
	}
	return nil
}

// addCurve keeps the region's winding counter-clockwise. Swapping the
// end points leaves the curve itself unchanged.
func (f *frame) addCurve(a, ctrl, b geom.Point, side float32) {
	cross := ctrl.Sub(a).Cross(b.Sub(a))
	if cross == 0 {
		return
	}
	if cross < 0 {
		a, b = b, a
	}
	z := f.b.raster
	z.MoveTo(a.X, a.Y)
	if side >= 0 {
		z.QuadTo(ctrl.X, ctrl.Y, b.X, b.Y)
	} else {
		z.LineTo(ctrl.X, ctrl.Y)
		z.LineTo(b.X, b.Y)
		z.QuadTo(ctrl.X, ctrl.Y, a.X, a.Y)
	}
	z.ClosePath()
}

// premul converts a premultiplied float color, clamping each channel.
func premul(c batch.RGBA) color.RGBA64 {
	ch := func(v float32) uint16 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 0xffff
		default:
			return uint16(v*0xffff + 0.5)
		}
	}
	a := ch(c[3])
	return color.RGBA64{R: min(ch(c[0]), a), G: min(ch(c[1]), a), B: min(ch(c[2]), a), A: a}
}
