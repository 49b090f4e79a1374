package batch

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/plotgpu/geom"
)

// Layout encodes values of T into a fixed-stride little-endian record
// and decodes them back.
type Layout[T any] interface {
	Stride() int
	Put(dst []byte, v T)
	Get(src []byte) T
}

// RGBA is a premultiplied color with components in [0, 1].
type RGBA [4]float32

// MeshVertex is a position with its own color.
type MeshVertex struct {
	Pos   geom.Point
	Color RGBA
}

// CurveVertex is a position with curve coordinates. For a fill
// (a, ctrl, b) the coordinates are (0,0), (0.5,0) and (1,1), so the
// curve is v = u². Side is +1 to fill between chord and curve and -1
// to fill between curve and control point.
type CurveVertex struct {
	Pos  geom.Point
	UV   geom.Point
	Side float32
}

// ColorStyle is the per-instance record of shape and curve items.
type ColorStyle struct {
	Affine geom.Affine2D
	Color  RGBA
}

// MeshLayout stores a MeshVertex as
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
type MeshLayout struct{}

func (MeshLayout) Stride() int { return 24 }

func (MeshLayout) Put(dst []byte, v MeshVertex) {
	putPoint(dst, v.Pos)
	putRGBA(dst[8:], v.Color)
}

func (MeshLayout) Get(src []byte) MeshVertex {
	return MeshVertex{Pos: getPoint(src), Color: getRGBA(src[8:])}
}

// PointLayout stores a bare position (vec2<f32>, 8 bytes).
type PointLayout struct{}

func (PointLayout) Stride() int                  { return 8 }
func (PointLayout) Put(dst []byte, v geom.Point) { putPoint(dst, v) }
func (PointLayout) Get(src []byte) geom.Point    { return getPoint(src) }

// CurveLayout stores a CurveVertex as
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	uv       (vec2<f32>) = 8 bytes (location 1)
//	side     (f32)       = 4 bytes (location 2)
type CurveLayout struct{}

func (CurveLayout) Stride() int { return 20 }

func (CurveLayout) Put(dst []byte, v CurveVertex) {
	putPoint(dst, v.Pos)
	putPoint(dst[8:], v.UV)
	putF32(dst[16:], v.Side)
}

func (CurveLayout) Get(src []byte) CurveVertex {
	return CurveVertex{Pos: getPoint(src), UV: getPoint(src[8:]), Side: getF32(src[16:])}
}

// AffineLayout stores a transform as two padded rows [a b 0 c] [d e 0 f]
// (two vec4<f32>, 32 bytes).
type AffineLayout struct{}

func (AffineLayout) Stride() int { return 32 }

func (AffineLayout) Put(dst []byte, m geom.Affine2D) {
	rows := m.Rows()
	for i, row := range rows {
		for j, v := range row {
			putF32(dst[(i*4+j)*4:], v)
		}
	}
}

func (AffineLayout) Get(src []byte) geom.Affine2D {
	return geom.Affine2D{
		A: getF32(src[0:]), B: getF32(src[4:]), C: getF32(src[12:]),
		D: getF32(src[16:]), E: getF32(src[20:]), F: getF32(src[28:]),
	}
}

// ColorStyleLayout stores a ColorStyle as the affine rows followed by
// the color (three vec4<f32>, 48 bytes).
type ColorStyleLayout struct{}

func (ColorStyleLayout) Stride() int { return 48 }

func (ColorStyleLayout) Put(dst []byte, s ColorStyle) {
	AffineLayout{}.Put(dst, s.Affine)
	putRGBA(dst[32:], s.Color)
}

func (ColorStyleLayout) Get(src []byte) ColorStyle {
	return ColorStyle{Affine: AffineLayout{}.Get(src), Color: getRGBA(src[32:])}
}

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func getF32(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}

func putPoint(dst []byte, p geom.Point) {
	putF32(dst[0:], p.X)
	putF32(dst[4:], p.Y)
}

func getPoint(src []byte) geom.Point {
	return geom.Point{X: getF32(src[0:]), Y: getF32(src[4:])}
}

func putRGBA(dst []byte, c RGBA) {
	for i, v := range c {
		putF32(dst[i*4:], v)
	}
}

func getRGBA(src []byte) RGBA {
	var c RGBA
	for i := range c {
		c[i] = getF32(src[i*4:])
	}
	return c
}

// IndexStride is the size of one triangle index (u32).
const IndexStride = 4

// DecodeIndex reads the i-th index from an index buffer.
func DecodeIndex(src []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(src[i*IndexStride:])
}

func putU32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}
