package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Affine2D represents a 2D affine transformation as a 2x3 matrix in
// row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Affine2D is an immutable value; every method returns a new matrix.
// The chaining methods (Translate, Scale, Rotate) apply their step after
// the receiver, so Identity().Translate(1, 0).Scale(2, 2) first
// translates and then scales.
type Affine2D struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Affine2D {
	return Affine2D{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translation creates a translation matrix.
func Translation(x, y float32) Affine2D {
	return Affine2D{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scaling creates a scaling matrix.
func Scaling(sx, sy float32) Affine2D {
	return Affine2D{
		A: sx, B: 0, C: 0,
		D: 0, E: sy, F: 0,
	}
}

// Rotation creates a counter-clockwise rotation matrix.
func Rotation(angle Angle) Affine2D {
	sin, cos := math.Sincos(float64(angle.Radians()))
	s, c := float32(sin), float32(cos)
	return Affine2D{
		A: c, B: -s, C: 0,
		D: s, E: c, F: 0,
	}
}

// Matmul returns m * other, the transform that applies other first and
// then m.
func (m Affine2D) Matmul(other Affine2D) Affine2D {
	return Affine2D{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Translate returns m followed by a translation.
func (m Affine2D) Translate(x, y float32) Affine2D {
	return Translation(x, y).Matmul(m)
}

// Scale returns m followed by a scale.
func (m Affine2D) Scale(sx, sy float32) Affine2D {
	return Scaling(sx, sy).Matmul(m)
}

// Rotate returns m followed by a rotation.
func (m Affine2D) Rotate(angle Angle) Affine2D {
	return Rotation(angle).Matmul(m)
}

// Transform applies the transformation to a point.
func (m Affine2D) Transform(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Affine2D) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Inverse returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Affine2D) Inverse() Affine2D {
	det := m.A*m.E - m.B*m.D
	if abs(det) < 1e-12 {
		return Identity()
	}

	inv := 1 / det
	return Affine2D{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Affine2D) IsIdentity() bool {
	return m == Identity()
}

// Rows returns the matrix in the padded row layout consumed by the
// shaders: [a, b, 0, c] and [d, e, 0, f].
func (m Affine2D) Rows() [2][4]float32 {
	return [2][4]float32{
		{m.A, m.B, 0, m.C},
		{m.D, m.E, 0, m.F},
	}
}

// Aff3 converts the matrix to the x/image representation.
func (m Affine2D) Aff3() f32.Aff3 {
	return f32.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
