package math3d

import "math"

// Mat4 is a 4x4 matrix stored in row-major order with the translation in the
// last column.
//
// Memory layout (indices):
//
//	| 0  1  2  3  |   Xx Yx Zx Tx
//	| 4  5  6  7  |   Xy Yy Zy Ty
//	| 8  9  10 11 |   Xz Yz Zz Tz
//	| 12 13 14 15 |   0  0  0  1
//
// Columns 0..2 are the images of the local X, Y and Z axes; column 3 is the
// image of the local origin.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale returns a non-uniform scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a right-handed rotation about the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a right-handed rotation about the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a right-handed rotation about the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the product a * b (b is applied first to points).
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec3 transforms v as a point (w=1), dividing by the resulting w when
// the bottom row is not affine.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	w := m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		(m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]) / w,
		(m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]) / w,
		(m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]) / w,
	}
}

// MulVec3Dir transforms v as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// minors returns the six upper 2x2 determinants (rows 0,1) and the six lower
// ones (rows 2,3) used by Determinant and Inverse.
func (m Mat4) minors() (s, c [6]float64) {
	s[0] = m[0]*m[5] - m[4]*m[1]
	s[1] = m[0]*m[6] - m[4]*m[2]
	s[2] = m[0]*m[7] - m[4]*m[3]
	s[3] = m[1]*m[6] - m[5]*m[2]
	s[4] = m[1]*m[7] - m[5]*m[3]
	s[5] = m[2]*m[7] - m[6]*m[3]

	c[0] = m[8]*m[13] - m[12]*m[9]
	c[1] = m[8]*m[14] - m[12]*m[10]
	c[2] = m[8]*m[15] - m[12]*m[11]
	c[3] = m[9]*m[14] - m[13]*m[10]
	c[4] = m[9]*m[15] - m[13]*m[11]
	c[5] = m[10]*m[15] - m[14]*m[11]
	return s, c
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	s, c := m.minors()
	return s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
}

// Inverse returns the general inverse computed by Laplace expansion.
// A singular matrix yields the identity.
func (m Mat4) Inverse() Mat4 {
	s, c := m.minors()
	det := s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
	if det == 0 {
		return Identity()
	}
	d := 1 / det

	return Mat4{
		(m[5]*c[5] - m[6]*c[4] + m[7]*c[3]) * d,
		(-m[1]*c[5] + m[2]*c[4] - m[3]*c[3]) * d,
		(m[13]*s[5] - m[14]*s[4] + m[15]*s[3]) * d,
		(-m[9]*s[5] + m[10]*s[4] - m[11]*s[3]) * d,

		(-m[4]*c[5] + m[6]*c[2] - m[7]*c[1]) * d,
		(m[0]*c[5] - m[2]*c[2] + m[3]*c[1]) * d,
		(-m[12]*s[5] + m[14]*s[2] - m[15]*s[1]) * d,
		(m[8]*s[5] - m[10]*s[2] + m[11]*s[1]) * d,

		(m[4]*c[4] - m[5]*c[2] + m[7]*c[0]) * d,
		(-m[0]*c[4] + m[1]*c[2] - m[3]*c[0]) * d,
		(m[12]*s[4] - m[13]*s[2] + m[15]*s[0]) * d,
		(-m[8]*s[4] + m[9]*s[2] - m[11]*s[0]) * d,

		(-m[4]*c[3] + m[5]*c[1] - m[6]*c[0]) * d,
		(m[0]*c[3] - m[1]*c[1] + m[2]*c[0]) * d,
		(-m[12]*s[3] + m[13]*s[1] - m[14]*s[0]) * d,
		(m[8]*s[3] - m[9]*s[1] + m[10]*s[0]) * d,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row*4+col] = val
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// ApproxEqual reports whether all elements differ by at most tol.
func (m Mat4) ApproxEqual(o Mat4, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}
