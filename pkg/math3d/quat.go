package math3d

import "math"

// Quat is a rotation quaternion with vector part (X, Y, Z) and scalar W.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians about axis.
// A zero axis yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return QuatIdentity()
	}
	s, c := math.Sincos(angle / 2)
	return Quat{n.X * s, n.Y * s, n.Z * s, c}
}

// Mul returns the Hamilton product a*b, the rotation b followed by a.
//
//nolint:st1016 // a*b naming convention is clearer for quaternion products
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// Conjugate returns the conjugate, the inverse of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Len returns the norm.
func (q Quat) Len() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns the unit quaternion. The zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate applies the rotation to v. q must be a unit quaternion.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 returns the rotation matrix of a unit quaternion.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y), 0,
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x), 0,
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// Nlerp interpolates from a (t=0) to b (t=1) along the shorter arc and
// renormalizes the result.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Quat) Nlerp(b Quat, t float64) Quat {
	if a.X*b.X+a.Y*b.Y+a.Z*b.Z+a.W*b.W < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
	}
	return Quat{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}.Normalize()
}
