// Package transform maintains a model-to-eye affine transform together with
// its exact inverse.
//
// Every operation composes in the current local frame: the forward matrix is
// post-multiplied by the operation and the inverse is pre-multiplied by the
// operation's inverse. Both are updated in closed form, so the general 4x4
// inverse is never needed and forward·inverse stays at identity up to
// rounding.
//
// An Affine is not safe for concurrent use.
package transform

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Affine is a forward/inverse transform pair with a save stack.
type Affine struct {
	forward math3d.Mat4
	inverse math3d.Mat4
	scratch math3d.Mat4

	saved *frame
	depth int
}

type frame struct {
	forward, inverse math3d.Mat4
	next             *frame
}

// New returns an identity transform.
func New() *Affine {
	a := &Affine{}
	a.LoadIdentity()
	return a
}

// LoadIdentity resets both matrices to identity. The save stack is untouched.
func (a *Affine) LoadIdentity() {
	a.forward = math3d.Identity()
	a.inverse = math3d.Identity()
}

// Forward returns a copy of the model-to-eye matrix.
func (a *Affine) Forward() math3d.Mat4 { return a.forward }

// Inverse returns a copy of the eye-to-model matrix.
func (a *Affine) Inverse() math3d.Mat4 { return a.inverse }

// RotateX rotates the local frame about its X axis.
func (a *Affine) RotateX(angle float64) {
	s, c := math.Sincos(angle)
	rotateCols(&a.forward, 1, 2, c, s)
	rotateRows(&a.inverse, 1, 2, c, s)
}

// RotateY rotates the local frame about its Y axis.
func (a *Affine) RotateY(angle float64) {
	s, c := math.Sincos(angle)
	rotateCols(&a.forward, 2, 0, c, s)
	rotateRows(&a.inverse, 2, 0, c, s)
}

// RotateZ rotates the local frame about its Z axis.
func (a *Affine) RotateZ(angle float64) {
	s, c := math.Sincos(angle)
	rotateCols(&a.forward, 0, 1, c, s)
	rotateRows(&a.inverse, 0, 1, c, s)
}

// rotateCols replaces columns i and j of m with (c·i + s·j, −s·i + c·j).
func rotateCols(m *math3d.Mat4, i, j int, c, s float64) {
	for r := 0; r < 16; r += 4 {
		mi, mj := m[r+i], m[r+j]
		m[r+i] = c*mi + s*mj
		m[r+j] = -s*mi + c*mj
	}
}

// rotateRows replaces rows i and j of m with (c·i + s·j, −s·i + c·j).
func rotateRows(m *math3d.Mat4, i, j int, c, s float64) {
	ri, rj := i*4, j*4
	for k := range 4 {
		mi, mj := m[ri+k], m[rj+k]
		m[ri+k] = c*mi + s*mj
		m[rj+k] = -s*mi + c*mj
	}
}

// Rotate rotates the local frame by the unit quaternion q.
func (a *Affine) Rotate(q math3d.Quat) {
	r := q.Mat4()
	a.forward = a.forward.Mul(r)
	a.scratch = r.Transpose()
	a.inverse = a.scratch.Mul(a.inverse)
}

// TranslateTo moves the local origin by (x, y, z) in local coordinates.
func (a *Affine) TranslateTo(x, y, z float64) {
	f := &a.forward
	f[3] += f[0]*x + f[1]*y + f[2]*z
	f[7] += f[4]*x + f[5]*y + f[6]*z
	f[11] += f[8]*x + f[9]*y + f[10]*z

	// Row 3 of the inverse is (0, 0, 0, 1).
	inv := &a.inverse
	inv[3] -= x
	inv[7] -= y
	inv[11] -= z
}

// ScaleOf scales the local axes. A zero factor leaves the inverse with
// infinities; no guard is applied.
func (a *Affine) ScaleOf(x, y, z float64) {
	f := &a.forward
	for r := 0; r < 12; r += 4 {
		f[r] *= x
		f[r+1] *= y
		f[r+2] *= z
	}
	inv := &a.inverse
	for k := range 4 {
		inv[k] /= x
		inv[4+k] /= y
		inv[8+k] /= z
	}
}

// Transform maps a model-space point to eye space.
func (a *Affine) Transform(p math3d.Vec3) math3d.Vec3 {
	return apply(&a.forward, p)
}

// InverseTransform maps an eye-space point back to model space.
func (a *Affine) InverseTransform(p math3d.Vec3) math3d.Vec3 {
	return apply(&a.inverse, p)
}

// TransformInPlace is Transform writing into p.
func (a *Affine) TransformInPlace(p *math3d.Vec3) {
	*p = apply(&a.forward, *p)
}

// InverseTransformInPlace is InverseTransform writing into p.
func (a *Affine) InverseTransformInPlace(p *math3d.Vec3) {
	*p = apply(&a.inverse, *p)
}

// NormalTransform maps a model-space normal to eye space using the
// transpose of the inverse's linear part. The result is not renormalized.
func (a *Affine) NormalTransform(n math3d.Vec3) math3d.Vec3 {
	m := &a.inverse
	return math3d.Vec3{
		X: m[0]*n.X + m[4]*n.Y + m[8]*n.Z,
		Y: m[1]*n.X + m[5]*n.Y + m[9]*n.Z,
		Z: m[2]*n.X + m[6]*n.Y + m[10]*n.Z,
	}
}

// NormalTransformInPlace is NormalTransform writing into n.
func (a *Affine) NormalTransformInPlace(n *math3d.Vec3) {
	*n = a.NormalTransform(*n)
}

func apply(m *math3d.Mat4, p math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// PushState saves the current pair and resets the transform to identity.
func (a *Affine) PushState() {
	a.saved = &frame{forward: a.forward, inverse: a.inverse, next: a.saved}
	a.depth++
	a.LoadIdentity()
}

// PopState restores the most recently saved pair. It reports false and
// leaves the transform unchanged when nothing is saved.
func (a *Affine) PopState() bool {
	f := a.saved
	if f == nil {
		return false
	}
	a.forward, a.inverse = f.forward, f.inverse
	a.saved = f.next
	a.depth--
	return true
}

// Depth returns the number of saved states.
func (a *Affine) Depth() int { return a.depth }
