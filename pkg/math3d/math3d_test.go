package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestNormalize(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", got)
	}

	n := V3(3, 4, 0).Normalize()
	if !n.ApproxEqual(V3(0.6, 0.8, 0), eps) {
		t.Errorf("Normalize(3,4,0) = %v", n)
	}

	for _, v := range []Vec3{V3(1e-8, 0, 0), V3(-5, 2, 9), V3(1e6, -1e6, 3)} {
		if l := v.Normalize().Len(); math.Abs(l-1) > 1e-12 {
			t.Errorf("|Normalize(%v)| = %v", v, l)
		}
	}
}

func TestCrossIsRightHanded(t *testing.T) {
	tests := []struct {
		a, b, want Vec3
	}{
		{AxisX(), AxisY(), AxisZ()},
		{AxisY(), AxisZ(), AxisX()},
		{AxisZ(), AxisX(), AxisY()},
	}
	for _, tc := range tests {
		if got := tc.a.Cross(tc.b); got != tc.want {
			t.Errorf("%v × %v = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid3(V3(0, 0, 0), V3(3, 0, 0), V3(0, 3, 3))
	if !c.ApproxEqual(V3(1, 1, 1), eps) {
		t.Errorf("Centroid3 = %v", c)
	}
}

func TestMat4Rotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"x", RotateX(math.Pi / 2), AxisY(), AxisZ()},
		{"y", RotateY(math.Pi / 2), AxisZ(), AxisX()},
		{"z", RotateZ(math.Pi / 2), AxisX(), AxisY()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.MulVec3(tc.in); !got.ApproxEqual(tc.want, eps) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMat4TranslationColumn(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	if got := m.Translation(); got != V3(1, 2, 3) {
		t.Errorf("Translation() = %v", got)
	}
	if got := m.Get(1, 3); got != 2 {
		t.Errorf("Get(1, 3) = %v, want 2", got)
	}
	if got := m.MulVec3(V3(1, 1, 1)); got != V3(2, 3, 4) {
		t.Errorf("MulVec3 = %v", got)
	}
	if got := m.MulVec3Dir(V3(1, 1, 1)); got != V3(1, 1, 1) {
		t.Errorf("MulVec3Dir = %v, directions ignore translation", got)
	}

	m.Set(0, 3, 7)
	if m[3] != 7 {
		t.Errorf("Set(0, 3) wrote %v", m)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(V3(1, -2, 3)).
		Mul(RotateY(0.4)).
		Mul(RotateX(-1.1)).
		Mul(Scale(V3(2, 0.5, 3)))

	inv := m.Inverse()
	if !m.Mul(inv).ApproxEqual(Identity(), 1e-12) || !inv.Mul(m).ApproxEqual(Identity(), 1e-12) {
		t.Errorf("m·m⁻¹ = %v", m.Mul(inv))
	}
	if d := m.Determinant(); math.Abs(d-3) > 1e-12 {
		t.Errorf("Determinant = %v, want 3", d)
	}

	general := Mat4{
		2, 0, 1, 4,
		1, 3, 0, -1,
		0, 1, 1, 2,
		1, 0, 0, 1,
	}
	if general.Determinant() == 0 {
		t.Fatal("test matrix is singular")
	}
	if !general.Mul(general.Inverse()).ApproxEqual(Identity(), 1e-12) {
		t.Errorf("general inverse is off: %v", general.Mul(general.Inverse()))
	}
}

func TestMat4InverseSingular(t *testing.T) {
	if got := Scale(V3(1, 0, 1)).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestMat4Transpose(t *testing.T) {
	r := RotateZ(0.3).Mul(RotateX(0.8))
	if !r.Mul(r.Transpose()).ApproxEqual(Identity(), 1e-12) {
		t.Error("rotation times its transpose is not the identity")
	}
}

func TestQuatMatchesMatrix(t *testing.T) {
	v := V3(0.3, -4, 2)
	for _, axis := range []Vec3{AxisX(), AxisY(), AxisZ(), V3(1, 2, -1)} {
		q := QuatFromAxisAngle(axis, 0.9)
		if got, want := q.Rotate(v), q.Mat4().MulVec3(v); !got.ApproxEqual(want, 1e-12) {
			t.Errorf("axis %v: Rotate = %v, Mat4 = %v", axis, got, want)
		}
	}

	tests := []struct {
		axis Vec3
		want Mat4
	}{
		{AxisX(), RotateX(0.7)},
		{AxisY(), RotateY(0.7)},
		{AxisZ(), RotateZ(0.7)},
	}
	for _, tc := range tests {
		if got := QuatFromAxisAngle(tc.axis, 0.7).Mat4(); !got.ApproxEqual(tc.want, 1e-12) {
			t.Errorf("axis %v: %v, want %v", tc.axis, got, tc.want)
		}
	}
}

func TestQuatCompose(t *testing.T) {
	a := QuatFromAxisAngle(AxisX(), 0.5)
	b := QuatFromAxisAngle(AxisY(), -1.2)
	if !a.Mul(b).Mat4().ApproxEqual(a.Mat4().Mul(b.Mat4()), 1e-12) {
		t.Error("quaternion product disagrees with the matrix product")
	}

	v := V3(1, 2, 3)
	if back := a.Conjugate().Rotate(a.Rotate(v)); !back.ApproxEqual(v, 1e-12) {
		t.Errorf("conjugate round trip = %v", back)
	}
}

func TestQuatNlerp(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(AxisZ(), math.Pi/2)
	if got := a.Nlerp(b, 0); got != a {
		t.Errorf("Nlerp(0) = %v", got)
	}
	mid := a.Nlerp(b, 0.5)
	if l := mid.Len(); math.Abs(l-1) > 1e-12 {
		t.Errorf("|mid| = %v", l)
	}
	if got := mid.Rotate(AxisX()); !got.ApproxEqual(V3(math.Sqrt2/2, math.Sqrt2/2, 0), 1e-12) {
		t.Errorf("mid rotation of X = %v", got)
	}

	if got := QuatFromAxisAngle(Vec3{}, 1); got != QuatIdentity() {
		t.Errorf("zero axis = %v, want identity", got)
	}
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quat normalized to %v", got)
	}
}
