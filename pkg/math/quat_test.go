package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	m := QuatIdentity().ToMat4()
	if !m.ApproxEqual(Identity(), 0.0001) {
		t.Errorf("Identity quat should produce identity matrix, got %v", m)
	}
}

func TestQuatToMat4MatchesMathGL(t *testing.T) {
	axis := Vec3{0.3, -1, 0.2}.Normalize()
	q := QuatFromAxisAngle(axis, 1.1)
	want := mgl32.QuatRotate(1.1, mgl32.Vec3{axis.X, axis.Y, axis.Z}).Mat4()
	if got := q.ToMat4(); !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("ToMat4 = %v, want %v", got, want)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 0.4)
	v := Vec3{2, -3, 5}
	got := q.Rotate(v)
	want := q.ToMat4().TransformDirection(v)
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Rotate = %v, matrix gives %v", got, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.5)
	got := a.Mul(b).ToMat4()
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.8).ToMat4()
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("a*b = %v, want %v", got, want)
	}
}

func TestQuatConjugateInverts(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 1.3)
	v := Vec3{1, 2, 3}
	if got := q.Conjugate().Rotate(q.Rotate(v)); !got.ApproxEqual(v, 1e-5) {
		t.Errorf("conj(q) * q * v = %v, want %v", got, v)
	}
}

func TestQuatToMat4AboutKeepsCenterFixed(t *testing.T) {
	center := Vec3{2, 1, 1.25}
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, -0.8)
	m := QuaternionToMatrix(q, center)

	if got := m.TransformPoint(center); !got.ApproxEqual(center, 1e-5) {
		t.Errorf("center moved to %v", got)
	}
	if !m.IsAffine(1e-6) {
		t.Errorf("pivot rotation should be affine: %v", m)
	}

	// Equivalent to T(c) * R * T(-c).
	want := TranslateVec(center).Mul(q.ToMat4()).Mul(TranslateVec(center.Negate()))
	if !m.ApproxEqual(want, 1e-5) {
		t.Errorf("ToMat4About = %v, want %v", m, want)
	}

	// A point one unit right of the pivot swings around it.
	p := center.Add(Vec3{1, 0, 0})
	got := m.TransformPoint(p)
	if d := got.Distance(center); math.Abs(float64(d-1)) > 1e-5 {
		t.Errorf("distance to pivot = %v, want 1", d)
	}
}
