package math

import (
	"math"
	"testing"
)

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()
	if !approx(n.Length(), 1, 0.0001) {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if !approx(q.W, expectedW, 0.001) {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if !approx(q.Y, expectedY, 0.001) {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatFromRotationVectorZero(t *testing.T) {
	if q := QuatFromRotationVector(Vec3{}); q != QuatIdentity() {
		t.Errorf("zero rotation vector should give identity, got %v", q)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Z: 1}, 0.3)
	b := QuatFromAxisAngle(Vec3{Z: 1}, 0.4)
	got := a.Mul(b)
	want := QuatFromAxisAngle(Vec3{Z: 1}, 0.7)

	if !approx(got.Z, want.Z, 0.0001) || !approx(got.W, want.W, 0.0001) {
		t.Errorf("Mul = %v, want %v", got, want)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if !approx(m[i], identity[i], 0.0001) {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromRotationVector(t *testing.T) {
	got := QuatFromRotationVector(Vec3{Y: 0.05})
	want := QuatFromAxisAngle(Vec3{Y: 1}, 0.05)

	if !approx(got.Y, want.Y, 0.0001) || !approx(got.W, want.W, 0.0001) || got.X != 0 || got.Z != 0 {
		t.Errorf("QuatFromRotationVector = %v, want %v", got, want)
	}
}

func TestQuatToMat4QuarterTurn(t *testing.T) {
	m := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2)).ToMat4()

	// +X rotated 90 degrees about +Y lands on -Z.
	got := Vec3{m[0], m[1], m[2]}
	if !approx(got.X, 0, 0.0001) || !approx(got.Y, 0, 0.0001) || !approx(got.Z, -1, 0.0001) {
		t.Errorf("rotated +X = %v, want (0,0,-1)", got)
	}
}
