package math

import (
	"testing"
)

func TestVec2Distance(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}
	got := a.Distance(b)
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Distance() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	got := Vec3{}.Normalize()
	if got != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}
