package globe

import (
	"testing"
)

func TestZoomClampsEveryAdjustment(t *testing.T) {
	z := NewZoom(DefaultParams())

	deltas := []float32{0.1, 5, -0.3, -20, 3.3, 100, -0.01, -7.5, 0}
	for i, d := range deltas {
		z.AdjustBy(d)
		if z.Distance() < z.Min() || z.Distance() > z.Max() {
			t.Fatalf("step %d: distance %v outside [%v, %v]", i, z.Distance(), z.Min(), z.Max())
		}
	}

	z.SetDistance(100)
	if z.Distance() != 12 {
		t.Errorf("expected clamp to max 12, got %v", z.Distance())
	}
	z.SetDistance(-5)
	if z.Distance() != 6 {
		t.Errorf("expected clamp to min 6, got %v", z.Distance())
	}
}

func TestZoomEasedTargetTerminates(t *testing.T) {
	z := NewZoom(DefaultParams())
	z.SetTarget(11)

	ticks := 0
	for ; ticks < 500 && z.Step(); ticks++ {
	}
	if ticks >= 500 {
		t.Fatal("eased zoom did not terminate")
	}
	if z.Distance() != 11 {
		t.Errorf("expected exact target 11, got %v", z.Distance())
	}

	for i := 0; i < 10; i++ {
		z.Step()
	}
	if z.Distance() != 11 {
		t.Errorf("distance moved after reaching target: %v", z.Distance())
	}
	if _, easing := z.Target(); easing {
		t.Error("animation flag should be cleared")
	}
}

func TestZoomTargetClampedToBounds(t *testing.T) {
	z := NewZoom(DefaultParams())
	z.SetTarget(50)
	for z.Step() {
	}
	if z.Distance() != 12 {
		t.Errorf("expected target clamped to 12, got %v", z.Distance())
	}
}

func TestZoomDiscreteInputCancelsEasing(t *testing.T) {
	z := NewZoom(DefaultParams())
	z.SetTarget(6)
	z.Step()
	z.AdjustBy(0.1)

	if _, easing := z.Target(); easing {
		t.Error("discrete adjustment should cancel easing")
	}
	d := z.Distance()
	z.Step()
	if z.Distance() != d {
		t.Errorf("distance changed after cancel: %v -> %v", d, z.Distance())
	}
}

func TestZoomRescalePreservesOffset(t *testing.T) {
	z := NewZoom(DefaultParams())
	z.SetDistance(10) // one unit above base

	// 600px square -> 270px globe square -> factor 2
	z.Rescale(800, 600)

	if !near(z.Base(), 18, 1e-3) {
		t.Errorf("base: got %v, want 18", z.Base())
	}
	if !near(z.Min(), 12, 1e-3) || !near(z.Max(), 24, 1e-3) {
		t.Errorf("bounds: got [%v, %v], want [12, 24]", z.Min(), z.Max())
	}
	if !near(z.Distance(), 19, 1e-3) {
		t.Errorf("distance: got %v, want 19 (base + offset)", z.Distance())
	}
}

func TestZoomRescaleReclamps(t *testing.T) {
	z := NewZoom(DefaultParams())
	z.SetDistance(6) // offset -3

	// Larger viewport shrinks the bounds: factor 0.5
	z.Rescale(2400, 2400)

	if !near(z.Min(), 3, 1e-3) || !near(z.Max(), 6, 1e-3) {
		t.Fatalf("bounds: got [%v, %v], want [3, 6]", z.Min(), z.Max())
	}
	// base 4.5 + offset -3 = 1.5, clamped to 3
	if !near(z.Distance(), 3, 1e-3) {
		t.Errorf("distance: got %v, want 3", z.Distance())
	}
}

func TestZoomRescaleIgnoresEmptyViewport(t *testing.T) {
	z := NewZoom(DefaultParams())
	z.Rescale(0, 600)
	if z.Min() != 6 || z.Max() != 12 || z.Distance() != 9 {
		t.Errorf("empty viewport changed zoom: [%v, %v] d=%v", z.Min(), z.Max(), z.Distance())
	}
}
