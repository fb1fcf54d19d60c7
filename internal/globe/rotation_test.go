package globe

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/wireglobe/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func TestDragHorizontalRotatesAboutY(t *testing.T) {
	r := NewRotation(math.Vec3{})
	if !r.Drag(10, 0, 0.005) {
		t.Fatal("expected drag to rotate")
	}

	q := r.Orientation()
	halfAngle := 10 * 0.005 / 2.0
	if !near(q.X, 0, 1e-7) || !near(q.Z, 0, 1e-7) {
		t.Errorf("expected pure Y rotation, got %+v", q)
	}
	if !near(q.Y, float32(gomath.Sin(halfAngle)), 1e-6) {
		t.Errorf("Y component: got %v, want %v", q.Y, gomath.Sin(halfAngle))
	}
	if !near(q.W, float32(gomath.Cos(halfAngle)), 1e-6) {
		t.Errorf("W component: got %v, want %v", q.W, gomath.Cos(halfAngle))
	}

	v := r.Velocity()
	if !near(v.X, 0, 1e-7) || !near(v.Y, 0.05, 1e-6) || !near(v.Z, 0, 1e-7) {
		t.Errorf("velocity should be axis*angle = (0,0.05,0), got %+v", v)
	}
}

func TestDragVerticalRotatesAboutX(t *testing.T) {
	r := NewRotation(math.Vec3{})
	r.Drag(0, -20, 0.005)

	v := r.Velocity()
	if !near(v.X, -0.1, 1e-6) || v.Y != 0 || v.Z != 0 {
		t.Errorf("expected rotation about -X, got velocity %+v", v)
	}
}

func TestDragZeroDelta(t *testing.T) {
	start := math.Vec3{Y: 0.002}
	r := NewRotation(start)

	if r.Drag(0, 0, 0.005) {
		t.Error("zero delta should not rotate")
	}
	if r.Orientation() != math.QuatIdentity() {
		t.Errorf("orientation changed: %+v", r.Orientation())
	}
	if r.Velocity() != start {
		t.Errorf("velocity changed: %+v", r.Velocity())
	}
	q := r.Orientation()
	if gomath.IsNaN(float64(q.W)) {
		t.Error("orientation is NaN")
	}
}

func TestCoastFloorsAtMinimumSpeed(t *testing.T) {
	p := DefaultParams()
	r := NewRotation(math.Vec3{X: 0.006, Y: 0.008}) // |v| = 0.01

	for i := 0; i < 1000; i++ {
		if !r.Coast(p.Damping, p.MinRotationSpeed, p.ReleaseEpsilon) {
			t.Fatalf("frame %d: coasting stopped", i)
		}
		if s := r.Speed(); s < p.MinRotationSpeed-1e-7 {
			t.Fatalf("frame %d: speed %v dropped below floor %v", i, s, p.MinRotationSpeed)
		}
	}

	if s := r.Speed(); !near(s, p.MinRotationSpeed, 1e-7) {
		t.Errorf("speed should settle at %v, got %v", p.MinRotationSpeed, s)
	}

	// Direction is preserved by the floor.
	v := r.Velocity().Normalize()
	if !near(v.X, 0.6, 1e-4) || !near(v.Y, 0.8, 1e-4) {
		t.Errorf("direction drifted: %+v", v)
	}
}

func TestCoastAtRest(t *testing.T) {
	p := DefaultParams()
	r := NewRotation(math.Vec3{})

	if r.Coast(p.Damping, p.MinRotationSpeed, p.ReleaseEpsilon) {
		t.Error("zero velocity should not coast")
	}
	if r.Orientation() != math.QuatIdentity() {
		t.Errorf("orientation changed at rest: %+v", r.Orientation())
	}

	tiny := NewRotation(math.Vec3{Z: 0.000005})
	if tiny.Coast(p.Damping, p.MinRotationSpeed, p.ReleaseEpsilon) {
		t.Error("velocity below epsilon should not coast")
	}
}

func TestOrientationStaysUnitNorm(t *testing.T) {
	p := DefaultParams()
	r := NewRotation(p.InitialVelocity)

	drags := [][2]float32{{10, 0}, {-3, 7}, {250, -120}, {0.5, 0.25}, {-40, -40}}
	for i := 0; i < 2000; i++ {
		if i%10 == 0 {
			d := drags[(i/10)%len(drags)]
			r.Drag(d[0], d[1], p.RotationSpeed)
		}
		r.Coast(p.Damping, p.MinRotationSpeed, p.ReleaseEpsilon)

		if n := r.Orientation().Length(); !near(n, 1, 1e-5) {
			t.Fatalf("step %d: |q| = %v", i, n)
		}
	}
}
