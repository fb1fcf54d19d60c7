package globe

import (
	gomath "math"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Rotation is the trackball state: the globe orientation and its angular
// velocity, stored as axis * per-frame angle.
type Rotation struct {
	orientation math.Quat
	velocity    math.Vec3
}

// NewRotation starts at the rest pose with the given angular velocity.
func NewRotation(velocity math.Vec3) Rotation {
	return Rotation{
		orientation: math.QuatIdentity(),
		velocity:    velocity,
	}
}

// Orientation returns the current unit quaternion.
func (r *Rotation) Orientation() math.Quat {
	return r.orientation
}

// Velocity returns the angular velocity vector.
func (r *Rotation) Velocity() math.Vec3 {
	return r.velocity
}

// Speed returns the per-frame rotation angle.
func (r *Rotation) Speed() float32 {
	return r.velocity.Length()
}

// Drag rotates by a screen-space drag delta. The axis lies in the screen plane
// perpendicular to the drag; the angle grows with the drag length.
// A zero delta changes nothing and returns false. The stored velocity is kept
// rather than zeroed, so a pointer that stops before release still coasts.
func (r *Rotation) Drag(dx, dy, speed float32) bool {
	if dx == 0 && dy == 0 {
		return false
	}

	axis := math.Vec3{X: dy, Y: dx}.Normalize()
	angle := float32(gomath.Sqrt(float64(dx*dx+dy*dy))) * speed

	r.velocity = axis.Scale(angle)
	r.compose(r.velocity)
	return true
}

// Coast advances one frame of momentum: rotate by the stored velocity, then
// damp it. Once moving, the velocity never decays below minSpeed, so the globe
// keeps an idle spin. Returns false when the velocity is at rest.
func (r *Rotation) Coast(damping, minSpeed, epsilon float32) bool {
	speed := r.velocity.Length()
	if speed <= epsilon {
		return false
	}

	r.compose(r.velocity)

	r.velocity = r.velocity.Scale(damping)
	if damped := r.velocity.Length(); damped < minSpeed && damped > epsilon {
		r.velocity = r.velocity.Scale(minSpeed / damped)
	}
	return true
}

// compose left-multiplies the rotation v (axis * angle) onto the orientation.
func (r *Rotation) compose(v math.Vec3) {
	step := math.QuatFromRotationVector(v)
	r.orientation = step.Mul(r.orientation).Normalize()
}
