package globe

import (
	gomath "math"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Zoom manages the camera distance. Min <= Distance <= Max holds after every
// mutation; the bounds follow the viewport size.
type Zoom struct {
	// Values at the reference viewport
	initialBase float32
	initialMin  float32
	initialMax  float32

	referenceSize    float32
	viewportFraction float32
	ease             float32
	snap             float32

	distance float32
	base     float32
	min      float32
	max      float32
	factor   float32 // viewport scale relative to the reference square

	target float32
	easing bool
}

// NewZoom creates a zoom manager at the base distance.
func NewZoom(p Params) *Zoom {
	z := &Zoom{
		initialBase:      p.BaseDistance,
		initialMin:       p.MinZoom,
		initialMax:       p.MaxZoom,
		referenceSize:    p.ReferenceSize,
		viewportFraction: p.ViewportFraction,
		ease:             p.ZoomEase,
		snap:             p.ZoomSnap,
		distance:         p.BaseDistance,
		base:             p.BaseDistance,
		min:              p.MinZoom,
		max:              p.MaxZoom,
		factor:           1,
	}
	z.clamp()
	return z
}

// Distance returns the current camera distance.
func (z *Zoom) Distance() float32 { return z.distance }

// Min returns the lower distance bound.
func (z *Zoom) Min() float32 { return z.min }

// Max returns the upper distance bound.
func (z *Zoom) Max() float32 { return z.max }

// Base returns the viewport-scaled rest distance.
func (z *Zoom) Base() float32 { return z.base }

// Camera returns the camera position on +Z looking at the origin.
func (z *Zoom) Camera() math.Vec3 {
	return math.Vec3{Z: z.distance}
}

// Target returns the eased target and whether an animation is running.
func (z *Zoom) Target() (float32, bool) {
	return z.target, z.easing
}

// SetDistance jumps to d (clamped) and cancels any eased animation.
func (z *Zoom) SetDistance(d float32) {
	z.CancelTarget()
	z.distance = d
	z.clamp()
}

// AdjustBy moves the distance by delta (clamped) and cancels any eased animation.
func (z *Zoom) AdjustBy(delta float32) {
	z.SetDistance(z.distance + delta)
}

// SetTarget arms an eased animation toward t. The target is clamped into the
// current bounds so the animation can always terminate.
func (z *Zoom) SetTarget(t float32) {
	z.target = clampf(t, z.min, z.max)
	z.easing = true
}

// CancelTarget stops an eased animation where it is.
func (z *Zoom) CancelTarget() {
	z.easing = false
}

// Step advances the eased animation by one frame. Returns true while animating.
func (z *Zoom) Step() bool {
	if !z.easing {
		return false
	}

	z.distance += (z.target - z.distance) * z.ease
	if gomath.Abs(float64(z.target-z.distance)) < float64(z.snap) {
		z.distance = z.target
		z.easing = false
	}
	z.clamp()
	return z.easing
}

// Rescale recomputes the bounds for a new viewport. The globe square covers
// viewportFraction of the smaller side; bounds scale so the globe keeps its
// apparent size. The user's offset from the base distance is preserved.
func (z *Zoom) Rescale(width, height float32) {
	square := float32(gomath.Min(float64(width), float64(height))) * z.viewportFraction
	if square <= 0 {
		return
	}
	factor := z.referenceSize / square
	z.factor = factor

	offset := z.distance - z.base
	z.base = z.initialBase * factor
	z.min = z.initialMin * factor
	z.max = z.initialMax * factor
	z.distance = z.base + offset

	if z.easing {
		z.target = clampf(z.target, z.min, z.max)
	}
	z.clamp()
}

// Scaled converts a distance given at the reference viewport to the current one.
func (z *Zoom) Scaled(d float32) float32 {
	return d * z.factor
}

// Normalized returns where d falls between Min and Max; ok is false when the
// bounds collapse to a single value.
func (z *Zoom) Normalized(d float32) (n float32, ok bool) {
	span := z.max - z.min
	if span == 0 {
		return 0, false
	}
	return (d - z.min) / span, true
}

func (z *Zoom) clamp() {
	z.distance = clampf(z.distance, z.min, z.max)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
