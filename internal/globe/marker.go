package globe

import (
	gomath "math"
	"math/rand/v2"
	"time"

	"github.com/Faultbox/wireglobe/pkg/math"
)

const twoPi = 2 * gomath.Pi

// Marker is a decorative triangle flying just above the globe surface.
// Angles are in radians, rates in radians per second.
type Marker struct {
	Theta     float64 // azimuth, kept in [0, 2π)
	Phi       float64 // polar angle, kept in [0, π]
	Radius    float32
	ThetaRate float64
	PhiRate   float64

	trail *Trail
}

// MarkerPose is the placement of a marker for one frame, in globe space.
type MarkerPose struct {
	Position math.Vec3
	Right    math.Vec3
	Forward  math.Vec3 // direction of travel
	Up       math.Vec3 // radial normal
	Scale    float32
}

// Matrix returns the model matrix: lay the marker flat on the sphere facing
// its heading, then scale it.
func (p MarkerPose) Matrix() math.Mat4 {
	return math.Translate(p.Position.X, p.Position.Y, p.Position.Z).
		Mul(math.FromBasis(p.Right, p.Forward, p.Up)).
		Mul(math.Scale(p.Scale, p.Scale, p.Scale))
}

// NewMarker creates a marker at (theta, phi) moving with the given rates.
func NewMarker(theta, phi float64, radius float32, thetaRate, phiRate float64, window time.Duration) *Marker {
	m := &Marker{
		Theta:     theta,
		Phi:       phi,
		Radius:    radius,
		ThetaRate: thetaRate,
		PhiRate:   phiRate,
		trail:     NewTrail(window),
	}
	m.wrap()
	return m
}

// Trail returns the marker's trail.
func (m *Marker) Trail() *Trail {
	return m.trail
}

// Advance integrates the angular position over dt seconds.
func (m *Marker) Advance(dt float64) {
	m.Theta += m.ThetaRate * dt
	m.Phi += m.PhiRate * dt
	m.wrap()
}

// wrap reflects phi back into [0, π] across the pole, reversing its rate and
// moving to the opposite meridian so the path stays continuous, then wraps
// theta into [0, 2π). A full 2π of travel crosses both poles and leaves rate
// and meridian unchanged, so phi is folded first and reflected at most once.
func (m *Marker) wrap() {
	m.Phi = gomath.Mod(m.Phi, twoPi)
	if m.Phi < 0 {
		m.Phi += twoPi
	}
	if m.Phi > gomath.Pi {
		m.Phi = twoPi - m.Phi
		m.PhiRate = -m.PhiRate
		m.Theta += gomath.Pi
	}

	m.Theta = gomath.Mod(m.Theta, twoPi)
	if m.Theta < 0 {
		m.Theta += twoPi
	}
}

// Position converts the spherical position to cartesian globe coordinates.
func (m *Marker) Position() math.Vec3 {
	sinPhi, cosPhi := gomath.Sincos(m.Phi)
	sinTheta, cosTheta := gomath.Sincos(m.Theta)
	r := float64(m.Radius)
	return math.Vec3{
		X: float32(r * sinPhi * cosTheta),
		Y: float32(r * sinPhi * sinTheta),
		Z: float32(r * cosPhi),
	}
}

// Pose builds the tangent-plane frame for the current position.
func (m *Marker) Pose(scale float32) MarkerPose {
	pos := m.Position()
	up := pos.Normalize()

	sinPhi, cosPhi := gomath.Sincos(m.Phi)
	sinTheta, cosTheta := gomath.Sincos(m.Theta)
	tangentTheta := math.Vec3{X: float32(-sinTheta), Y: float32(cosTheta)}
	tangentPhi := math.Vec3{
		X: float32(cosPhi * cosTheta),
		Y: float32(cosPhi * sinTheta),
		Z: float32(-sinPhi),
	}

	forward := tangentTheta.Scale(float32(m.ThetaRate * sinPhi)).
		Add(tangentPhi.Scale(float32(m.PhiRate))).
		Normalize()
	if forward.IsZero() {
		forward = tangentTheta
	}

	return MarkerPose{
		Position: pos,
		Right:    forward.Cross(up).Normalize(),
		Forward:  forward,
		Up:       up,
		Scale:    scale,
	}
}

// Flock is the fixed set of markers created at start.
type Flock struct {
	params  MarkerParams
	markers []*Marker
}

// NewFlock scatters params.Count markers uniformly over the sphere with
// random headings and speeds.
func NewFlock(params MarkerParams, rng *rand.Rand) *Flock {
	f := &Flock{
		params:  params,
		markers: make([]*Marker, 0, params.Count),
	}

	for i := 0; i < params.Count; i++ {
		theta := rng.Float64() * twoPi
		phi := gomath.Acos(rng.Float64()*2 - 1)
		radius := params.GlobeRadius + params.HeightMin + float32(rng.Float64())*params.HeightRange
		speed := float64(params.SpeedMin) + rng.Float64()*float64(params.SpeedRange)

		vTheta := (rng.Float64() - 0.5) * 2
		vPhi := (rng.Float64() - 0.5) * 2
		mag := gomath.Hypot(vTheta, vPhi)
		if mag == 0 {
			vTheta, mag = 1, 1
		}

		f.markers = append(f.markers, NewMarker(
			theta, phi, radius,
			vTheta/mag*speed, vPhi/mag*speed,
			params.TrailWindow,
		))
	}
	return f
}

// Markers returns the markers of the flock.
func (f *Flock) Markers() []*Marker {
	return f.markers
}

// Step advances every marker by dt seconds, records its trail at now, and
// appends the resulting poses to dst.
func (f *Flock) Step(dt float64, now time.Duration, camera math.Vec3, zoom *Zoom, dst []MarkerPose) []MarkerPose {
	for _, m := range f.markers {
		m.Advance(dt)
		pose := m.Pose(f.scaleFor(m.Position().Distance(camera), zoom))
		m.trail.Record(pose.Position, now)
		dst = append(dst, pose)
	}
	return dst
}

// scaleFor maps camera distance to marker size: ScaleMax at MinZoom, ScaleMin
// at MaxZoom, clamped. Collapsed zoom bounds give the midpoint.
func (f *Flock) scaleFor(distance float32, zoom *Zoom) float32 {
	lo, hi := f.params.ScaleMin, f.params.ScaleMax
	n, ok := zoom.Normalized(distance)
	if !ok {
		return (lo + hi) / 2
	}
	return clampf(hi-n*(hi-lo), lo, hi)
}
