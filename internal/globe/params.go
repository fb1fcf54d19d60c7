// Package globe implements the orbit controller for the wireframe globe:
// trackball rotation with momentum, viewport-relative zoom, and the flock of
// orbiting markers with their fading trails.
//
// Everything here runs on the host's frame thread. Event handlers and Tick
// mutate the controller synchronously; nothing blocks and nothing is shared.
package globe

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Params holds the tunable constants of the controller.
type Params struct {
	// Rotation
	RotationSpeed    float32   // radians per dragged pixel
	Damping          float32   // per-frame velocity decay, in (0,1)
	MinRotationSpeed float32   // idle spin floor, radians per frame
	ReleaseEpsilon   float32   // below this the globe is considered at rest
	InitialVelocity  math.Vec3 // angular velocity at start (axis * angle)

	// Zoom
	BaseDistance     float32 // camera distance at the reference viewport
	MinZoom          float32
	MaxZoom          float32
	ReferenceSize    float32 // reference square size in pixels
	ViewportFraction float32 // share of min(width, height) covered by the globe square
	WheelStep        float32
	PinchSpeed       float32
	ZoomEase         float32 // fraction of the remaining distance covered per frame
	ZoomSnap         float32
	PresentationZoom float32

	// Indicators
	VelocityFullScale float32 // angular speed shown as 100%
	VelocityBarWidth  float32

	// Markers
	Markers MarkerParams
}

// MarkerParams holds the orbiting-marker constants.
type MarkerParams struct {
	Count       int
	GlobeRadius float32
	HeightMin   float32
	HeightRange float32
	SpeedMin    float32
	SpeedRange  float32
	TrailWindow time.Duration
	ScaleMin    float32
	ScaleMax    float32
}

// DefaultParams returns the tuned defaults of the globe.
func DefaultParams() Params {
	return Params{
		RotationSpeed:    0.005,
		Damping:          0.98,
		MinRotationSpeed: 0.0016,
		ReleaseEpsilon:   0.00001,
		InitialVelocity:  math.Vec3{Y: 0.002},

		BaseDistance:     9,
		MinZoom:          6,
		MaxZoom:          12,
		ReferenceSize:    540,
		ViewportFraction: 0.45,
		WheelStep:        0.1,
		PinchSpeed:       0.01,
		ZoomEase:         0.08,
		ZoomSnap:         0.01,
		PresentationZoom: 10,

		VelocityFullScale: 0.05,
		VelocityBarWidth:  110,

		Markers: MarkerParams{
			Count:       5,
			GlobeRadius: 1.2,
			HeightMin:   0.05,
			HeightRange: 0.1,
			SpeedMin:    0.3,
			SpeedRange:  0.3,
			TrailWindow: 5 * time.Second,
			ScaleMin:    0.5,
			ScaleMax:    2.5,
		},
	}
}

// Validate reports every inconsistent parameter.
func (p Params) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(p.RotationSpeed > 0, "rotation speed must be positive, got %v", p.RotationSpeed)
	check(p.Damping > 0 && p.Damping < 1, "damping must be in (0,1), got %v", p.Damping)
	check(p.ReleaseEpsilon >= 0, "release epsilon must not be negative, got %v", p.ReleaseEpsilon)
	check(p.MinRotationSpeed >= p.ReleaseEpsilon, "min rotation speed %v is below release epsilon %v", p.MinRotationSpeed, p.ReleaseEpsilon)
	check(p.MinZoom > 0, "min zoom must be positive, got %v", p.MinZoom)
	check(p.MinZoom <= p.MaxZoom, "min zoom %v exceeds max zoom %v", p.MinZoom, p.MaxZoom)
	check(p.BaseDistance >= p.MinZoom && p.BaseDistance <= p.MaxZoom,
		"base distance %v outside [%v, %v]", p.BaseDistance, p.MinZoom, p.MaxZoom)
	check(p.ReferenceSize > 0, "reference size must be positive, got %v", p.ReferenceSize)
	check(p.ViewportFraction > 0, "viewport fraction must be positive, got %v", p.ViewportFraction)
	check(p.ZoomEase > 0 && p.ZoomEase <= 1, "zoom ease must be in (0,1], got %v", p.ZoomEase)
	check(p.ZoomSnap > 0, "zoom snap must be positive, got %v", p.ZoomSnap)
	check(p.VelocityFullScale > 0, "velocity full scale must be positive, got %v", p.VelocityFullScale)

	m := p.Markers
	check(m.Count >= 0, "marker count must not be negative, got %d", m.Count)
	check(m.GlobeRadius > 0, "globe radius must be positive, got %v", m.GlobeRadius)
	check(m.SpeedMin > 0, "marker speed must be positive, got %v", m.SpeedMin)
	check(m.TrailWindow > 0, "trail window must be positive, got %v", m.TrailWindow)
	check(m.ScaleMin <= m.ScaleMax, "marker scale min %v exceeds max %v", m.ScaleMin, m.ScaleMax)

	if err != nil {
		return fmt.Errorf("invalid globe params: %w", err)
	}
	return nil
}
