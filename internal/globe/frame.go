package globe

import (
	"fmt"
	"time"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Frame is the controller output for one tick. Hosts and renderers read it;
// they never reach into the controller. Markers and Trails are reused by the
// next Tick.
type Frame struct {
	Elapsed time.Duration

	Orientation math.Quat

	Distance      float32
	MinZoom       float32
	MaxZoom       float32
	ZoomAnimating bool

	Velocity          math.Vec3
	VelocityMagnitude float32
	VelocityPercent   float32 // 0..100
	VelocityBarWidth  float32

	Interacting        bool
	InteractionEnabled bool
	RotationEnabled    bool
	Presentation       bool

	Markers []MarkerPose
	Trails  [][]TrailVertex // one entry per marker, empty when too short to draw
}

// Camera returns the camera position; it sits on +Z looking at the origin.
func (f *Frame) Camera() math.Vec3 {
	return math.Vec3{Z: f.Distance}
}

// Indicators is the text a host UI shows for a frame.
type Indicators struct {
	Zoom     string
	Velocity string
	BarWidth string
}

// Indicators formats the zoom and velocity readouts.
func (f *Frame) Indicators() Indicators {
	return Indicators{
		Zoom:     fmt.Sprintf("%.1f", f.Distance),
		Velocity: fmt.Sprintf("%.2f", f.VelocityPercent),
		BarWidth: fmt.Sprintf("%.1f", f.VelocityBarWidth),
	}
}

// HUD receives indicator updates from a host loop. A nil HUD is allowed.
type HUD interface {
	ShowIndicators(Indicators)
}

// Publish pushes the frame indicators to hud when one is attached.
func (f *Frame) Publish(hud HUD) {
	if hud == nil {
		return
	}
	hud.ShowIndicators(f.Indicators())
}
