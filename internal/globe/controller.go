package globe

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Layer is a visual that co-rotates with the globe. Every layer receives the
// same orientation value after each change.
type Layer interface {
	SetOrientation(q math.Quat)
}

// Controller owns all globe state: rotation, zoom, markers and interaction
// flags. It is driven by gesture calls and one Tick per displayed frame.
type Controller struct {
	params Params

	rotation Rotation
	zoom     *Zoom
	flock    *Flock
	layers   []Layer

	interacting        bool
	rotationEnabled    bool
	interactionEnabled bool
	presentation       bool

	// Gesture tracking
	pointer     math.Vec2
	touchAnchor math.Vec2
	touchDrag   bool
	pinchSpan   float32
	pinching    bool

	elapsed time.Duration
	frame   Frame
}

// NewController validates params and builds a controller at the rest pose.
// rng seeds the marker flock.
func NewController(params Params, rng *rand.Rand, layers ...Layer) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}

	c := &Controller{
		params:             params,
		rotation:           NewRotation(params.InitialVelocity),
		zoom:               NewZoom(params),
		flock:              NewFlock(params.Markers, rng),
		rotationEnabled:    true,
		interactionEnabled: true,
	}
	for _, l := range layers {
		c.AddLayer(l)
	}
	return c, nil
}

// AddLayer registers a co-rotating layer and syncs it immediately.
func (c *Controller) AddLayer(l Layer) {
	c.layers = append(c.layers, l)
	l.SetOrientation(c.rotation.Orientation())
}

// Params returns the controller constants.
func (c *Controller) Params() Params { return c.params }

// Rotation returns the rotation state.
func (c *Controller) Rotation() *Rotation { return &c.rotation }

// Zoom returns the zoom manager.
func (c *Controller) Zoom() *Zoom { return c.zoom }

// Flock returns the orbiting markers.
func (c *Controller) Flock() *Flock { return c.flock }

// Elapsed returns the controller clock.
func (c *Controller) Elapsed() time.Duration { return c.elapsed }

// Interacting reports whether a gesture is in progress.
func (c *Controller) Interacting() bool { return c.interacting }

// InteractionEnabled reports whether pointer and touch input is accepted.
func (c *Controller) InteractionEnabled() bool { return c.interactionEnabled }

// RotationEnabled reports whether momentum runs between gestures.
func (c *Controller) RotationEnabled() bool { return c.rotationEnabled }

// Presentation reports whether presentation mode is active.
func (c *Controller) Presentation() bool { return c.presentation }

// SetRotationEnabled pauses or resumes momentum integration.
func (c *Controller) SetRotationEnabled(enabled bool) {
	c.rotationEnabled = enabled
}

// SetInteractionEnabled gates pointer, touch and wheel input. Disabling ends
// any gesture in progress so momentum resumes.
func (c *Controller) SetInteractionEnabled(enabled bool) {
	c.interactionEnabled = enabled
	if !enabled {
		c.endGesture()
	}
}

// EnterPresentation disables input and eases to the presentation distance,
// scaled to the viewport like the zoom bounds. The idle spin keeps running.
func (c *Controller) EnterPresentation() {
	c.presentation = true
	c.SetInteractionEnabled(false)
	c.zoom.SetTarget(c.zoom.Scaled(c.params.PresentationZoom))
}

// ExitPresentation re-enables input and eases back to the base distance.
func (c *Controller) ExitPresentation() {
	c.presentation = false
	c.SetInteractionEnabled(true)
	c.zoom.SetTarget(c.zoom.Base())
}

// SetZoom sets the distance directly (slider input), cancelling any easing.
func (c *Controller) SetZoom(d float32) {
	c.zoom.SetDistance(d)
}

// SetTargetZoom eases the distance toward d over the next ticks.
func (c *Controller) SetTargetZoom(d float32) {
	c.zoom.SetTarget(d)
}

// Resize rescales the zoom bounds for a new viewport.
func (c *Controller) Resize(width, height int) {
	c.zoom.Rescale(float32(width), float32(height))
}

// Tick advances the simulation by dt seconds and returns the frame output.
// dt is read once and used for every integration in the tick.
func (c *Controller) Tick(dt float64) *Frame {
	if dt < 0 {
		dt = 0
	}
	c.elapsed += time.Duration(dt * float64(time.Second))

	c.zoom.Step()

	f := &c.frame
	f.Markers = c.flock.Step(dt, c.elapsed, c.zoom.Camera(), c.zoom, f.Markers[:0])
	f.Trails = c.trails(f.Trails)

	if !c.interacting && c.rotationEnabled {
		p := c.params
		if c.rotation.Coast(p.Damping, p.MinRotationSpeed, p.ReleaseEpsilon) {
			c.syncLayers()
		}
	}

	c.fillFrame(f)
	return f
}

// trails rebuilds the per-marker trail vertices, reusing the previous buffers.
func (c *Controller) trails(prev [][]TrailVertex) [][]TrailVertex {
	markers := c.flock.Markers()
	if cap(prev) < len(markers) {
		prev = make([][]TrailVertex, len(markers))
	}
	prev = prev[:len(markers)]
	for i, m := range markers {
		prev[i] = m.Trail().Vertices(c.elapsed, prev[i][:0])
	}
	return prev
}

func (c *Controller) fillFrame(f *Frame) {
	speed := c.rotation.Speed()
	percent := speed / c.params.VelocityFullScale * 100
	if percent > 100 {
		percent = 100
	}
	_, animating := c.zoom.Target()

	f.Elapsed = c.elapsed
	f.Orientation = c.rotation.Orientation()
	f.Distance = c.zoom.Distance()
	f.MinZoom = c.zoom.Min()
	f.MaxZoom = c.zoom.Max()
	f.ZoomAnimating = animating
	f.Velocity = c.rotation.Velocity()
	f.VelocityMagnitude = speed
	f.VelocityPercent = percent
	f.VelocityBarWidth = percent / 100 * c.params.VelocityBarWidth
	f.Interacting = c.interacting
	f.InteractionEnabled = c.interactionEnabled
	f.RotationEnabled = c.rotationEnabled
	f.Presentation = c.presentation
}

func (c *Controller) syncLayers() {
	q := c.rotation.Orientation()
	for _, l := range c.layers {
		l.SetOrientation(q)
	}
}
