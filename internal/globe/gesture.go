package globe

import "github.com/Faultbox/wireglobe/pkg/math"

// PointerDown starts a drag at client coordinates (x, y).
func (c *Controller) PointerDown(x, y float32) {
	if !c.interactionEnabled {
		return
	}
	c.interacting = true
	c.pointer = math.Vec2{X: x, Y: y}
}

// PointerMove rotates the globe by the movement since the last sample.
func (c *Controller) PointerMove(x, y float32) {
	if !c.interactionEnabled || !c.interacting {
		return
	}
	c.drag(math.Vec2{X: x, Y: y}.Sub(c.pointer))
	c.pointer = math.Vec2{X: x, Y: y}
}

// PointerUp ends the drag; momentum takes over.
func (c *Controller) PointerUp() {
	c.interacting = false
}

// PointerLeave ends the drag when the pointer leaves the surface.
func (c *Controller) PointerLeave() {
	c.interacting = false
}

// TouchStart begins a touch gesture. One finger rotates, two fingers pinch.
// touches holds every finger currently down.
func (c *Controller) TouchStart(touches []math.Vec2) {
	if !c.interactionEnabled {
		return
	}
	c.interacting = true

	switch len(touches) {
	case 1:
		c.touchAnchor = touches[0]
		c.touchDrag = true
		c.pinching = false
	case 2:
		c.pinchSpan = touches[0].Distance(touches[1])
		c.pinching = true
		c.touchDrag = false
	}
}

// TouchMove continues the active touch gesture.
func (c *Controller) TouchMove(touches []math.Vec2) {
	if !c.interactionEnabled {
		return
	}

	switch {
	case len(touches) == 1 && c.touchDrag:
		c.drag(touches[0].Sub(c.touchAnchor))
		c.touchAnchor = touches[0]

	case len(touches) == 2 && c.pinching:
		span := touches[0].Distance(touches[1])
		// Fingers moving together shrink the span and zoom in.
		c.zoom.AdjustBy((c.pinchSpan - span) * c.params.PinchSpeed)
		c.pinchSpan = span
	}
}

// TouchEnd handles lifted fingers; remaining holds the fingers still down.
// With one finger left the gesture falls back to rotation.
func (c *Controller) TouchEnd(remaining []math.Vec2) {
	switch len(remaining) {
	case 0:
		c.endGesture()
	case 1:
		c.touchAnchor = remaining[0]
		c.touchDrag = true
		c.pinching = false
	}
}

// TouchCancel handles an interrupted touch sequence.
func (c *Controller) TouchCancel(remaining []math.Vec2) {
	if len(remaining) == 0 {
		c.endGesture()
	}
}

// Wheel zooms one step per event; positive deltaY moves the camera away.
func (c *Controller) Wheel(deltaY float32) {
	if !c.interactionEnabled {
		return
	}
	switch {
	case deltaY > 0:
		c.zoom.AdjustBy(c.params.WheelStep)
	case deltaY < 0:
		c.zoom.AdjustBy(-c.params.WheelStep)
	}
}

func (c *Controller) drag(delta math.Vec2) {
	if c.rotation.Drag(delta.X, delta.Y, c.params.RotationSpeed) {
		c.syncLayers()
	}
}

func (c *Controller) endGesture() {
	c.interacting = false
	c.touchDrag = false
	c.pinching = false
}
