// Package input translates SDL2 events into globe gestures.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// touchMouseID marks mouse events SDL synthesizes from touches
// (SDL_TOUCH_MOUSEID). Fingers are handled directly, so those are dropped.
const touchMouseID = ^uint32(0)

// Gestures receives translated pointer, touch and viewport events.
// *globe.Controller implements it.
type Gestures interface {
	PointerDown(x, y float32)
	PointerMove(x, y float32)
	PointerUp()
	PointerLeave()
	TouchStart(touches []math.Vec2)
	TouchMove(touches []math.Vec2)
	TouchEnd(remaining []math.Vec2)
	TouchCancel(remaining []math.Vec2)
	Wheel(deltaY float32)
	Resize(width, height int)
}

// Input polls SDL events, forwards gestures and records key presses.
type Input struct {
	target  Gestures
	touches *Touches

	width, height int

	quit    bool
	pressed []sdl.Keycode
}

// New creates an input handler forwarding to target. width and height are
// the window size in screen coordinates.
func New(target Gestures, width, height int) *Input {
	return &Input{
		target:  target,
		touches: NewTouches(),
		width:   width,
		height:  height,
		pressed: make([]sdl.Keycode, 0, 8),
	}
}

// Update polls all pending SDL events. Returns true when the user asked to quit.
func (i *Input) Update() bool {
	i.pressed = i.pressed[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Handle(event)
	}
	return i.quit
}

// Handle translates a single event.
func (i *Input) Handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.quit = true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			i.width, i.height = int(e.Data1), int(e.Data2)
			i.target.Resize(i.width, i.height)
		case sdl.WINDOWEVENT_LEAVE:
			i.target.PointerLeave()
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// Finger-up events may never arrive while unfocused.
			if i.touches.Len() > 0 {
				i.CancelTouches()
			}
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			i.pressed = append(i.pressed, e.Keysym.Sym)
		}

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID || e.Button != sdl.BUTTON_LEFT {
			return
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.target.PointerDown(float32(e.X), float32(e.Y))
		} else {
			i.target.PointerUp()
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return
		}
		i.target.PointerMove(float32(e.X), float32(e.Y))

	case *sdl.MouseWheelEvent:
		if e.Which == touchMouseID {
			return
		}
		// SDL reports positive Y for scrolling away from the user, which
		// zooms in; the controller takes positive deltaY as zoom out.
		dy := -float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		i.target.Wheel(dy)

	case *sdl.TouchFingerEvent:
		i.handleFinger(e)
	}
}

func (i *Input) handleFinger(e *sdl.TouchFingerEvent) {
	// Finger coordinates are normalized to the window.
	pos := math.Vec2{X: e.X * float32(i.width), Y: e.Y * float32(i.height)}
	id := int64(e.FingerID)

	switch e.Type {
	case sdl.FINGERDOWN:
		i.touches.Down(id, pos)
		i.target.TouchStart(i.touches.Points())
	case sdl.FINGERMOTION:
		i.touches.Move(id, pos)
		i.target.TouchMove(i.touches.Points())
	case sdl.FINGERUP:
		i.touches.Up(id)
		i.target.TouchEnd(i.touches.Points())
	}
}

// CancelTouches drops every tracked finger, for example when the window
// loses focus in the middle of a gesture.
func (i *Input) CancelTouches() {
	i.touches.Reset()
	i.target.TouchCancel(nil)
}

// Pressed reports whether key went down during the last Update.
func (i *Input) Pressed(key sdl.Keycode) bool {
	for _, k := range i.pressed {
		if k == key {
			return true
		}
	}
	return false
}
