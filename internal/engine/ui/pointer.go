package ui

// Target receives the pointer gestures of an image item.
type Target interface {
	PointerDown(x, y float32)
	PointerMove(x, y float32)
	PointerUp()
	Wheel(deltaY float32)
}

// PointerState is one frame of mouse state over an image item.
type PointerState struct {
	Hovered bool
	Down    bool    // left button held
	X, Y    float32 // position relative to the item
	Wheel   float32 // ImGui wheel; positive scrolls up
}

// Pointer turns per-frame ImGui mouse polling into gesture calls. A drag
// starts only when the button goes down over the item and follows the mouse
// until release, even outside the item.
type Pointer struct {
	dragging bool
	wasDown  bool
	x, y     float32
}

// Dragging reports whether a drag is in progress.
func (p *Pointer) Dragging() bool { return p.dragging }

// Update feeds one frame of state to t.
func (p *Pointer) Update(t Target, s PointerState) {
	pressed := s.Down && !p.wasDown
	switch {
	case pressed && s.Hovered:
		p.dragging = true
		t.PointerDown(s.X, s.Y)
	case s.Down && p.dragging && (s.X != p.x || s.Y != p.y):
		t.PointerMove(s.X, s.Y)
	case !s.Down && p.dragging:
		p.dragging = false
		t.PointerUp()
	}
	p.x, p.y = s.X, s.Y
	p.wasDown = s.Down

	if s.Hovered && s.Wheel != 0 {
		t.Wheel(-s.Wheel)
	}
}

// Cancel ends a drag without notifying the target.
func (p *Pointer) Cancel() {
	p.dragging = false
}
