package input

import "github.com/Faultbox/wireglobe/pkg/math"

// Touches tracks the fingers currently down, in the order they landed.
type Touches struct {
	ids    []int64
	points map[int64]math.Vec2
	buf    []math.Vec2
}

// NewTouches creates an empty tracker.
func NewTouches() *Touches {
	return &Touches{points: make(map[int64]math.Vec2)}
}

// Down registers a finger. A repeated id just moves it.
func (t *Touches) Down(id int64, pos math.Vec2) {
	if _, ok := t.points[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.points[id] = pos
}

// Move updates a tracked finger; unknown ids are ignored.
func (t *Touches) Move(id int64, pos math.Vec2) {
	if _, ok := t.points[id]; ok {
		t.points[id] = pos
	}
}

// Up removes a finger.
func (t *Touches) Up(id int64) {
	if _, ok := t.points[id]; !ok {
		return
	}
	delete(t.points, id)
	for n, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:n], t.ids[n+1:]...)
			break
		}
	}
}

// Reset forgets every finger.
func (t *Touches) Reset() {
	t.ids = t.ids[:0]
	clear(t.points)
}

// Len returns the number of fingers down.
func (t *Touches) Len() int {
	return len(t.ids)
}

// Points returns the finger positions in landing order. The slice is reused
// by the next call.
func (t *Touches) Points() []math.Vec2 {
	t.buf = t.buf[:0]
	for _, id := range t.ids {
		t.buf = append(t.buf, t.points[id])
	}
	return t.buf
}
