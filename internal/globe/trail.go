package globe

import (
	"time"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// TrailSample is one recorded marker position.
type TrailSample struct {
	Position math.Vec3
	Time     time.Duration // controller clock
}

// TrailVertex is a trail point ready for drawing.
type TrailVertex struct {
	Position math.Vec3
	Alpha    float32 // 1 for the newest sample, fading toward 0 at the window edge
}

// Trail is the time-windowed history of a marker, oldest sample first.
type Trail struct {
	window  time.Duration
	samples []TrailSample
}

// NewTrail creates an empty trail keeping samples younger than window.
func NewTrail(window time.Duration) *Trail {
	return &Trail{window: window}
}

// Record appends a sample and drops everything that aged out.
func (t *Trail) Record(pos math.Vec3, now time.Duration) {
	t.samples = append(t.samples, TrailSample{Position: pos, Time: now})
	t.Prune(now)
}

// Prune drops samples whose age reached the window.
func (t *Trail) Prune(now time.Duration) {
	keep := 0
	for _, s := range t.samples {
		if now-s.Time < t.window {
			t.samples[keep] = s
			keep++
		}
	}
	clear(t.samples[keep:])
	t.samples = t.samples[:keep]
}

// Samples returns the surviving samples. The slice is owned by the trail.
func (t *Trail) Samples() []TrailSample {
	return t.samples
}

// Vertices appends the faded trail to dst. A line needs two points, so a
// trail with fewer samples contributes nothing.
func (t *Trail) Vertices(now time.Duration, dst []TrailVertex) []TrailVertex {
	if len(t.samples) < 2 {
		return dst
	}
	window := float32(t.window.Seconds())
	for _, s := range t.samples {
		age := float32((now - s.Time).Seconds())
		dst = append(dst, TrailVertex{
			Position: s.Position,
			Alpha:    1 - age/window,
		})
	}
	return dst
}
