package renderer

import (
	"github.com/Faultbox/wireglobe/pkg/math"
)

// Layer is one co-rotating part of the globe: edges, vertex points or the
// surface glow. It implements globe.Layer.
type Layer struct {
	Name    string
	Visible bool

	mesh        *mesh
	orientation math.Quat
}

func newLayer(name string, m *mesh) *Layer {
	return &Layer{
		Name:        name,
		Visible:     true,
		mesh:        m,
		orientation: math.QuatIdentity(),
	}
}

// SetOrientation receives the globe orientation from the controller.
func (l *Layer) SetOrientation(q math.Quat) {
	l.orientation = q
}

// Orientation returns the last orientation received.
func (l *Layer) Orientation() math.Quat {
	return l.orientation
}

// Model returns the layer's model matrix.
func (l *Layer) Model() math.Mat4 {
	return l.orientation.ToMat4()
}
