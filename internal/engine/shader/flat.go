package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// Flat draws unlit geometry with per-vertex RGBA multiplied by a tint.
// Markers, trails and the surface glow use it.
type Flat struct {
	program uint32

	locProjection int32
	locView       int32
	locModel      int32
	locTint       int32
	locPointSize  int32
}

const flatVertex = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;
uniform float uPointSize;

out vec4 vColor;

void main() {
    vec4 mvPosition = uView * uModel * vec4(aPosition, 1.0);
    vColor = aColor;
    gl_Position = uProjection * mvPosition;
    gl_PointSize = uPointSize / max(-mvPosition.z, 0.001);
}
`

const flatFragment = `
#version 410 core

in vec4 vColor;

uniform vec4 uTint;

out vec4 FragColor;

void main() {
    FragColor = vColor * uTint;
}
`

// NewFlat compiles the material. Requires a current GL context.
func NewFlat() (*Flat, error) {
	program, err := CompileProgram(flatVertex, flatFragment)
	if err != nil {
		return nil, fmt.Errorf("flat material: %w", err)
	}

	return &Flat{
		program:       program,
		locProjection: Uniform(program, "uProjection"),
		locView:       Uniform(program, "uView"),
		locModel:      Uniform(program, "uModel"),
		locTint:       Uniform(program, "uTint"),
		locPointSize:  Uniform(program, "uPointSize"),
	}, nil
}

// Use binds the program and uploads the camera matrices.
func (m *Flat) Use(projection, view math.Mat4) {
	gl.UseProgram(m.program)
	gl.UniformMatrix4fv(m.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(m.locView, 1, false, view.Ptr())
	gl.Uniform1f(m.locPointSize, 0)
}

// SetModel uploads the model matrix.
func (m *Flat) SetModel(model math.Mat4) {
	gl.UniformMatrix4fv(m.locModel, 1, false, model.Ptr())
}

// SetTint sets the color every vertex color is multiplied by.
func (m *Flat) SetTint(r, g, b, a float32) {
	gl.Uniform4f(m.locTint, r, g, b, a)
}

// SetPointSize sets the point size at unit view depth.
func (m *Flat) SetPointSize(size float32) {
	gl.Uniform1f(m.locPointSize, size)
}

// Destroy releases the program.
func (m *Flat) Destroy() {
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
}
