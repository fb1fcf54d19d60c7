package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// DepthFade is the globe material: a flat color whose opacity falls from
// MaxOpacity on the near side of the sphere to MinOpacity on the far side.
// The fade range follows the camera distance, so zooming keeps the look.
// Edges and vertex points share it.
type DepthFade struct {
	program uint32

	locProjection   int32
	locView         int32
	locModel        int32
	locColor        int32
	locCameraZ      int32
	locSphereRadius int32
	locMinOpacity   int32
	locMaxOpacity   int32
	locPointSize    int32
	locRoundPoints  int32

	Color        [3]float32
	SphereRadius float32
	MinOpacity   float32
	MaxOpacity   float32
}

const depthFadeVertex = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;
uniform float uPointSize;

out vec3 vViewPosition;

void main() {
    vec4 mvPosition = uView * uModel * vec4(aPosition, 1.0);
    vViewPosition = mvPosition.xyz;
    gl_Position = uProjection * mvPosition;
    gl_PointSize = uPointSize / max(-mvPosition.z, 0.001);
}
`

const depthFadeFragment = `
#version 410 core

in vec3 vViewPosition;

uniform vec3 uColor;
uniform float uCameraZ;
uniform float uSphereRadius;
uniform float uMinOpacity;
uniform float uMaxOpacity;
uniform bool uRoundPoints;

out vec4 FragColor;

void main() {
    if (uRoundPoints && length(gl_PointCoord - vec2(0.5)) > 0.5) {
        discard;
    }

    float depth = -vViewPosition.z;
    float nearDepth = uCameraZ - uSphereRadius * 1.5;
    float farDepth = uCameraZ + uSphereRadius * 1.5;

    float t = smoothstep(nearDepth, farDepth, depth);
    FragColor = vec4(uColor, mix(uMaxOpacity, uMinOpacity, t));
}
`

// NewDepthFade compiles the material. Requires a current GL context.
func NewDepthFade(color [3]float32, sphereRadius, minOpacity, maxOpacity float32) (*DepthFade, error) {
	program, err := CompileProgram(depthFadeVertex, depthFadeFragment)
	if err != nil {
		return nil, fmt.Errorf("depth fade material: %w", err)
	}

	return &DepthFade{
		program:         program,
		locProjection:   Uniform(program, "uProjection"),
		locView:         Uniform(program, "uView"),
		locModel:        Uniform(program, "uModel"),
		locColor:        Uniform(program, "uColor"),
		locCameraZ:      Uniform(program, "uCameraZ"),
		locSphereRadius: Uniform(program, "uSphereRadius"),
		locMinOpacity:   Uniform(program, "uMinOpacity"),
		locMaxOpacity:   Uniform(program, "uMaxOpacity"),
		locPointSize:    Uniform(program, "uPointSize"),
		locRoundPoints:  Uniform(program, "uRoundPoints"),
		Color:           color,
		SphereRadius:    sphereRadius,
		MinOpacity:      minOpacity,
		MaxOpacity:      maxOpacity,
	}, nil
}

// Use binds the program and uploads the per-frame uniforms.
func (m *DepthFade) Use(projection, view math.Mat4, cameraZ float32) {
	gl.UseProgram(m.program)
	gl.UniformMatrix4fv(m.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(m.locView, 1, false, view.Ptr())
	gl.Uniform3f(m.locColor, m.Color[0], m.Color[1], m.Color[2])
	gl.Uniform1f(m.locCameraZ, cameraZ)
	gl.Uniform1f(m.locSphereRadius, m.SphereRadius)
	gl.Uniform1f(m.locMinOpacity, m.MinOpacity)
	gl.Uniform1f(m.locMaxOpacity, m.MaxOpacity)
}

// SetModel uploads the model matrix.
func (m *DepthFade) SetModel(model math.Mat4) {
	gl.UniformMatrix4fv(m.locModel, 1, false, model.Ptr())
}

// SetPoints switches between line drawing (size 0) and round points whose
// size is given at unit view depth.
func (m *DepthFade) SetPoints(size float32) {
	gl.Uniform1f(m.locPointSize, size)
	round := int32(0)
	if size > 0 {
		round = 1
	}
	gl.Uniform1i(m.locRoundPoints, round)
}

// Destroy releases the program.
func (m *DepthFade) Destroy() {
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
}
