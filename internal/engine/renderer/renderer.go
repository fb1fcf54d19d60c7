// Package renderer draws the globe scene with OpenGL.
package renderer

import (
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/wireglobe/internal/engine/framebuffer"
	"github.com/Faultbox/wireglobe/internal/engine/geometry"
	"github.com/Faultbox/wireglobe/internal/engine/shader"
	"github.com/Faultbox/wireglobe/internal/globe"
	"github.com/Faultbox/wireglobe/internal/logger"
	"github.com/Faultbox/wireglobe/pkg/math"
)

// Config holds scene appearance.
type Config struct {
	Width  int
	Height int

	Radius     float32
	Detail     int
	FOV        float32 // vertical, degrees
	Background [3]float32

	EdgeColor  [3]float32
	MinOpacity float32
	MaxOpacity float32
	VertexSize float32 // world-space diameter of vertex points

	GlowPoints  int
	GlowRadius  float32
	GlowOpacity float32

	MarkerSize    float32
	MarkerOpacity float32
	TrailOpacity  float32
}

const (
	nearPlane = 0.1
	farPlane  = 1000

	glowPointSize = 0.02 // world units
)

// Renderer owns the GL resources of the globe scene.
type Renderer struct {
	config Config
	log    *zap.Logger

	depthFade *shader.DepthFade
	flat      *shader.Flat

	edges    *Layer
	vertices *Layer
	glow     *Layer

	marker *mesh
	trails *trailBuffer

	capture *framebuffer.Framebuffer
	pixels  []byte
}

// New creates the renderer and uploads the scene geometry. rng places the
// glow points. Must be called after the OpenGL context is created.
func New(cfg Config, rng *rand.Rand) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.depthFade, err = shader.NewDepthFade(cfg.EdgeColor, cfg.Radius, cfg.MinOpacity, cfg.MaxOpacity)
	if err != nil {
		return nil, err
	}
	r.flat, err = shader.NewFlat()
	if err != nil {
		r.depthFade.Destroy()
		return nil, err
	}

	sphere := geometry.Icosphere(cfg.Radius, cfg.Detail)
	r.edges = newLayer("edges", newMesh(sphere.LinePositions(), gl.LINES))
	r.vertices = newLayer("vertices", newMesh(sphere.PointPositions(), gl.POINTS))

	glow := geometry.SurfacePoints(cfg.GlowPoints, cfg.GlowRadius, rng)
	r.glow = newLayer("glow", newMesh(geometry.Flatten(glow), gl.POINTS))
	r.glow.Visible = cfg.GlowOpacity > 0

	tri := geometry.MarkerTriangle(cfg.MarkerSize)
	r.marker = newMesh(geometry.Flatten(tri[:]), gl.TRIANGLES)
	r.trails = newTrailBuffer()

	r.Resize(cfg.Width, cfg.Height)

	r.log.Info("scene ready",
		zap.Int("vertices", len(sphere.Vertices)),
		zap.Int("edges", len(sphere.Edges)),
		zap.Int("glow_points", len(glow)),
	)
	return r, nil
}

// Layers returns the co-rotating layers, for registration with the controller.
func (r *Renderer) Layers() []globe.Layer {
	return []globe.Layer{r.edges, r.vertices, r.glow}
}

// SetGlowOpacity changes the glow opacity; zero hides the layer.
func (r *Renderer) SetGlowOpacity(opacity float32) {
	r.config.GlowOpacity = opacity
	r.glow.Visible = opacity > 0
}

// Resize handles window resize. Sizes are in drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders the frame to the current viewport.
func (r *Renderer) Draw(f *globe.Frame) {
	r.draw(f, r.config.Width, r.config.Height)
}

// DrawTo renders the frame into an offscreen framebuffer.
func (r *Renderer) DrawTo(fb *framebuffer.Framebuffer, f *globe.Frame) {
	restore := fb.Bind()
	defer restore()

	w, h := fb.Size()
	r.draw(f, int(w), int(h))
}

// Capture renders the frame offscreen at the window size and returns the
// bottom-up RGBA pixels. The buffer is reused by the next call.
func (r *Renderer) Capture(f *globe.Frame) ([]byte, int, int, error) {
	w, h := int32(r.config.Width), int32(r.config.Height)
	if r.capture == nil {
		fb, err := framebuffer.New(w, h)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("capture target: %w", err)
		}
		r.capture = fb
	} else {
		r.capture.Resize(w, h)
	}

	r.DrawTo(r.capture, f)
	r.pixels = r.capture.ReadPixels(r.pixels)

	cw, ch := r.capture.Size()
	return r.pixels, int(cw), int(ch), nil
}

// applyState sets the fixed pipeline state. Hosts that share the context
// (the ImGui inspector) change it between frames, so it is set per draw.
func applyState() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	// Everything is translucent and nothing writes depth, so the depth test
	// stays off and triangles are drawn double-sided.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)
}

func (r *Renderer) draw(f *globe.Frame, width, height int) {
	applyState()
	bg := r.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if width <= 0 || height <= 0 {
		return
	}

	projection := Projection(r.config.FOV, width, height)
	view := math.Translate(0, 0, -f.Distance)
	unitPixels := pixelsPerUnit(r.config.FOV, height)

	// Globe edges and vertex points share the depth-fade material.
	r.depthFade.Use(projection, view, f.Distance)
	if r.edges.Visible {
		r.depthFade.SetPoints(0)
		r.depthFade.SetModel(r.edges.Model())
		r.edges.mesh.draw()
	}
	if r.vertices.Visible {
		r.depthFade.SetPoints(r.config.VertexSize * unitPixels)
		r.depthFade.SetModel(r.vertices.Model())
		r.vertices.mesh.draw()
	}

	r.flat.Use(projection, view)

	if r.glow.Visible {
		c := r.config.EdgeColor
		r.flat.SetModel(r.glow.Model())
		r.flat.SetTint(c[0], c[1], c[2], r.config.GlowOpacity)
		r.flat.SetPointSize(glowPointSize * unitPixels)
		gl.VertexAttrib4f(1, 1, 1, 1, 1)
		r.glow.mesh.draw()
		r.flat.SetPointSize(0)
	}

	// Markers and trails ride on the globe.
	globeModel := r.edges.Model()

	r.trails.update(f.Trails)
	r.flat.SetModel(globeModel)
	r.flat.SetTint(1, 1, 1, r.config.TrailOpacity)
	r.trails.draw()

	r.flat.SetTint(1, 1, 1, r.config.MarkerOpacity)
	gl.VertexAttrib4f(1, 1, 1, 1, 1)
	for _, pose := range f.Markers {
		r.flat.SetModel(globeModel.Mul(pose.Matrix()))
		r.marker.draw()
	}
}

// Projection returns the perspective matrix for a viewport. fov is the
// vertical field of view in degrees.
func Projection(fov float32, width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(fov*gomath.Pi/180, aspect, nearPlane, farPlane)
}

// pixelsPerUnit is the on-screen size of one world unit at view depth 1.
// Dividing by the view depth in the vertex shader gives perspective sizing.
func pixelsPerUnit(fov float32, height int) float32 {
	half := float64(fov) * gomath.Pi / 360
	return float32(float64(height) / 2 / gomath.Tan(half))
}

// Close releases the GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, l := range []*Layer{r.edges, r.vertices, r.glow} {
		l.mesh.destroy()
	}
	r.marker.destroy()
	r.trails.destroy()
	if r.capture != nil {
		r.capture.Destroy()
	}
	r.flat.Destroy()
	r.depthFade.Destroy()
}
