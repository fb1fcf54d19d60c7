// Package app runs the globe window: the frame loop tying input, the orbit
// controller and the renderer together.
package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wireglobe/internal/capture"
	"github.com/Faultbox/wireglobe/internal/config"
	"github.com/Faultbox/wireglobe/internal/engine/input"
	"github.com/Faultbox/wireglobe/internal/engine/renderer"
	"github.com/Faultbox/wireglobe/internal/engine/window"
	"github.com/Faultbox/wireglobe/internal/globe"
	"github.com/Faultbox/wireglobe/internal/logger"
)

// titleInterval throttles window title updates.
const titleInterval = 250 * time.Millisecond

// App is the globe program instance.
type App struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	controller *globe.Controller
	shots      *capture.Writer
	hud        *titleHUD
}

// New creates the window, renderer and controller.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}

	seed := cfg.Markers.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	a.log.Info("initializing globe",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Uint64("seed", seed),
	)
	rng := NewRand(seed)

	format, err := capture.ParseFormat(cfg.Capture.Format)
	if err != nil {
		return nil, err
	}
	a.shots = capture.NewWriter(cfg.Capture.Dir, "globe", format)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Fullscreen:  cfg.Window.Fullscreen,
		VSync:       cfg.Window.VSync,
		Multisample: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.DrawableSize()
	rcfg, err := RendererConfig(cfg, dw, dh)
	if err != nil {
		a.window.Close()
		return nil, err
	}
	a.renderer, err = renderer.New(rcfg, rng)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.controller, err = globe.NewController(cfg.GlobeParams(), rng, a.renderer.Layers()...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	w, h := a.window.Size()
	a.controller.Resize(w, h)
	if cfg.Window.Presentation {
		a.controller.EnterPresentation()
	}

	a.input = input.New(gestures{Controller: a.controller, app: a}, w, h)
	a.hud = &titleHUD{base: cfg.Window.Title, window: a.window}

	a.log.Info("globe initialized")
	return a, nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	lastTitle := time.Time{}
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.config.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.config.Window.FPSLimit)
	}

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleKeys()

		frame := a.controller.Tick(dt)
		a.renderer.Draw(frame)

		if a.input.Pressed(sdl.K_F12) {
			a.screenshot(frame)
		}

		a.window.SwapBuffers()

		if now.Sub(lastTitle) >= titleInterval {
			frame.Publish(a.hud)
			lastTitle = now
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("zoom", frame.Distance),
				zap.Float32("velocity", frame.VelocityMagnitude),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (a *App) handleKeys() {
	switch {
	case a.input.Pressed(sdl.K_ESCAPE):
		a.running = false
	case a.input.Pressed(sdl.K_p):
		if a.controller.Presentation() {
			a.controller.ExitPresentation()
		} else {
			a.controller.EnterPresentation()
		}
		a.log.Info("presentation mode", zap.Bool("enabled", a.controller.Presentation()))
	case a.input.Pressed(sdl.K_r):
		a.controller.SetRotationEnabled(!a.controller.RotationEnabled())
		a.log.Info("rotation", zap.Bool("enabled", a.controller.RotationEnabled()))
	case a.input.Pressed(sdl.K_F11):
		a.window.ToggleFullscreen()
	}
}

func (a *App) screenshot(frame *globe.Frame) {
	pixels, w, h, err := a.renderer.Capture(frame)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.SavePixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up resources.
func (a *App) Close() {
	a.log.Info("closing globe")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// gestures forwards input to the controller and keeps the renderer viewport
// in step with window resizes.
type gestures struct {
	*globe.Controller
	app *App
}

func (g gestures) Resize(width, height int) {
	g.Controller.Resize(width, height)
	dw, dh := g.app.window.DrawableSize()
	g.app.renderer.Resize(dw, dh)
}

// titleHUD shows the indicators in the window title.
type titleHUD struct {
	base   string
	window *window.Window
}

func (h *titleHUD) ShowIndicators(ind globe.Indicators) {
	h.window.SetTitle(Title(h.base, ind))
}

// Title formats the window title for a set of indicators.
func Title(base string, ind globe.Indicators) string {
	return fmt.Sprintf("%s | zoom %s | velocity %s%%", base, ind.Zoom, ind.Velocity)
}

// NewRand returns the random source for marker and glow placement.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RendererConfig maps the render settings onto the renderer, parsing colors.
func RendererConfig(cfg *config.Config, width, height int) (renderer.Config, error) {
	r := cfg.Render

	bg, err := config.ParseColor(r.Background)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("background: %w", err)
	}
	edge, err := config.ParseColor(r.EdgeColor)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("edge color: %w", err)
	}

	return renderer.Config{
		Width:         width,
		Height:        height,
		Radius:        r.Radius,
		Detail:        r.Detail,
		FOV:           r.FOV,
		Background:    bg,
		EdgeColor:     edge,
		MinOpacity:    r.MinOpacity,
		MaxOpacity:    r.MaxOpacity,
		VertexSize:    r.VertexPointSize,
		GlowPoints:    r.GlowPoints,
		GlowRadius:    r.GlowRadius,
		GlowOpacity:   r.GlowOpacity,
		MarkerSize:    r.MarkerSize,
		MarkerOpacity: r.MarkerOpacity,
		TrailOpacity:  r.TrailOpacity,
	}, nil
}
