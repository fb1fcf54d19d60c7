// Package main is the globe inspector: the globe rendered offscreen inside an
// ImGui window, with live controls for the orbit controller.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/wireglobe/internal/app"
	"github.com/Faultbox/wireglobe/internal/capture"
	"github.com/Faultbox/wireglobe/internal/config"
	"github.com/Faultbox/wireglobe/internal/engine/framebuffer"
	"github.com/Faultbox/wireglobe/internal/engine/renderer"
	"github.com/Faultbox/wireglobe/internal/engine/ui"
	"github.com/Faultbox/wireglobe/internal/globe"
	"github.com/Faultbox/wireglobe/internal/logger"
)

func init() {
	// SDL and OpenGL need the main thread.
	runtime.LockOSThread()
}

const (
	controlsWidth = float32(300)
	notifyTime    = 3 * time.Second
	titleInterval = 500 * time.Millisecond
)

// Inspector holds the inspector state.
type Inspector struct {
	config *config.Config
	log    *zap.Logger

	backend    *ui.Backend
	renderer   *renderer.Renderer
	controller *globe.Controller
	target     *framebuffer.Framebuffer
	shots      *capture.Writer

	pointer ui.Pointer
	frame   *globe.Frame

	rotation    bool
	interaction bool
	present     bool
	glowOpacity float32
	zoom        float32

	pendingDir chan string
	notice     string
	noticeAt   time.Time
	lastTitle  time.Time
}

// ShowIndicators mirrors the readouts in the window title.
func (in *Inspector) ShowIndicators(ind globe.Indicators) {
	in.backend.SetWindowTitle(app.Title(in.config.Window.Title+" Inspector", ind))
}

// NewInspector opens the window and builds the scene.
func NewInspector(cfg *config.Config) (*Inspector, error) {
	in := &Inspector{
		config:      cfg,
		log:         logger.Named("inspector"),
		rotation:    true,
		interaction: true,
		glowOpacity: cfg.Render.GlowOpacity,
		pendingDir:  make(chan string, 1),
	}

	format, err := capture.ParseFormat(cfg.Capture.Format)
	if err != nil {
		return nil, err
	}
	in.shots = capture.NewWriter(cfg.Capture.Dir, "inspector", format)

	// Settings are checked before any window or GL state exists.
	w, h := cfg.Window.Width, cfg.Window.Height
	rcfg, err := app.RendererConfig(cfg, w, h)
	if err != nil {
		return nil, fmt.Errorf("failed to configure renderer: %w", err)
	}

	in.backend, err = ui.NewBackend(cfg.Window.Title+" Inspector", w, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	seed := cfg.Markers.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := app.NewRand(seed)

	in.renderer, err = renderer.New(rcfg, rng)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	in.target, err = framebuffer.New(int32(w), int32(h))
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to create render target: %w", err)
	}

	in.controller, err = globe.NewController(cfg.GlobeParams(), rng, in.renderer.Layers()...)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	in.controller.Resize(w, h)
	if cfg.Window.Presentation {
		in.controller.EnterPresentation()
		in.present = true
	}

	in.log.Info("inspector initialized", zap.Uint64("seed", seed))
	return in, nil
}

// Run starts the ImGui loop. The backend tears its window down when the loop
// ends.
func (in *Inspector) Run() {
	in.backend.Run(in.render)
	in.backend = nil
}

// Close releases GL resources and closes the window. Safe on a partially
// built inspector.
func (in *Inspector) Close() {
	if in.target != nil {
		in.target.Destroy()
		in.target = nil
	}
	if in.renderer != nil {
		in.renderer.Close()
		in.renderer = nil
	}
	if in.backend != nil {
		in.backend.Close()
		in.backend = nil
	}
}

func (in *Inspector) render() {
	select {
	case dir := <-in.pendingDir:
		in.shots.SetDir(dir)
		in.log.Info("screenshot folder changed", zap.String("dir", dir))
	default:
	}

	in.frame = in.controller.Tick(float64(imgui.CurrentIO().DeltaTime()))
	in.zoom = in.frame.Distance
	if now := time.Now(); now.Sub(in.lastTitle) >= titleInterval {
		in.frame.Publish(in)
		in.lastTitle = now
	}

	pos, size := ui.Viewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, size.Y))
	if imgui.BeginV("Controls", nil, flags) {
		in.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+controlsWidth, pos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X-controlsWidth, size.Y))
	if imgui.BeginV("Globe", nil, flags|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse) {
		in.renderGlobe()
	}
	imgui.End()

	if in.notice != "" && time.Since(in.noticeAt) < notifyTime {
		in.renderNotice(pos, size)
	}
}

func (in *Inspector) renderGlobe() {
	avail := imgui.ContentRegionAvail()
	w, h := int(avail.X), int(avail.Y)
	if w <= 0 || h <= 0 {
		return
	}

	if in.target.Resize(int32(w), int32(h)) {
		in.controller.Resize(w, h)
	}
	in.renderer.DrawTo(in.target, in.frame)

	origin := imgui.CursorScreenPos()
	ui.Texture(in.target.ColorTexture(), avail)

	mouse := imgui.MousePos()
	in.pointer.Update(in.controller, ui.PointerState{
		Hovered: imgui.IsItemHovered(),
		Down:    imgui.IsMouseDown(imgui.MouseButtonLeft),
		X:       mouse.X - origin.X,
		Y:       mouse.Y - origin.Y,
		Wheel:   imgui.CurrentIO().MouseWheel(),
	})
}

func (in *Inspector) renderControls() {
	ind := in.frame.Indicators()

	imgui.Text("Zoom")
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##zoom", &in.zoom, in.frame.MinZoom, in.frame.MaxZoom, "%.1f", imgui.SliderFlagsNone) {
		in.controller.SetZoom(in.zoom)
	}
	imgui.TextDisabled(fmt.Sprintf("range %.1f .. %.1f", in.frame.MinZoom, in.frame.MaxZoom))

	imgui.Separator()
	imgui.Text("Velocity")
	imgui.ProgressBarV(in.frame.VelocityPercent/100, imgui.NewVec2(-1, 0), ind.Velocity+"%")
	imgui.TextDisabled("zoom " + ind.Zoom + "  bar " + ind.BarWidth + "px")
	if in.frame.Interacting {
		imgui.Text("Dragging")
	} else {
		imgui.TextDisabled("Idle")
	}

	imgui.Separator()
	if imgui.Checkbox("Rotation", &in.rotation) {
		in.controller.SetRotationEnabled(in.rotation)
	}
	if imgui.Checkbox("Interaction", &in.interaction) {
		if !in.interaction {
			in.pointer.Cancel()
		}
		in.controller.SetInteractionEnabled(in.interaction)
	}
	if imgui.Checkbox("Presentation", &in.present) {
		if in.present {
			in.pointer.Cancel()
			in.controller.EnterPresentation()
		} else {
			in.controller.ExitPresentation()
		}
	}
	in.interaction = in.controller.InteractionEnabled()

	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##glow", &in.glowOpacity, 0, 1, "glow %.2f", imgui.SliderFlagsNone) {
		in.renderer.SetGlowOpacity(in.glowOpacity)
	}

	imgui.Separator()
	if imgui.ButtonV("Screenshot", imgui.NewVec2(-1, 0)) {
		in.screenshot()
	}
	if imgui.ButtonV("Folder...", imgui.NewVec2(-1, 0)) {
		in.chooseFolder()
	}
	imgui.TextWrapped(in.shots.Dir())
}

func (in *Inspector) renderNotice(pos, size imgui.Vec2) {
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+controlsWidth+10, pos.Y+size.Y-40))
	if imgui.BeginV("##notice", nil, flags) {
		imgui.Text(in.notice)
	}
	imgui.End()
}

func (in *Inspector) screenshot() {
	w, h := in.target.Size()
	pixels := in.target.ReadPixels(nil)
	path, err := in.shots.SavePixels(pixels, int(w), int(h))
	if err != nil {
		in.log.Error("screenshot failed", zap.Error(err))
		in.notify("Screenshot failed: " + err.Error())
		return
	}
	in.log.Info("screenshot saved", zap.String("path", path))
	in.notify("Saved " + path)
}

// chooseFolder opens the native folder picker. The result is applied on the
// main loop.
func (in *Inspector) chooseFolder() {
	go func() {
		dir, err := dialog.Directory().Title("Screenshot folder").Browse()
		if err != nil {
			if err != dialog.ErrCancelled {
				in.log.Warn("folder dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case in.pendingDir <- dir:
		default:
		}
	}()
}

func (in *Inspector) notify(msg string) {
	in.notice = msg
	in.noticeAt = time.Now()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	in, err := NewInspector(cfg)
	if err != nil {
		logger.Error("failed to create inspector", zap.Error(err))
		os.Exit(1)
	}
	defer in.Close()

	in.Run()
}
