// Package config handles globe configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/wireglobe/internal/globe"
)

// Config holds all settings of the globe programs.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Globe   GlobeConfig   `yaml:"globe"`
	Markers MarkersConfig `yaml:"markers"`
	Render  RenderConfig  `yaml:"render"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	FPSLimit     int    `yaml:"fps_limit"`    // 0 = unlimited
	Presentation bool   `yaml:"presentation"` // start in presentation mode
}

// GlobeConfig holds rotation and zoom tuning.
type GlobeConfig struct {
	RotationSpeed    float32 `yaml:"rotation_speed"` // radians per dragged pixel
	Damping          float32 `yaml:"damping"`
	MinRotationSpeed float32 `yaml:"min_rotation_speed"`
	InitialSpin      float32 `yaml:"initial_spin"` // Y axis, radians per frame

	BaseDistance     float32 `yaml:"base_distance"`
	MinZoom          float32 `yaml:"min_zoom"`
	MaxZoom          float32 `yaml:"max_zoom"`
	ReferenceSize    float32 `yaml:"reference_size"`
	ViewportFraction float32 `yaml:"viewport_fraction"`
	WheelStep        float32 `yaml:"wheel_step"`
	PinchSpeed       float32 `yaml:"pinch_speed"`
	ZoomEase         float32 `yaml:"zoom_ease"`
	PresentationZoom float32 `yaml:"presentation_zoom"`
}

// MarkersConfig holds the orbiting marker settings.
type MarkersConfig struct {
	Count       int           `yaml:"count"`
	HeightMin   float32       `yaml:"height_min"`
	HeightRange float32       `yaml:"height_range"`
	SpeedMin    float32       `yaml:"speed_min"`
	SpeedRange  float32       `yaml:"speed_range"`
	TrailWindow time.Duration `yaml:"trail_window"`
	ScaleMin    float32       `yaml:"scale_min"`
	ScaleMax    float32       `yaml:"scale_max"`
	Seed        uint64        `yaml:"seed"` // 0 = random per run
}

// RenderConfig holds scene appearance.
type RenderConfig struct {
	Radius     float32 `yaml:"radius"`
	Detail     int     `yaml:"detail"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Background string  `yaml:"background"`

	EdgeColor       string  `yaml:"edge_color"`
	MinOpacity      float32 `yaml:"min_opacity"`
	MaxOpacity      float32 `yaml:"max_opacity"`
	VertexPointSize float32 `yaml:"vertex_point_size"` // world-space diameter

	GlowPoints  int     `yaml:"glow_points"`
	GlowRadius  float32 `yaml:"glow_radius"`
	GlowOpacity float32 `yaml:"glow_opacity"`

	MarkerSize    float32 `yaml:"marker_size"`
	MarkerOpacity float32 `yaml:"marker_opacity"`
	TrailOpacity  float32 `yaml:"trail_opacity"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the tuned globe defaults.
func Default() *Config {
	p := globe.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Title:      "Wireframe Globe",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Globe: GlobeConfig{
			RotationSpeed:    p.RotationSpeed,
			Damping:          p.Damping,
			MinRotationSpeed: p.MinRotationSpeed,
			InitialSpin:      p.InitialVelocity.Y,
			BaseDistance:     p.BaseDistance,
			MinZoom:          p.MinZoom,
			MaxZoom:          p.MaxZoom,
			ReferenceSize:    p.ReferenceSize,
			ViewportFraction: p.ViewportFraction,
			WheelStep:        p.WheelStep,
			PinchSpeed:       p.PinchSpeed,
			ZoomEase:         p.ZoomEase,
			PresentationZoom: p.PresentationZoom,
		},
		Markers: MarkersConfig{
			Count:       p.Markers.Count,
			HeightMin:   p.Markers.HeightMin,
			HeightRange: p.Markers.HeightRange,
			SpeedMin:    p.Markers.SpeedMin,
			SpeedRange:  p.Markers.SpeedRange,
			TrailWindow: p.Markers.TrailWindow,
			ScaleMin:    p.Markers.ScaleMin,
			ScaleMax:    p.Markers.ScaleMax,
		},
		Render: RenderConfig{
			Radius:          p.Markers.GlobeRadius,
			Detail:          3,
			FOV:             45,
			Background:      "#0A0E27",
			EdgeColor:       "#FFA234",
			MinOpacity:      0.07,
			MaxOpacity:      1.0,
			VertexPointSize: 0.04,
			GlowPoints:      200,
			GlowRadius:      1.21,
			GlowOpacity:     0,
			MarkerSize:      0.03,
			MarkerOpacity:   0.8,
			TrailOpacity:    0.6,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// GlobeParams converts the globe, marker and radius settings into controller
// parameters. Constants without a config key keep their defaults.
func (c *Config) GlobeParams() globe.Params {
	p := globe.DefaultParams()

	g := c.Globe
	p.RotationSpeed = g.RotationSpeed
	p.Damping = g.Damping
	p.MinRotationSpeed = g.MinRotationSpeed
	p.InitialVelocity.Y = g.InitialSpin
	p.BaseDistance = g.BaseDistance
	p.MinZoom = g.MinZoom
	p.MaxZoom = g.MaxZoom
	p.ReferenceSize = g.ReferenceSize
	p.ViewportFraction = g.ViewportFraction
	p.WheelStep = g.WheelStep
	p.PinchSpeed = g.PinchSpeed
	p.ZoomEase = g.ZoomEase
	p.PresentationZoom = g.PresentationZoom

	m := c.Markers
	p.Markers.Count = m.Count
	p.Markers.GlobeRadius = c.Render.Radius
	p.Markers.HeightMin = m.HeightMin
	p.Markers.HeightRange = m.HeightRange
	p.Markers.SpeedMin = m.SpeedMin
	p.Markers.SpeedRange = m.SpeedRange
	p.Markers.TrailWindow = m.TrailWindow
	p.Markers.ScaleMin = m.ScaleMin
	p.Markers.ScaleMax = m.ScaleMax

	return p
}
