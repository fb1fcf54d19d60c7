package config

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	add := func(e error) {
		err = multierr.Append(err, e)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add(fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPSLimit < 0 {
		add(fmt.Errorf("window: fps_limit must not be negative, got %d", c.Window.FPSLimit))
	}

	if e := c.GlobeParams().Validate(); e != nil {
		add(e)
	}

	r := c.Render
	if r.Detail < 0 || r.Detail > 6 {
		add(fmt.Errorf("render: detail must be in [0,6], got %d", r.Detail))
	}
	if r.FOV <= 0 || r.FOV >= 180 {
		add(fmt.Errorf("render: fov must be in (0,180), got %v", r.FOV))
	}
	if _, e := ParseColor(r.Background); e != nil {
		add(fmt.Errorf("render: background: %w", e))
	}
	if _, e := ParseColor(r.EdgeColor); e != nil {
		add(fmt.Errorf("render: edge_color: %w", e))
	}
	if r.MinOpacity < 0 || r.MaxOpacity > 1 || r.MinOpacity > r.MaxOpacity {
		add(fmt.Errorf("render: opacity range [%v, %v] invalid", r.MinOpacity, r.MaxOpacity))
	}
	if r.GlowPoints < 0 {
		add(fmt.Errorf("render: glow_points must not be negative, got %d", r.GlowPoints))
	}
	for name, v := range map[string]float32{
		"glow_opacity":   r.GlowOpacity,
		"marker_opacity": r.MarkerOpacity,
		"trail_opacity":  r.TrailOpacity,
	} {
		if v < 0 || v > 1 {
			add(fmt.Errorf("render: %s must be in [0,1], got %v", name, v))
		}
	}

	switch strings.ToLower(c.Capture.Format) {
	case "png", "bmp":
	default:
		add(fmt.Errorf("capture: unknown format %q", c.Capture.Format))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add(fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}

	return err
}

// ParseColor parses "#RRGGBB" (or "RRGGBB") into normalized RGB.
func ParseColor(s string) ([3]float32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [3]float32{
		float32(v>>16&0xFF) / 255,
		float32(v>>8&0xFF) / 255,
		float32(v&0xFF) / 255,
	}, nil
}
