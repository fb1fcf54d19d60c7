package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Window.Presentation {
		t.Error("expected presentation to be off by default")
	}

	// Globe defaults
	if cfg.Globe.Damping != 0.98 {
		t.Errorf("expected damping 0.98, got %f", cfg.Globe.Damping)
	}
	if cfg.Globe.MinZoom != 6 || cfg.Globe.MaxZoom != 12 {
		t.Errorf("expected zoom bounds [6, 12], got [%f, %f]", cfg.Globe.MinZoom, cfg.Globe.MaxZoom)
	}
	if cfg.Globe.PresentationZoom != 10 {
		t.Errorf("expected presentation zoom 10, got %f", cfg.Globe.PresentationZoom)
	}

	// Marker defaults
	if cfg.Markers.Count != 5 {
		t.Errorf("expected 5 markers, got %d", cfg.Markers.Count)
	}
	if cfg.Markers.TrailWindow != 5*time.Second {
		t.Errorf("expected trail window 5s, got %v", cfg.Markers.TrailWindow)
	}

	// Render defaults
	if cfg.Render.Detail != 3 {
		t.Errorf("expected detail 3, got %d", cfg.Render.Detail)
	}
	if cfg.Render.EdgeColor != "#FFA234" {
		t.Errorf("expected edge color #FFA234, got %s", cfg.Render.EdgeColor)
	}
	if cfg.Render.GlowOpacity != 0 {
		t.Errorf("expected glow opacity 0, got %f", cfg.Render.GlowOpacity)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestGlobeParams(t *testing.T) {
	cfg := Default()
	cfg.Globe.InitialSpin = 0.004
	cfg.Globe.MaxZoom = 15
	cfg.Render.Radius = 2
	cfg.Markers.Count = 9

	p := cfg.GlobeParams()
	if p.InitialVelocity.Y != 0.004 || p.InitialVelocity.X != 0 {
		t.Errorf("unexpected initial velocity %+v", p.InitialVelocity)
	}
	if p.MaxZoom != 15 {
		t.Errorf("expected max zoom 15, got %f", p.MaxZoom)
	}
	if p.Markers.GlobeRadius != 2 {
		t.Errorf("expected globe radius 2, got %f", p.Markers.GlobeRadius)
	}
	if p.Markers.Count != 9 {
		t.Errorf("expected 9 markers, got %d", p.Markers.Count)
	}
	if p.ZoomSnap != 0.01 {
		t.Errorf("unmapped constants should keep defaults, zoom snap = %f", p.ZoomSnap)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

globe:
  damping: 0.95
  presentation_zoom: 11

markers:
  count: 8
  trail_window: 3s
  seed: 42

render:
  detail: 2
  edge_color: "#00FF00"

capture:
  format: bmp

logging:
  level: "debug"
  log_file: "globe.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Window.FPSLimit)
	}
	if cfg.Globe.Damping != 0.95 {
		t.Errorf("expected damping 0.95, got %f", cfg.Globe.Damping)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Globe.MinZoom != 6 {
		t.Errorf("expected default min zoom 6, got %f", cfg.Globe.MinZoom)
	}
	if cfg.Markers.Count != 8 || cfg.Markers.Seed != 42 {
		t.Errorf("expected 8 markers seed 42, got %d seed %d", cfg.Markers.Count, cfg.Markers.Seed)
	}
	if cfg.Markers.TrailWindow != 3*time.Second {
		t.Errorf("expected trail window 3s, got %v", cfg.Markers.TrailWindow)
	}
	if cfg.Render.Detail != 2 || cfg.Render.EdgeColor != "#00FF00" {
		t.Errorf("unexpected render config %+v", cfg.Render)
	}
	if cfg.Capture.Format != "bmp" {
		t.Errorf("expected bmp capture, got %s", cfg.Capture.Format)
	}
	if cfg.Logging.LogFile != "globe.log" {
		t.Errorf("expected log file 'globe.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "typo.yaml")

	if err := os.WriteFile(configPath, []byte("globe:\n  dampnig: 0.5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for unknown key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file should keep defaults, got %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected default width, got %d", cfg.Window.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errs   int
		want   string
	}{
		{
			name:   "zero width",
			modify: func(c *Config) { c.Window.Width = 0 },
			errs:   1,
			want:   "window",
		},
		{
			name:   "damping out of range",
			modify: func(c *Config) { c.Globe.Damping = 1.2 },
			errs:   1,
			want:   "damping",
		},
		{
			name:   "inverted zoom bounds",
			modify: func(c *Config) { c.Globe.MinZoom, c.Globe.MaxZoom = 12, 6 },
			errs:   1,
			want:   "min zoom",
		},
		{
			name:   "bad color",
			modify: func(c *Config) { c.Render.EdgeColor = "orange" },
			errs:   1,
			want:   "edge_color",
		},
		{
			name:   "unknown capture format",
			modify: func(c *Config) { c.Capture.Format = "gif" },
			errs:   1,
			want:   "gif",
		},
		{
			name: "several at once",
			modify: func(c *Config) {
				c.Window.Height = -1
				c.Render.Detail = 9
				c.Logging.Level = "verbose"
			},
			errs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if n := len(multierr.Errors(err)); n != tt.errs {
				t.Errorf("expected %d errors, got %d: %v", tt.errs, n, err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FFA234")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	want := [3]float32{1, float32(0xA2) / 255, float32(0x34) / 255}
	if c != want {
		t.Errorf("got %v, want %v", c, want)
	}

	if _, err := ParseColor("0a0e27"); err != nil {
		t.Errorf("color without # should parse: %v", err)
	}
	for _, bad := range []string{"", "#FFF", "#GGGGGG", "#FFA2345"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "presentation flag",
			setup: func() { *flagPresentation = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Presentation {
					t.Error("expected presentation mode with presentation flag")
				}
			},
			teardown: func() { *flagPresentation = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Markers.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Markers.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("globe:\n  damping: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject damping 2")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Markers.TrailWindow = 2500 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Window.Width)
	}
	if loaded.Markers.TrailWindow != 2500*time.Millisecond {
		t.Errorf("expected trail window 2.5s, got %v", loaded.Markers.TrailWindow)
	}
}
