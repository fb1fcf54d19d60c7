package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagPresentation = flag.Bool("presentation", false, "Start in presentation mode")
	flagSeed         = flag.Uint64("seed", 0, "Marker placement seed (0 = random)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagPresentation {
		cfg.Window.Presentation = true
	}
	if *flagSeed != 0 {
		cfg.Markers.Seed = *flagSeed
	}
}
