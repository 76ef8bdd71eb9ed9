package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagSubdivisions = flag.Int("subdivisions", 0, "Sphere bands per full revolution")
	flagTextures     = flag.String("textures", "", "Directory holding the globe textures")
	flagShaders      = flag.String("shaders", "", "Directory holding globe.vert/globe.frag (enables hot reload)")
	flagClouds       = flag.Bool("clouds", false, "Start with the cloud layer enabled")
	flagWriteConfig  = flag.Bool("write-config", false, "Save the effective config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether --write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
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
	if *flagSubdivisions > 0 {
		cfg.Globe.Subdivisions = *flagSubdivisions
	}
	if *flagTextures != "" {
		cfg.Textures.Dir = *flagTextures
	}
	if *flagShaders != "" {
		cfg.Shaders.Dir = *flagShaders
		cfg.Shaders.HotReload = true
	}
	if *flagClouds {
		cfg.Features.Clouds = true
	}
}
