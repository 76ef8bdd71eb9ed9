package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// maxStep bounds the per-tick spin increments, in degrees.
const maxStep = 360

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside the renderer.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Globe.Subdivisions < 1 {
		errs = append(errs, fmt.Errorf("globe.subdivisions %d must be at least 1", c.Globe.Subdivisions))
	}
	if c.Camera.ZoomMin <= 0 || c.Camera.ZoomMax >= 180 || c.Camera.ZoomMin > c.Camera.ZoomMax {
		errs = append(errs, fmt.Errorf("camera zoom range [%v, %v] must lie inside (0, 180)", c.Camera.ZoomMin, c.Camera.ZoomMax))
	}
	if c.Camera.Zoom < c.Camera.ZoomMin || c.Camera.Zoom > c.Camera.ZoomMax {
		errs = append(errs, fmt.Errorf("camera.zoom %v outside [%v, %v]", c.Camera.Zoom, c.Camera.ZoomMin, c.Camera.ZoomMax))
	}
	if c.Camera.CloudScale <= 1 {
		errs = append(errs, fmt.Errorf("camera.cloud_scale %v must exceed 1", c.Camera.CloudScale))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes near=%v far=%v are invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Lighting.Sun != nil && c.Lighting.Sun.Distance <= 0 {
		errs = append(errs, fmt.Errorf("lighting.sun.distance %v must be positive", c.Lighting.Sun.Distance))
	}
	steps := map[string]float64{
		"earth_step":  c.Animation.EarthStep,
		"cloud_step":  c.Animation.CloudStep,
		"cloud_drift": c.Animation.CloudDrift,
	}
	for _, name := range []string{"earth_step", "cloud_step", "cloud_drift"} {
		if v := steps[name]; v < 0 || v > maxStep || math.IsNaN(v) {
			errs = append(errs, fmt.Errorf("animation.%s %v must lie in [0, %v]", name, v, maxStep))
		}
	}
	if c.Animation.Interval <= 0 {
		errs = append(errs, fmt.Errorf("animation.interval %v must be positive", c.Animation.Interval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TexturePath resolves a texture file name against the texture directory.
func (c *Config) TexturePath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.Textures.Dir == "" {
		return name
	}
	return filepath.Join(c.Textures.Dir, name)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./globe.yaml",
		filepath.Join(ConfigDir(), "globe.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardGlobe")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardGlobe")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-globe")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-globe")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
