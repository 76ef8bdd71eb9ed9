package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1024 || cfg.Window.Height != 1024 {
		t.Errorf("expected 1024x1024 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Globe.Subdivisions != 180 {
		t.Errorf("expected 180 subdivisions, got %d", cfg.Globe.Subdivisions)
	}
	if cfg.Camera.Zoom != 45 || cfg.Camera.ZoomMin != 10 || cfg.Camera.ZoomMax != 170 {
		t.Errorf("unexpected zoom defaults: %v in [%v, %v]", cfg.Camera.Zoom, cfg.Camera.ZoomMin, cfg.Camera.ZoomMax)
	}
	if cfg.Animation.Interval != 16*time.Millisecond {
		t.Errorf("expected 16ms tick, got %v", cfg.Animation.Interval)
	}
	if !cfg.Features.Color || cfg.Features.Specular || cfg.Features.Night || cfg.Features.Normal || cfg.Features.Clouds {
		t.Errorf("expected only the color map enabled, got %+v", cfg.Features)
	}
	if cfg.Lighting.SpecularExponent != 7 {
		t.Errorf("expected specular exponent 7, got %v", cfg.Lighting.SpecularExponent)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "globe.yaml")

	yamlContent := `
window:
  width: 800
  height: 600
  fullscreen: true

globe:
  subdivisions: 90

camera:
  zoom: 60
  cloud_scale: 1.05

animation:
  interval: 20ms
  earth_step: 1
  pause_freezes_clouds: true

features:
  color: true
  clouds: true

textures:
  dir: "/data/earth"
  color: "day.jpg"

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

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Globe.Subdivisions != 90 {
		t.Errorf("expected 90 subdivisions, got %d", cfg.Globe.Subdivisions)
	}
	if cfg.Camera.Zoom != 60 {
		t.Errorf("expected zoom 60, got %v", cfg.Camera.Zoom)
	}
	// Unset keys keep their defaults
	if cfg.Camera.ZoomMax != 170 {
		t.Errorf("expected default zoom max 170, got %v", cfg.Camera.ZoomMax)
	}
	if cfg.Animation.Interval != 20*time.Millisecond {
		t.Errorf("expected 20ms interval, got %v", cfg.Animation.Interval)
	}
	if !cfg.Animation.PauseFreezesClouds {
		t.Error("expected pause_freezes_clouds to be true")
	}
	if !cfg.Features.Clouds {
		t.Error("expected clouds enabled")
	}
	if got := cfg.TexturePath(cfg.Textures.Color); got != filepath.Join("/data/earth", "day.jpg") {
		t.Errorf("unexpected color texture path %s", got)
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

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/globe.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero subdivisions", func(c *Config) { c.Globe.Subdivisions = 0 }, "subdivisions"},
		{"inverted zoom range", func(c *Config) { c.Camera.ZoomMin, c.Camera.ZoomMax = 100, 50 }, "zoom range"},
		{"zoom outside range", func(c *Config) { c.Camera.Zoom = 175 }, "camera.zoom"},
		{"cloud shell inside earth", func(c *Config) { c.Camera.CloudScale = 1 }, "cloud_scale"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.5 }, "clip planes"},
		{"stopped clock", func(c *Config) { c.Animation.Interval = 0 }, "interval"},
		{"empty window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative earth step", func(c *Config) { c.Animation.EarthStep = -1 }, "earth_step"},
		{"infinite cloud step", func(c *Config) { c.Animation.CloudStep = math.Inf(1) }, "cloud_step"},
		{"NaN drift", func(c *Config) { c.Animation.CloudDrift = math.NaN() }, "cloud_drift"},
		{"sun at the origin", func(c *Config) { c.Lighting.Sun = &SunConfig{Longitude: 45} }, "sun.distance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTexturePath(t *testing.T) {
	cfg := Default()
	cfg.Textures.Dir = "assets"

	if got := cfg.TexturePath("Earth.png"); got != filepath.Join("assets", "Earth.png") {
		t.Errorf("relative name: got %s", got)
	}
	if got := cfg.TexturePath("/abs/Earth.png"); got != "/abs/Earth.png" {
		t.Errorf("absolute name should be kept, got %s", got)
	}
	if got := cfg.TexturePath(""); got != "" {
		t.Errorf("empty name should stay empty, got %s", got)
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

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "globe.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find globe.yaml in current directory")
	}
}

func TestSaveIsFoundByLoad(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir follows XDG_CONFIG_HOME on Linux only")
	}
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	cfg := Default()
	cfg.Globe.Subdivisions = 90
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "xdg", "midgard-globe", "globe.yaml"); path != want {
		t.Errorf("Save wrote %s, want %s", path, want)
	}
	if found := findConfigFile(); found != path {
		t.Fatalf("findConfigFile = %q, want %q", found, path)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Globe.Subdivisions != 90 {
		t.Errorf("Subdivisions = %d, want 90", loaded.Globe.Subdivisions)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
					t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "subdivisions flag",
			setup: func() { *flagSubdivisions = 36 },
			verify: func(cfg *Config) {
				if cfg.Globe.Subdivisions != 36 {
					t.Errorf("expected 36 subdivisions, got %d", cfg.Globe.Subdivisions)
				}
			},
			teardown: func() { *flagSubdivisions = 0 },
		},
		{
			name:  "shaders flag enables hot reload",
			setup: func() { *flagShaders = "/tmp/shaders" },
			verify: func(cfg *Config) {
				if cfg.Shaders.Dir != "/tmp/shaders" || !cfg.Shaders.HotReload {
					t.Errorf("expected hot reload from /tmp/shaders, got %+v", cfg.Shaders)
				}
			},
			teardown: func() { *flagShaders = "" },
		},
		{
			name:  "clouds flag",
			setup: func() { *flagClouds = true },
			verify: func(cfg *Config) {
				if !cfg.Features.Clouds {
					t.Error("expected clouds enabled with clouds flag")
				}
			},
			teardown: func() { *flagClouds = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "globe.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file
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

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "globe.yaml")
	if err := os.WriteFile(configPath, []byte("globe:\n  subdivisions: -3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for negative subdivisions")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "globe.yaml")

	cfg := Default()
	cfg.Globe.Subdivisions = 72
	cfg.Features.Night = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Globe.Subdivisions != 72 || !loaded.Features.Night {
		t.Errorf("saved values not restored: %+v %+v", loaded.Globe, loaded.Features)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Globe viewer settings") {
		t.Errorf("saved file should start with the header comment, got %q", string(data[:min(len(data), 40)]))
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only globe.yaml in the directory, found %d entries", len(entries))
	}
}
