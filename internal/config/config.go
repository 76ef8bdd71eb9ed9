// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Globe     GlobeConfig     `yaml:"globe"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Features  FeatureConfig   `yaml:"features"`
	Textures  TextureConfig   `yaml:"textures"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Shaders   ShaderConfig    `yaml:"shaders"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// GlobeConfig holds sphere mesh settings.
type GlobeConfig struct {
	Subdivisions int `yaml:"subdivisions"` // Bands per full revolution
}

// CameraConfig holds view and projection settings. Angles are in degrees.
type CameraConfig struct {
	Zoom       float64    `yaml:"zoom"` // Vertical field of view
	ZoomMin    float64    `yaml:"zoom_min"`
	ZoomMax    float64    `yaml:"zoom_max"`
	ZoomStep   float64    `yaml:"zoom_step"`
	Eye        [3]float32 `yaml:"eye"`
	Scale      float32    `yaml:"scale"`
	CloudScale float32    `yaml:"cloud_scale"` // Relative to the earth, must exceed 1
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
}

// AnimationConfig holds spin clock settings. Steps are degrees per tick.
type AnimationConfig struct {
	Interval           time.Duration `yaml:"interval"`
	EarthStep          float64       `yaml:"earth_step"`
	CloudStep          float64       `yaml:"cloud_step"`
	CloudDrift         float64       `yaml:"cloud_drift"` // Applied every tick, paused or not
	PauseFreezesClouds bool          `yaml:"pause_freezes_clouds"`
	StartPaused        bool          `yaml:"start_paused"`
}

// FeatureConfig holds the initial feature mode flags.
type FeatureConfig struct {
	Color    bool `yaml:"color"`
	Specular bool `yaml:"specular"`
	Night    bool `yaml:"night"`
	Normal   bool `yaml:"normal"`
	Clouds   bool `yaml:"clouds"`
}

// TextureConfig holds texture file names, resolved against Dir.
type TextureConfig struct {
	Dir        string  `yaml:"dir"`
	Color      string  `yaml:"color"`
	Specular   string  `yaml:"specular"`
	Night      string  `yaml:"night"`
	Normal     string  `yaml:"normal"`
	Cloud      string  `yaml:"cloud"`
	Anisotropy float32 `yaml:"anisotropy"`
}

// LightingConfig holds material and light uniforms.
type LightingConfig struct {
	AmbientDiffuse   [4]float32 `yaml:"ambient_diffuse"`
	Specular         [4]float32 `yaml:"specular"`
	SpecularExponent float32    `yaml:"specular_exponent"`
	LightPosition    [4]float32 `yaml:"light_position"` // World space, before spin
	Sun              *SunConfig `yaml:"sun,omitempty"`  // Overrides LightPosition when set
	LightColor       [4]float32 `yaml:"light_color"`
	AmbientLight     [4]float32 `yaml:"ambient_light"`
}

// SunConfig places the light by angles instead of a raw position.
type SunConfig struct {
	Longitude float64 `yaml:"longitude"` // Degrees around Y from +Z
	Latitude  float64 `yaml:"latitude"`  // Degrees above the equator plane
	Distance  float32 `yaml:"distance"`
}

// ShaderConfig holds shader source settings.
type ShaderConfig struct {
	Dir       string `yaml:"dir"` // Empty uses the embedded sources
	HotReload bool   `yaml:"hot_reload"`
}

// DebugConfig holds debugging helpers.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Globe",
			Width:      1024,
			Height:     1024,
			Fullscreen: false,
			VSync:      true,
		},
		Globe: GlobeConfig{
			Subdivisions: 180,
		},
		Camera: CameraConfig{
			Zoom:       45,
			ZoomMin:    10,
			ZoomMax:    170,
			ZoomStep:   5,
			Eye:        [3]float32{0, 0, 5},
			Scale:      1.5,
			CloudScale: 1.02,
			Near:       1,
			Far:        20,
		},
		Animation: AnimationConfig{
			Interval:           16 * time.Millisecond,
			EarthStep:          0.5,
			CloudStep:          0.3,
			CloudDrift:         0.1,
			PauseFreezesClouds: false,
		},
		Features: FeatureConfig{
			Color: true,
		},
		Textures: TextureConfig{
			Dir:        "assets",
			Color:      "Earth.png",
			Specular:   "EarthSpec.png",
			Night:      "EarthNight.png",
			Normal:     "EarthNormal.png",
			Cloud:      "earthcloudmap-visness.png",
			Anisotropy: 1,
		},
		Lighting: LightingConfig{
			AmbientDiffuse:   [4]float32{1, 1, 1, 1},
			Specular:         [4]float32{1, 1, 1, 1},
			SpecularExponent: 7,
			LightPosition:    [4]float32{10, 10, 10, 1},
			LightColor:       [4]float32{0.7, 0.7, 0.7, 1},
			AmbientLight:     [4]float32{0.1, 0.1, 0.1, 1},
		},
		Shaders: ShaderConfig{
			HotReload: false,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
