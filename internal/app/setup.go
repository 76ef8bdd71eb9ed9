package app

import (
	"github.com/Faultbox/midgard-globe/internal/config"
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/lighting"
	"github.com/Faultbox/midgard-globe/internal/engine/renderer"
	"github.com/Faultbox/midgard-globe/internal/engine/texture"
	"github.com/Faultbox/midgard-globe/internal/globe/clock"
	"github.com/Faultbox/midgard-globe/internal/globe/state"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// stateOptions builds the initial state block settings.
func stateOptions(cfg *config.Config) state.Options {
	var modes state.Modes
	modes[state.FeatureColor] = cfg.Features.Color
	modes[state.FeatureSpecular] = cfg.Features.Specular
	modes[state.FeatureNight] = cfg.Features.Night
	modes[state.FeatureNormal] = cfg.Features.Normal
	modes[state.FeatureClouds] = cfg.Features.Clouds

	return state.Options{
		Zoom:       cfg.Camera.Zoom,
		ZoomMin:    cfg.Camera.ZoomMin,
		ZoomMax:    cfg.Camera.ZoomMax,
		ZoomStep:   cfg.Camera.ZoomStep,
		Modes:      modes,
		Paused:     cfg.Animation.StartPaused,
		Anisotropy: cfg.Textures.Anisotropy,
	}
}

func clockSteps(cfg *config.Config) clock.Steps {
	return clock.Steps{
		Earth:              cfg.Animation.EarthStep,
		Cloud:              cfg.Animation.CloudStep,
		CloudDrift:         cfg.Animation.CloudDrift,
		PauseFreezesClouds: cfg.Animation.PauseFreezesClouds,
	}
}

func composer(cfg *config.Config) *camera.Composer {
	c := camera.NewComposer()
	eye := cfg.Camera.Eye
	c.Eye = math.Vec3{X: eye[0], Y: eye[1], Z: eye[2]}
	c.Scale = cfg.Camera.Scale
	c.CloudScale = cfg.Camera.CloudScale
	c.Near = cfg.Camera.Near
	c.Far = cfg.Camera.Far
	return c
}

func material(cfg *config.Config) renderer.Material {
	l := cfg.Lighting
	return renderer.Material{
		AmbientDiffuse:   math.Vec4(l.AmbientDiffuse),
		Specular:         math.Vec4(l.Specular),
		SpecularExponent: l.SpecularExponent,
	}
}

func light(cfg *config.Config) renderer.Light {
	l := cfg.Lighting
	pos := math.Vec4(l.LightPosition)
	if l.Sun != nil {
		pos = lighting.SunPosition(l.Sun.Longitude, l.Sun.Latitude, l.Sun.Distance)
	}
	return renderer.Light{
		Position: pos,
		Color:    math.Vec4(l.LightColor),
		Ambient:  math.Vec4(l.AmbientLight),
	}
}

// texturePaths resolves the configured file for every texture kind.
func texturePaths(cfg *config.Config) [texture.KindCount]string {
	var p [texture.KindCount]string
	p[texture.Color] = cfg.TexturePath(cfg.Textures.Color)
	p[texture.Specular] = cfg.TexturePath(cfg.Textures.Specular)
	p[texture.Night] = cfg.TexturePath(cfg.Textures.Night)
	p[texture.Normal] = cfg.TexturePath(cfg.Textures.Normal)
	p[texture.Cloud] = cfg.TexturePath(cfg.Textures.Cloud)
	return p
}
