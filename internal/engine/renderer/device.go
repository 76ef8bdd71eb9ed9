package renderer

import (
	"github.com/Faultbox/midgard-globe/internal/engine/texture"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Uniform identifies a globe shader uniform.
type Uniform int

const (
	UniformModelView Uniform = iota
	UniformProjection
	UniformMode
	UniformAmbientDiffuse
	UniformSpecularColor
	UniformSpecularExponent
	UniformLightPosition
	UniformLightColor
	UniformAmbientLight

	// Samplers, in texture.Kind order.
	UniformEarthMap
	UniformSpecularMap
	UniformNightMap
	UniformNormalMap
	UniformCloudMap

	uniformCount
)

var uniformNames = [uniformCount]string{
	UniformModelView:        "model_view",
	UniformProjection:       "projection",
	UniformMode:             "mode",
	UniformAmbientDiffuse:   "vAmbientDiffuseColor",
	UniformSpecularColor:    "vSpecularColor",
	UniformSpecularExponent: "vSpecularExponent",
	UniformLightPosition:    "light_position",
	UniformLightColor:       "light_color",
	UniformAmbientLight:     "ambient_light",
	UniformEarthMap:         "earthMap",
	UniformSpecularMap:      "specularMap",
	UniformNightMap:         "nightMap",
	UniformNormalMap:        "normalMap",
	UniformCloudMap:         "cloudMap",
}

// Name returns the uniform's name in the shader source.
func (u Uniform) Name() string {
	if u < 0 || u >= uniformCount {
		return ""
	}
	return uniformNames[u]
}

func (u Uniform) String() string {
	return u.Name()
}

// SamplerUniform returns the sampler uniform for a texture kind.
func SamplerUniform(k texture.Kind) Uniform {
	return UniformEarthMap + Uniform(k)
}

// Device is the slice of the graphics API the globe renderer drives.
type Device interface {
	Clear()
	SetMat4(u Uniform, m math.Mat4)
	SetVec4(u Uniform, v math.Vec4)
	SetFloat(u Uniform, f float32)
	SetInt(u Uniform, v int32)
	SetIntArray(u Uniform, v []int32)
	BindTexture(unit uint32, handle uint32)
	SetBlend(enabled bool)
	SetDepthWrite(enabled bool)
	DrawTriangles(count int32)
}
