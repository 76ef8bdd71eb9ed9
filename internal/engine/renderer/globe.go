package renderer

import (
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/texture"
	"github.com/Faultbox/midgard-globe/internal/globe/state"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Material holds the surface reflectance uniforms.
type Material struct {
	AmbientDiffuse   math.Vec4
	Specular         math.Vec4
	SpecularExponent float32
}

// Light is a single point light. Position is in globe space before spin.
type Light struct {
	Position math.Vec4
	Color    math.Vec4
	Ambient  math.Vec4
}

// DefaultMaterial returns a white material with a soft highlight.
func DefaultMaterial() Material {
	return Material{
		AmbientDiffuse:   math.Vec4{1, 1, 1, 1},
		Specular:         math.Vec4{1, 1, 1, 1},
		SpecularExponent: 7,
	}
}

// DefaultLight returns a grey light above the viewer's right shoulder.
func DefaultLight() Light {
	return Light{
		Position: math.Point(10, 10, 10),
		Color:    math.Vec4{0.7, 0.7, 0.7, 1},
		Ambient:  math.Vec4{0.1, 0.1, 0.1, 1},
	}
}

// Globe draws the earth and its cloud shell. It reads camera state and
// modes each frame and never mutates them.
type Globe struct {
	Composer *camera.Composer
	Material Material
	Light    Light

	// VertexCount is the sphere mesh size, drawn once per pass.
	VertexCount int32
	// Textures holds a handle per texture.Kind. Handles of maps still
	// loading are bound as is.
	Textures [texture.KindCount]uint32
}

// NewGlobe creates a globe renderer for a mesh of vertexCount vertices.
func NewGlobe(composer *camera.Composer, vertexCount int32) *Globe {
	if composer == nil {
		composer = camera.NewComposer()
	}
	return &Globe{
		Composer:    composer,
		Material:    DefaultMaterial(),
		Light:       DefaultLight(),
		VertexCount: vertexCount,
	}
}

// Render draws one frame: the opaque earth, then the blended cloud shell
// when clouds are enabled.
func (g *Globe) Render(dev Device, cam camera.State, modes state.Modes, aspect float32) {
	dev.Clear()

	frame := g.Composer.Frame(cam)
	dev.SetMat4(UniformProjection, g.Composer.Projection(cam.Zoom, aspect))

	g.drawEarth(dev, frame, modes)
	if modes.Enabled(state.FeatureClouds) {
		g.drawClouds(dev, frame, modes)
	}
}

func (g *Globe) drawEarth(dev Device, frame camera.Frame, modes state.Modes) {
	mode := modes.With(state.FeatureClouds, false).Vector()
	dev.SetIntArray(UniformMode, mode[:])
	dev.SetMat4(UniformModelView, frame.Earth)

	for _, k := range texture.EarthKinds {
		g.bind(dev, k)
	}

	dev.SetVec4(UniformAmbientDiffuse, g.Material.AmbientDiffuse)
	dev.SetVec4(UniformSpecularColor, g.Material.Specular)
	dev.SetFloat(UniformSpecularExponent, g.Material.SpecularExponent)
	dev.SetVec4(UniformLightPosition, frame.LightPosition(g.Light.Position))
	dev.SetVec4(UniformLightColor, g.Light.Color)
	dev.SetVec4(UniformAmbientLight, g.Light.Ambient)

	dev.SetBlend(false)
	dev.SetDepthWrite(true)
	dev.DrawTriangles(g.VertexCount)
}

func (g *Globe) drawClouds(dev Device, frame camera.Frame, modes state.Modes) {
	mode := modes.With(state.FeatureClouds, true).Vector()
	dev.SetIntArray(UniformMode, mode[:])
	dev.SetMat4(UniformModelView, frame.Cloud)
	g.bind(dev, texture.Cloud)

	dev.SetBlend(true)
	dev.SetDepthWrite(false)
	dev.DrawTriangles(g.VertexCount)

	dev.SetBlend(false)
	dev.SetDepthWrite(true)
}

func (g *Globe) bind(dev Device, k texture.Kind) {
	dev.BindTexture(k.Unit(), g.Textures[k])
	dev.SetInt(SamplerUniform(k), int32(k.Unit()))
}
