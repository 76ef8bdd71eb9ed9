// Package texture loads, decodes and uploads the globe's texture maps.
package texture

// Kind identifies one of the globe's texture maps.
type Kind int

const (
	Color Kind = iota
	Specular
	Night
	Normal
	Cloud

	KindCount
)

var kindNames = [KindCount]string{"color", "specular", "night", "normal", "cloud"}

// samplerNames are the fragment shader sampler uniforms, one per kind.
var samplerNames = [KindCount]string{"earthMap", "specularMap", "nightMap", "normalMap", "cloudMap"}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Unit returns the fixed texture unit the kind is bound to.
func (k Kind) Unit() uint32 {
	return uint32(k)
}

// Sampler returns the shader sampler uniform name for the kind.
func (k Kind) Sampler() string {
	if k < 0 || k >= KindCount {
		return ""
	}
	return samplerNames[k]
}

// EarthKinds are the maps sampled by the earth pass.
var EarthKinds = []Kind{Color, Specular, Night, Normal}
