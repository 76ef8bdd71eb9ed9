package state

// Feature is one of the shader's mode flags.
type Feature int

const (
	FeatureColor Feature = iota
	FeatureSpecular
	FeatureNight
	FeatureNormal
	FeatureClouds

	featureCount
)

var featureNames = [featureCount]string{"color", "specular", "night", "normal", "clouds"}

func (f Feature) String() string {
	if f < 0 || f >= featureCount {
		return "unknown"
	}
	return featureNames[f]
}

// Modes is the set of enabled features. Its index order matches the
// shader's mode[5] uniform.
type Modes [featureCount]bool

// DefaultModes enables the color map only.
func DefaultModes() Modes {
	var m Modes
	m[FeatureColor] = true
	return m
}

// Toggle flips a feature.
func (m *Modes) Toggle(f Feature) {
	m[f] = !m[f]
}

// Enabled reports whether a feature is on.
func (m Modes) Enabled(f Feature) bool {
	return m[f]
}

// With returns a copy with a feature forced on or off.
func (m Modes) With(f Feature, on bool) Modes {
	m[f] = on
	return m
}

// Vector returns the flags as shader integers.
func (m Modes) Vector() [featureCount]int32 {
	var v [featureCount]int32
	for i, on := range m {
		if on {
			v[i] = 1
		}
	}
	return v
}
