package state

// Key is a viewer command bound to a physical key.
type Key int

const (
	KeyNone Key = iota
	KeyColor
	KeySpecular
	KeyNight
	KeyNormal
	KeyClouds
	KeyZoomOut // Widens the field of view
	KeyZoomIn  // Narrows the field of view
	KeyPause
	KeyFilterLinear
	KeyFilterNearest
	KeyAnisoHigh
	KeyAnisoLow
	KeyScreenshot
	KeyQuit
)

var keyNames = map[Key]string{
	KeyNone:          "none",
	KeyColor:         "color",
	KeySpecular:      "specular",
	KeyNight:         "night",
	KeyNormal:        "normal",
	KeyClouds:        "clouds",
	KeyZoomOut:       "zoom-out",
	KeyZoomIn:        "zoom-in",
	KeyPause:         "pause",
	KeyFilterLinear:  "filter-linear",
	KeyFilterNearest: "filter-nearest",
	KeyAnisoHigh:     "aniso-high",
	KeyAnisoLow:      "aniso-low",
	KeyScreenshot:    "screenshot",
	KeyQuit:          "quit",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}
