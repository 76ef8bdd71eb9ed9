// Package lighting provides lighting utilities for the globe.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/midgard-globe/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// direction pointing towards the sun. Longitude turns around the Y axis from
// +Z towards +X; latitude is the elevation above the XZ plane.
func SunDirection(longitude, latitude float64) math.Vec3 {
	lonRad := longitude * gomath.Pi / 180.0
	latRad := latitude * gomath.Pi / 180.0

	x := float32(gomath.Cos(latRad) * gomath.Sin(lonRad))
	y := float32(gomath.Sin(latRad))
	z := float32(gomath.Cos(latRad) * gomath.Cos(lonRad))

	return math.Vec3{X: x, Y: y, Z: z}
}

// SunPosition places a point light distance units along SunDirection.
// The result is a homogeneous point (w = 1) in globe space.
func SunPosition(longitude, latitude float64, distance float32) math.Vec4 {
	d := SunDirection(longitude, latitude)
	return math.Vec4{d.X * distance, d.Y * distance, d.Z * distance, 1}
}

// Angles is the inverse of SunPosition for a point light position.
func Angles(p math.Vec4) (longitude, latitude float64, distance float32) {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	r := gomath.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return 0, 0, 0
	}
	longitude = gomath.Atan2(x, z) * 180.0 / gomath.Pi
	latitude = gomath.Asin(y/r) * 180.0 / gomath.Pi
	return longitude, latitude, float32(r)
}
