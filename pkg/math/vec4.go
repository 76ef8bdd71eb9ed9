package math

// Vec4 is a 4-component vector. Points carry w=1, directions w=0.
type Vec4 [4]float32

// Point returns the homogeneous point (x, y, z, 1).
func Point(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 1}
}

// Direction returns the homogeneous direction (x, y, z, 0).
func Direction(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 0}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Cross returns the cross product of the xyz parts as a direction.
func (v Vec4) Cross(other Vec4) Vec4 {
	c := v.XYZ().Cross(other.XYZ())
	return Direction(c.X, c.Y, c.Z)
}

// Length3 returns the magnitude of the xyz part.
func (v Vec4) Length3() float32 {
	return v.XYZ().Length()
}

// ApproxEqual reports whether each component is within eps of other.
func (v Vec4) ApproxEqual(other Vec4, eps float32) bool {
	for i := range v {
		d := v[i] - other[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}
