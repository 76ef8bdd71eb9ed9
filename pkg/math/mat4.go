package math

import "math"

// Mat4 is a 4x4 matrix stored column by column, the layout glUniformMatrix4fv
// expects with transpose = false. Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Radians converts degrees to radians.
func Radians(deg float64) float32 {
	return float32(deg * math.Pi / 180.0)
}

// FromCols builds a matrix from its four columns.
func FromCols(c0, c1, c2, c3 Vec4) Mat4 {
	var m Mat4
	for i, c := range [4]Vec4{c0, c1, c2, c3} {
		copy(m[i*4:i*4+4], c[:])
	}
	return m
}

// Col returns column i.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Scale(1, 1, 1)
}

// Perspective returns a right-handed projection onto the OpenGL clip cube.
// fovY is the vertical field of view in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	return FromCols(
		Vec4{f / aspect, 0, 0, 0},
		Vec4{0, f, 0, 0},
		Vec4{0, 0, (far + near) / depth, -1},
		Vec4{0, 0, 2 * far * near / depth, 0},
	)
}

// LookAt returns the view matrix of a camera at eye facing center.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	camUp := side.Cross(fwd)

	return FromCols(
		Vec4{side.X, camUp.X, -fwd.X, 0},
		Vec4{side.Y, camUp.Y, -fwd.Y, 0},
		Vec4{side.Z, camUp.Z, -fwd.Z, 0},
		Vec4{-side.Dot(eye), -camUp.Dot(eye), fwd.Dot(eye), 1},
	)
}

// Scale returns a scale along each axis.
func Scale(x, y, z float32) Mat4 {
	return FromCols(
		Direction(x, 0, 0),
		Direction(0, y, 0),
		Direction(0, 0, z),
		Point(0, 0, 0),
	)
}

// UniformScale returns a matrix scaling all three axes by s.
func UniformScale(s float32) Mat4 {
	return Scale(s, s, s)
}

func sincos(angle float32) (s, c float32) {
	sn, cs := math.Sincos(float64(angle))
	return float32(sn), float32(cs)
}

// RotateX returns a counter-clockwise rotation about +X by angle radians.
func RotateX(angle float32) Mat4 {
	s, c := sincos(angle)
	return FromCols(
		Direction(1, 0, 0),
		Direction(0, c, s),
		Direction(0, -s, c),
		Point(0, 0, 0),
	)
}

// RotateY returns a counter-clockwise rotation about +Y by angle radians.
func RotateY(angle float32) Mat4 {
	s, c := sincos(angle)
	return FromCols(
		Direction(c, 0, -s),
		Direction(0, 1, 0),
		Direction(s, 0, c),
		Point(0, 0, 0),
	)
}

// Mul returns m · o, so o is applied to a vector first.
func (m Mat4) Mul(o Mat4) Mat4 {
	return FromCols(
		m.MulVec4(o.Col(0)),
		m.MulVec4(o.Col(1)),
		m.MulVec4(o.Col(2)),
		m.MulVec4(o.Col(3)),
	)
}

// MulVec4 returns m · v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r] += m[c*4+r] * v[c]
		}
	}
	return out
}

// ApproxEqual reports whether every element of m is within eps of other.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	return m.Col(0).ApproxEqual(other.Col(0), eps) &&
		m.Col(1).ApproxEqual(other.Col(1), eps) &&
		m.Col(2).ApproxEqual(other.Col(2), eps) &&
		m.Col(3).ApproxEqual(other.Col(3), eps)
}

// Ptr returns a pointer to the first element for GL uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
