// Package camera composes the globe's model-view and projection matrices.
package camera

import (
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// State is the camera state mutated by input and the animation clock.
// All angles are in degrees.
type State struct {
	Yaw       float64 // Horizontal drag rotation
	Pitch     float64 // Vertical drag rotation
	Zoom      float64 // Vertical field of view
	EarthSpin float64 // Earth rotation about its own axis, [0, 360)
	CloudSpin float64 // Cloud shell rotation, [0, 360)
}

// Composer builds per-frame matrices from a fixed look-at basis.
type Composer struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3

	// Scale is the uniform globe scale applied after yaw and pitch.
	Scale float32
	// CloudScale enlarges the cloud shell so it never z-fights the surface.
	CloudScale float32

	Near float32
	Far  float32
}

// NewComposer returns a composer looking at the origin from 5 units down +Z.
func NewComposer() *Composer {
	return &Composer{
		Eye:        math.Vec3{X: 0, Y: 0, Z: 5},
		Center:     math.Vec3{X: 0, Y: 0, Z: 0},
		Up:         math.Vec3{X: 0, Y: 1, Z: 0},
		Scale:      1.5,
		CloudScale: 1.02,
		Near:       1,
		Far:        20,
	}
}

// Frame holds the matrices for one rendered frame. Earth and Cloud are both
// derived from Base, so the shell always follows the globe under drag.
type Frame struct {
	Base  math.Mat4 // lookAt · rotateY(yaw) · rotateX(pitch) · scale
	Earth math.Mat4 // Base · rotateY(earth spin)
	Cloud math.Mat4 // Base · rotateY(cloud spin) · scale(cloud)
}

// View returns the fixed look-at matrix.
func (c *Composer) View() math.Mat4 {
	return math.LookAt(c.Eye, c.Center, c.Up)
}

// Base returns the camera basis with the user's yaw and pitch applied.
func (c *Composer) Base(s State) math.Mat4 {
	return c.View().
		Mul(math.RotateY(math.Radians(s.Yaw))).
		Mul(math.RotateX(math.Radians(s.Pitch))).
		Mul(math.UniformScale(c.Scale))
}

// Frame computes every model-view matrix for the given state.
func (c *Composer) Frame(s State) Frame {
	base := c.Base(s)
	return Frame{
		Base:  base,
		Earth: base.Mul(math.RotateY(math.Radians(s.EarthSpin))),
		Cloud: base.Mul(math.RotateY(math.Radians(s.CloudSpin))).Mul(math.UniformScale(c.CloudScale)),
	}
}

// Projection returns the perspective matrix for a field of view in degrees.
func (c *Composer) Projection(zoom float64, aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(zoom), aspect, c.Near, c.Far)
}

// LightPosition moves a world-space light into eye space. The light follows
// drag rotation but not the globe's spin.
func (f Frame) LightPosition(world math.Vec4) math.Vec4 {
	return f.Base.MulVec4(world)
}
