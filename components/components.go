// Package components defines the simulation state types shared by systems,
// the camera rig and the host-side scene.
package components

import "github.com/go-gl/mathgl/mgl32"

// Craft is the single player-controlled flying entity.
// Position and Orientation are written only by flight dynamics;
// the four scalar axes are written only by the input shaper.
type Craft struct {
	Position     mgl32.Vec3
	Orientation  mgl32.Quat // unit quaternion, renormalized every tick
	ForwardSpeed float32    // speed along local -Z, in [0, max_speed]
	PitchInput   float32    // smoothed, target range [-pi/4, pi/4]
	YawInput     float32    // smoothed, target range [-pi/4, pi/4]
	Bank         float32    // cosmetic roll, mesh and first-person camera only
}

// NewCraft returns a craft at the origin with identity orientation.
func NewCraft() *Craft {
	return &Craft{Orientation: mgl32.QuatIdent()}
}

// Forward returns the craft's local -Z axis in world space.
func (c *Craft) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Agent is one enemy flocking entity.
// Visual orientation is derived from Velocity by the renderer.
type Agent struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
}

// Pose is a position and rotation pair, used for camera and mesh transforms.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}
