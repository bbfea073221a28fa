// Package camera derives the render camera pose from the craft pose and the
// active view mode.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
)

var (
	worldUp  = mgl32.Vec3{0, 1, 0}
	localFwd = mgl32.Vec3{0, 0, -1}
	axisZ    = mgl32.Vec3{0, 0, 1}
	axisY    = mgl32.Vec3{0, 1, 0}
)

// Rig computes the camera pose each tick.
// The only state it carries between ticks is the pose itself, which the
// third-person mode smooths toward its target.
type Rig struct {
	Mode components.ViewMode
	Pose components.Pose

	lookDistance float32
	followOffset mgl32.Vec3
	followLerp   float32
}

// New creates a camera rig from config.
// The camera starts at the configured position looking at the origin.
func New(cfg config.CameraConfig) *Rig {
	mode, _ := components.ParseViewMode(cfg.InitialMode)
	start := mgl32.Vec3(cfg.StartPosition)

	r := &Rig{
		Mode:         mode,
		lookDistance: cfg.LookDistance,
		followOffset: mgl32.Vec3(cfg.FollowOffset),
		followLerp:   cfg.FollowLerp,
	}
	r.Pose = components.Pose{
		Position: start,
		Rotation: LookRotation(start, mgl32.Vec3{}, worldUp, mgl32.QuatIdent()),
	}
	return r
}

// SwitchMode advances to the next view mode and returns it.
func (r *Rig) SwitchMode() components.ViewMode {
	r.Mode = r.Mode.Next()
	return r.Mode
}

// SetPose places the camera directly. This is how the host drives FreePan;
// in the follow modes the next Update overwrites it.
func (r *Rig) SetPose(p components.Pose) {
	r.Pose = p
}

// Update moves the camera for the current mode. A nil craft leaves the
// camera where it is.
func (r *Rig) Update(craft *components.Craft) {
	if craft == nil {
		return
	}

	switch r.Mode {
	case components.FirstPerson:
		r.updateFirstPerson(craft)
	case components.ThirdPerson:
		r.updateThirdPerson(craft)
	case components.FreePan:
		// Externally controlled
	}
}

func (r *Rig) updateFirstPerson(craft *components.Craft) {
	target := craft.Position.Add(craft.Orientation.Rotate(mgl32.Vec3{0, 0, -r.lookDistance}))

	r.Pose.Position = craft.Position
	rot := LookRotation(craft.Position, target, worldUp, r.Pose.Rotation)
	// Roll with the cosmetic bank so the view leans into turns
	r.Pose.Rotation = rot.Mul(mgl32.QuatRotate(craft.Bank, axisZ)).Normalize()
}

func (r *Rig) updateThirdPerson(craft *components.Craft) {
	desired := craft.Position.Add(craft.Orientation.Rotate(r.followOffset.Mul(-1)))

	// Per-tick smoothing, intentionally not scaled by dt
	pos := r.Pose.Position
	r.Pose.Position = pos.Add(desired.Sub(pos).Mul(r.followLerp))
	r.Pose.Rotation = LookRotation(r.Pose.Position, craft.Position, worldUp, r.Pose.Rotation)
}

// LookRotation returns the rotation that points local -Z from eye toward
// target with local +Y as close to up as possible. When the direction is
// zero or parallel to up, fallback is returned unchanged.
func LookRotation(eye, target, up mgl32.Vec3, fallback mgl32.Quat) mgl32.Quat {
	forward := target.Sub(eye)
	if forward.Len() == 0 {
		return fallback
	}
	back := forward.Mul(-1 / forward.Len())

	right := up.Cross(back)
	rl := right.Len()
	if rl < 1e-6 {
		return fallback
	}
	right = right.Mul(1 / rl)
	newUp := back.Cross(right)

	m := mgl32.Mat3FromCols(right, newUp, back)
	return mgl32.Mat4ToQuat(m.Mat4()).Normalize()
}

// MeshPose returns the render transform for the craft mesh: the flight
// orientation, rolled by the cosmetic bank, with the model turned to face -Z.
func MeshPose(craft *components.Craft) components.Pose {
	if craft == nil {
		return components.IdentityPose()
	}
	bank := mgl32.QuatRotate(craft.Bank, axisZ)
	meshFix := mgl32.QuatRotate(math.Pi, axisY)
	return components.Pose{
		Position: craft.Position,
		Rotation: craft.Orientation.Mul(bank).Mul(meshFix),
	}
}

// MeshVisibility returns the craft mesh visibility for the rig's mode.
func (r *Rig) MeshVisibility() components.Visibility {
	return components.VisibilityFor(r.Mode)
}

// Forward returns the camera's viewing direction in world space.
func (r *Rig) Forward() mgl32.Vec3 {
	return r.Pose.Rotation.Rotate(localFwd)
}
