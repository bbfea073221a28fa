package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
)

// FlightSystem integrates the craft's orientation and position.
type FlightSystem struct {
	pitchSpeed float32
	yawSpeed   float32
}

// NewFlightSystem creates a flight system from flight config.
func NewFlightSystem(cfg config.FlightConfig) *FlightSystem {
	return &FlightSystem{
		pitchSpeed: cfg.PitchSpeed,
		yawSpeed:   cfg.YawSpeed,
	}
}

// Update advances the craft by dt. Control inputs are read, never written.
func (s *FlightSystem) Update(craft *components.Craft, dt float32) {
	if craft == nil {
		return
	}

	yaw := mgl32.QuatRotate(craft.YawInput*s.yawSpeed*dt, axisY)
	pitch := mgl32.QuatRotate(craft.PitchInput*s.pitchSpeed*dt, axisX)

	// Yaw in world frame keeps the horizon level; pitch is about the body's own X
	craft.Orientation = yaw.Mul(craft.Orientation).Mul(pitch).Normalize()

	forward := craft.Forward()
	craft.Position = craft.Position.Add(forward.Mul(craft.ForwardSpeed * dt))
}
