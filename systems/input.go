package systems

import (
	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
)

// InputShaper turns held buttons into smoothed control axes and throttle.
type InputShaper struct {
	maxSpeed      float32
	acceleration  float32
	inputResponse float32
	bankResponse  float32
}

// NewInputShaper creates an input shaper from flight config.
func NewInputShaper(cfg config.FlightConfig) *InputShaper {
	return &InputShaper{
		maxSpeed:      cfg.MaxSpeed,
		acceleration:  cfg.Acceleration,
		inputResponse: cfg.InputResponse,
		bankResponse:  cfg.BankResponse,
	}
}

// AxisTarget returns the instantaneous target for one control axis.
// The positive key is checked last, so holding both yields +pi/4.
func AxisTarget(negative, positive bool) float32 {
	var value float32
	if negative {
		value = -quarterTurn
	}
	if positive {
		value = quarterTurn
	}
	return value
}

// Update applies one tick of input to the craft's four control scalars.
func (s *InputShaper) Update(craft *components.Craft, in components.Controls, dt float32) {
	if craft == nil {
		return
	}

	if in.ThrottleUp {
		craft.ForwardSpeed = min(craft.ForwardSpeed+s.acceleration*dt, s.maxSpeed)
	}
	if in.ThrottleDown {
		craft.ForwardSpeed = max(craft.ForwardSpeed-s.acceleration*dt, 0)
	}

	pitchTarget := AxisTarget(in.PitchDown, in.PitchUp)
	yawTarget := AxisTarget(in.YawRight, in.YawLeft)

	craft.PitchInput = lerp(craft.PitchInput, pitchTarget, s.inputResponse*dt)
	craft.YawInput = lerp(craft.YawInput, yawTarget, s.inputResponse*dt)

	// Bank follows yaw more slowly and only feeds the visuals
	craft.Bank = lerp(craft.Bank, yawTarget, s.bankResponse*dt)
}
