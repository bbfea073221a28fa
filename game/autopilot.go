package game

import (
	"math/rand"

	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
)

// Autopilot generates scripted button input for headless runs.
// It holds throttle for ThrottleSec, then picks a random pitch/yaw pair
// and holds it for HoldSec before re-rolling.
type Autopilot struct {
	cfg config.AutopilotConfig
	rng *rand.Rand

	elapsed    float64
	nextRoll   float64
	nextSwitch float64
	pitch, yaw int // -1, 0 or +1
}

// NewAutopilot creates an autopilot drawing from rng.
func NewAutopilot(cfg config.AutopilotConfig, rng *rand.Rand) *Autopilot {
	return &Autopilot{
		cfg:        cfg,
		rng:        rng,
		nextSwitch: cfg.SwitchViewSec,
	}
}

// Next returns the controls for the coming tick and advances the script by dt.
func (a *Autopilot) Next(dt float32) components.Controls {
	var c components.Controls

	if a.elapsed < a.cfg.ThrottleSec {
		c.ThrottleUp = true
	}

	if a.cfg.HoldSec > 0 && a.elapsed >= a.nextRoll {
		a.pitch = a.rng.Intn(3) - 1
		a.yaw = a.rng.Intn(3) - 1
		a.nextRoll += a.cfg.HoldSec
	}
	c.PitchUp = a.pitch > 0
	c.PitchDown = a.pitch < 0
	c.YawLeft = a.yaw > 0
	c.YawRight = a.yaw < 0

	if a.cfg.SwitchViewSec > 0 && a.elapsed >= a.nextSwitch {
		c.SwitchView = true
		a.nextSwitch += a.cfg.SwitchViewSec
	}

	a.elapsed += float64(dt)
	return c
}
