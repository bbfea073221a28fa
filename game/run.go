package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/skyswarm/components"
)

// Run steps the simulation at the configured dt until ctx is cancelled or
// maxTicks ticks have completed (0 = unlimited). Input comes from the
// autopilot when enabled, otherwise no buttons are held.
func (s *Simulation) Run(ctx context.Context, maxTicks int) error {
	dt := s.cfg.Derived.DT32

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopped", "tick", s.tick, "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		var in components.Controls
		if s.autopilot != nil {
			in = s.autopilot.Next(dt)
		}
		s.Step(in, dt)

		if maxTicks > 0 && int(s.tick) >= maxTicks {
			slog.Info("max ticks reached", "tick", s.tick)
			return nil
		}
	}
}
