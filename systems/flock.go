package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
)

// Steering holds the per-behavior forces computed for one agent in one tick.
type Steering struct {
	// RawSeparation is the averaged separation accumulator before it is
	// re-steered and clamped.
	RawSeparation mgl32.Vec3

	Separation mgl32.Vec3
	Alignment  mgl32.Vec3
	Cohesion   mgl32.Vec3
	Pursuit    mgl32.Vec3

	// Neighbors is the shared counter: one increment per satisfied radius per neighbor.
	Neighbors int
}

// Total returns the summed steering before the force gain is applied.
func (s Steering) Total() mgl32.Vec3 {
	return s.Separation.Add(s.Alignment).Add(s.Cohesion).Add(s.Pursuit)
}

// FlockSystem runs separation, alignment, cohesion and pursuit for the enemy swarm.
// Each tick reads a snapshot of the previous state and commits all agents together,
// so results do not depend on the order agents are stored in.
type FlockSystem struct {
	cfg config.FlockConfig

	snapshot []components.Agent
	steering []Steering
}

// NewFlockSystem creates a flock system from flock config.
func NewFlockSystem(cfg config.FlockConfig) *FlockSystem {
	return &FlockSystem{cfg: cfg}
}

// SpawnRing places n agents evenly on a horizontal ring with zero velocity.
func SpawnRing(n int, radius, height float32) []components.Agent {
	agents := make([]components.Agent, n)
	for i := range agents {
		angle := 2 * math.Pi * float64(i) / float64(n)
		agents[i].Position = mgl32.Vec3{
			radius * float32(math.Cos(angle)),
			height,
			radius * float32(math.Sin(angle)),
		}
	}
	return agents
}

// Steer computes the forces on agent i from the given snapshot.
// hasPlayer=false disables pursuit for the tick.
func (s *FlockSystem) Steer(i int, snapshot []components.Agent, player mgl32.Vec3, hasPlayer bool) Steering {
	self := snapshot[i]
	cfg := &s.cfg

	var sep, align, coh mgl32.Vec3
	var count, sepCount, alignCount, cohCount int

	for j := range snapshot {
		if j == i {
			continue
		}
		other := snapshot[j]
		d := self.Position.Sub(other.Position).Len()

		if d > 0 && d < cfg.SeparationDistance {
			// Closer neighbors push harder
			away := normalizeOrZero(self.Position.Sub(other.Position))
			sep = sep.Add(away.Mul(1 / d))
			count++
			sepCount++
		}
		if d < cfg.AlignmentDistance {
			align = align.Add(other.Velocity)
			count++
			alignCount++
		}
		if d < cfg.CohesionDistance {
			coh = coh.Add(other.Position)
			count++
			cohCount++
		}
	}

	var st Steering
	st.Neighbors = count

	if count > 0 {
		if cfg.PerBehaviorCounters {
			sep = averaged(sep, sepCount)
			align = averaged(align, alignCount)
			coh = averaged(coh, cohCount)
		} else {
			n := 1 / float32(count)
			sep = sep.Mul(n)
			align = align.Mul(n)
			coh = coh.Mul(n)
		}

		st.RawSeparation = sep
		st.Separation = steer(sep, self.Velocity, cfg.MaxSpeed, cfg.SeparationForce)
		st.Alignment = steer(align, self.Velocity, cfg.MaxSpeed, cfg.AlignmentForce)
		st.Cohesion = steer(coh, self.Velocity, cfg.MaxSpeed, cfg.CohesionForce)
	}

	if hasPlayer {
		st.Pursuit = steer(player.Sub(self.Position), self.Velocity, cfg.MaxSpeed, cfg.PursuitForce)
	}

	return st
}

// averaged divides acc by n, leaving it untouched when n is zero.
func averaged(acc mgl32.Vec3, n int) mgl32.Vec3 {
	if n == 0 {
		return acc
	}
	return acc.Mul(1 / float32(n))
}

// Update advances every agent by one tick toward the player.
// Velocity is not clamped after integration.
func (s *FlockSystem) Update(agents []components.Agent, player mgl32.Vec3, hasPlayer bool, dt float32) {
	n := len(agents)
	if n == 0 {
		return
	}

	// Read phase: freeze the previous tick's state
	s.snapshot = append(s.snapshot[:0], agents...)
	if cap(s.steering) < n {
		s.steering = make([]Steering, n)
	}
	s.steering = s.steering[:n]

	for i := range s.snapshot {
		s.steering[i] = s.Steer(i, s.snapshot, player, hasPlayer)
	}

	// Commit phase
	gain := s.cfg.ForceGain
	for i := range agents {
		prev := s.snapshot[i]
		vel := prev.Velocity.Add(s.steering[i].Total().Mul(gain))
		agents[i].Velocity = vel
		agents[i].Position = prev.Position.Add(vel.Mul(dt))
	}
}

// LastSteering returns the forces computed during the most recent Update.
// The slice is reused on the next Update.
func (s *FlockSystem) LastSteering() []Steering {
	return s.steering
}
