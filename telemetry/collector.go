package telemetry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/skyswarm/components"
)

// AltitudeFunc returns the terrain height under a world (x, z) position.
type AltitudeFunc func(x, z float32) float32

// Collector accumulates per-tick samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32
	ground              AltitudeFunc

	// Current window tracking
	windowStartTick int32

	// Per-tick craft samples for current window
	craftSpeeds  []float64
	altitudes    []float64
	belowTerrain int
	viewSwitches int

	// Scratch buffers reused at flush
	agentSpeeds []float64
	xs, ys, zs  []float64
	playerDists []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
// ground: terrain height lookup, nil means flat ground at zero
func NewCollector(windowDurationSec float64, dt float32, ground AltitudeFunc) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	if ground == nil {
		ground = func(x, z float32) float32 { return 0 }
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		ground:              ground,
	}
}

// RecordCraft samples the craft for the current tick.
func (c *Collector) RecordCraft(craft *components.Craft) {
	if craft == nil {
		return
	}
	c.craftSpeeds = append(c.craftSpeeds, float64(craft.ForwardSpeed))

	alt := float64(craft.Position.Y() - c.ground(craft.Position.X(), craft.Position.Z()))
	c.altitudes = append(c.altitudes, alt)
	if alt < 0 {
		c.belowTerrain++
	}
}

// RecordViewSwitch records a camera mode change.
func (c *Collector) RecordViewSwitch() {
	c.viewSwitches++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The swarm is sampled as it is at the flush tick; player may be nil.
func (c *Collector) Flush(currentTick int32, agents []components.Agent, player *components.Craft) WindowStats {
	stats := WindowStats{
		WindowStartTick:  c.windowStartTick,
		WindowEndTick:    currentTick,
		SimTimeSec:       float64(currentTick) * float64(c.dt),
		CraftPresent:     player != nil,
		BelowTerrainTick: c.belowTerrain,
		AgentCount:       len(agents),
		ViewSwitches:     c.viewSwitches,
	}

	if len(c.craftSpeeds) > 0 {
		stats.CraftSpeedMean = stat.Mean(c.craftSpeeds, nil)
		stats.CraftSpeedMax = floats.Max(c.craftSpeeds)
		stats.AltitudeMean = stat.Mean(c.altitudes, nil)
		stats.AltitudeMin = floats.Min(c.altitudes)
	}

	c.agentSpeeds = c.agentSpeeds[:0]
	c.xs, c.ys, c.zs = c.xs[:0], c.ys[:0], c.zs[:0]
	c.playerDists = c.playerDists[:0]
	for _, a := range agents {
		c.agentSpeeds = append(c.agentSpeeds, float64(a.Velocity.Len()))
		c.xs = append(c.xs, float64(a.Position.X()))
		c.ys = append(c.ys, float64(a.Position.Y()))
		c.zs = append(c.zs, float64(a.Position.Z()))
		if player != nil {
			c.playerDists = append(c.playerDists, vecDistance(a.Position, player.Position))
		}
	}

	stats.AgentSpeedMean, stats.AgentSpeedP90, stats.AgentSpeedMax = ComputeSpeedStats(c.agentSpeeds)
	stats.Spread = ComputeSpread(c.xs, c.ys, c.zs)
	if len(c.playerDists) > 0 {
		stats.PlayerDistMean = stat.Mean(c.playerDists, nil)
		stats.PlayerDistMin = floats.Min(c.playerDists)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.craftSpeeds = c.craftSpeeds[:0]
	c.altitudes = c.altitudes[:0]
	c.belowTerrain = 0
	c.viewSwitches = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

func vecDistance(a, b mgl32.Vec3) float64 {
	d := a.Sub(b)
	return distance(float64(d.X()), float64(d.Y()), float64(d.Z()))
}

func distance(dx, dy, dz float64) float64 {
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
