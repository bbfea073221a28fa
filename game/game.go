// Package game wires the simulation systems into a single per-tick step.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyswarm/camera"
	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
	"github.com/pthm-cable/skyswarm/systems"
	"github.com/pthm-cable/skyswarm/telemetry"
)

// Options holds run-level settings that are not part of the simulation config.
type Options struct {
	Seed           int64 // autopilot RNG seed
	LogStats       bool  // log window stats via slog
	StatsWindowSec float64
	OutputDir      string // empty disables CSV output
	Headless       bool   // skip the host scene mirror
	StatsCallback  func(telemetry.WindowStats)
}

// Output is the per-tick result handed to the host.
type Output struct {
	Tick            int32
	Craft           components.Craft
	CraftPresent    bool
	Agents          []components.Agent
	Camera          components.Pose
	CraftMesh       components.Pose
	CraftVisibility components.Visibility
	Mode            components.ViewMode
}

// Simulation holds the complete simulation state.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	craft  *components.Craft // nil until SpawnCraft
	agents []components.Agent

	// Systems
	shaper  *systems.InputShaper
	flight  *systems.FlightSystem
	flock   *systems.FlockSystem
	terrain *systems.Heightfield
	rig     *camera.Rig

	// Host mirror, nil in headless mode
	scene *Scene

	autopilot *Autopilot

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	tick int32
}

// New creates a simulation from cfg. The craft is not spawned; call SpawnCraft.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	s := &Simulation{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		shaper:        systems.NewInputShaper(cfg.Flight),
		flight:        systems.NewFlightSystem(cfg.Flight),
		flock:         systems.NewFlockSystem(cfg.Flock),
		terrain:       systems.NewHeightfield(cfg.Terrain),
		rig:           camera.New(cfg.Camera),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}

	s.agents = systems.SpawnRing(cfg.Flock.EnemyCount, cfg.Flock.Ring.Radius, cfg.Flock.Ring.Height)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	s.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32, s.terrain.Sample)

	if cfg.Autopilot.Enabled {
		s.autopilot = NewAutopilot(cfg.Autopilot, s.rng)
	}

	if !opts.Headless {
		s.scene = NewScene(len(s.agents))
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	s.outputManager = om

	return s, nil
}

// SpawnCraft places the player craft at the origin with identity orientation.
// Calling it again resets the craft.
func (s *Simulation) SpawnCraft() *components.Craft {
	s.craft = components.NewCraft()
	return s.craft
}

// Step advances the simulation by one tick.
// Order: view switch, input shaping, flight, flock, camera, host sync.
func (s *Simulation) Step(in components.Controls, dt float32) Output {
	perf := s.perfCollector
	perf.StartTick()

	perf.StartPhase(telemetry.PhaseInput)
	if in.SwitchView {
		mode := s.rig.SwitchMode()
		s.collector.RecordViewSwitch()
		slog.Info("switched view mode", "mode", mode.String(), "tick", s.tick)
	}
	s.shaper.Update(s.craft, in, dt)

	perf.StartPhase(telemetry.PhaseFlight)
	s.flight.Update(s.craft, dt)

	perf.StartPhase(telemetry.PhaseFlock)
	player, hasPlayer := s.playerPosition()
	s.flock.Update(s.agents, player, hasPlayer, dt)

	perf.StartPhase(telemetry.PhaseCamera)
	s.rig.Update(s.craft)

	s.tick++
	out := s.output()

	perf.StartPhase(telemetry.PhaseScene)
	s.scene.Sync(out)

	perf.StartPhase(telemetry.PhaseTelemetry)
	s.collector.RecordCraft(s.craft)
	s.flushTelemetry()

	perf.EndTick()
	return out
}

func (s *Simulation) playerPosition() (mgl32.Vec3, bool) {
	if s.craft == nil {
		return mgl32.Vec3{}, false
	}
	return s.craft.Position, true
}

func (s *Simulation) output() Output {
	out := Output{
		Tick:            s.tick,
		CraftPresent:    s.craft != nil,
		Agents:          make([]components.Agent, len(s.agents)),
		Camera:          s.rig.Pose,
		CraftMesh:       camera.MeshPose(s.craft),
		CraftVisibility: s.rig.MeshVisibility(),
		Mode:            s.rig.Mode,
	}
	copy(out.Agents, s.agents)
	if s.craft != nil {
		out.Craft = *s.craft
	}
	return out
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Config returns the simulation config.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Craft returns the player craft, or nil before SpawnCraft.
func (s *Simulation) Craft() *components.Craft {
	return s.craft
}

// Agents returns the live agent slice.
func (s *Simulation) Agents() []components.Agent {
	return s.agents
}

// Rig returns the camera rig.
func (s *Simulation) Rig() *camera.Rig {
	return s.rig
}

// Terrain returns the heightfield.
func (s *Simulation) Terrain() *systems.Heightfield {
	return s.terrain
}

// Scene returns the host scene mirror, nil in headless mode.
func (s *Simulation) Scene() *Scene {
	return s.scene
}

// Flock returns the flock system for steering inspection.
func (s *Simulation) Flock() *systems.FlockSystem {
	return s.flock
}

// Close flushes and closes run output.
func (s *Simulation) Close() error {
	return s.outputManager.Close()
}
