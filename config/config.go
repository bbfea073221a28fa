// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// It is read-only once a Simulation has been built from it.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Flight     FlightConfig     `yaml:"flight"`
	Flock      FlockConfig      `yaml:"flock"`
	Camera     CameraConfig     `yaml:"camera"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Autopilot  AutopilotConfig  `yaml:"autopilot"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds tick scheduling parameters for headless runs.
type SimulationConfig struct {
	DT       float64 `yaml:"dt"`        // seconds per tick
	MaxTicks int     `yaml:"max_ticks"` // 0 = unlimited
}

// FlightConfig holds player craft flight dynamics parameters.
type FlightConfig struct {
	MaxSpeed      float32 `yaml:"max_speed"`      // forward speed ceiling
	Acceleration  float32 `yaml:"acceleration"`   // throttle change per second
	PitchSpeed    float32 `yaml:"pitch_speed"`    // rad/s scale on pitch input
	YawSpeed      float32 `yaml:"yaw_speed"`      // rad/s scale on yaw input
	InputResponse float32 `yaml:"input_response"` // smoothing rate for pitch/yaw
	BankResponse  float32 `yaml:"bank_response"`  // smoothing rate for cosmetic bank
}

// FlockConfig holds enemy swarm parameters.
type FlockConfig struct {
	EnemyCount int `yaml:"enemy_count"`

	// Per-behavior force magnitude caps
	CohesionForce   float32 `yaml:"cohesion_force"`
	SeparationForce float32 `yaml:"separation_force"`
	AlignmentForce  float32 `yaml:"alignment_force"`
	PursuitForce    float32 `yaml:"pursuit_force"`

	// Neighbor radii (strict less-than)
	SeparationDistance float32 `yaml:"separation_distance"`
	AlignmentDistance  float32 `yaml:"alignment_distance"`
	CohesionDistance   float32 `yaml:"cohesion_distance"`

	MaxSpeed  float32 `yaml:"max_speed"`  // steering target speed, not a clamp
	ForceGain float32 `yaml:"force_gain"` // multiplier on the summed steering

	// Experiment: average each behavior over its own neighbor count
	PerBehaviorCounters bool `yaml:"per_behavior_counters"`

	Ring RingConfig `yaml:"ring"`
}

// RingConfig controls where agents are placed at spawn.
type RingConfig struct {
	Radius float32 `yaml:"radius"`
	Height float32 `yaml:"height"`
}

// CameraConfig holds camera rig parameters.
type CameraConfig struct {
	InitialMode   string     `yaml:"initial_mode"`   // first_person, third_person, free_pan
	LookDistance  float32    `yaml:"look_distance"`  // first person look-ahead
	FollowOffset  [3]float32 `yaml:"follow_offset"`  // third person offset, local space
	FollowLerp    float32    `yaml:"follow_lerp"`    // per-tick smoothing factor
	StartPosition [3]float32 `yaml:"start_position"` // camera pose before the first follow
}

// TerrainConfig holds heightfield generation parameters.
type TerrainConfig struct {
	Seed         int64   `yaml:"seed"`
	Size         float32 `yaml:"size"`         // plane edge length in world units
	Subdivisions int     `yaml:"subdivisions"` // quads per edge
	Height       float32 `yaml:"height"`       // amplitude
	Scale        float64 `yaml:"scale"`        // world units per noise unit
	Octaves      int     `yaml:"octaves"`
	Lacunarity   float64 `yaml:"lacunarity"` // frequency multiplier per octave
	Gain         float64 `yaml:"gain"`       // amplitude multiplier per octave
}

// AutopilotConfig holds scripted input parameters for headless runs.
type AutopilotConfig struct {
	Enabled       bool    `yaml:"enabled"`
	ThrottleSec   float64 `yaml:"throttle_sec"`    // hold throttle-up this long at start
	HoldSec       float64 `yaml:"hold_sec"`        // seconds between steering re-rolls
	SwitchViewSec float64 `yaml:"switch_view_sec"` // 0 = never switch view
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32 float32 // Simulation.DT as float32
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.DT)
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
