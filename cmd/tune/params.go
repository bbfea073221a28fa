// Package main provides CMA-ES tuning of flock steering parameters.
package main

import (
	"github.com/pthm-cable/skyswarm/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

func float32Param(field func(*config.Config) *float32) (func(*config.Config) float64, func(*config.Config, float64)) {
	get := func(c *config.Config) float64 { return float64(*field(c)) }
	set := func(c *config.Config, v float64) { *field(c) = float32(v) }
	return get, set
}

// NewParamVector creates the flock force caps and neighbor radii as parameters.
func NewParamVector() *ParamVector {
	specs := []struct {
		name, path    string
		min, max, def float64
		field         func(*config.Config) *float32
	}{
		{"separation_force", "flock.separation_force", 0.01, 0.5, 0.1, func(c *config.Config) *float32 { return &c.Flock.SeparationForce }},
		{"alignment_force", "flock.alignment_force", 0.005, 0.3, 0.05, func(c *config.Config) *float32 { return &c.Flock.AlignmentForce }},
		{"cohesion_force", "flock.cohesion_force", 0.005, 0.3, 0.05, func(c *config.Config) *float32 { return &c.Flock.CohesionForce }},
		{"pursuit_force", "flock.pursuit_force", 0.001, 0.1, 0.01, func(c *config.Config) *float32 { return &c.Flock.PursuitForce }},
		{"separation_distance", "flock.separation_distance", 2, 30, 10, func(c *config.Config) *float32 { return &c.Flock.SeparationDistance }},
		{"alignment_distance", "flock.alignment_distance", 5, 80, 30, func(c *config.Config) *float32 { return &c.Flock.AlignmentDistance }},
		{"cohesion_distance", "flock.cohesion_distance", 10, 150, 50, func(c *config.Config) *float32 { return &c.Flock.CohesionDistance }},
	}

	pv := &ParamVector{}
	for _, s := range specs {
		get, set := float32Param(s.field)
		pv.Specs = append(pv.Specs, ParamSpec{
			Name: s.name, Path: s.path, Min: s.min, Max: s.max, Default: s.def,
			get: get, set: set,
		})
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	cfg.Recompute()
}

// ExtractFromConfig reads current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
