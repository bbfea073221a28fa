package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/skyswarm/config"
	"github.com/pthm-cable/skyswarm/game"
	"github.com/pthm-cable/skyswarm/telemetry"
)

// Penalty returned for runs that fail or go non-finite.
const failedFitness = 1e9

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastPursuit float64 // mean player distance from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 2.0,
	}
}

// LastPursuit returns the mean swarm distance to the player from the most recent evaluation.
func (fe *FitnessEvaluator) LastPursuit() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastPursuit
}

type seedResult struct {
	fitness float64
	pursuit float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Every seed runs on its own goroutine with its own simulation.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				results[idx] = seedResult{fitness: failedFitness}
				return
			}
			results[idx] = scoreWindows(windows, fe.baseConfig.Flock)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalPursuit float64
	for _, r := range results {
		totalFitness += r.fitness
		totalPursuit += r.pursuit
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastPursuit = totalPursuit / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Autopilot.Enabled = true

	var windows []telemetry.WindowStats
	sim, err := game.New(cfg, game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(ws telemetry.WindowStats) {
			windows = append(windows, ws)
		},
	})
	if err != nil {
		return nil, err
	}
	defer sim.Close()

	sim.SpawnCraft()
	if err := sim.Run(context.Background(), fe.maxTicks); err != nil {
		return nil, err
	}
	return windows, nil
}

// scoreWindows rewards a swarm that stays close to the player and compact,
// and penalizes agents running far past their steering speed.
// The first window is skipped while the swarm leaves its spawn ring.
func scoreWindows(windows []telemetry.WindowStats, flock config.FlockConfig) seedResult {
	if len(windows) < 2 {
		return seedResult{fitness: failedFitness}
	}

	scale := float64(flock.Ring.Radius)
	if scale <= 0 {
		scale = 1
	}
	maxSpeed := float64(flock.MaxSpeed)

	var sum, pursuit float64
	for _, w := range windows[1:] {
		dist := w.PlayerDistMean / scale
		spread := w.Spread / scale

		var blowup float64
		if maxSpeed > 0 && w.AgentSpeedMax > 2*maxSpeed {
			excess := w.AgentSpeedMax/maxSpeed - 2
			blowup = excess * excess
		}

		score := dist + 0.5*spread + blowup
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return seedResult{fitness: failedFitness}
		}
		sum += score
		pursuit += w.PlayerDistMean
	}

	n := float64(len(windows) - 1)
	return seedResult{fitness: sum / n, pursuit: pursuit / n}
}
