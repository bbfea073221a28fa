package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Player craft (sampled every tick)
	CraftPresent     bool    `csv:"craft_present"`
	CraftSpeedMean   float64 `csv:"craft_speed_mean"`
	CraftSpeedMax    float64 `csv:"craft_speed_max"`
	AltitudeMean     float64 `csv:"altitude_mean"` // above terrain
	AltitudeMin      float64 `csv:"altitude_min"`
	BelowTerrainTick int     `csv:"below_terrain_ticks"`

	// Swarm (sampled at window end)
	AgentCount     int     `csv:"agents"`
	AgentSpeedMean float64 `csv:"agent_speed_mean"`
	AgentSpeedP90  float64 `csv:"agent_speed_p90"`
	AgentSpeedMax  float64 `csv:"agent_speed_max"`
	Spread         float64 `csv:"spread"` // std-dev of distance to centroid

	// Pursuit quality (sampled at window end, zero without a craft)
	PlayerDistMean float64 `csv:"player_dist_mean"`
	PlayerDistMin  float64 `csv:"player_dist_min"`

	// Events during window
	ViewSwitches int `csv:"view_switches"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, p90 and max from speed values.
func ComputeSpeedStats(values []float64) (mean, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p90 = Percentile(sorted, 0.90)
	max = sorted[len(sorted)-1]
	return mean, p90, max
}

// ComputeSpread returns the population standard deviation of the distances
// from each point to the centroid. Points are flattened xyz triples.
func ComputeSpread(xs, ys, zs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}

	cx, cy, cz := stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil)
	dists := make([]float64, n)
	for i := range xs {
		dists[i] = distance(xs[i]-cx, ys[i]-cy, zs[i]-cz)
	}
	_, std := stat.PopMeanStdDev(dists, nil)
	return std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Bool("craft_present", s.CraftPresent),
		slog.Float64("craft_speed_mean", s.CraftSpeedMean),
		slog.Float64("craft_speed_max", s.CraftSpeedMax),
		slog.Float64("altitude_mean", s.AltitudeMean),
		slog.Float64("altitude_min", s.AltitudeMin),
		slog.Int("below_terrain_ticks", s.BelowTerrainTick),
		slog.Int("agents", s.AgentCount),
		slog.Float64("agent_speed_mean", s.AgentSpeedMean),
		slog.Float64("agent_speed_p90", s.AgentSpeedP90),
		slog.Float64("agent_speed_max", s.AgentSpeedMax),
		slog.Float64("spread", s.Spread),
		slog.Float64("player_dist_mean", s.PlayerDistMean),
		slog.Float64("player_dist_min", s.PlayerDistMin),
		slog.Int("view_switches", s.ViewSwitches),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"craft_speed_mean", s.CraftSpeedMean,
		"altitude_min", s.AltitudeMin,
		"below_terrain_ticks", s.BelowTerrainTick,
		"agent_speed_mean", s.AgentSpeedMean,
		"agent_speed_max", s.AgentSpeedMax,
		"spread", s.Spread,
		"player_dist_mean", s.PlayerDistMean,
		"player_dist_min", s.PlayerDistMin,
		"view_switches", s.ViewSwitches,
	)
}
