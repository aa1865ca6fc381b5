package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Alive     int `csv:"alive"`
	FoodItems int `csv:"food"`

	// Lifecycle events during the window
	Births           int `csv:"births"`
	DeathsStarvation int `csv:"deaths_starvation"`
	DeathsPredation  int `csv:"deaths_predation"`
	DeathsOldAge     int `csv:"deaths_old_age"`
	Meals            int `csv:"meals"`

	// State transitions during the window, bucketed by destination
	ToExploring   int `csv:"to_exploring"`
	ToSeekingFood int `csv:"to_seeking_food"`
	ToReproducing int `csv:"to_reproducing"`
	ToFleeing     int `csv:"to_fleeing"`
	ToResting     int `csv:"to_resting"`

	// Controller interventions
	ForcedExplores int `csv:"forced_explores"`
	LoopBreaks     int `csv:"loop_breaks"`
	FloorClamps    int `csv:"floor_clamps"`

	// Learning activity
	GreedyPicks       int     `csv:"greedy_picks"`
	RandomPicks       int     `csv:"random_picks"`
	ExploreRate       float64 `csv:"explore_rate"`
	LearnUpdates      int     `csv:"learn_updates"`
	SanitizedReadings int     `csv:"sanitized_readings"`

	// Vitals distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	HealthMean float64 `csv:"health_mean"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	// Average learned table size across living bacteria
	TableSizeMean float64 `csv:"q_states_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if the slice is empty.
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

// ComputeVitalsStats calculates mean and percentiles from sampled values.
func ComputeVitalsStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("alive", s.Alive),
		slog.Int("food", s.FoodItems),
		slog.Int("births", s.Births),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_predation", s.DeathsPredation),
		slog.Int("deaths_old_age", s.DeathsOldAge),
		slog.Int("meals", s.Meals),
		slog.Int("to_exploring", s.ToExploring),
		slog.Int("to_seeking_food", s.ToSeekingFood),
		slog.Int("to_reproducing", s.ToReproducing),
		slog.Int("to_fleeing", s.ToFleeing),
		slog.Int("to_resting", s.ToResting),
		slog.Int("forced_explores", s.ForcedExplores),
		slog.Int("loop_breaks", s.LoopBreaks),
		slog.Int("floor_clamps", s.FloorClamps),
		slog.Int("greedy_picks", s.GreedyPicks),
		slog.Int("random_picks", s.RandomPicks),
		slog.Float64("explore_rate", s.ExploreRate),
		slog.Int("learn_updates", s.LearnUpdates),
		slog.Int("sanitized_readings", s.SanitizedReadings),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_p50", s.HealthP50),
		slog.Float64("q_states_mean", s.TableSizeMean),
	)
}
