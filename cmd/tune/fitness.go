package main

import (
	"math"
	"sync"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/config"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/sim"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness = -(survivalTicks × (1 + 0.2 × quality)): survival dominates,
// quality adds up to 20% to separate configs with similar survival.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel; each run owns its Sim, nothing is shared.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := fe.computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: -(float64(result.survivalTicks) * (1.0 + 0.2*quality)),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run until extinction or
// maxTicks. The population floor is disabled so a bad parameter set is
// allowed to collapse; that is the signal the tuner minimizes against.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	cfg.Population.MinAlive = 0

	result := &runResult{}

	s, err := sim.New(sim.Options{
		Seed:   seed,
		Config: &cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		// Only file output can fail, and this run has none.
		result.survivalTicks = 0
		return result
	}
	defer s.Close()

	for s.Tick() < fe.maxTicks {
		s.Step()
		if s.Alive() == 0 {
			result.survivalTicks = s.Tick()
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// Quality component weights.
const (
	qualityWeightStability = 0.4
	qualityWeightEnergy    = 0.4
	qualityWeightFloor     = 0.2

	qualityWarmupWindows = 3 // skip first N windows (warmup)
)

// computeQuality computes run quality ∈ [0, 1] from window stats:
// population stability, energy health, and starvation-mask pressure (how
// often the energy floor clamp fired, the starvation the floor hides).
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var energySum, floorSum float64
	var count int
	popCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Alive == 0 {
			continue
		}
		popCounts = append(popCounts, float64(w.Alive))

		// Energy health: median near the middle of the viable band.
		energySum += math.Exp(-math.Pow((w.EnergyP50-60.0)/25.0, 2))

		// Floor pressure: clamped ticks per bacterium per window; zero is
		// perfect, one clamp per bacterium per window scores ~0.37.
		clampRate := float64(w.FloorClamps) / float64(w.Alive)
		floorSum += math.Exp(-clampRate)
		count++
	}

	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(popCounts) >= 2 {
		c := cv(popCounts)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/float64(count) +
		qualityWeightFloor*floorSum/float64(count)

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
