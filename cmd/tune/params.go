// Package main provides CMA-ES tuning for the behavior controller
// parameters: learning rates, state machine timers, energy costs, and
// reward weights that keep a population alive and stable.
package main

import (
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Learning
			{Name: "alpha", Path: "learning.alpha", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "gamma", Path: "learning.gamma", Min: 0.5, Max: 0.99, Default: 0.9},
			{Name: "epsilon", Path: "learning.epsilon", Min: 0.01, Max: 0.3, Default: 0.1},
			// State machine timers (transition lock and loop breaker locked
			// at their defaults: they are liveness guarantees, not knobs)
			{Name: "repro_cooldown", Path: "behavior.reproduction_cooldown_ticks", Min: 100, Max: 600, Default: 300},
			{Name: "forced_explore", Path: "behavior.forced_explore_ticks", Min: 60, Max: 400, Default: 180},
			{Name: "resting_cap", Path: "behavior.resting_cap_ticks", Min: 40, Max: 240, Default: 120},
			// Energy thresholds
			{Name: "seek_food_below", Path: "behavior.seek_food_below", Min: 40, Max: 90, Default: 70},
			{Name: "reproduce_above", Path: "behavior.reproduce_above", Min: 60, Max: 95, Default: 80},
			{Name: "rest_below", Path: "behavior.rest_below", Min: 5, Max: 40, Default: 20},
			// Energy side effects
			{Name: "rest_gain", Path: "behavior.rest_gain", Min: 0.05, Max: 0.5, Default: 0.2},
			{Name: "repro_cost", Path: "behavior.repro_cost", Min: 0.05, Max: 0.5, Default: 0.15},
			{Name: "active_cost", Path: "behavior.active_cost", Min: 0.01, Max: 0.2, Default: 0.05},
			// Reward weights
			{Name: "reward_food", Path: "reward.food_nearby", Min: 0.0, Max: 1.0, Default: 0.2},
			{Name: "reward_mate", Path: "reward.mate_nearby", Min: 0.0, Max: 1.0, Default: 0.2},
			{Name: "reward_predator", Path: "reward.predator_nearby", Min: -1.5, Max: 0.0, Default: -0.6},
		},
	}
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	cfg.Learning.Alpha = clamped[i]
	i++
	cfg.Learning.Gamma = clamped[i]
	i++
	cfg.Learning.Epsilon = clamped[i]
	i++

	cfg.Behavior.ReproductionCooldownTicks = int(clamped[i])
	i++
	cfg.Behavior.ForcedExploreTicks = int(clamped[i])
	i++
	cfg.Behavior.RestingCapTicks = int(clamped[i])
	i++

	cfg.Behavior.SeekFoodBelow = clamped[i]
	i++
	cfg.Behavior.ReproduceAbove = clamped[i]
	i++
	cfg.Behavior.RestBelow = clamped[i]
	i++

	cfg.Behavior.RestGain = clamped[i]
	i++
	cfg.Behavior.ReproCost = clamped[i]
	i++
	cfg.Behavior.ActiveCost = clamped[i]
	i++

	cfg.Reward.FoodNearby = clamped[i]
	i++
	cfg.Reward.MateNearby = clamped[i]
	i++
	cfg.Reward.PredatorNearby = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Learning.Alpha,
		cfg.Learning.Gamma,
		cfg.Learning.Epsilon,
		float64(cfg.Behavior.ReproductionCooldownTicks),
		float64(cfg.Behavior.ForcedExploreTicks),
		float64(cfg.Behavior.RestingCapTicks),
		cfg.Behavior.SeekFoodBelow,
		cfg.Behavior.ReproduceAbove,
		cfg.Behavior.RestBelow,
		cfg.Behavior.RestGain,
		cfg.Behavior.ReproCost,
		cfg.Behavior.ActiveCost,
		cfg.Reward.FoodNearby,
		cfg.Reward.MateNearby,
		cfg.Reward.PredatorNearby,
	}
}
