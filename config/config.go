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

// Config holds all simulation parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Entity       EntityConfig       `yaml:"entity"`
	Population   PopulationConfig   `yaml:"population"`
	Food         FoodConfig         `yaml:"food"`
	Predators    PredatorConfig     `yaml:"predators"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Learning     LearningConfig     `yaml:"learning"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Reward       RewardConfig       `yaml:"reward"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the toroidal plane dimensions in world units.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// EntityConfig holds spawn vitals and health dynamics.
type EntityConfig struct {
	InitialHealth    float64 `yaml:"initial_health"`    // health at spawn
	InitialEnergy    float64 `yaml:"initial_energy"`    // energy at spawn
	StarvationDamage float64 `yaml:"starvation_damage"` // health lost per starving tick
	RegenRate        float64 `yaml:"regen_rate"`        // health regained per tick when fed
	RegenAbove       float64 `yaml:"regen_above"`       // energy needed for regeneration
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial      int `yaml:"initial"`
	Max          int `yaml:"max"`
	MinAlive     int `yaml:"min_alive"`     // respawn when the population drops below this
	RespawnCount int `yaml:"respawn_count"` // bacteria added per respawn
}

// FoodConfig holds food spawning parameters.
type FoodConfig struct {
	Initial        int     `yaml:"initial"`
	Max            int     `yaml:"max"`
	EnergyPerItem  float64 `yaml:"energy_per_item"`
	RespawnPerTick float64 `yaml:"respawn_per_tick"` // expected new items per tick below max
	EatRadius      float64 `yaml:"eat_radius"`       // contact distance for eating
	PatchScale     float64 `yaml:"patch_scale"`      // noise frequency for food patches
	PatchThreshold float64 `yaml:"patch_threshold"`  // noise value a spot must exceed
}

// PredatorConfig holds roaming hunter parameters.
type PredatorConfig struct {
	Count         int     `yaml:"count"`
	Speed         float64 `yaml:"speed"`
	ContactDamage float64 `yaml:"contact_damage"` // health lost per tick in contact
	ContactRadius float64 `yaml:"contact_radius"`
	TurnJitter    float64 `yaml:"turn_jitter"` // wander heading noise per tick
}

// ReproductionConfig holds external pairing parameters. The behavior
// controller decides when a bacterium wants to reproduce; these govern
// what happens when two willing bacteria actually meet.
type ReproductionConfig struct {
	PairRadius      float64 `yaml:"pair_radius"`       // distance for two reproducers to pair
	SpawnOffset     float64 `yaml:"spawn_offset"`      // child placement distance from parents
	SpawnEnergyCost float64 `yaml:"spawn_energy_cost"` // energy each parent pays per child
}

// LearningConfig holds the Q-learning hyperparameters.
type LearningConfig struct {
	Alpha   float64 `yaml:"alpha"`   // learning rate
	Gamma   float64 `yaml:"gamma"`   // discount factor
	Epsilon float64 `yaml:"epsilon"` // exploration rate
}

// BehaviorConfig holds the state machine timers and thresholds.
type BehaviorConfig struct {
	TransitionLockTicks       int     `yaml:"transition_lock_ticks"`
	ReproductionCooldownTicks int     `yaml:"reproduction_cooldown_ticks"`
	ForcedExploreTicks        int     `yaml:"forced_explore_ticks"`
	RestingCapTicks           int     `yaml:"resting_cap_ticks"`
	LoopWindowTicks           int     `yaml:"loop_window_ticks"`
	LoopRepeats               int     `yaml:"loop_repeats"`
	MaxTrackedPairs           int     `yaml:"max_tracked_pairs"`
	SeekFoodBelow             float64 `yaml:"seek_food_below"`
	ReproduceAbove            float64 `yaml:"reproduce_above"`
	RestBelow                 float64 `yaml:"rest_below"`
	RestGain                  float64 `yaml:"rest_gain"`
	ReproCost                 float64 `yaml:"repro_cost"`
	ActiveCost                float64 `yaml:"active_cost"`
	EnergyFloor               float64 `yaml:"energy_floor"`
	EnergyCap                 float64 `yaml:"energy_cap"`
}

// RewardConfig holds the context reward weights.
type RewardConfig struct {
	FoodNearby     float64 `yaml:"food_nearby"`
	MateNearby     float64 `yaml:"mate_nearby"`
	PredatorNearby float64 `yaml:"predator_nearby"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per aggregation window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32 float32
	WorldH32 float32
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load reads configuration from a YAML file, merging it over the embedded
// defaults. An empty path uses the defaults alone.
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
		// Unmarshal into the same struct: only fields present in the
		// file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// validate rejects parameter values the learner or machine cannot run on.
func (c *Config) validate() error {
	if c.Learning.Alpha < 0 || c.Learning.Alpha > 1 {
		return fmt.Errorf("config: learning.alpha %v outside [0,1]", c.Learning.Alpha)
	}
	if c.Learning.Gamma < 0 || c.Learning.Gamma > 1 {
		return fmt.Errorf("config: learning.gamma %v outside [0,1]", c.Learning.Gamma)
	}
	if c.Learning.Epsilon < 0 || c.Learning.Epsilon > 1 {
		return fmt.Errorf("config: learning.epsilon %v outside [0,1]", c.Learning.Epsilon)
	}
	if c.Behavior.TransitionLockTicks < 0 {
		return fmt.Errorf("config: behavior.transition_lock_ticks must not be negative")
	}
	if c.Behavior.EnergyFloor >= c.Behavior.EnergyCap {
		return fmt.Errorf("config: behavior.energy_floor %v must be below energy_cap %v",
			c.Behavior.EnergyFloor, c.Behavior.EnergyCap)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world dimensions must be positive, got %dx%d",
			c.World.Width, c.World.Height)
	}
	if c.Population.Initial < 0 || c.Population.Max < c.Population.Initial {
		return fmt.Errorf("config: population.max %d must hold population.initial %d",
			c.Population.Max, c.Population.Initial)
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
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
