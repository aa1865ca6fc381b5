package brain

// Config holds the learning and state machine parameters for one controller.
// The sim package builds it from the loaded configuration; DefaultConfig
// mirrors the embedded defaults.
type Config struct {
	// Q-learning
	Alpha   float64 // learning rate
	Gamma   float64 // discount factor
	Epsilon float64 // exploration probability

	// Locks and timers, in ticks
	TransitionLock     int32 // further changes rejected after any transition
	ReproductionLock   int32 // cooldown set on entering Reproducing
	ForcedExploreEvery int32 // unconditional reset to Exploring
	RestingCap         int32 // maximum consecutive Resting ticks
	LoopWindow         int32 // two recurrences inside this window arm the breaker
	LoopRepeats        int   // pair count that must be exceeded to fire
	MaxTrackedPairs    int   // transition pair capacity, least-recently-seen eviction

	// Sensed-rule energy thresholds
	SeekFoodBelow  float32
	ReproduceAbove float32
	RestBelow      float32

	// Per-tick energy side effects
	RestGain    float32
	ReproCost   float32
	ActiveCost  float32
	EnergyFloor float32
	EnergyCap   float32

	Reward RewardWeights
}

// DefaultConfig returns the parameters the controller was tuned with.
func DefaultConfig() Config {
	return Config{
		Alpha:   0.1,
		Gamma:   0.9,
		Epsilon: 0.1,

		TransitionLock:     30,
		ReproductionLock:   300,
		ForcedExploreEvery: 180,
		RestingCap:         120,
		LoopWindow:         90,
		LoopRepeats:        3,
		MaxTrackedPairs:    16,

		SeekFoodBelow:  70,
		ReproduceAbove: 80,
		RestBelow:      20,

		RestGain:    0.2,
		ReproCost:   0.15,
		ActiveCost:  0.05,
		EnergyFloor: 10,
		EnergyCap:   100,

		Reward: DefaultRewardWeights(),
	}
}
