package telemetry

import (
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/systems"
)

// Collector accumulates events within stats windows and produces WindowStats.
type Collector struct {
	windowTicks int32
	windowStart int32

	// Event counters for the current window
	births           int
	deathsStarvation int
	deathsPredation  int
	deathsOldAge     int
	meals            int

	transitions [brain.NumStates]int

	forcedExplores int
	loopBreaks     int
	floorClamps    int

	greedyPicks  int
	randomPicks  int
	learnUpdates int
	sanitized    int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records one spawned child.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death bucketed by cause.
func (c *Collector) RecordDeath(cause systems.DeathCause) {
	switch cause {
	case systems.DeathStarvation:
		c.deathsStarvation++
	case systems.DeathPredation:
		c.deathsPredation++
	case systems.DeathOldAge:
		c.deathsOldAge++
	}
}

// RecordMeal records one food item eaten.
func (c *Collector) RecordMeal() {
	c.meals++
}

// RecordDecision folds one controller decision into the window counters.
func (c *Collector) RecordDecision(dec brain.Decision) {
	if dec.Changed {
		if s := int(dec.Directives.State); s < len(c.transitions) {
			c.transitions[s]++
		}
	}
	if dec.ForcedExplore {
		c.forcedExplores++
	}
	if dec.LoopBroken {
		c.loopBreaks++
	}
	if dec.FloorClamped {
		c.floorClamps++
	}
	if dec.Explored {
		c.randomPicks++
	} else {
		c.greedyPicks++
	}
	if dec.Learned {
		c.learnUpdates++
	}
	if dec.Sanitized {
		c.sanitized++
	}
}

// ShouldFlush returns true once a full window has elapsed.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStart >= c.windowTicks
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}

// Flush produces the window's stats and resets the counters. Vitals and
// table sizes are sampled by the caller at window end.
func (c *Collector) Flush(
	currentTick int32,
	alive, foodItems int,
	energies, healths, tableSizes []float64,
) WindowStats {
	var exploreRate float64
	if picks := c.greedyPicks + c.randomPicks; picks > 0 {
		exploreRate = float64(c.randomPicks) / float64(picks)
	}

	energyMean, energyP10, energyP50, energyP90 := ComputeVitalsStats(energies)
	healthMean, healthP10, healthP50, healthP90 := ComputeVitalsStats(healths)
	tableMean, _, _, _ := ComputeVitalsStats(tableSizes)

	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   currentTick,

		Alive:     alive,
		FoodItems: foodItems,

		Births:           c.births,
		DeathsStarvation: c.deathsStarvation,
		DeathsPredation:  c.deathsPredation,
		DeathsOldAge:     c.deathsOldAge,
		Meals:            c.meals,

		ToExploring:   c.transitions[brain.StateExploring],
		ToSeekingFood: c.transitions[brain.StateSeekingFood],
		ToReproducing: c.transitions[brain.StateReproducing],
		ToFleeing:     c.transitions[brain.StateFleeing],
		ToResting:     c.transitions[brain.StateResting],

		ForcedExplores: c.forcedExplores,
		LoopBreaks:     c.loopBreaks,
		FloorClamps:    c.floorClamps,

		GreedyPicks:       c.greedyPicks,
		RandomPicks:       c.randomPicks,
		ExploreRate:       exploreRate,
		LearnUpdates:      c.learnUpdates,
		SanitizedReadings: c.sanitized,

		EnergyMean: energyMean,
		EnergyP10:  energyP10,
		EnergyP50:  energyP50,
		EnergyP90:  energyP90,

		HealthMean: healthMean,
		HealthP10:  healthP10,
		HealthP50:  healthP50,
		HealthP90:  healthP90,

		TableSizeMean: tableMean,
	}

	// Reset for the next window
	c.windowStart = currentTick
	c.births = 0
	c.deathsStarvation = 0
	c.deathsPredation = 0
	c.deathsOldAge = 0
	c.meals = 0
	c.transitions = [brain.NumStates]int{}
	c.forcedExplores = 0
	c.loopBreaks = 0
	c.floorClamps = 0
	c.greedyPicks = 0
	c.randomPicks = 0
	c.learnUpdates = 0
	c.sanitized = 0

	return stats
}
