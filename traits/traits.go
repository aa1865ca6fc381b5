// Package traits defines the per-bacterium genetic parameters.
//
// A Traits value is produced once at spawn time and never mutated
// afterwards; every other package treats it as a read-only snapshot.
// There is no inheritance: children roll fresh values.
package traits

import "math/rand"

// Traits holds the numeric parameters fixed at birth.
type Traits struct {
	SenseRange      float32 // perception radius in world units
	MoveSpeed       float32 // base speed in world units per tick
	Lifespan        int32   // maximum age in ticks
	MaturityAge     int32   // minimum age before the bacterium counts as mate-ready
	StarvationTicks int32   // ticks without a meal before starvation sets in
}

// Bands for randomized snapshots. Values are drawn uniformly per field.
const (
	MinSenseRange = 60.0
	MaxSenseRange = 140.0

	MinMoveSpeed = 0.8
	MaxMoveSpeed = 1.6

	MinLifespan = 2400
	MaxLifespan = 4800

	MinMaturityAge = 300
	MaxMaturityAge = 600

	MinStarvationTicks = 240
	MaxStarvationTicks = 480
)

// Random draws a fresh snapshot from the spawn bands.
func Random(rng *rand.Rand) Traits {
	return Traits{
		SenseRange:      uniform(rng, MinSenseRange, MaxSenseRange),
		MoveSpeed:       uniform(rng, MinMoveSpeed, MaxMoveSpeed),
		Lifespan:        uniformInt(rng, MinLifespan, MaxLifespan),
		MaturityAge:     uniformInt(rng, MinMaturityAge, MaxMaturityAge),
		StarvationTicks: uniformInt(rng, MinStarvationTicks, MaxStarvationTicks),
	}
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func uniformInt(rng *rand.Rand, lo, hi int32) int32 {
	return lo + rng.Int31n(hi-lo+1)
}
