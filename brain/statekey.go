package brain

import "fmt"

// StateKey identifies one row of the Q-table. Vitals are discretized into
// five buckets each and combined with the two proximity flags, so the key
// space is bounded at MaxStateKeys no matter what the sensors report.
type StateKey struct {
	HealthBucket uint8
	EnergyBucket uint8
	FoodNearby   bool
	MateNearby   bool
}

// MaxStateKeys is the number of distinct keys: 5 * 5 * 2 * 2.
const MaxStateKeys = 100

// KeyFor builds the table key for a sanitized reading.
func KeyFor(health, energy float32, foodNearby, mateNearby bool) StateKey {
	return StateKey{
		HealthBucket: vitalBucket(health),
		EnergyBucket: vitalBucket(energy),
		FoodNearby:   foodNearby,
		MateNearby:   mateNearby,
	}
}

// vitalBucket maps [0,100] to buckets 0-4 (floor of value/20, clamped).
func vitalBucket(v float32) uint8 {
	b := int(v / 20)
	if b < 0 {
		b = 0
	}
	if b > 4 {
		b = 4
	}
	return uint8(b)
}

// String formats the key for logs and event records, e.g. "h3.e2.f1.m0".
func (k StateKey) String() string {
	return fmt.Sprintf("h%d.e%d.f%d.m%d",
		k.HealthBucket, k.EnergyBucket, flag(k.FoodNearby), flag(k.MateNearby))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
