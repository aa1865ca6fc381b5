package brain

import "math"

// Reading is the per-tick environment summary for one bacterium, produced
// by the sensor side of the simulation. The controller sanitizes it before
// any value reaches the table.
type Reading struct {
	FoodNearby     bool
	MateNearby     bool
	PredatorNearby bool
	MateReady      bool

	Health float32 // [0,100]
	Energy float32 // [0,100]

	TicksSinceMeal  int32
	StarvationTicks int32 // starvation threshold for this bacterium
}

// Sanitize replaces a reading carrying non-finite vitals with the neutral
// zero reading (vitals 0, every flag false), so a malformed sensor value
// can never mint a malformed table key. The second return reports whether
// the reading was usable as-is.
func (r Reading) Sanitize() (Reading, bool) {
	if finite(r.Health) && finite(r.Energy) {
		return r, true
	}
	return Reading{}, false
}

// Starving reports whether the bacterium has gone longer than its
// starvation threshold without a meal.
func (r Reading) Starving() bool {
	return r.TicksSinceMeal > r.StarvationTicks
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
