package brain

import (
	"math"
	"testing"
)

// neutralReading has mid vitals and no context flags, so only the alive
// bonus contributes to its reward.
func neutralReading() Reading {
	return Reading{Health: 50, Energy: 50, TicksSinceMeal: 0, StarvationTicks: 300}
}

func checkReward(t *testing.T, r Reading, want float64) {
	t.Helper()
	got := Reward(r, DefaultRewardWeights())
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected reward %.2f, got %.2f", want, got)
	}
}

func TestReward_AliveBonusOnly(t *testing.T) {
	checkReward(t, neutralReading(), 0.1)
}

func TestReward_HealthTerms(t *testing.T) {
	r := neutralReading()
	r.Health = 90
	checkReward(t, r, 1.1)

	r.Health = 20
	checkReward(t, r, -0.9)

	// Boundaries are exclusive
	r.Health = 80
	checkReward(t, r, 0.1)
	r.Health = 30
	checkReward(t, r, 0.1)
}

func TestReward_EnergyTerms(t *testing.T) {
	r := neutralReading()
	r.Energy = 80
	checkReward(t, r, 0.6)

	r.Energy = 20
	checkReward(t, r, -0.4)

	r.Energy = 70
	checkReward(t, r, 0.1)
	r.Energy = 30
	checkReward(t, r, 0.1)
}

func TestReward_StarvationPenalty(t *testing.T) {
	r := neutralReading()
	r.TicksSinceMeal = 301
	r.StarvationTicks = 300
	checkReward(t, r, -0.9)

	// Exactly at the threshold is not yet starving
	r.TicksSinceMeal = 300
	checkReward(t, r, 0.1)
}

func TestReward_ContextWeights(t *testing.T) {
	r := neutralReading()
	r.FoodNearby = true
	checkReward(t, r, 0.3)

	r = neutralReading()
	r.MateNearby = true
	checkReward(t, r, 0.3)

	r = neutralReading()
	r.PredatorNearby = true
	checkReward(t, r, -0.5)
}

func TestReward_Extremes(t *testing.T) {
	// Worst case: low vitals, starving, predator on top
	worst := Reading{
		Health:          10,
		Energy:          10,
		TicksSinceMeal:  500,
		StarvationTicks: 300,
		PredatorNearby:  true,
	}
	checkReward(t, worst, -3.0)

	// Best case: high vitals, food and mate in range
	best := Reading{
		Health:          90,
		Energy:          90,
		TicksSinceMeal:  0,
		StarvationTicks: 300,
		FoodNearby:      true,
		MateNearby:      true,
	}
	checkReward(t, best, 2.0)
}

func TestReading_Sanitize(t *testing.T) {
	r := neutralReading()
	if _, ok := r.Sanitize(); !ok {
		t.Error("finite reading should pass sanitation")
	}

	r.Health = float32(math.NaN())
	clean, ok := r.Sanitize()
	if ok {
		t.Error("NaN health should fail sanitation")
	}
	if clean.Health != 0 || clean.Energy != 0 || clean.FoodNearby {
		t.Error("rejected reading should be replaced by the zero reading")
	}

	r = neutralReading()
	r.Energy = float32(math.Inf(1))
	if _, ok := r.Sanitize(); ok {
		t.Error("infinite energy should fail sanitation")
	}
}
