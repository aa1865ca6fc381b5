package brain

// RewardWeights holds the context contribution folded into the reward on
// top of the fixed vitals terms.
type RewardWeights struct {
	FoodNearby     float64
	MateNearby     float64
	PredatorNearby float64
}

// DefaultRewardWeights returns the tuned context weights. Together with the
// vitals terms the total reward spans [-3, 2].
func DefaultRewardWeights() RewardWeights {
	return RewardWeights{
		FoodNearby:     0.2,
		MateNearby:     0.2,
		PredatorNearby: -0.6,
	}
}

// Reward scores one sanitized reading. Per tick: +1 for health above 80,
// -1 below 30; +0.5 for energy above 70, -0.5 below 30; +0.1 for being
// alive; -1 once starving; plus the context weights for food, mate, and
// predator proximity. The result is not clamped.
func Reward(r Reading, w RewardWeights) float64 {
	var reward float64

	switch {
	case r.Health > 80:
		reward++
	case r.Health < 30:
		reward--
	}

	switch {
	case r.Energy > 70:
		reward += 0.5
	case r.Energy < 30:
		reward -= 0.5
	}

	reward += 0.1 // alive bonus

	if r.Starving() {
		reward--
	}

	if r.FoodNearby {
		reward += w.FoodNearby
	}
	if r.MateNearby {
		reward += w.MateNearby
	}
	if r.PredatorNearby {
		reward += w.PredatorNearby
	}

	return reward
}
