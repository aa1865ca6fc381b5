package systems

import "github.com/thiagohenrique0810/bacteria-simulator-sub002/components"

// TryEat consumes the nearest food item when it is within contact range.
// The item is marked eaten in the snapshot so a later bacterium in the
// same tick cannot eat it twice; the caller despawns marked items after
// the pass. Returns the eaten item's snapshot index, or -1.
func TryEat(
	p Perception,
	vit *components.Vitals,
	hunger *components.Hunger,
	env *Environment,
	eatRadius, energyCap float32,
) int {
	c := p.Food
	if !c.Found() || c.DistSq > eatRadius*eatRadius {
		return -1
	}

	item := &env.Food[c.Index]
	if item.Eaten {
		return -1
	}
	item.Eaten = true

	vit.Energy += item.Energy
	if vit.Energy > energyCap {
		vit.Energy = energyCap
	}
	hunger.TicksSinceMeal = 0
	return c.Index
}
