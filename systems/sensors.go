package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/traits"
)

// Contact points at the nearest entity of one kind: an index into the
// environment slice plus the toroidal offset to it. Index is -1 when
// nothing of that kind is in sense range.
type Contact struct {
	Index  int
	DX, DY float32
	DistSq float32
}

// Found reports whether the contact points at anything.
func (c Contact) Found() bool {
	return c.Index >= 0
}

// Perception is everything one bacterium senses on one tick: the reading
// handed to its controller plus the contacts the movement, feeding, and
// health passes work from.
type Perception struct {
	Reading brain.Reading

	Food   Contact
	Mate   Contact
	Threat Contact
}

// Perceive runs the sensor pass for one bacterium: a linear scan over the
// snapshot, nearest-of-each-kind within the genome's sense range.
func Perceive(
	self ecs.Entity,
	pos components.Position,
	vit components.Vitals,
	age components.Age,
	hunger components.Hunger,
	tr traits.Traits,
	env *Environment,
) Perception {
	p := Perception{
		Food:   Contact{Index: -1},
		Mate:   Contact{Index: -1},
		Threat: Contact{Index: -1},
	}

	rangeSq := tr.SenseRange * tr.SenseRange

	for i := range env.Food {
		f := &env.Food[i]
		if f.Eaten {
			continue
		}
		dx, dy := ToroidalDelta(pos.X, pos.Y, f.Pos.X, f.Pos.Y, env.Width, env.Height)
		d := dx*dx + dy*dy
		if d > rangeSq {
			continue
		}
		if !p.Food.Found() || d < p.Food.DistSq {
			p.Food = Contact{Index: i, DX: dx, DY: dy, DistSq: d}
		}
	}

	for i := range env.Bacteria {
		b := &env.Bacteria[i]
		if b.Entity == self {
			continue
		}
		dx, dy := ToroidalDelta(pos.X, pos.Y, b.Pos.X, b.Pos.Y, env.Width, env.Height)
		d := dx*dx + dy*dy
		if d > rangeSq {
			continue
		}
		if !p.Mate.Found() || d < p.Mate.DistSq {
			p.Mate = Contact{Index: i, DX: dx, DY: dy, DistSq: d}
		}
	}

	for i := range env.Hunters {
		hp := env.Hunters[i]
		dx, dy := ToroidalDelta(pos.X, pos.Y, hp.X, hp.Y, env.Width, env.Height)
		d := dx*dx + dy*dy
		if d > rangeSq {
			continue
		}
		if !p.Threat.Found() || d < p.Threat.DistSq {
			p.Threat = Contact{Index: i, DX: dx, DY: dy, DistSq: d}
		}
	}

	p.Reading = brain.Reading{
		FoodNearby:      p.Food.Found(),
		MateNearby:      p.Mate.Found(),
		PredatorNearby:  p.Threat.Found(),
		MateReady:       age.Ticks >= tr.MaturityAge,
		Health:          vit.Health,
		Energy:          vit.Energy,
		TicksSinceMeal:  hunger.TicksSinceMeal,
		StarvationTicks: tr.StarvationTicks,
	}
	return p
}
