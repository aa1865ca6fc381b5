package systems

import (
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/traits"
)

// DeathCause classifies why a bacterium died.
type DeathCause uint8

const (
	DeathNone DeathCause = iota
	DeathStarvation
	DeathPredation
	DeathOldAge
)

var deathNames = [...]string{"none", "starvation", "predation", "old_age"}

func (c DeathCause) String() string {
	if int(c) >= len(deathNames) {
		return "unknown"
	}
	return deathNames[c]
}

// HealthParams holds the health dynamics knobs from the config.
type HealthParams struct {
	StarvationDamage float32
	ContactDamage    float32
	ContactRadiusSq  float32
	RegenRate        float32
	RegenAbove       float32
}

// UpdateHealth ages one bacterium and settles its health for the tick:
// hunger advances, starvation and predator contact damage it, and a fed
// bacterium with energy to spare heals. The return is DeathNone while it
// lives; the caller tags the entity on anything else.
func UpdateHealth(
	vit *components.Vitals,
	hunger *components.Hunger,
	age *components.Age,
	tr traits.Traits,
	threat Contact,
	p HealthParams,
) DeathCause {
	age.Ticks++
	hunger.TicksSinceMeal++

	starving := hunger.TicksSinceMeal > tr.StarvationTicks
	if starving {
		vit.Health -= p.StarvationDamage
	}

	underAttack := threat.Found() && threat.DistSq <= p.ContactRadiusSq
	if underAttack {
		vit.Health -= p.ContactDamage
	}

	if !starving && vit.Energy > p.RegenAbove && vit.Health < 100 {
		vit.Health += p.RegenRate
	}
	vit.Health = clampFloat(vit.Health, 0, 100)

	if vit.Health <= 0 {
		if underAttack {
			return DeathPredation
		}
		return DeathStarvation
	}
	if age.Ticks > tr.Lifespan {
		return DeathOldAge
	}
	return DeathNone
}
