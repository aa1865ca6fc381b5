// Package components defines ECS components for the simulation.
package components

import (
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/traits"
)

// Vitals holds a bacterium's health and energy, both on [0,100].
// Health is owned by the health system; energy is owned by the behavior
// controller, which applies the per-state side effect each tick.
type Vitals struct {
	Health float32
	Energy float32
}

// Age counts ticks since birth.
type Age struct {
	Ticks int32
}

// Hunger tracks time since the last meal. The health system compares it
// against the genome's starvation threshold.
type Hunger struct {
	TicksSinceMeal int32
}

// Genome is the immutable trait snapshot rolled at spawn.
type Genome struct {
	Traits traits.Traits
}

// Brain stores the per-bacterium behavior controller.
type Brain struct {
	Controller *brain.Controller
}

// Food is an edible item granting Energy when eaten.
type Food struct {
	Energy float32
}

// Bacterium marks an entity as a bacterium and carries its stable ID.
// Telemetry keys on the ID, which outlives entity slot reuse.
type Bacterium struct {
	ID uint32
}

// Hunter tag component marking roaming predators.
type Hunter struct{}
