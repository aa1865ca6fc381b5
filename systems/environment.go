package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
)

// FoodInfo is one food item in the start-of-tick snapshot.
type FoodInfo struct {
	Entity ecs.Entity
	Pos    components.Position
	Energy float32
	Eaten  bool // set by the feeding pass; eaten items vanish after the tick
}

// BacteriumInfo is one bacterium in the start-of-tick snapshot.
type BacteriumInfo struct {
	Entity ecs.Entity
	Pos    components.Position
}

// Environment is the world snapshot every pass of a tick reads. The sim
// rebuilds it once at the start of each tick, so all passes see the same
// positions regardless of processing order.
type Environment struct {
	Width, Height float32

	Food     []FoodInfo
	Bacteria []BacteriumInfo
	Hunters  []components.Position
}

// Reset clears the snapshot for a new tick, keeping the backing arrays.
func (e *Environment) Reset(w, h float32) {
	e.Width, e.Height = w, h
	e.Food = e.Food[:0]
	e.Bacteria = e.Bacteria[:0]
	e.Hunters = e.Hunters[:0]
}
