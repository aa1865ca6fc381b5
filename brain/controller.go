package brain

import "math/rand"

// Controller is the full per-bacterium decision stack: a Q-table that
// learns action preferences and a state machine that turns the chosen
// action into a behavior state. Each bacterium owns one controller;
// nothing is shared, so a table only ever sees its own experience.
type Controller struct {
	cfg     Config
	table   *QTable
	machine *Machine

	lastKey    StateKey
	lastAction Action
	hasLast    bool
}

// Decision reports everything one Decide produced, for the caller and
// telemetry.
type Decision struct {
	StepResult

	Key       StateKey
	Action    Action
	Reward    float64
	Learned   bool // a Q-update happened this tick
	Explored  bool // the action was an epsilon draw, not the greedy pick
	Sanitized bool // the reading carried non-finite vitals and was zeroed
}

// NewController builds a controller with an empty table, starting in the
// Exploring state. The rng drives exploration only; with a fixed seed the
// controller is fully deterministic.
func NewController(cfg Config, rng *rand.Rand) *Controller {
	return &Controller{
		cfg:     cfg,
		table:   NewQTable(cfg.Alpha, cfg.Gamma, cfg.Epsilon, rng),
		machine: NewMachine(cfg),
	}
}

// Decide runs one full decision tick: the reading is sanitized and
// discretized, the previous action is scored and learned from, a new
// action is chosen, and the state machine advances. The first tick of a
// controller's life has no previous action and skips the update.
func (c *Controller) Decide(read Reading) Decision {
	read, ok := read.Sanitize()
	key := KeyFor(read.Health, read.Energy, read.FoodNearby, read.MateNearby)

	var dec Decision
	dec.Key = key
	dec.Sanitized = !ok

	if c.hasLast {
		dec.Reward = Reward(read, c.cfg.Reward)
		c.table.Learn(c.lastKey, c.lastAction, dec.Reward, key)
		dec.Learned = true
	}

	action, explored := c.table.Predict(key)
	c.lastKey, c.lastAction, c.hasLast = key, action, true
	dec.Action = action
	dec.Explored = explored

	dec.StepResult = c.machine.Step(read, action)
	return dec
}

// State returns the machine's current behavior state.
func (c *Controller) State() State {
	return c.machine.State()
}

// ReadyToMate reports whether the reproduction cooldown has expired.
func (c *Controller) ReadyToMate() bool {
	return c.machine.ReproductionCooldown() == 0
}

// TableLen returns the number of state keys the table has touched.
func (c *Controller) TableLen() int {
	return c.table.Len()
}

// Values exposes the learned action values for one key. Telemetry uses it
// to sample policy quality without reaching into the table.
func (c *Controller) Values(key StateKey) [NumActions]float64 {
	return c.table.Values(key)
}
