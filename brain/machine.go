package brain

import "log/slog"

// State is the bacterium's current behavior.
type State uint8

const (
	StateExploring State = iota // initial state and fallback
	StateSeekingFood
	StateReproducing
	StateFleeing
	StateResting

	// NumStates is the size of the state enumeration.
	NumStates = 5
)

var stateNames = [NumStates]string{"Exploring", "SeekingFood", "Reproducing", "Fleeing", "Resting"}

// String returns the state name, or "Unknown" outside the enumeration.
func (s State) String() string {
	if s >= NumStates {
		return "Unknown"
	}
	return stateNames[s]
}

// transitionPair is an ordered (from, to) pair tracked by the loop breaker.
type transitionPair struct {
	from, to State
}

// pairStat records how often a pair recurred and when it was last seen.
type pairStat struct {
	count    int
	lastTick int32
}

// StepResult reports what one Step produced, for the caller and telemetry.
type StepResult struct {
	Directives Directives

	Changed       bool  // the state changed this tick
	From          State // previous state when Changed is set
	ForcedExplore bool  // the periodic exploration reset fired
	LoopBroken    bool  // the loop breaker fired
	FloorClamped  bool  // the energy side effect hit the floor
}

// Machine is the deterministic behavior controller for one bacterium. It
// merges the sensed reading and the learned action suggestion into a single
// state under a set of liveness guarantees: a post-transition lock, a
// reproduction cooldown with a forced exit, periodic forced exploration, a
// resting cap, and a transition loop breaker. No state is terminal; death
// is decided outside the machine.
type Machine struct {
	cfg Config

	state State
	tick  int32

	stateChangeCooldown  int32
	reproductionCooldown int32
	restingTicks         int32
	forcedExploreTimer   int32

	pairs map[transitionPair]*pairStat
}

// NewMachine creates a machine in the Exploring state.
func NewMachine(cfg Config) *Machine {
	return &Machine{
		cfg:                cfg,
		state:              StateExploring,
		forcedExploreTimer: cfg.ForcedExploreEvery,
		pairs:              make(map[transitionPair]*pairStat, cfg.MaxTrackedPairs),
	}
}

// State returns the current behavior state.
func (m *Machine) State() State {
	return m.state
}

// ReproductionCooldown returns the remaining reproduction lock in ticks.
func (m *Machine) ReproductionCooldown() int32 {
	return m.reproductionCooldown
}

// TrackedPairs returns the number of transition pairs currently tracked.
func (m *Machine) TrackedPairs() int {
	return len(m.pairs)
}

// Step advances the machine one tick: counters move, the next state is
// resolved from the reading and the suggested action, the loop breaker
// vets the transition, and the per-state energy side effect is applied.
// The returned directives carry the post-side-effect energy.
func (m *Machine) Step(read Reading, suggested Action) StepResult {
	m.tick++

	if !suggested.Valid() {
		slog.Warn("action outside enumeration, defaulting to explore", "action", uint8(suggested))
		suggested = ActionExplore
	}

	// The lock is read before counters move: a transition on tick T holds
	// through tick T+TransitionLock.
	locked := m.stateChangeCooldown > 0
	reproExpired := m.advanceTimers()

	prev := m.state
	next, forced := m.resolve(read, suggested, locked, reproExpired)

	var res StepResult
	res.ForcedExplore = forced

	if next != m.state {
		next, res.LoopBroken = m.recordTransition(m.state, next)
		if next != m.state {
			m.changeState(next)
			res.Changed = true
			res.From = prev
		}
	}

	energy, floorClamped := m.applyEnergy(read.Energy)
	res.FloorClamped = floorClamped
	res.Directives = Translate(m.state, energy)
	return res
}

// advanceTimers moves every counter one tick. It reports whether the
// reproduction cooldown expired on this exact tick, which forces a
// bacterium still in Reproducing back to Exploring.
func (m *Machine) advanceTimers() (reproExpired bool) {
	if m.stateChangeCooldown > 0 {
		m.stateChangeCooldown--
	}
	if m.reproductionCooldown > 0 {
		m.reproductionCooldown--
		if m.reproductionCooldown == 0 {
			reproExpired = true
		}
	}
	if m.forcedExploreTimer > 0 {
		m.forcedExploreTimer--
	}
	if m.state == StateResting {
		m.restingTicks++
	}
	return reproExpired
}

// resolve picks the target state for this tick. Priority order: predator
// sighting, the forced exits (reproduction backstop, resting cap, periodic
// exploration reset), the transition lock, the learned override, then the
// sensed rules top-down with Exploring as the fallback.
func (m *Machine) resolve(read Reading, suggested Action, locked bool, reproExpired bool) (State, bool) {
	// A predator outranks every cooldown and lock.
	if read.PredatorNearby {
		return StateFleeing, false
	}

	// Forced exits keep the machine live regardless of the lock.
	if reproExpired && m.state == StateReproducing {
		return StateExploring, false
	}
	if m.state == StateResting && m.restingTicks >= m.cfg.RestingCap {
		return StateExploring, false
	}
	if m.forcedExploreTimer <= 0 {
		m.forcedExploreTimer = m.cfg.ForcedExploreEvery
		return StateExploring, true
	}

	// Inside the post-transition lock the current state holds.
	if locked {
		return m.state, false
	}

	// A non-Explore learned action outranks the sensed rules when legal.
	if s, ok := m.overrideFor(suggested, read); ok {
		return s, false
	}

	// Sensed rules, top-down.
	switch {
	case read.FoodNearby && read.Energy < m.cfg.SeekFoodBelow:
		return StateSeekingFood, false
	case read.MateNearby && read.MateReady && read.Energy > m.cfg.ReproduceAbove && m.reproductionCooldown == 0:
		return StateReproducing, false
	case read.Energy < m.cfg.RestBelow:
		return StateResting, false
	default:
		return StateExploring, false
	}
}

// overrideFor maps a suggested action to its state when the action may be
// taken right now. Explore never overrides: it is the fallback the sensed
// rules already produce.
func (m *Machine) overrideFor(suggested Action, read Reading) (State, bool) {
	switch suggested {
	case ActionSeekFood:
		return StateSeekingFood, true
	case ActionSeekMate:
		if m.reproductionCooldown == 0 && read.MateReady {
			return StateReproducing, true
		}
	case ActionRest:
		if m.restingTicks < m.cfg.RestingCap {
			return StateResting, true
		}
	}
	return StateExploring, false
}

// recordTransition books the attempted pair and applies the loop breaker:
// when the same pair has recurred more than LoopRepeats times and the two
// most recent occurrences are within LoopWindow ticks, the target is
// overridden to Resting and every counter is cleared. The forced pair is
// not recorded. Entries into Fleeing are recorded but never overridden;
// the predator rule outranks the breaker.
func (m *Machine) recordTransition(from, to State) (State, bool) {
	key := transitionPair{from: from, to: to}

	if st, ok := m.pairs[key]; ok {
		if to != StateFleeing && st.count+1 > m.cfg.LoopRepeats && m.tick-st.lastTick <= m.cfg.LoopWindow {
			m.pairs = make(map[transitionPair]*pairStat, m.cfg.MaxTrackedPairs)
			return StateResting, true
		}
		st.count++
		st.lastTick = m.tick
		return to, false
	}

	m.evictPairIfFull()
	m.pairs[key] = &pairStat{count: 1, lastTick: m.tick}
	return to, false
}

// evictPairIfFull drops the least-recently-seen pair once the map is at
// capacity, with a fixed ordering on ties so runs stay reproducible.
func (m *Machine) evictPairIfFull() {
	if len(m.pairs) < m.cfg.MaxTrackedPairs {
		return
	}

	var oldest transitionPair
	first := true
	for k, st := range m.pairs {
		if first {
			oldest, first = k, false
			continue
		}
		o := m.pairs[oldest]
		if st.lastTick < o.lastTick || (st.lastTick == o.lastTick && pairRank(k) < pairRank(oldest)) {
			oldest = k
		}
	}
	delete(m.pairs, oldest)
}

func pairRank(p transitionPair) int {
	return int(p.from)*NumStates + int(p.to)
}

// changeState commits a transition: the lock arms, entering Reproducing
// arms the reproduction cooldown, and the resting stint counter resets.
func (m *Machine) changeState(to State) {
	m.state = to
	m.stateChangeCooldown = m.cfg.TransitionLock

	if to == StateReproducing {
		m.reproductionCooldown = m.cfg.ReproductionLock
	}
	m.restingTicks = 0
}

// applyEnergy applies the per-state energy delta. The result is floored at
// EnergyFloor, never lower, and capped at EnergyCap; the clamp is reported
// so telemetry can count the starvation the floor masks.
func (m *Machine) applyEnergy(energy float32) (float32, bool) {
	switch m.state {
	case StateResting:
		energy += m.cfg.RestGain
	case StateReproducing:
		energy -= m.cfg.ReproCost
	default:
		energy -= m.cfg.ActiveCost
	}

	clamped := false
	if energy < m.cfg.EnergyFloor {
		energy = m.cfg.EnergyFloor
		clamped = true
	}
	if energy > m.cfg.EnergyCap {
		energy = m.cfg.EnergyCap
	}
	return energy, clamped
}
