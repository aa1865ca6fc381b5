package brain

import "math/rand"

// QTable is the tabular action-value store for one bacterium. Rows appear
// lazily the first time a key is touched, one zero entry per action; the
// fixed-size row makes the one-entry-per-action invariant structural.
//
// A table lives exactly as long as its owner: there is no persistence and
// no sharing across bacteria.
type QTable struct {
	rows    map[StateKey]*[NumActions]float64
	alpha   float64
	gamma   float64
	epsilon float64
	rng     *rand.Rand
}

// NewQTable creates an empty table. The rng drives epsilon-greedy
// prediction; a fixed seed reproduces the exact action sequence.
func NewQTable(alpha, gamma, epsilon float64, rng *rand.Rand) *QTable {
	return &QTable{
		rows:    make(map[StateKey]*[NumActions]float64),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rng:     rng,
	}
}

// Predict returns the action for key: with probability epsilon a uniformly
// random action, otherwise the argmax with ties resolved to the first
// action in enumeration order. The second return reports an exploratory
// pick, for telemetry.
func (t *QTable) Predict(key StateKey) (Action, bool) {
	row := t.row(key)
	if t.epsilon > 0 && t.rng.Float64() < t.epsilon {
		return Action(t.rng.Intn(NumActions)), true
	}
	return argmax(row), false
}

// Learn applies one update for the (prevKey, prevAction) pair observed on
// the previous tick:
//
//	Q(s,a) += alpha * (reward + gamma*max_a' Q(s',a') - Q(s,a))
//
// Rows for both keys are created if absent. An action outside the
// enumeration trains the Explore entry; the caller logs that case.
func (t *QTable) Learn(prevKey StateKey, prevAction Action, reward float64, nextKey StateKey) {
	if !prevAction.Valid() {
		prevAction = ActionExplore
	}

	prev := t.row(prevKey)
	next := t.row(nextKey)

	best := next[0]
	for _, v := range next[1:] {
		if v > best {
			best = v
		}
	}

	old := prev[prevAction]
	prev[prevAction] = old + t.alpha*(reward+t.gamma*best-old)
}

// Values returns a copy of the row for key, creating it if absent.
func (t *QTable) Values(key StateKey) [NumActions]float64 {
	return *t.row(key)
}

// Len returns the number of rows created so far. Bounded by MaxStateKeys.
func (t *QTable) Len() int {
	return len(t.rows)
}

// row returns the entry for key, inserting a zero row on first touch.
func (t *QTable) row(key StateKey) *[NumActions]float64 {
	r, ok := t.rows[key]
	if !ok {
		r = new([NumActions]float64)
		t.rows[key] = r
	}
	return r
}

// argmax returns the first maximal action of a row.
func argmax(row *[NumActions]float64) Action {
	best := Action(0)
	for a := Action(1); a < NumActions; a++ {
		if row[a] > row[best] {
			best = a
		}
	}
	return best
}
