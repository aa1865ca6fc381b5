// Package brain implements the per-bacterium behavior controller: a tabular
// Q-learning policy trained online from vital signs, a priority-ordered
// state machine that merges sensed conditions with the learned action, and
// the anti-oscillation safeguards that keep every bacterium live.
package brain

// Action is one of the four abstract choices the learned policy produces.
// The order is significant: Predict resolves ties to the lowest action, and
// Explore doubles as the fallback for anything outside the enumeration.
type Action uint8

const (
	ActionExplore Action = iota
	ActionSeekFood
	ActionSeekMate
	ActionRest

	// NumActions is the size of the closed enumeration.
	NumActions = 4
)

var actionNames = [NumActions]string{"explore", "seek_food", "seek_mate", "rest"}

// Valid reports whether a is inside the closed enumeration.
func (a Action) Valid() bool {
	return a < NumActions
}

// String returns the action name, or "invalid" outside the enumeration.
func (a Action) String() string {
	if !a.Valid() {
		return "invalid"
	}
	return actionNames[a]
}
