package brain

// TargetKind tells the movement layer what to steer toward. The controller
// never computes positions; it only names the intent.
type TargetKind uint8

const (
	TargetRandom TargetKind = iota // wander, no particular goal
	TargetFood                     // nearest sensed food
	TargetMate                     // nearest sensed mate
	TargetEscape                   // away from the nearest predator
)

var targetNames = [...]string{"random", "food", "mate", "escape"}

func (t TargetKind) String() string {
	if int(t) >= len(targetNames) {
		return "unknown"
	}
	return targetNames[t]
}

// Directives is the full movement intent for one tick. Energy carries the
// post-side-effect value so the caller writes back exactly what the
// controller accounted for.
type Directives struct {
	State           State
	ShouldMove      bool
	Target          TargetKind
	SpeedMultiplier float32
	Energy          float32
}

// Translate maps a behavior state to its movement directives. Resting is
// the only stationary state; every other state moves at a state-specific
// speed scale.
func Translate(state State, energy float32) Directives {
	d := Directives{
		State:           state,
		ShouldMove:      state != StateResting,
		SpeedMultiplier: 1.0,
		Energy:          energy,
	}

	switch state {
	case StateFleeing:
		d.Target = TargetEscape
		d.SpeedMultiplier = 1.5
	case StateSeekingFood:
		d.Target = TargetFood
		d.SpeedMultiplier = 1.2
	case StateReproducing:
		d.Target = TargetMate
		d.SpeedMultiplier = 0.8
	case StateResting:
		d.Target = TargetRandom
		d.SpeedMultiplier = 0
	default:
		d.Target = TargetRandom
	}
	return d
}
