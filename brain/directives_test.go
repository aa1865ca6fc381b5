package brain

import "testing"

func TestTranslate(t *testing.T) {
	cases := []struct {
		state State
		move  bool
		targ  TargetKind
		speed float32
	}{
		{StateExploring, true, TargetRandom, 1.0},
		{StateSeekingFood, true, TargetFood, 1.2},
		{StateReproducing, true, TargetMate, 0.8},
		{StateFleeing, true, TargetEscape, 1.5},
		{StateResting, false, TargetRandom, 0},
	}

	for _, c := range cases {
		d := Translate(c.state, 42)
		if d.State != c.state {
			t.Errorf("%v: state not carried through", c.state)
		}
		if d.ShouldMove != c.move {
			t.Errorf("%v: expected ShouldMove=%v", c.state, c.move)
		}
		if d.Target != c.targ {
			t.Errorf("%v: expected target %v, got %v", c.state, c.targ, d.Target)
		}
		if d.SpeedMultiplier != c.speed {
			t.Errorf("%v: expected speed %.1f, got %.1f", c.state, c.speed, d.SpeedMultiplier)
		}
		if d.Energy != 42 {
			t.Errorf("%v: energy not carried through", c.state)
		}
	}
}

func TestStateString(t *testing.T) {
	names := map[State]string{
		StateExploring:   "Exploring",
		StateSeekingFood: "SeekingFood",
		StateReproducing: "Reproducing",
		StateFleeing:     "Fleeing",
		StateResting:     "Resting",
		State(99):        "Unknown",
	}
	for s, want := range names {
		if got := s.String(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}
