package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
)

func speedOf(vel components.Velocity) float64 {
	return math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y))
}

// ---------- Directive steering ----------

func TestApplyDirectives_RestingHoldsPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 100, Y: 100}
	vel := components.Velocity{X: 2, Y: -1}

	d := brain.Translate(brain.StateResting, 50)
	ApplyDirectives(&pos, &vel, d, emptyPerception(), testTraits(), rng, 800, 600)

	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("expected velocity zeroed while resting, got (%v, %v)", vel.X, vel.Y)
	}
	if pos.X != 100 || pos.Y != 100 {
		t.Errorf("expected position held while resting, got (%v, %v)", pos.X, pos.Y)
	}
}

func TestApplyDirectives_SteersTowardFood(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 100, Y: 100}
	vel := components.Velocity{}

	p := emptyPerception()
	p.Food = Contact{Index: 0, DX: 50, DY: 0, DistSq: 2500}

	d := brain.Translate(brain.StateSeekingFood, 50)
	ApplyDirectives(&pos, &vel, d, p, testTraits(), rng, 800, 600)

	// MoveSpeed 1.5 at the 1.2 foraging multiplier.
	if math.Abs(float64(vel.X)-1.8) > 1e-4 || vel.Y != 0 {
		t.Errorf("expected velocity (1.8, 0), got (%v, %v)", vel.X, vel.Y)
	}
	if math.Abs(float64(pos.X)-101.8) > 1e-4 {
		t.Errorf("expected position x 101.8, got %v", pos.X)
	}
}

func TestApplyDirectives_FleesAwayFromThreat(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}

	p := emptyPerception()
	p.Threat = Contact{Index: 0, DX: 30, DY: 40, DistSq: 2500}

	d := brain.Translate(brain.StateFleeing, 50)
	ApplyDirectives(&pos, &vel, d, p, testTraits(), rng, 800, 600)

	if vel.X >= 0 || vel.Y >= 0 {
		t.Errorf("expected velocity away from the threat, got (%v, %v)", vel.X, vel.Y)
	}
	// MoveSpeed 1.5 at the 1.5 fleeing multiplier.
	if math.Abs(speedOf(vel)-2.25) > 1e-4 {
		t.Errorf("expected flight speed 2.25, got %v", speedOf(vel))
	}
}

func TestApplyDirectives_MissingTargetDegradesToWander(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}

	// Seeking food with no food in range still moves, just without a goal.
	d := brain.Translate(brain.StateSeekingFood, 50)
	ApplyDirectives(&pos, &vel, d, emptyPerception(), testTraits(), rng, 800, 600)

	if vel.X == 0 && vel.Y == 0 {
		t.Fatal("expected wandering motion when the target is out of range")
	}
	if math.Abs(speedOf(vel)-1.8) > 1e-4 {
		t.Errorf("expected wander at directive speed 1.8, got %v", speedOf(vel))
	}
}

func TestApplyDirectives_WandersAtBaseSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}

	d := brain.Translate(brain.StateExploring, 50)
	for i := 0; i < 50; i++ {
		ApplyDirectives(&pos, &vel, d, emptyPerception(), testTraits(), rng, 800, 600)
		if math.Abs(speedOf(vel)-1.5) > 1e-4 {
			t.Fatalf("tick %d: expected exploring speed 1.5, got %v", i, speedOf(vel))
		}
	}
}

func TestApplyDirectives_WrapsAtWorldEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 799.5, Y: 300}
	vel := components.Velocity{}

	// Threat directly behind pushes the flight across the seam.
	p := emptyPerception()
	p.Threat = Contact{Index: 0, DX: -50, DY: 0, DistSq: 2500}

	d := brain.Translate(brain.StateFleeing, 50)
	ApplyDirectives(&pos, &vel, d, p, testTraits(), rng, 800, 600)

	if pos.X >= 800 || pos.X < 0 {
		t.Fatalf("expected position wrapped into [0, 800), got %v", pos.X)
	}
	if math.Abs(float64(pos.X)-1.75) > 1e-3 {
		t.Errorf("expected wrapped position x 1.75, got %v", pos.X)
	}
}

// ---------- Hunter wandering ----------

func TestWanderHunter_ConstantSpeedInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 10, Y: 10}
	vel := components.Velocity{}

	for i := 0; i < 300; i++ {
		WanderHunter(&pos, &vel, 1.1, 0.3, rng, 800, 600)
		if math.Abs(speedOf(vel)-1.1) > 1e-4 {
			t.Fatalf("tick %d: expected hunter speed 1.1, got %v", i, speedOf(vel))
		}
		if pos.X < 0 || pos.X >= 800 || pos.Y < 0 || pos.Y >= 600 {
			t.Fatalf("tick %d: hunter left the world at (%v, %v)", i, pos.X, pos.Y)
		}
	}
}

func TestWanderHunter_JitterBendsHeading(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{X: 1, Y: 0}

	prev := math.Atan2(float64(vel.Y), float64(vel.X))
	for i := 0; i < 100; i++ {
		WanderHunter(&pos, &vel, 1.0, 0.3, rng, 800, 600)
		heading := math.Atan2(float64(vel.Y), float64(vel.X))
		delta := math.Abs(heading - prev)
		if delta > math.Pi {
			delta = 2*math.Pi - delta
		}
		if delta > 0.3+1e-4 {
			t.Fatalf("tick %d: heading jumped by %v, beyond the 0.3 jitter", i, delta)
		}
		prev = heading
	}
}
