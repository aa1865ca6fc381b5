package brain

import (
	"math"
	"math/rand"
	"testing"
)

// greedyConfig turns off exploration so decisions follow the table.
func greedyConfig() Config {
	cfg := DefaultConfig()
	cfg.Epsilon = 0
	return cfg
}

func TestController_FirstTickSkipsLearning(t *testing.T) {
	c := NewController(greedyConfig(), rand.New(rand.NewSource(42)))

	dec := c.Decide(neutralReading())
	if dec.Learned {
		t.Error("first tick has no previous action to learn from")
	}
	if dec.Reward != 0 {
		t.Errorf("no reward expected on first tick, got %f", dec.Reward)
	}

	dec = c.Decide(neutralReading())
	if !dec.Learned {
		t.Error("second tick should learn from the first")
	}
}

func TestController_LearnsFromOutcome(t *testing.T) {
	c := NewController(greedyConfig(), rand.New(rand.NewSource(42)))

	first := neutralReading()
	dec1 := c.Decide(first)

	// The follow-up reading is strongly positive, so the first action's
	// entry must move up from zero.
	outcome := Reading{Health: 90, Energy: 90, StarvationTicks: 300, FoodNearby: true}
	dec2 := c.Decide(outcome)

	if !dec2.Learned {
		t.Fatal("expected a learn update")
	}
	if dec2.Reward <= 0 {
		t.Fatalf("expected positive reward, got %f", dec2.Reward)
	}

	got := c.Values(dec1.Key)[dec1.Action]
	want := 0.1 * dec2.Reward // zero table: alpha * reward
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected Q=%f for first pair, got %f", want, got)
	}
}

func TestController_Deterministic(t *testing.T) {
	c1 := NewController(DefaultConfig(), rand.New(rand.NewSource(42)))
	c2 := NewController(DefaultConfig(), rand.New(rand.NewSource(42)))

	for i := 0; i < 500; i++ {
		r := Reading{
			Health:          float32(20 + (i*7)%80),
			Energy:          float32(15 + (i*13)%85),
			FoodNearby:      i%3 == 0,
			MateNearby:      i%5 == 0,
			PredatorNearby:  i%47 == 0,
			MateReady:       i > 100,
			TicksSinceMeal:  int32(i % 200),
			StarvationTicks: 300,
		}
		d1 := c1.Decide(r)
		d2 := c2.Decide(r)
		if d1.Action != d2.Action || c1.State() != c2.State() {
			t.Fatalf("controllers diverged at tick %d: %v/%v vs %v/%v",
				i, d1.Action, c1.State(), d2.Action, c2.State())
		}
	}
}

func TestController_SanitizesBadReadings(t *testing.T) {
	c := NewController(greedyConfig(), rand.New(rand.NewSource(42)))

	r := neutralReading()
	r.Health = float32(math.NaN())
	dec := c.Decide(r)

	if !dec.Sanitized {
		t.Error("NaN reading should be reported as sanitized")
	}
	zero := KeyFor(0, 0, false, false)
	if dec.Key != zero {
		t.Errorf("expected the zero key, got %v", dec.Key)
	}
}

func TestController_TableBounded(t *testing.T) {
	c := NewController(DefaultConfig(), rand.New(rand.NewSource(42)))
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		r := Reading{
			Health:          rng.Float32() * 100,
			Energy:          rng.Float32() * 100,
			FoodNearby:      rng.Intn(2) == 0,
			MateNearby:      rng.Intn(2) == 0,
			StarvationTicks: 300,
		}
		c.Decide(r)
	}

	if c.TableLen() > MaxStateKeys {
		t.Errorf("table exceeded key space: %d > %d", c.TableLen(), MaxStateKeys)
	}
}

func TestController_ReadyToMate(t *testing.T) {
	c := NewController(greedyConfig(), rand.New(rand.NewSource(42)))

	if !c.ReadyToMate() {
		t.Error("fresh controller should be ready to mate")
	}

	c.Decide(mateReading())
	if c.State() != StateReproducing {
		t.Fatalf("setup: expected Reproducing, got %v", c.State())
	}
	if c.ReadyToMate() {
		t.Error("cooldown should block mating right after reproducing")
	}
}

func BenchmarkControllerDecide(b *testing.B) {
	c := NewController(DefaultConfig(), rand.New(rand.NewSource(42)))
	r := Reading{Health: 60, Energy: 45, FoodNearby: true, StarvationTicks: 300}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Decide(r)
	}
}
