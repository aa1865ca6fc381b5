package brain

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewQTable(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0.1, rng)

	if tbl == nil {
		t.Fatal("NewQTable returned nil")
	}
	if tbl.Len() != 0 {
		t.Errorf("new table should have no rows, got %d", tbl.Len())
	}
}

func TestQTable_RowCreatedOnFirstTouch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	key := KeyFor(50, 50, false, false)
	vals := tbl.Values(key)

	for a, v := range vals {
		if v != 0 {
			t.Errorf("fresh row entry %d should be 0, got %f", a, v)
		}
	}
	if tbl.Len() != 1 {
		t.Errorf("expected 1 row after first touch, got %d", tbl.Len())
	}
}

func TestQTable_LearnArithmetic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	prev := KeyFor(50, 50, false, false)
	next := KeyFor(50, 50, true, false)

	// Zero table: update is alpha * reward = 0.1 * 1.0
	tbl.Learn(prev, ActionExplore, 1.0, next)

	got := tbl.Values(prev)[ActionExplore]
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected Q=0.1 after first update, got %f", got)
	}

	// Other entries untouched
	for a := ActionSeekFood; a < NumActions; a++ {
		if v := tbl.Values(prev)[a]; v != 0 {
			t.Errorf("entry %v should stay 0, got %f", a, v)
		}
	}
}

func TestQTable_LearnBootstrapsFromNextBest(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	prev := KeyFor(50, 50, false, false)
	next := KeyFor(90, 90, false, false)

	// Prime the next state's best entry
	tbl.row(next)[ActionSeekMate] = 2.0

	tbl.Learn(prev, ActionRest, 0.5, prev) // unrelated pair first
	tbl.Learn(prev, ActionExplore, 0.5, next)

	// Q = 0 + 0.1 * (0.5 + 0.9*2.0 - 0) = 0.23
	got := tbl.Values(prev)[ActionExplore]
	if math.Abs(got-0.23) > 1e-9 {
		t.Errorf("expected Q=0.23 with bootstrap, got %f", got)
	}
}

func TestQTable_LearnConvergesToFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	key := KeyFor(50, 50, false, false)

	// Self-loop with constant reward 1: fixed point is 1/(1-gamma) = 10
	for i := 0; i < 2000; i++ {
		tbl.Learn(key, ActionExplore, 1.0, key)
	}

	got := tbl.Values(key)[ActionExplore]
	if math.Abs(got-10.0) > 0.01 {
		t.Errorf("expected convergence to 10.0, got %f", got)
	}
}

func TestQTable_PredictGreedyPicksBest(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	key := KeyFor(50, 50, true, false)
	row := tbl.row(key)
	row[ActionExplore] = 0.1
	row[ActionSeekFood] = 0.9
	row[ActionSeekMate] = -0.2
	row[ActionRest] = 0.5

	for i := 0; i < 10; i++ {
		got, explored := tbl.Predict(key)
		if got != ActionSeekFood {
			t.Fatalf("expected seek_food, got %v", got)
		}
		if explored {
			t.Fatal("greedy table should never report exploration")
		}
	}
}

func TestQTable_PredictTieBreaksToFirstAction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	// Fresh all-zero row: every action ties, first wins
	key := KeyFor(50, 50, false, false)
	if got, _ := tbl.Predict(key); got != ActionExplore {
		t.Errorf("all-zero row should predict explore, got %v", got)
	}

	// Tie between two later actions: earlier of the two wins
	row := tbl.row(key)
	row[ActionSeekFood] = 1.0
	row[ActionRest] = 1.0
	if got, _ := tbl.Predict(key); got != ActionSeekFood {
		t.Errorf("tie should resolve to seek_food, got %v", got)
	}
}

func TestQTable_PredictEpsilonExplores(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 1.0, rng)

	key := KeyFor(50, 50, false, false)
	tbl.row(key)[ActionRest] = 100 // greedy choice would always be rest

	seen := make(map[Action]int)
	for i := 0; i < 200; i++ {
		a, explored := tbl.Predict(key)
		if !a.Valid() {
			t.Fatalf("predicted invalid action %d", a)
		}
		if !explored {
			t.Fatal("epsilon=1 should always report exploration")
		}
		seen[a]++
	}

	// With epsilon=1 every action should appear
	for a := Action(0); a < NumActions; a++ {
		if seen[a] == 0 {
			t.Errorf("action %v never sampled under full exploration", a)
		}
	}
}

func TestQTable_PredictDeterministic(t *testing.T) {
	tbl1 := NewQTable(0.1, 0.9, 0.1, rand.New(rand.NewSource(42)))
	tbl2 := NewQTable(0.1, 0.9, 0.1, rand.New(rand.NewSource(42)))

	key := KeyFor(50, 50, true, true)
	for i := 0; i < 100; i++ {
		a1, _ := tbl1.Predict(key)
		a2, _ := tbl2.Predict(key)
		if a1 != a2 {
			t.Fatalf("prediction diverged at step %d: %v vs %v", i, a1, a2)
		}
		tbl1.Learn(key, a1, 0.5, key)
		tbl2.Learn(key, a2, 0.5, key)
	}
}

func TestQTable_LearnInvalidActionTrainsExplore(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	key := KeyFor(50, 50, false, false)
	tbl.Learn(key, Action(99), 1.0, key)

	if got := tbl.Values(key)[ActionExplore]; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("invalid action should train explore entry, got %f", got)
	}
}

func TestQTable_LenBoundedByKeySpace(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0, rng)

	// Touch every reachable key, including out-of-range vitals
	for h := float32(-20); h <= 140; h += 5 {
		for e := float32(-20); e <= 140; e += 5 {
			for _, f := range []bool{false, true} {
				for _, m := range []bool{false, true} {
					tbl.Values(KeyFor(h, e, f, m))
				}
			}
		}
	}

	if tbl.Len() != MaxStateKeys {
		t.Errorf("expected exactly %d rows, got %d", MaxStateKeys, tbl.Len())
	}
}

func BenchmarkQTablePredict(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0.1, rng)
	key := KeyFor(50, 50, true, false)
	tbl.Values(key)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Predict(key)
	}
}

func BenchmarkQTableLearn(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	tbl := NewQTable(0.1, 0.9, 0.1, rng)
	prev := KeyFor(50, 50, true, false)
	next := KeyFor(60, 40, false, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Learn(prev, ActionSeekFood, 0.5, next)
	}
}
