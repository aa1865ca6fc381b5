package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
)

// Candidate is one bacterium currently in the Reproducing state.
type Candidate struct {
	Entity ecs.Entity
	Pos    components.Position
}

// Pair is a matched couple and the spot where their child appears.
type Pair struct {
	A, B     ecs.Entity
	ChildPos components.Position
}

// FindPairs matches reproducers greedily in slice order: each unmatched
// candidate takes the nearest unmatched candidate within pairRadius. The
// child is placed near the couple's midpoint, nudged by spawnOffset in a
// random direction. Candidates arrive in query order and the rng is the
// sim's own, so pairing is deterministic for a fixed seed.
func FindPairs(
	cands []Candidate,
	pairRadius, spawnOffset float32,
	w, h float32,
	rng *rand.Rand,
) []Pair {
	if len(cands) < 2 {
		return nil
	}

	used := make([]bool, len(cands))
	rSq := pairRadius * pairRadius
	var pairs []Pair

	for i := range cands {
		if used[i] {
			continue
		}

		best := -1
		var bestD, bestDX, bestDY float32
		for j := i + 1; j < len(cands); j++ {
			if used[j] {
				continue
			}
			dx, dy := ToroidalDelta(cands[i].Pos.X, cands[i].Pos.Y,
				cands[j].Pos.X, cands[j].Pos.Y, w, h)
			d := dx*dx + dy*dy
			if d > rSq {
				continue
			}
			if best < 0 || d < bestD {
				best, bestD, bestDX, bestDY = j, d, dx, dy
			}
		}
		if best < 0 {
			continue
		}
		used[i], used[best] = true, true

		angle := rng.Float64() * 2 * math.Pi
		childX := Wrap(cands[i].Pos.X+bestDX/2+float32(math.Cos(angle))*spawnOffset, w)
		childY := Wrap(cands[i].Pos.Y+bestDY/2+float32(math.Sin(angle))*spawnOffset, h)

		pairs = append(pairs, Pair{
			A:        cands[i].Entity,
			B:        cands[best].Entity,
			ChildPos: components.Position{X: childX, Y: childY},
		})
	}
	return pairs
}
