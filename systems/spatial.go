// Package systems provides the per-tick passes of the simulation: sensing,
// movement, feeding, health, and reproduction. Every pass is a plain
// function over component values so it can be tested without a world.
package systems

import "math"

// ToroidalDelta returns the shortest vector from (x1,y1) to (x2,y2) on a
// wrapping plane of size w x h.
func ToroidalDelta(x1, y1, x2, y2, w, h float32) (dx, dy float32) {
	dx = x2 - x1
	dy = y2 - y1

	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}

	return dx, dy
}

// Wrap folds a coordinate back into [0, limit).
func Wrap(v, limit float32) float32 {
	v = float32(math.Mod(float64(v), float64(limit)))
	if v < 0 {
		v += limit
	}
	return v
}

func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
