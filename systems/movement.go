package systems

import (
	"math"
	"math/rand"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/traits"
)

// wanderJitter is the heading noise per tick while wandering, in radians.
const wanderJitter = 0.35

// ApplyDirectives turns the controller's movement intent into a velocity
// and integrates the position on the toroidal plane. A directive naming a
// target that is not actually in sense range degrades to wandering.
func ApplyDirectives(
	pos *components.Position,
	vel *components.Velocity,
	d brain.Directives,
	p Perception,
	tr traits.Traits,
	rng *rand.Rand,
	w, h float32,
) {
	if !d.ShouldMove {
		vel.X, vel.Y = 0, 0
		return
	}

	var dirX, dirY float32
	switch d.Target {
	case brain.TargetFood:
		if p.Food.Found() {
			dirX, dirY = p.Food.DX, p.Food.DY
		}
	case brain.TargetMate:
		if p.Mate.Found() {
			dirX, dirY = p.Mate.DX, p.Mate.DY
		}
	case brain.TargetEscape:
		if p.Threat.Found() {
			dirX, dirY = -p.Threat.DX, -p.Threat.DY
		}
	}
	if dirX == 0 && dirY == 0 {
		dirX, dirY = wanderDirection(*vel, wanderJitter, rng)
	}

	speed := tr.MoveSpeed * d.SpeedMultiplier
	n := float32(math.Sqrt(float64(dirX*dirX + dirY*dirY)))
	if n > 0 {
		vel.X = dirX / n * speed
		vel.Y = dirY / n * speed
	}

	pos.X = Wrap(pos.X+vel.X, w)
	pos.Y = Wrap(pos.Y+vel.Y, h)
}

// WanderHunter advances one roaming predator: a heading random walk at
// constant speed.
func WanderHunter(
	pos *components.Position,
	vel *components.Velocity,
	speed, jitter float32,
	rng *rand.Rand,
	w, h float32,
) {
	dirX, dirY := wanderDirection(*vel, jitter, rng)
	vel.X = dirX * speed
	vel.Y = dirY * speed
	pos.X = Wrap(pos.X+vel.X, w)
	pos.Y = Wrap(pos.Y+vel.Y, h)
}

// wanderDirection keeps the current heading with a little jitter, rolling
// a fresh one when stationary.
func wanderDirection(vel components.Velocity, jitter float32, rng *rand.Rand) (float32, float32) {
	var angle float64
	if vel.X == 0 && vel.Y == 0 {
		angle = rng.Float64() * 2 * math.Pi
	} else {
		angle = math.Atan2(float64(vel.Y), float64(vel.X))
		angle += (rng.Float64()*2 - 1) * float64(jitter)
	}
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}
