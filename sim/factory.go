package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/config"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/traits"
)

// brainConfig builds controller parameters from the loaded configuration.
func brainConfig(cfg *config.Config) brain.Config {
	return brain.Config{
		Alpha:   cfg.Learning.Alpha,
		Gamma:   cfg.Learning.Gamma,
		Epsilon: cfg.Learning.Epsilon,

		TransitionLock:     int32(cfg.Behavior.TransitionLockTicks),
		ReproductionLock:   int32(cfg.Behavior.ReproductionCooldownTicks),
		ForcedExploreEvery: int32(cfg.Behavior.ForcedExploreTicks),
		RestingCap:         int32(cfg.Behavior.RestingCapTicks),
		LoopWindow:         int32(cfg.Behavior.LoopWindowTicks),
		LoopRepeats:        cfg.Behavior.LoopRepeats,
		MaxTrackedPairs:    cfg.Behavior.MaxTrackedPairs,

		SeekFoodBelow:  float32(cfg.Behavior.SeekFoodBelow),
		ReproduceAbove: float32(cfg.Behavior.ReproduceAbove),
		RestBelow:      float32(cfg.Behavior.RestBelow),

		RestGain:    float32(cfg.Behavior.RestGain),
		ReproCost:   float32(cfg.Behavior.ReproCost),
		ActiveCost:  float32(cfg.Behavior.ActiveCost),
		EnergyFloor: float32(cfg.Behavior.EnergyFloor),
		EnergyCap:   float32(cfg.Behavior.EnergyCap),

		Reward: brain.RewardWeights{
			FoodNearby:     cfg.Reward.FoodNearby,
			MateNearby:     cfg.Reward.MateNearby,
			PredatorNearby: cfg.Reward.PredatorNearby,
		},
	}
}

// maxPatchTries bounds the rejection sampling for one food placement.
const maxPatchTries = 16

// foodPatches clusters food into patches: placements are rejection-sampled
// against a smooth noise field, so food grows where the field is rich.
type foodPatches struct {
	noise     opensimplex.Noise
	scale     float64
	threshold float64
}

func newFoodPatches(seed int64, scale, threshold float64) *foodPatches {
	return &foodPatches{
		noise:     opensimplex.NewNormalized(seed),
		scale:     scale,
		threshold: threshold,
	}
}

// roll picks a spot inside a patch. After maxPatchTries rejections the last
// draw is used as-is, so placement always terminates; stray items outside
// the patches read as drift.
func (p *foodPatches) roll(rng *rand.Rand, w, h float32) (float32, float32) {
	var x, y float32
	for i := 0; i < maxPatchTries; i++ {
		x = rng.Float32() * w
		y = rng.Float32() * h
		if p.noise.Eval2(float64(x)*p.scale, float64(y)*p.scale) >= p.threshold {
			break
		}
	}
	return x, y
}

// spawnBacterium creates one bacterium at the given spot with fresh traits
// and a fresh controller seeded from the sim's rng.
func (s *Sim) spawnBacterium(x, y float32) ecs.Entity {
	s.nextID++
	id := s.nextID

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	vit := components.Vitals{
		Health: float32(s.cfg.Entity.InitialHealth),
		Energy: float32(s.cfg.Entity.InitialEnergy),
	}
	age := components.Age{}
	hunger := components.Hunger{}
	genome := components.Genome{Traits: traits.Random(s.rng)}
	bact := components.Bacterium{ID: id}

	entity := s.bacteriaMapper.NewEntity(&pos, &vel, &vit, &age, &hunger, &genome, &bact)

	ctrl := brain.NewController(s.brainCfg, rand.New(rand.NewSource(s.rng.Int63())))
	s.brainMap.Add(entity, &components.Brain{Controller: ctrl})

	s.tracker.Register(id, s.tick)
	s.aliveCount++
	return entity
}

// spawnFood creates one food item at a noise-selected spot.
func (s *Sim) spawnFood() ecs.Entity {
	x, y := s.patches.roll(s.rng, s.width, s.height)
	pos := components.Position{X: x, Y: y}
	food := components.Food{Energy: float32(s.cfg.Food.EnergyPerItem)}
	s.foodCount++
	return s.foodMapper.NewEntity(&pos, &food)
}

// spawnHunter creates one roaming hunter at a random spot.
func (s *Sim) spawnHunter() ecs.Entity {
	pos := components.Position{
		X: s.rng.Float32() * s.width,
		Y: s.rng.Float32() * s.height,
	}
	vel := components.Velocity{}
	return s.hunterMapper.NewEntity(&pos, &vel, &components.Hunter{})
}
