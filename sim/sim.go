// Package sim runs the headless bacteria simulation: an ECS world of
// bacteria, food, and roaming hunters advanced tick by tick in a fixed
// pass order. Each bacterium carries its own behavior controller; the sim
// feeds it sensor readings and executes the directives it returns.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/brain"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/components"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/config"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/systems"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/telemetry"
)

// Options configures a simulation run.
type Options struct {
	Seed        int64          // 0 = time-based
	Config      *config.Config // nil = embedded defaults
	OutputDir   string         // empty = no file output
	LogStats    bool           // log window stats via slog
	StatsWindow int32          // ticks per stats window, 0 = config value

	// StatsCallback receives every flushed window. Used by the tuner to
	// collect stats without file output.
	StatsCallback func(telemetry.WindowStats)
}

// deadBacterium is a death noted during the tick, applied after the query
// pass completes.
type deadBacterium struct {
	entity ecs.Entity
	id     uint32
	cause  systems.DeathCause
	age    int32
}

// Sim owns the world and advances it one tick at a time. Not safe for
// concurrent use; run one Sim per goroutine.
type Sim struct {
	cfg      *config.Config
	brainCfg brain.Config
	opts     Options

	rng   *rand.Rand
	seed  int64
	world *ecs.World

	width, height float32

	bacteriaMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Vitals,
		components.Age,
		components.Hunger,
		components.Genome,
		components.Bacterium,
	]
	bacteriaFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Vitals,
		components.Age,
		components.Hunger,
		components.Genome,
		components.Bacterium,
	]
	foodMapper   *ecs.Map2[components.Position, components.Food]
	foodFilter   *ecs.Filter2[components.Position, components.Food]
	hunterMapper *ecs.Map3[components.Position, components.Velocity, components.Hunter]
	hunterFilter *ecs.Filter3[components.Position, components.Velocity, components.Hunter]

	// Individual component mappers for lookups
	brainMap  *ecs.Map[components.Brain]
	vitalsMap *ecs.Map1[components.Vitals]
	bactMap   *ecs.Map1[components.Bacterium]

	patches      *foodPatches
	healthParams systems.HealthParams

	// Per-tick scratch, reused across ticks
	env         systems.Environment
	reproducers []systems.Candidate
	deaths      []deadBacterium
	energies    []float64
	healths     []float64
	tableSizes  []float64

	collector *telemetry.Collector
	tracker   *telemetry.LifetimeTracker
	output    *telemetry.OutputManager

	tick       int32
	nextID     uint32
	aliveCount int
	foodCount  int
	foodDebt   float64
}

// New builds a world from the options and populates it.
func New(opts Options) (*Sim, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()

	s := &Sim{
		cfg:      cfg,
		brainCfg: brainConfig(cfg),
		opts:     opts,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		world:    world,
		width:    cfg.Derived.WorldW32,
		height:   cfg.Derived.WorldH32,

		bacteriaMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Vitals,
			components.Age,
			components.Hunger,
			components.Genome,
			components.Bacterium,
		](world),
		bacteriaFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Vitals,
			components.Age,
			components.Hunger,
			components.Genome,
			components.Bacterium,
		](world),
		foodMapper:   ecs.NewMap2[components.Position, components.Food](world),
		foodFilter:   ecs.NewFilter2[components.Position, components.Food](world),
		hunterMapper: ecs.NewMap3[components.Position, components.Velocity, components.Hunter](world),
		hunterFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Hunter](world),

		brainMap:  ecs.NewMap[components.Brain](world),
		vitalsMap: ecs.NewMap1[components.Vitals](world),
		bactMap:   ecs.NewMap1[components.Bacterium](world),

		tracker: telemetry.NewLifetimeTracker(),
	}

	s.patches = newFoodPatches(seed, cfg.Food.PatchScale, cfg.Food.PatchThreshold)

	windowTicks := opts.StatsWindow
	if windowTicks <= 0 {
		windowTicks = int32(cfg.Telemetry.StatsWindow)
	}
	s.collector = telemetry.NewCollector(windowTicks)

	s.healthParams = systems.HealthParams{
		StarvationDamage: float32(cfg.Entity.StarvationDamage),
		ContactDamage:    float32(cfg.Predators.ContactDamage),
		ContactRadiusSq:  float32(cfg.Predators.ContactRadius * cfg.Predators.ContactRadius),
		RegenRate:        float32(cfg.Entity.RegenRate),
		RegenAbove:       float32(cfg.Entity.RegenAbove),
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	s.output = output
	if err := s.output.WriteConfig(cfg); err != nil {
		s.output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	for i := 0; i < cfg.Population.Initial; i++ {
		s.spawnBacterium(s.rng.Float32()*s.width, s.rng.Float32()*s.height)
	}
	for i := 0; i < cfg.Food.Initial; i++ {
		s.spawnFood()
	}
	for i := 0; i < cfg.Predators.Count; i++ {
		s.spawnHunter()
	}

	return s, nil
}

// Step advances the simulation by one tick.
func (s *Sim) Step() {
	s.tick++

	s.rebuildEnvironment()
	s.updateBacteria()
	s.updateHunters()
	s.removeEatenFood()
	s.applyReproduction()
	s.applyDeaths()
	s.respawnFood()
	s.maintainPopulation()
	s.flushStats()
}

// Tick returns the number of completed ticks.
func (s *Sim) Tick() int32 {
	return s.tick
}

// Alive returns the current bacteria population.
func (s *Sim) Alive() int {
	return s.aliveCount
}

// FoodCount returns the current number of food items.
func (s *Sim) FoodCount() int {
	return s.foodCount
}

// Seed returns the seed the run started with.
func (s *Sim) Seed() int64 {
	return s.seed
}

// Close flushes and closes the output files.
func (s *Sim) Close() error {
	return s.output.Close()
}

// rebuildEnvironment snapshots positions at the start of the tick. Every
// pass reads this snapshot, so processing order inside the tick cannot
// change what anyone senses.
func (s *Sim) rebuildEnvironment() {
	s.env.Reset(s.width, s.height)

	foodQuery := s.foodFilter.Query()
	for foodQuery.Next() {
		pos, food := foodQuery.Get()
		s.env.Food = append(s.env.Food, systems.FoodInfo{
			Entity: foodQuery.Entity(),
			Pos:    *pos,
			Energy: food.Energy,
		})
	}

	bactQuery := s.bacteriaFilter.Query()
	for bactQuery.Next() {
		pos, _, _, _, _, _, _ := bactQuery.Get()
		s.env.Bacteria = append(s.env.Bacteria, systems.BacteriumInfo{
			Entity: bactQuery.Entity(),
			Pos:    *pos,
		})
	}

	hunterQuery := s.hunterFilter.Query()
	for hunterQuery.Next() {
		pos, _, _ := hunterQuery.Get()
		s.env.Hunters = append(s.env.Hunters, *pos)
	}
}

// updateBacteria runs the per-bacterium tick: sense, decide, move, eat,
// and settle health. Deaths and reproduction candidates are collected and
// applied after the query completes.
func (s *Sim) updateBacteria() {
	query := s.bacteriaFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, vit, age, hunger, genome, bact := query.Get()

		br := s.brainMap.Get(entity)
		if br == nil || br.Controller == nil {
			continue
		}

		p := systems.Perceive(entity, *pos, *vit, *age, *hunger, genome.Traits, &s.env)
		dec := br.Controller.Decide(p.Reading)

		// The controller owns energy; write back what it accounted for.
		vit.Energy = dec.Directives.Energy

		s.collector.RecordDecision(dec)
		if dec.Changed {
			s.tracker.RecordTransition(bact.ID)
		}
		if dec.LoopBroken {
			s.tracker.RecordLoopBreak(bact.ID)
			s.writeEvent(telemetry.NewLoopBreakEvent(s.tick, bact.ID))
		}

		systems.ApplyDirectives(pos, vel, dec.Directives, p, genome.Traits, s.rng, s.width, s.height)

		if idx := systems.TryEat(p, vit, hunger, &s.env,
			float32(s.cfg.Food.EatRadius), float32(s.cfg.Behavior.EnergyCap)); idx >= 0 {
			s.collector.RecordMeal()
			s.tracker.RecordMeal(bact.ID)
		}
		s.tracker.UpdateEnergy(bact.ID, vit.Energy)

		cause := systems.UpdateHealth(vit, hunger, age, genome.Traits, p.Threat, s.healthParams)
		if cause != systems.DeathNone {
			s.deaths = append(s.deaths, deadBacterium{
				entity: entity,
				id:     bact.ID,
				cause:  cause,
				age:    age.Ticks,
			})
			continue
		}

		if br.Controller.State() == brain.StateReproducing {
			s.reproducers = append(s.reproducers, systems.Candidate{Entity: entity, Pos: *pos})
		}
	}
}

// updateHunters advances the roaming predators.
func (s *Sim) updateHunters() {
	speed := float32(s.cfg.Predators.Speed)
	jitter := float32(s.cfg.Predators.TurnJitter)

	query := s.hunterFilter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		systems.WanderHunter(pos, vel, speed, jitter, s.rng, s.width, s.height)
	}
}

// removeEatenFood despawns items the feeding pass marked.
func (s *Sim) removeEatenFood() {
	for i := range s.env.Food {
		if s.env.Food[i].Eaten {
			s.foodMapper.Remove(s.env.Food[i].Entity)
			s.foodCount--
		}
	}
}

// applyReproduction pairs willing bacteria and spawns their children.
func (s *Sim) applyReproduction() {
	pairs := systems.FindPairs(s.reproducers,
		float32(s.cfg.Reproduction.PairRadius),
		float32(s.cfg.Reproduction.SpawnOffset),
		s.width, s.height, s.rng)
	s.reproducers = s.reproducers[:0]

	for _, pair := range pairs {
		if s.aliveCount >= s.cfg.Population.Max {
			break
		}

		child := s.spawnBacterium(pair.ChildPos.X, pair.ChildPos.Y)
		childID := s.bactMap.Get(child).ID

		parentID := s.chargeParent(pair.A)
		s.chargeParent(pair.B)

		s.collector.RecordBirth()
		s.writeEvent(telemetry.NewBirthEvent(s.tick, childID, parentID))
	}
}

// chargeParent deducts the spawn energy cost and credits the child to the
// parent's lifetime record. Returns the parent's ID.
func (s *Sim) chargeParent(parent ecs.Entity) uint32 {
	vit := s.vitalsMap.Get(parent)
	vit.Energy -= float32(s.cfg.Reproduction.SpawnEnergyCost)
	if vit.Energy < 0 {
		vit.Energy = 0
	}

	id := s.bactMap.Get(parent).ID
	s.tracker.RecordChild(id)
	return id
}

// applyDeaths removes bacteria that died this tick and closes their
// lifetime records.
func (s *Sim) applyDeaths() {
	for _, dead := range s.deaths {
		statesSeen := 0
		if br := s.brainMap.Get(dead.entity); br != nil && br.Controller != nil {
			statesSeen = br.Controller.TableLen()
		}

		if rec, ok := s.tracker.Finish(dead.id, s.tick, dead.cause.String(), statesSeen); ok {
			s.writeLifetime(rec)
		}
		s.writeEvent(telemetry.NewDeathEvent(s.tick, dead.id, dead.cause.String(), dead.age))
		s.collector.RecordDeath(dead.cause)

		s.brainMap.Remove(dead.entity)
		s.bacteriaMapper.Remove(dead.entity)
		s.aliveCount--
	}
	s.deaths = s.deaths[:0]
}

// respawnFood accumulates the fractional per-tick respawn rate and spawns
// whole items as the debt clears, up to the cap.
func (s *Sim) respawnFood() {
	if s.foodCount >= s.cfg.Food.Max {
		return
	}
	s.foodDebt += s.cfg.Food.RespawnPerTick
	for s.foodDebt >= 1 && s.foodCount < s.cfg.Food.Max {
		s.spawnFood()
		s.foodDebt--
	}
}

// maintainPopulation respawns a batch of fresh bacteria when the
// population falls below the floor, so a collapse does not end the run.
func (s *Sim) maintainPopulation() {
	if s.aliveCount >= s.cfg.Population.MinAlive {
		return
	}
	for i := 0; i < s.cfg.Population.RespawnCount && s.aliveCount < s.cfg.Population.Max; i++ {
		s.spawnBacterium(s.rng.Float32()*s.width, s.rng.Float32()*s.height)
		s.collector.RecordBirth()
	}
}

// flushStats closes the stats window when due: samples vitals and table
// sizes, emits the window, and resets the counters.
func (s *Sim) flushStats() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	s.energies = s.energies[:0]
	s.healths = s.healths[:0]
	s.tableSizes = s.tableSizes[:0]

	query := s.bacteriaFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, vit, _, _, _, _ := query.Get()

		s.energies = append(s.energies, float64(vit.Energy))
		s.healths = append(s.healths, float64(vit.Health))
		if br := s.brainMap.Get(entity); br != nil && br.Controller != nil {
			s.tableSizes = append(s.tableSizes, float64(br.Controller.TableLen()))
		}
	}

	stats := s.collector.Flush(s.tick, s.aliveCount, s.foodCount,
		s.energies, s.healths, s.tableSizes)

	if s.opts.LogStats {
		slog.Info("stats", "window", stats)
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if s.opts.StatsCallback != nil {
		s.opts.StatsCallback(stats)
	}
}

func (s *Sim) writeEvent(ev telemetry.Event) {
	if err := s.output.WriteEvent(ev); err != nil {
		slog.Warn("event write failed", "error", err)
	}
}

func (s *Sim) writeLifetime(rec telemetry.LifetimeRecord) {
	if err := s.output.WriteLifetime(rec); err != nil {
		slog.Warn("lifetime write failed", "error", err)
	}
}
