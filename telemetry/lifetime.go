package telemetry

// LifetimeStats tracks per-bacterium statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int32

	Meals       int
	Children    int
	Transitions int
	LoopBreaks  int

	PeakEnergy float32
}

// LifetimeRecord is the CSV row written when a bacterium dies.
type LifetimeRecord struct {
	ID          uint32  `csv:"id"`
	BirthTick   int32   `csv:"birth_tick"`
	DeathTick   int32   `csv:"death_tick"`
	AgeTicks    int32   `csv:"age_ticks"`
	Cause       string  `csv:"cause"`
	Meals       int     `csv:"meals"`
	Children    int     `csv:"children"`
	Transitions int     `csv:"transitions"`
	LoopBreaks  int     `csv:"loop_breaks"`
	PeakEnergy  float32 `csv:"peak_energy"`
	StatesSeen  int     `csv:"states_seen"`
}

// LifetimeTracker manages per-bacterium lifetime statistics, keyed by the
// stable bacterium ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates an empty tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{stats: make(map[uint32]*LifetimeStats)}
}

// Register starts tracking a newborn.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32) {
	lt.stats[id] = &LifetimeStats{BirthTick: birthTick}
}

// Get returns the stats for a bacterium, or nil if untracked.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// RecordMeal increments the meal count.
func (lt *LifetimeTracker) RecordMeal(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// RecordChild increments the children count of one parent.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordTransition increments the state change count.
func (lt *LifetimeTracker) RecordTransition(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Transitions++
	}
}

// RecordLoopBreak increments the loop breaker count.
func (lt *LifetimeTracker) RecordLoopBreak(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.LoopBreaks++
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(id uint32, energy float32) {
	if s := lt.stats[id]; s != nil && energy > s.PeakEnergy {
		s.PeakEnergy = energy
	}
}

// Finish stops tracking a bacterium and returns its closing CSV record.
// Returns false if the bacterium was never registered.
func (lt *LifetimeTracker) Finish(id uint32, deathTick int32, cause string, statesSeen int) (LifetimeRecord, bool) {
	s := lt.stats[id]
	if s == nil {
		return LifetimeRecord{}, false
	}
	delete(lt.stats, id)

	return LifetimeRecord{
		ID:          id,
		BirthTick:   s.BirthTick,
		DeathTick:   deathTick,
		AgeTicks:    deathTick - s.BirthTick,
		Cause:       cause,
		Meals:       s.Meals,
		Children:    s.Children,
		Transitions: s.Transitions,
		LoopBreaks:  s.LoopBreaks,
		PeakEnergy:  s.PeakEnergy,
		StatesSeen:  statesSeen,
	}, true
}

// Count returns the number of tracked bacteria.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
