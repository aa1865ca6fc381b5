// Package telemetry aggregates windowed simulation statistics, per-agent
// lifetime records, and notable events, and writes them as experiment output.
package telemetry

// EventType identifies logged events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventLoopBreak
)

var eventNames = [...]string{"birth", "death", "loop_break"}

func (t EventType) String() string {
	if int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// MarshalCSV writes the event type by name.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event is a single row in the event log.
type Event struct {
	Tick     int32     `csv:"tick"`
	Type     EventType `csv:"type"`
	EntityID uint32    `csv:"entity"`
	TargetID uint32    `csv:"target"`
	Detail   string    `csv:"detail"`
	Amount   float32   `csv:"amount"`
}

// NewBirthEvent records a child spawned from a pairing. One parent goes in
// TargetID; births always come from exactly two, so logging one identifies
// the couple together with the entity's own lifetime record.
func NewBirthEvent(tick int32, childID, parentID uint32) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		TargetID: parentID,
	}
}

// NewDeathEvent records a death with its cause and age at death.
func NewDeathEvent(tick int32, entityID uint32, cause string, ageTicks int32) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Detail:   cause,
		Amount:   float32(ageTicks),
	}
}

// NewLoopBreakEvent records the loop breaker forcing a bacterium to rest.
func NewLoopBreakEvent(tick int32, entityID uint32) Event {
	return Event{
		Type:     EventLoopBreak,
		Tick:     tick,
		EntityID: entityID,
	}
}
