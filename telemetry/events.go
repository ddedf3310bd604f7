// Package telemetry provides turn snapshots, stats aggregation, and run output.
package telemetry

// EventType identifies notable simulation events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventEPSpend
	EventEPMilestone
	EventWorldEvent
)

// String returns the event type's name.
func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	case EventEPSpend:
		return "ep_spend"
	case EventEPMilestone:
		return "ep_milestone"
	case EventWorldEvent:
		return "world_event"
	default:
		return "unknown"
	}
}

// Event records a single notable occurrence within a turn.
type Event struct {
	Type       EventType `json:"type"`
	Turn       int32     `json:"turn"`
	OrganismID uint64    `json:"organism_id,omitempty"`
	ParentID   uint64    `json:"parent_id,omitempty"`
	Detail     string    `json:"detail,omitempty"` // death cause, gene name, world event name
	Amount     float64   `json:"amount,omitempty"` // EP delta for spend/milestone events
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(turn int32, childID, parentID uint64) Event {
	return Event{Type: EventBirth, Turn: turn, OrganismID: childID, ParentID: parentID}
}

// NewDeathEvent creates a death event. Cause is "starvation" or "toxin".
func NewDeathEvent(turn int32, organismID uint64, cause string) Event {
	return Event{Type: EventDeath, Turn: turn, OrganismID: organismID, Detail: cause}
}

// NewEPSpendEvent creates an EP spend event for a directed genome edit.
func NewEPSpendEvent(turn int32, gene string, cost float64) Event {
	return Event{Type: EventEPSpend, Turn: turn, Detail: gene, Amount: cost}
}

// NewEPMilestoneEvent creates an EP award event.
func NewEPMilestoneEvent(turn int32, detail string, reward float64) Event {
	return Event{Type: EventEPMilestone, Turn: turn, Detail: detail, Amount: reward}
}

// NewWorldEvent records a world phenomenon starting this turn.
func NewWorldEvent(turn int32, name string) Event {
	return Event{Type: EventWorldEvent, Turn: turn, Detail: name}
}
