package telemetry

// Collector accumulates events within a turn and produces the turn's event
// list and counters. The engine drains it at snapshot time.
type Collector struct {
	events []Event

	births           int
	deaths           int
	deathsStarvation int
	deathsToxin      int
	epEarned         float64
	epSpent          float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirth records a birth.
func (c *Collector) RecordBirth(turn int32, childID, parentID uint64) {
	c.births++
	c.events = append(c.events, NewBirthEvent(turn, childID, parentID))
}

// RecordDeath records a death with its cause ("starvation" or "toxin").
func (c *Collector) RecordDeath(turn int32, organismID uint64, cause string) {
	c.deaths++
	switch cause {
	case "toxin":
		c.deathsToxin++
	default:
		c.deathsStarvation++
	}
	c.events = append(c.events, NewDeathEvent(turn, organismID, cause))
}

// RecordEPSpend records a directed genome edit.
func (c *Collector) RecordEPSpend(turn int32, gene string, cost float64) {
	c.epSpent += cost
	c.events = append(c.events, NewEPSpendEvent(turn, gene, cost))
}

// RecordEPMilestone records an EP award.
func (c *Collector) RecordEPMilestone(turn int32, detail string, reward float64) {
	c.epEarned += reward
	c.events = append(c.events, NewEPMilestoneEvent(turn, detail, reward))
}

// RecordWorldEvent records a world phenomenon starting.
func (c *Collector) RecordWorldEvent(turn int32, name string) {
	c.events = append(c.events, NewWorldEvent(turn, name))
}

// Births returns the birth count for the current turn.
func (c *Collector) Births() int { return c.births }

// Deaths returns the death count for the current turn.
func (c *Collector) Deaths() int { return c.deaths }

// DrainTurn returns the accumulated events and counters, then resets for the
// next turn.
func (c *Collector) DrainTurn() TurnCounters {
	out := TurnCounters{
		Events:           c.events,
		Births:           c.births,
		Deaths:           c.deaths,
		DeathsStarvation: c.deathsStarvation,
		DeathsToxin:      c.deathsToxin,
		EPEarned:         c.epEarned,
		EPSpent:          c.epSpent,
	}
	*c = Collector{}
	return out
}

// TurnCounters holds one turn's drained event data.
type TurnCounters struct {
	Events           []Event
	Births           int
	Deaths           int
	DeathsStarvation int
	DeathsToxin      int
	EPEarned         float64
	EPSpent          float64
}
