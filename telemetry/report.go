package telemetry

// ChoiceOption describes one EP spend the player can pick. Mirrors the
// engine's spend menu in a serialization-friendly form.
type ChoiceOption struct {
	Choice string  `json:"choice"`
	Gene   string  `json:"gene"`
	Delta  float64 `json:"delta"`
	Cost   float64 `json:"cost"`
}

// WorldState summarizes the environment for the narrator.
type WorldState struct {
	DominantThreat string `json:"dominant_threat"`
	ActiveEvent    string `json:"active_event"`
}

// TurnReport is the compact turn-state record for a narrator-like consumer.
// It is a value object built from a finished snapshot; the consumer gets no
// handle back into engine state.
type TurnReport struct {
	Turn       int32      `json:"turn"`
	Population int        `json:"population"`
	EP         float64    `json:"ep"`
	World      WorldState `json:"world_state"`
	Events     []Event    `json:"notable_events"`
	Extinct    bool       `json:"extinct"`

	PlayerChoices []ChoiceOption `json:"player_choices"`
}

// toxinThreatThreshold is the mean per-cell toxin above which toxins are
// reported as the dominant threat.
const toxinThreatThreshold = 0.01

// NewTurnReport builds the narrator record from a snapshot and the currently
// available spend choices.
func NewTurnReport(snap *Snapshot, choices []ChoiceOption) TurnReport {
	threat := "none"
	if n := len(snap.Toxin); n > 0 {
		var sum float64
		for _, v := range snap.Toxin {
			sum += v
		}
		if sum/float64(n) > toxinThreatThreshold {
			threat = "toxins"
		}
	}

	events := make([]Event, len(snap.Events))
	copy(events, snap.Events)

	return TurnReport{
		Turn:       snap.Turn,
		Population: len(snap.Organisms),
		EP:         snap.Lineage.EP,
		World: WorldState{
			DominantThreat: threat,
			ActiveEvent:    snap.ActiveWorldEvent,
		},
		Events:        events,
		Extinct:       snap.Extinct,
		PlayerChoices: choices,
	}
}
