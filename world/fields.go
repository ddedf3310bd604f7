package world

import (
	"math/rand"

	"github.com/pthm-cable/primordia/config"
)

// Event is a transient world phenomenon affecting the fields.
type Event uint8

const (
	EventNone Event = iota
	EventAcidRain
	EventIceAge
	EventNutrientBloom
)

// String returns the event's name.
func (e Event) String() string {
	switch e {
	case EventAcidRain:
		return "acid_rain"
	case EventIceAge:
		return "ice_age"
	case EventNutrientBloom:
		return "nutrient_bloom"
	default:
		return "none"
	}
}

// rollable events, chosen uniformly when a roll succeeds.
var rollable = []Event{EventAcidRain, EventIceAge, EventNutrientBloom}

// Fields holds the paired nutrient and toxin grids plus the environmental
// update policy: source replenishment, diffusion, toxin decay, and world
// events.
type Fields struct {
	W, H     int
	Nutrient *Field
	Toxin    *Field

	sourceX, sourceY int
	sourceAmount     float64
	diffusionRate    float64
	nutrientMax      float64
	toxinMax         float64
	toxinDecay       float64

	active        Event
	eventChance   float64
	acidRainToxin float64
	bloomFactor   float64
}

// NewFields builds the field pair from configuration. The config is assumed
// validated; the nutrient source cell is seeded immediately so turn zero
// already has something to diffuse.
func NewFields(cfg *config.Config) *Fields {
	w, h := cfg.World.Width, cfg.World.Height
	sx, sy := cfg.SourceCell()

	f := &Fields{
		W:             w,
		H:             h,
		Nutrient:      NewField(w, h),
		Toxin:         NewField(w, h),
		sourceX:       sx,
		sourceY:       sy,
		sourceAmount:  cfg.World.SourceAmount,
		diffusionRate: cfg.World.DiffusionRate,
		nutrientMax:   cfg.World.NutrientMax,
		toxinMax:      cfg.World.ToxinMax,
		toxinDecay:    cfg.World.ToxinDecay,
		eventChance:   cfg.Events.Chance,
		acidRainToxin: cfg.Events.AcidRainToxin,
		bloomFactor:   cfg.Events.BloomFactor,
	}

	f.Nutrient.Set(sx, sy, f.sourceAmount)
	return f
}

// ActiveEvent returns the world event currently in effect.
func (f *Fields) ActiveEvent() Event {
	return f.active
}

// RollEvent decides the world event for the coming turn: with the configured
// chance a random event starts (or continues), otherwise any active event
// ends. Deterministic given the caller's seeded RNG.
func (f *Fields) RollEvent(rng *rand.Rand) Event {
	if f.eventChance > 0 && rng.Float64() < f.eventChance {
		f.active = rollable[rng.Intn(len(rollable))]
	} else {
		f.active = EventNone
	}
	return f.active
}

// Step advances the environment by one turn: replenish the nutrient source
// (scaled by the active event), diffuse both fields, decay toxin, apply
// event fallout, and clamp into the configured bands.
func (f *Fields) Step() {
	amount := f.sourceAmount
	switch f.active {
	case EventIceAge:
		amount /= 2
	case EventNutrientBloom:
		amount *= f.bloomFactor
	}
	f.Nutrient.Set(f.sourceX, f.sourceY, amount)

	f.Nutrient.Diffuse(f.diffusionRate)

	if f.Toxin.Max() > 0 || f.active == EventAcidRain {
		f.Toxin.Diffuse(f.diffusionRate)
		f.Toxin.Scale(f.toxinDecay)
	}
	if f.active == EventAcidRain {
		f.Toxin.AddUniform(f.acidRainToxin)
	}

	f.Nutrient.Clamp(f.nutrientMax)
	f.Toxin.Clamp(f.toxinMax)
}

// SourceCell returns the nutrient spawn coordinates.
func (f *Fields) SourceCell() (int, int) {
	return f.sourceX, f.sourceY
}
