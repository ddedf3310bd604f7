// Package main provides CMA-ES optimization for simulation parameters.
package main

import (
	"github.com/pthm-cable/primordia/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters: the
// energy economy and reproduction knobs that decide whether a lineage can
// hold a stable population.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// World
			{Name: "diffusion_rate", Path: "world.diffusion_rate", Min: 0.02, Max: 0.25, Default: 0.1},
			{Name: "source_amount", Path: "world.source_amount", Min: 2.0, Max: 50.0, Default: 10.0},
			{Name: "toxin_decay", Path: "world.toxin_decay", Min: 0.8, Max: 0.99, Default: 0.95},
			// Energy
			{Name: "uptake_scale", Path: "energy.uptake_scale", Min: 2.0, Max: 30.0, Default: 10.0},
			{Name: "feed_efficiency", Path: "energy.feed_efficiency", Min: 1.0, Max: 10.0, Default: 5.0},
			{Name: "toxin_damage_scale", Path: "energy.toxin_damage_scale", Min: 1.0, Max: 30.0, Default: 10.0},
			// Behavior
			{Name: "wander_chance", Path: "behavior.wander_chance", Min: 0.0, Max: 0.5, Default: 0.15},
			// Reproduction
			{Name: "child_energy_fraction", Path: "reproduction.child_energy_fraction", Min: 0.3, Max: 1.0, Default: 1.0},
			{Name: "local_capacity", Path: "reproduction.local_capacity", Min: 1, Max: 8, Default: 4},
			{Name: "mutation_range", Path: "reproduction.mutation_range", Min: 0.0, Max: 0.5, Default: 0.1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	cfg.World.DiffusionRate = clamped[i]
	i++
	cfg.World.SourceAmount = clamped[i]
	i++
	cfg.World.ToxinDecay = clamped[i]
	i++

	cfg.Energy.UptakeScale = clamped[i]
	i++
	cfg.Energy.FeedEfficiency = clamped[i]
	i++
	cfg.Energy.ToxinDamageScale = clamped[i]
	i++

	cfg.Behavior.WanderChance = clamped[i]
	i++

	cfg.Reproduction.ChildEnergyFraction = clamped[i]
	i++
	cfg.Reproduction.LocalCapacity = int(clamped[i] + 0.5)
	i++
	cfg.Reproduction.MutationRange = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.World.DiffusionRate,
		cfg.World.SourceAmount,
		cfg.World.ToxinDecay,
		cfg.Energy.UptakeScale,
		cfg.Energy.FeedEfficiency,
		cfg.Energy.ToxinDamageScale,
		cfg.Behavior.WanderChance,
		cfg.Reproduction.ChildEnergyFraction,
		float64(cfg.Reproduction.LocalCapacity),
		cfg.Reproduction.MutationRange,
	}
}
