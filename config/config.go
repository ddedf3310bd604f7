// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Events       EventsConfig       `yaml:"events"`
	Population   PopulationConfig   `yaml:"population"`
	Energy       EnergyConfig       `yaml:"energy"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Potential    PotentialConfig    `yaml:"potential"`
}

// WorldConfig holds grid dimensions and field parameters. The grid is
// toroidal: all coordinate arithmetic wraps modulo width/height.
type WorldConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	DiffusionRate float64 `yaml:"diffusion_rate"` // FTCS rate; must be in (0, 0.25]
	NutrientMax   float64 `yaml:"nutrient_max"`   // saturation clamp per cell
	ToxinMax      float64 `yaml:"toxin_max"`
	SourceX       int     `yaml:"source_x"`      // -1 = grid center
	SourceY       int     `yaml:"source_y"`      // -1 = grid center
	SourceAmount  float64 `yaml:"source_amount"` // nutrient written to the source cell each turn
	ToxinDecay    float64 `yaml:"toxin_decay"`   // multiplicative toxin retention per turn
}

// TerrainConfig holds initial nutrient terrain noise parameters.
type TerrainConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Scale     float64 `yaml:"scale"`     // noise frequency in grid cells
	Amplitude float64 `yaml:"amplitude"` // peak nutrient added by terrain noise
}

// EventsConfig holds world event parameters.
type EventsConfig struct {
	Chance        float64 `yaml:"chance"`          // per-turn probability of a new event
	AcidRainToxin float64 `yaml:"acid_rain_toxin"` // uniform toxin added per turn during acid rain
	BloomFactor   float64 `yaml:"bloom_factor"`    // source multiplier during nutrient bloom
}

// PopulationConfig holds founder population parameters.
type PopulationConfig struct {
	Initial       int     `yaml:"initial"`
	InitialEnergy float64 `yaml:"initial_energy"`
	InitialHealth float64 `yaml:"initial_health"`
}

// EnergyConfig holds the energy economy constants.
// Gain = min(nutrient_at_cell, MetabolismRate*uptake_scale) * feed_efficiency;
// toxin damage = max(0, toxin - ToxinBResistance) * toxin_damage_scale.
type EnergyConfig struct {
	UptakeScale          float64 `yaml:"uptake_scale"`
	FeedEfficiency       float64 `yaml:"feed_efficiency"`
	ToxinDamageScale     float64 `yaml:"toxin_damage_scale"`
	HealthDamageFraction float64 `yaml:"health_damage_fraction"` // share of toxin damage also taken as health loss
}

// BehaviorConfig holds movement decision parameters.
type BehaviorConfig struct {
	WanderChance float64 `yaml:"wander_chance"` // chance of a random step when no nutrient gradient exists
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	ChildEnergyFraction float64 `yaml:"child_energy_fraction"` // child energy as fraction of the parent's post-split energy
	LocalCapacity       int     `yaml:"local_capacity"`        // max living neighbors in the 3x3 block for a birth
	MutationRange       float64 `yaml:"mutation_range"`        // r in the per-gene x(1+U(-r,r)) mutation
}

// PotentialConfig holds evolutionary potential (EP) parameters.
type PotentialConfig struct {
	Initial             float64 `yaml:"initial"`
	MilestonePopulation int     `yaml:"milestone_population"` // population size that triggers the milestone award
	MilestoneReward     float64 `yaml:"milestone_reward"`
}

// ConfigError reports an invalid configuration value. It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants. Violations are fatal at startup
// rather than silently corrected mid-simulation.
func (c *Config) Validate() error {
	if c.World.Width < 1 || c.World.Height < 1 {
		return &ConfigError{"world.width/height", fmt.Sprintf("grid must be at least 1x1, got %dx%d", c.World.Width, c.World.Height)}
	}
	if c.World.DiffusionRate <= 0 || c.World.DiffusionRate > 0.25 {
		return &ConfigError{"world.diffusion_rate", fmt.Sprintf("FTCS stability requires (0, 0.25], got %g", c.World.DiffusionRate)}
	}
	if c.World.NutrientMax <= 0 || c.World.ToxinMax <= 0 {
		return &ConfigError{"world.nutrient_max/toxin_max", "field clamp maxima must be positive"}
	}
	if c.World.SourceX >= c.World.Width || c.World.SourceY >= c.World.Height {
		return &ConfigError{"world.source_x/source_y", "source cell outside the grid"}
	}
	if c.World.ToxinDecay < 0 || c.World.ToxinDecay > 1 {
		return &ConfigError{"world.toxin_decay", fmt.Sprintf("must be in [0, 1], got %g", c.World.ToxinDecay)}
	}
	if c.Events.Chance < 0 || c.Events.Chance > 1 {
		return &ConfigError{"events.chance", fmt.Sprintf("must be in [0, 1], got %g", c.Events.Chance)}
	}
	if c.Population.Initial < 0 {
		return &ConfigError{"population.initial", "must be non-negative"}
	}
	if c.Energy.UptakeScale < 0 || c.Energy.FeedEfficiency < 0 || c.Energy.ToxinDamageScale < 0 {
		return &ConfigError{"energy", "scales must be non-negative"}
	}
	if c.Behavior.WanderChance < 0 || c.Behavior.WanderChance > 1 {
		return &ConfigError{"behavior.wander_chance", fmt.Sprintf("must be in [0, 1], got %g", c.Behavior.WanderChance)}
	}
	if c.Reproduction.ChildEnergyFraction <= 0 || c.Reproduction.ChildEnergyFraction > 1 {
		return &ConfigError{"reproduction.child_energy_fraction", fmt.Sprintf("must be in (0, 1], got %g", c.Reproduction.ChildEnergyFraction)}
	}
	if c.Reproduction.LocalCapacity < 1 {
		return &ConfigError{"reproduction.local_capacity", "must be at least 1"}
	}
	if c.Reproduction.MutationRange < 0 || c.Reproduction.MutationRange >= 1 {
		return &ConfigError{"reproduction.mutation_range", fmt.Sprintf("must be in [0, 1), got %g", c.Reproduction.MutationRange)}
	}
	if c.Potential.Initial < 0 {
		return &ConfigError{"potential.initial", "must be non-negative"}
	}
	return nil
}

// SourceCell resolves the nutrient source coordinates, defaulting to the grid
// center when unset.
func (c *Config) SourceCell() (int, int) {
	x, y := c.World.SourceX, c.World.SourceY
	if x < 0 {
		x = c.World.Width / 2
	}
	if y < 0 {
		y = c.World.Height / 2
	}
	return x, y
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
